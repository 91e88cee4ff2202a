// Package report is the content surface in front of the template engine.
// It takes raw AI-extraction output for a classified document, locates and
// parses the JSON payload, normalizes it, and renders it with the template
// registered for the document type. Every failure mode degrades to a
// generic but safe rendering; no error from this package ever reaches the
// embedding surface.
package report

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/oj"

	"github.com/getreportd/reportd/pkg/logging"
	"github.com/getreportd/reportd/pkg/normalize"
	"github.com/getreportd/reportd/pkg/registry"
	"github.com/getreportd/reportd/pkg/template"
)

// Options configures a Surface.
type Options struct {
	// Engine renders templates. Nil means a default engine sharing Logger.
	Engine *template.Engine

	// Logger receives diagnostics. Nil means no logging.
	Logger *slog.Logger
}

// Surface renders extracted document content into report HTML.
type Surface struct {
	engine *template.Engine
	log    *slog.Logger
}

// Result is the outcome of a render. HTML is always populated. Templated
// reports false when the surface fell back to generic rendering, so the
// embedding layer can adjust chrome. RenderID correlates the output with
// its diagnostics in logs.
type Result struct {
	HTML      string
	Templated bool
	RenderID  string
}

// NewSurface creates a rendering surface.
func NewSurface(opts Options) *Surface {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = template.NewWithOptions(template.Options{Logger: log})
	}
	return &Surface{engine: engine, log: log}
}

// Render produces report HTML for a classified document's raw extraction
// content. It never fails: a payload that cannot be parsed, or a document
// type with no registered template, degrades to generic rendering with a
// diagnostic.
func (s *Surface) Render(docType, rawContent string) Result {
	renderID := uuid.NewString()
	log := s.log.With("render_id", renderID, "document_type", docType)

	payload, ok := parsePayload(rawContent)
	if !ok {
		// Classified type promised structured data the content does not
		// carry. Self-correcting degrade, not an error.
		log.Warn("document-type/content mismatch: no JSON object in extraction content")
		return Result{HTML: s.renderRaw(rawContent), RenderID: renderID}
	}

	body, ok := registry.Lookup(docType)
	if !ok {
		// Generic rendering shows the payload as extracted; the derived
		// flags only matter to templates.
		log.Debug("no template registered for document type, using generic rendering")
		return Result{HTML: s.renderFields(payload), RenderID: renderID}
	}

	return Result{
		HTML:      s.engine.Render(body, normalize.Normalize(payload)),
		Templated: true,
		RenderID:  renderID,
	}
}

// parsePayload extracts and parses the JSON object inside raw extraction
// content. Extraction models wrap the object in explanatory prose, so the
// payload is the outermost brace-delimited span.
func parsePayload(rawContent string) (map[string]any, bool) {
	span, ok := ExtractJSONObject(rawContent)
	if !ok {
		return nil, false
	}
	parsed, err := oj.ParseString(span)
	if err != nil {
		return nil, false
	}
	obj, ok := parsed.(map[string]any)
	return obj, ok
}

// ExtractJSONObject returns the outermost {...} span inside raw content,
// or ok=false when no such span exists.
func ExtractJSONObject(rawContent string) (string, bool) {
	first := strings.Index(rawContent, "{")
	last := strings.LastIndex(rawContent, "}")
	if first < 0 || last <= first {
		return "", false
	}
	return rawContent[first : last+1], true
}
