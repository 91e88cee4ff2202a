package template

import (
	"log/slog"

	"github.com/getreportd/reportd/pkg/logging"
)

// DefaultMaxPasses bounds section resolution for a single render call.
// Realistic report templates resolve in well under ten passes; the bound
// exists so adversarial or malformed templates terminate.
const DefaultMaxPasses = 100

// Options configures an Engine.
type Options struct {
	// MaxPasses caps the number of section-resolution passes per render.
	// Zero or negative means DefaultMaxPasses.
	MaxPasses int

	// Logger receives rendering diagnostics. Nil means no logging.
	Logger *slog.Logger
}

// Engine renders report templates against extracted document data.
// An Engine is stateless and safe for concurrent use; every render call is
// a pure function of its inputs.
type Engine struct {
	maxPasses int
	log       *slog.Logger
}

// New creates an engine with default options.
func New() *Engine {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an engine with explicit options.
func NewWithOptions(opts Options) *Engine {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{maxPasses: maxPasses, log: log}
}

// Render turns a template and a data context into final markup.
// Sections are resolved first, then variable placeholders are substituted
// in the flattened result. Render never fails: missing data degrades to
// empty strings and structural problems degrade to visible placeholders.
func (e *Engine) Render(template string, data map[string]any) string {
	flattened := e.evaluateSections(template, data)
	return e.substituteVariables(flattened, data)
}
