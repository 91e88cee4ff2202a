// Package registry maps canonical document-type identifiers to report
// template bodies. The mapping is static configuration: template assets
// and the manifest are compiled into the binary, loaded once at package
// init, and never mutated, so lookups are safe from any goroutine.
//
// Lookup is exact-match and case-sensitive. A miss means "no template
// available"; the consuming surface falls back to generic rendering, it is
// never an error.
package registry

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed templates/manifest.yaml templates/*.html
var assets embed.FS

type manifest struct {
	Templates map[string]string `yaml:"templates"`
}

var templates = load()

// load builds the immutable document-type map from the embedded assets.
// The assets are part of the binary, so any failure here is a build defect
// and panics at init rather than surfacing at render time.
func load() map[string]string {
	raw, err := assets.ReadFile("templates/manifest.yaml")
	if err != nil {
		panic(fmt.Sprintf("registry: embedded manifest missing: %v", err))
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("registry: embedded manifest invalid: %v", err))
	}

	// Aliased document types share the identical template value.
	bodies := make(map[string]string)
	out := make(map[string]string, len(m.Templates))
	for docType, file := range m.Templates {
		body, ok := bodies[file]
		if !ok {
			b, err := assets.ReadFile("templates/" + file)
			if err != nil {
				panic(fmt.Sprintf("registry: manifest references missing template %q: %v", file, err))
			}
			body = string(b)
			bodies[file] = body
		}
		out[docType] = body
	}
	return out
}

// Lookup returns the template body for a document type. The second return
// is false when no template is registered for the type.
func Lookup(docType string) (string, bool) {
	body, ok := templates[docType]
	return body, ok
}

// Types returns the registered document-type keys, sorted.
func Types() []string {
	out := make([]string, 0, len(templates))
	for docType := range templates {
		out = append(out, docType)
	}
	sort.Strings(out)
	return out
}
