package template

import (
	"regexp"
	"strings"
)

// sectionOpenPattern matches {{#name}} and {{^name}} opening tags.
var sectionOpenPattern = regexp.MustCompile(`\{\{([#^])([A-Za-z0-9_.]+)\}\}`)

// sectionTagPattern matches any section tag, including closers. Used only
// to detect leftover unmatched tags after resolution finishes.
var sectionTagPattern = regexp.MustCompile(`\{\{[#^/][A-Za-z0-9_.]+\}\}`)

// sectionMatch is one open/close pair found in the current pass.
type sectionMatch struct {
	name     string
	inverted bool
	start    int // offset of the opening tag
	end      int // offset just past the closing tag
	body     string
	depth    int // count of section openers inside body
}

// evaluateSections repeatedly finds section pairs and replaces each with
// its contribution until none remain or the pass cap is hit. Per pass the
// lowest-depth (innermost) pair is resolved first; its body is rendered
// through the full pipeline, so newly exposed regions are rescanned on the
// next pass.
func (e *Engine) evaluateSections(template string, data map[string]any) string {
	result := template
	for pass := 0; pass < e.maxPasses; pass++ {
		match, found := findInnermostSection(result)
		if !found {
			e.warnUnmatchedTags(result)
			return result
		}

		value, _ := resolvePath(data, match.name)
		var contribution string
		if match.inverted {
			if !truthy(value) {
				contribution = e.Render(match.body, data)
			}
		} else {
			contribution = e.renderPositiveSection(value, match.body, data)
		}
		result = result[:match.start] + contribution + result[match.end:]
	}

	e.log.Warn("section resolution pass cap exceeded, returning partial result",
		"max_passes", e.maxPasses)
	return result
}

// findInnermostSection scans for all open/close pairs and returns the one
// with the fewest section openers inside its own body. An opening tag is
// paired with the first matching closer after it; nested pairs of the same
// name still resolve correctly because the innermost candidate wins.
func findInnermostSection(template string) (sectionMatch, bool) {
	opens := sectionOpenPattern.FindAllStringSubmatchIndex(template, -1)
	best := sectionMatch{depth: -1}
	for _, open := range opens {
		name := template[open[4]:open[5]]
		closeTag := "{{/" + name + "}}"
		rel := strings.Index(template[open[1]:], closeTag)
		if rel < 0 {
			continue
		}
		body := template[open[1] : open[1]+rel]
		depth := strings.Count(body, "{{#") + strings.Count(body, "{{^")
		if best.depth < 0 || depth < best.depth {
			best = sectionMatch{
				name:     name,
				inverted: template[open[2]:open[3]] == "^",
				start:    open[0],
				end:      open[1] + rel + len(closeTag),
				body:     body,
				depth:    depth,
			}
		}
	}
	return best, best.depth >= 0
}

// renderPositiveSection computes the contribution of a {{#name}} block.
func (e *Engine) renderPositiveSection(value any, body string, data map[string]any) string {
	switch v := value.(type) {
	case []any:
		var b strings.Builder
		for _, element := range v {
			b.WriteString(e.Render(body, mergeElement(data, element)))
		}
		return b.String()
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		return e.Render(body, mergeContext(data, v))
	default:
		if truthy(value) {
			return e.Render(body, data)
		}
		return ""
	}
}

// mergeElement builds the per-element context for array iteration. Object
// elements shadow outer fields of the same name; primitive elements are
// exposed only under the reserved "." key.
func mergeElement(outer map[string]any, element any) map[string]any {
	if obj, ok := element.(map[string]any); ok {
		return mergeContext(outer, obj)
	}
	merged := make(map[string]any, len(outer)+1)
	for k, v := range outer {
		merged[k] = v
	}
	merged["."] = element
	return merged
}

// mergeContext overlays inner fields over the outer context without
// mutating either map.
func mergeContext(outer, inner map[string]any) map[string]any {
	merged := make(map[string]any, len(outer)+len(inner))
	for k, v := range outer {
		merged[k] = v
	}
	for k, v := range inner {
		merged[k] = v
	}
	return merged
}

// truthy reports section truthiness: nil, false, zero numbers, empty
// strings, empty arrays and empty objects are falsy; everything else is
// truthy.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case float32:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// warnUnmatchedTags reports section tags that survived resolution. They are
// left literal in the output so a template/data mismatch stays visible to
// maintainers without breaking the report.
func (e *Engine) warnUnmatchedTags(result string) {
	if tag := sectionTagPattern.FindString(result); tag != "" {
		e.log.Warn("unmatched section tag left in output", "tag", tag)
	}
}
