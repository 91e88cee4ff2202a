package template

import "regexp"

// Variable placeholder patterns. The unescaped (triple-brace) pattern must
// be processed strictly before the escaped one: a triple-brace placeholder
// textually contains the double-brace pattern.
var (
	unescapedVarPattern = regexp.MustCompile(`\{\{\{\s*([A-Za-z0-9_.]+)\s*\}\}\}`)
	escapedVarPattern   = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)
)

// substituteVariables replaces all variable placeholders. It runs after
// section evaluation, so section bodies are already inlined. Each unique
// placeholder is resolved once and every literal occurrence replaced.
// Unresolvable paths become empty strings; partial data must never fail the
// whole report.
func (e *Engine) substituteVariables(template string, data map[string]any) string {
	result := e.replaceVariables(template, data, unescapedVarPattern, false)
	return e.replaceVariables(result, data, escapedVarPattern, true)
}

func (e *Engine) replaceVariables(template string, data map[string]any, pattern *regexp.Regexp, escape bool) string {
	resolved := make(map[string]string)
	return pattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		if s, ok := resolved[placeholder]; ok {
			return s
		}
		path := pattern.FindStringSubmatch(placeholder)[1]
		value, _ := resolvePath(data, path)
		s := e.Stringify(value, escape)
		resolved[placeholder] = s
		return s
	})
}
