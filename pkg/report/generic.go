package report

import (
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	rawPolicyOnce sync.Once
	rawPolicy     *bluemonday.Policy
)

// rawSanitizer strips all markup from untrusted extraction text. The
// strict policy leaves escaped text only, which is what a <pre> fallback
// needs.
func rawSanitizer() *bluemonday.Policy {
	rawPolicyOnce.Do(func() {
		rawPolicy = bluemonday.StrictPolicy()
	})
	return rawPolicy
}

// renderRaw is the fallback when the content carries no parseable JSON:
// the raw text is sanitized and shown verbatim so the user still sees what
// was extracted.
func (s *Surface) renderRaw(rawContent string) string {
	var b strings.Builder
	b.WriteString(`<article class="report report-generic"><pre>`)
	b.WriteString(rawSanitizer().Sanitize(rawContent))
	b.WriteString(`</pre></article>`)
	return b.String()
}

// renderFields is the fallback when the payload parsed but no template is
// registered for the document type: a definition list of the top-level
// fields, coerced and escaped the same way template variables are.
func (s *Surface) renderFields(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<article class="report report-generic"><dl>`)
	for _, key := range keys {
		value := s.engine.Stringify(data[key], true)
		if value == "" {
			continue
		}
		b.WriteString("<dt>")
		b.WriteString(fieldLabel(key))
		b.WriteString("</dt><dd>")
		b.WriteString(value)
		b.WriteString("</dd>")
	}
	b.WriteString(`</dl></article>`)
	return b.String()
}

// fieldLabel turns a camelCase payload key into a display label,
// e.g. "purchasePrice" -> "Purchase Price".
func fieldLabel(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(upperRune(r))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
