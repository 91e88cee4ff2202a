package template

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// unrenderablePlaceholder is the fixed fallback when even JSON
// serialization of a value fails.
const unrenderablePlaceholder = "[unrenderable value]"

// longDateLayout renders dates the way the reports display them,
// e.g. "January 5, 2025".
const longDateLayout = "January 2, 2006"

// htmlEscaper escapes the five characters with meaning in HTML text and
// attribute contexts. Escaping happens once, on the final display string,
// so structured output is never double-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// usdPrinter formats purchase prices as US dollars.
var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// Stringify converts an arbitrary JSON-representable value into a display
// string. It is total: any input produces a string, never a panic or
// error. When escape is true the final string is HTML-escaped.
func (e *Engine) Stringify(value any, escape bool) string {
	s := e.stringifyRaw(value)
	if escape {
		return htmlEscaper.Replace(s)
	}
	return s
}

func (e *Engine) stringifyRaw(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.Format(longDateLayout)
	case []any:
		return e.stringifyArray(v)
	case map[string]any:
		return e.stringifyObject(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stringifyArray joins primitive arrays for inline display. Arrays holding
// objects must be rendered via section syntax, not variable syntax; those
// degrade to a visible bracketed placeholder so the template/data mismatch
// is noticed without breaking the report.
func (e *Engine) stringifyArray(values []any) string {
	for _, v := range values {
		switch v.(type) {
		case map[string]any, []any:
			e.log.Warn("array of objects rendered as a plain variable; use section syntax",
				"items", len(values))
			return fmt.Sprintf("[%d items]", len(values))
		}
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, e.stringifyRaw(v))
	}
	return strings.Join(parts, ", ")
}

// stringifyObject turns a nested object into a display string using shape
// heuristics for the structures the extraction pipeline commonly emits.
// The checks run in priority order; JSON serialization is the last resort.
func (e *Engine) stringifyObject(obj map[string]any) string {
	if v, ok := obj["fullName"]; ok {
		return e.stringifyRaw(v)
	}
	if looksLikeAddress(obj) && !looksLikeEmail(obj) {
		return e.formatAddress(obj)
	}
	if looksLikeEmail(obj) {
		return e.stringifyRaw(obj["address"])
	}
	if first, last, ok := personNameParts(obj); ok {
		return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	}
	for _, key := range []string{"value", "name", "text"} {
		if v, ok := obj[key]; ok {
			return e.stringifyRaw(v)
		}
	}
	if looksLikePriorContract(obj) {
		return e.formatPriorContract(obj)
	}

	serialized, err := json.Marshal(obj)
	if err != nil {
		return unrenderablePlaceholder
	}
	e.log.Warn("object did not match any display shape, serialized as JSON",
		"keys", len(obj))
	return string(serialized)
}

func looksLikeAddress(obj map[string]any) bool {
	_, street := obj["street"]
	_, streetAddress := obj["streetAddress"]
	_, city := obj["city"]
	return street || streetAddress || city
}

func looksLikeEmail(obj map[string]any) bool {
	addr, ok := obj["address"].(string)
	return ok && strings.Contains(addr, "@")
}

func personNameParts(obj map[string]any) (string, string, bool) {
	first, firstOK := firstPresent(obj, "first", "firstName")
	last, lastOK := firstPresent(obj, "last", "lastName")
	if !firstOK || !lastOK {
		return "", "", false
	}
	f, _ := first.(string)
	l, _ := last.(string)
	return f, l, true
}

func looksLikePriorContract(obj map[string]any) bool {
	if _, ok := obj["originalContractDate"]; ok {
		return true
	}
	_, addr := obj["propertyAddress"]
	_, price := obj["originalPurchasePrice"]
	return addr && price
}

func firstPresent(obj map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// formatAddress joins the non-empty address parts with ", ",
// e.g. "1 Main St, Springfield, IL, 62704".
func (e *Engine) formatAddress(obj map[string]any) string {
	street, _ := firstPresent(obj, "street", "streetAddress")
	zip, _ := firstPresent(obj, "zip", "zipCode")
	candidates := []any{street, obj["city"], obj["state"], zip}

	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if s := strings.TrimSpace(e.stringifyRaw(c)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// formatPriorContract composes a sentence describing a referenced earlier
// contract: "Purchase Agreement dated <date> for <property> at <price>".
// Missing clauses are omitted.
func (e *Engine) formatPriorContract(obj map[string]any) string {
	var b strings.Builder
	b.WriteString("Purchase Agreement")
	if d, ok := obj["originalContractDate"]; ok {
		if s := formatDateValue(d); s != "" {
			b.WriteString(" dated ")
			b.WriteString(s)
		}
	}
	if addr, ok := obj["propertyAddress"]; ok {
		if s := strings.TrimSpace(e.stringifyRaw(addr)); s != "" {
			b.WriteString(" for ")
			b.WriteString(s)
		}
	}
	if price, ok := obj["originalPurchasePrice"]; ok {
		if s := e.formatCurrencyValue(price); s != "" {
			b.WriteString(" at ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// formatDateValue renders dates in the long form. Strings are reformatted
// when they parse as a known date layout and used verbatim otherwise.
func formatDateValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(longDateLayout)
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "01/02/2006"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.Format(longDateLayout)
			}
		}
		return v
	default:
		return ""
	}
}

// formatCurrencyValue formats a price as whole US dollars with grouping,
// e.g. "$450,000". Unparseable strings are used verbatim rather than
// dropped.
func (e *Engine) formatCurrencyValue(value any) string {
	switch v := value.(type) {
	case float64:
		return formatUSD(v)
	case int:
		return formatUSD(float64(v))
	case int64:
		return formatUSD(float64(v))
	case string:
		cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(v))
		if amount, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return formatUSD(amount)
		}
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func formatUSD(amount float64) string {
	return usdPrinter.Sprintf("$%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
