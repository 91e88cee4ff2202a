// Package normalize prepares raw extracted document data for the report
// template engine. It aligns extraction-tool key names with template
// variable names and synthesizes the boolean flags templates use to gate
// optional sections, so the templates themselves stay free of emptiness
// logic. All transforms operate on a shallow copy; the caller's map is
// never mutated.
package normalize

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/getreportd/reportd/pkg/logging"
)

// FlagRule declares a derived boolean flag computed from the payload with
// an expr-lang expression. Missing fields evaluate as nil, so rules should
// guard with a nil check before calling len().
type FlagRule struct {
	Name string
	Expr string
}

// Options configures normalization. Zero value means built-in defaults.
type Options struct {
	// FlagRules replaces the built-in derived-flag rule set when non-nil.
	FlagRules []FlagRule

	// ExistenceFields replaces the built-in sentinel-checked field list
	// when non-nil.
	ExistenceFields []string

	// Logger receives diagnostics for rules that fail to evaluate.
	// Nil means no logging.
	Logger *slog.Logger
}

// DefaultFlagRules gate the optional sections of the built-in templates on
// the arrays the extraction pipeline emits.
var DefaultFlagRules = []FlagRule{
	{Name: "hasCriticalIssues", Expr: `criticalIssues != nil && len(criticalIssues) > 0`},
	{Name: "hasMajorDefects", Expr: `majorDefects != nil && len(majorDefects) > 0`},
	{Name: "hasSafetyHazards", Expr: `safetyHazards != nil && len(safetyHazards) > 0`},
	{Name: "hasRepairRequests", Expr: `repairRequests != nil && len(repairRequests) > 0`},
}

// DefaultExistenceFields are checked against the sentinel set; each yields
// a <field>Exists boolean for conditional section gating.
var DefaultExistenceFields = []string{
	"hoaName",
	"sellerConcessions",
	"earnestMoneyAmount",
	"closingDate",
}

// payerValues is the closed vocabulary of "paid by" enum fields.
var payerValues = map[string]struct{}{
	"buyer":  {},
	"seller": {},
	"split":  {},
	"both":   {},
}

// suffixedKeyPattern matches extraction-tool keys like "buyerName_1".
var suffixedKeyPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)_([0-9]+)$`)

// Normalize applies the default normalization pipeline.
func Normalize(raw map[string]any) map[string]any {
	return NormalizeWithOptions(raw, Options{})
}

// NormalizeWithOptions runs the four normalization steps in order: key
// de-suffixing, derived existence flags, payer enum fan-out, and sentinel
// existence flags. It always succeeds; rules that cannot evaluate simply
// leave their flag unset.
func NormalizeWithOptions(raw map[string]any, opts Options) map[string]any {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	rules := opts.FlagRules
	if rules == nil {
		rules = DefaultFlagRules
	}
	existenceFields := opts.ExistenceFields
	if existenceFields == nil {
		existenceFields = DefaultExistenceFields
	}

	out := desuffixKeys(raw)
	applyFlagRules(out, rules, log)
	fanOutPayerEnums(out)
	applyExistenceFields(out, existenceFields)
	return out
}

// desuffixKeys shallow-copies the payload, rewriting "name_1" style keys to
// "name1" so extraction output lines up with template variable names.
func desuffixKeys(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if m := suffixedKeyPattern.FindStringSubmatch(key); m != nil {
			out[m[1]+m[2]] = value
			continue
		}
		out[key] = value
	}
	return out
}

// applyFlagRules evaluates each derived-flag rule against the payload.
// Flags already present in the data are respected, which also makes the
// step idempotent.
func applyFlagRules(data map[string]any, rules []FlagRule, log *slog.Logger) {
	for _, rule := range rules {
		if _, exists := data[rule.Name]; exists {
			continue
		}
		result, err := expr.Eval(rule.Expr, data)
		if err != nil {
			log.Debug("derived flag rule failed to evaluate",
				"flag", rule.Name, "error", err)
			continue
		}
		b, ok := result.(bool)
		if !ok {
			b = result != nil
		}
		data[rule.Name] = b
	}
}

// fanOutPayerEnums expands fields whose value is a payer enum into three
// sibling booleans: <field>Buyer, <field>Seller, <field>Split ("both"
// counts as split). Skipped per field when the siblings already exist, so
// running normalization twice never double-suffixes.
func fanOutPayerEnums(data map[string]any) {
	additions := make(map[string]any)
	for key, value := range data {
		s, ok := value.(string)
		if !ok {
			continue
		}
		payer := strings.ToLower(strings.TrimSpace(s))
		if _, ok := payerValues[payer]; !ok {
			continue
		}
		if _, exists := data[key+"Buyer"]; exists {
			continue
		}
		additions[key+"Buyer"] = payer == "buyer"
		additions[key+"Seller"] = payer == "seller"
		additions[key+"Split"] = payer == "split" || payer == "both"
	}
	for key, value := range additions {
		data[key] = value
	}
}

// existenceSentinels are the raw values that mean "no value extracted".
var existenceSentinels = map[string]struct{}{
	"":     {},
	"na":   {},
	"null": {},
}

// applyExistenceFields marks each listed field with a <field>Exists
// boolean: true unless the raw value is null or a sentinel string.
func applyExistenceFields(data map[string]any, fields []string) {
	for _, field := range fields {
		flag := field + "Exists"
		if _, exists := data[flag]; exists {
			continue
		}
		data[flag] = fieldExists(data[field])
	}
}

func fieldExists(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		_, sentinel := existenceSentinels[strings.ToLower(strings.TrimSpace(s))]
		return !sentinel
	}
	return true
}
