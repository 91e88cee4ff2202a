package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDesuffixRoundTrip(t *testing.T) {
	raw := map[string]any{
		"buyerName_1": "Jane",
		"buyerName_2": "Joe",
		"sellerName":  "Sam",
		"lot_size":    "0.25 acres", // lowercase non-numeric suffix keeps underscore
	}

	out := Normalize(raw)

	assert.Equal(t, "Jane", out["buyerName1"])
	assert.Equal(t, "Joe", out["buyerName2"])
	assert.Equal(t, "Sam", out["sellerName"])
	assert.Equal(t, "0.25 acres", out["lot_size"])
	assert.NotContains(t, out, "buyerName_1")
	assert.NotContains(t, out, "buyerName_2")
}

func TestArrayExistenceFlags(t *testing.T) {
	t.Run("present and non-empty", func(t *testing.T) {
		out := Normalize(map[string]any{
			"criticalIssues": []any{map[string]any{"location": "Roof"}},
		})
		assert.Equal(t, true, out["hasCriticalIssues"])
	})

	t.Run("present but empty", func(t *testing.T) {
		out := Normalize(map[string]any{"criticalIssues": []any{}})
		assert.Equal(t, false, out["hasCriticalIssues"])
	})

	t.Run("absent", func(t *testing.T) {
		out := Normalize(map[string]any{})
		assert.Equal(t, false, out["hasCriticalIssues"])
	})

	t.Run("custom rules", func(t *testing.T) {
		out := NormalizeWithOptions(
			map[string]any{"photos": []any{"a.jpg"}},
			Options{FlagRules: []FlagRule{
				{Name: "hasPhotos", Expr: `photos != nil && len(photos) > 0`},
			}},
		)
		assert.Equal(t, true, out["hasPhotos"])
		assert.NotContains(t, out, "hasCriticalIssues")
	})
}

func TestPayerEnumFanOut(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		buyer  bool
		seller bool
		split  bool
	}{
		{"buyer", "buyer", true, false, false},
		{"seller", "Seller", false, true, false},
		{"split", "SPLIT", false, false, true},
		{"both counts as split", "both", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(map[string]any{"titleFeesPaidBy": tt.value})
			assert.Equal(t, tt.buyer, out["titleFeesPaidByBuyer"])
			assert.Equal(t, tt.seller, out["titleFeesPaidBySeller"])
			assert.Equal(t, tt.split, out["titleFeesPaidBySplit"])
			// Original enum field is preserved for display use.
			assert.Equal(t, tt.value, out["titleFeesPaidBy"])
		})
	}

	t.Run("non-enum strings untouched", func(t *testing.T) {
		out := Normalize(map[string]any{"titleFeesPaidBy": "escrow company"})
		assert.NotContains(t, out, "titleFeesPaidByBuyer")
	})
}

func TestIdempotentEnumFanOut(t *testing.T) {
	raw := map[string]any{
		"titleFeesPaidBy":  "split",
		"escrowFeesPaidBy": "buyer",
		"criticalIssues":   []any{"foundation crack"},
	}

	once := Normalize(raw)
	twice := Normalize(once)

	require.Equal(t, once, twice)
	assert.NotContains(t, twice, "titleFeesPaidByBuyerBuyer")
}

func TestExistenceFromSentinels(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		exists bool
	}{
		{"real value", "Maple Grove HOA", true},
		{"numeric value", float64(2500), true},
		{"na sentinel", "na", false},
		{"NA uppercase", "NA", false},
		{"null string", "null", false},
		{"empty string", "", false},
		{"actual null", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(map[string]any{"hoaName": tt.value})
			assert.Equal(t, tt.exists, out["hoaNameExists"])
		})
	}

	t.Run("absent field does not exist", func(t *testing.T) {
		out := Normalize(map[string]any{})
		assert.Equal(t, false, out["hoaNameExists"])
	})
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{
		"buyerName_1":     "Jane",
		"titleFeesPaidBy": "buyer",
	}

	_ = Normalize(raw)

	require.Equal(t, map[string]any{
		"buyerName_1":     "Jane",
		"titleFeesPaidBy": "buyer",
	}, raw)
}
