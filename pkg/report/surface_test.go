package report

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface() *Surface {
	return NewSurface(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			"object wrapped in prose",
			"Here is the extracted data:\n{\"a\": 1}\nLet me know if you need more.",
			`{"a": 1}`,
			true,
		},
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"nested braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`, true},
		{"no object", "no structured data here", "", false},
		{"close before open", "} nope {", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTemplated(t *testing.T) {
	surface := newTestSurface()
	raw := `Extraction complete. {
		"propertyAddress": {"streetAddress": "1 Main St", "city": "Springfield", "state": "IL", "zip": "62704"},
		"inspectorName": "Pat Lee",
		"criticalIssues": [
			{"location": "Roof", "description": "Missing shingles"}
		],
		"safetyHazards": []
	}`

	result := surface.Render("Inspection-Reports", raw)

	require.True(t, result.Templated)
	assert.NotEmpty(t, result.RenderID)
	assert.Contains(t, result.HTML, "1 Main St, Springfield, IL, 62704")
	assert.Contains(t, result.HTML, "Pat Lee")
	assert.Contains(t, result.HTML, "<h3>Roof</h3>")
	assert.Contains(t, result.HTML, "Missing shingles")
	assert.NotContains(t, result.HTML, "No critical issues")
	assert.NotContains(t, result.HTML, "Safety Hazards")
	assert.NotContains(t, result.HTML, "{{")
}

func TestRenderTemplatedEscapesValues(t *testing.T) {
	surface := newTestSurface()
	raw := `{"propertyAddress": "1 Main St", "inspectorName": "<script>alert(1)</script>"}`

	result := surface.Render("Inspection-Reports", raw)

	require.True(t, result.Templated)
	assert.NotContains(t, result.HTML, "<script>")
	assert.Contains(t, result.HTML, "&lt;script&gt;")
}

func TestRenderFallsBackWithoutTemplate(t *testing.T) {
	surface := newTestSurface()
	raw := `{"purchasePrice": 450000, "buyerName": "Jane Doe"}`

	result := surface.Render("Unmapped-Type", raw)

	assert.False(t, result.Templated)
	assert.Contains(t, result.HTML, "report-generic")
	assert.Contains(t, result.HTML, "<dt>Buyer Name</dt>")
	assert.Contains(t, result.HTML, "Jane Doe")
	assert.Contains(t, result.HTML, "450000")
}

func TestRenderFallsBackOnMismatchedContent(t *testing.T) {
	surface := newTestSurface()

	t.Run("no JSON at all", func(t *testing.T) {
		result := surface.Render("Disclosures", "scanned image, nothing extracted")
		assert.False(t, result.Templated)
		assert.Contains(t, result.HTML, "<pre>")
		assert.Contains(t, result.HTML, "scanned image, nothing extracted")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		result := surface.Render("Disclosures", `{"unterminated": `)
		assert.False(t, result.Templated)
		assert.Contains(t, result.HTML, "report-generic")
	})

	t.Run("markup stripped from raw fallback", func(t *testing.T) {
		result := surface.Render("Disclosures", `<img src=x onerror=alert(1)> not json`)
		assert.NotContains(t, result.HTML, "<img")
	})
}

func TestRenderIDsAreUnique(t *testing.T) {
	surface := newTestSurface()
	a := surface.Render("Disclosures", `{"sellerName": "Sam"}`)
	b := surface.Render("Disclosures", `{"sellerName": "Sam"}`)
	assert.NotEqual(t, a.RenderID, b.RenderID)
}

func TestFieldLabel(t *testing.T) {
	tests := map[string]string{
		"purchasePrice": "Purchase Price",
		"buyerName1":    "Buyer Name1",
		"hoa":           "Hoa",
	}
	for key, want := range tests {
		if got := fieldLabel(key); got != want {
			t.Errorf("fieldLabel(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestRenderDisclosuresEndToEnd(t *testing.T) {
	surface := newTestSurface()
	raw := `{
		"documentTitle": "Seller's Property Disclosure",
		"propertyAddress": "9 Oak Ave, Dayton, OH",
		"sellerName": {"first": "Sam", "last": "Seller"},
		"hoaName": "na",
		"disclosures": [
			{"category": "Roof", "statement": "Replaced in 2019"},
			{"category": "Plumbing", "statement": "No known issues"}
		]
	}`

	result := surface.Render("Disclosures", raw)

	require.True(t, result.Templated)
	assert.Contains(t, result.HTML, "Seller&#39;s Property Disclosure")
	assert.Contains(t, result.HTML, "Sam Seller")
	assert.Contains(t, result.HTML, "<h3>Roof</h3>")
	assert.Contains(t, result.HTML, "Replaced in 2019")
	// hoaName is the "na" sentinel, so the HOA section must be gated off.
	assert.NotContains(t, result.HTML, "Homeowners Association")
	assert.True(t, strings.HasPrefix(result.HTML, "<article"))
}
