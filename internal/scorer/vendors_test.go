package scorer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/vendor-scout/internal/model"
)

func TestExtractVendors(t *testing.T) {
	text := `This week we welcome Green Acres Farm and Sunrise Bakery back to the market.
New this season: Hidden Brook Creamery and Acme Foods LLC.`

	vendors := ExtractVendors(text, "https://example.org/vendors")
	require.Len(t, vendors, 4)

	byName := make(map[string]model.Vendor)
	for _, v := range vendors {
		byName[v.Name] = v
	}

	assert.Equal(t, "farm", byName["Green Acres Farm"].BusinessType)
	assert.Equal(t, "bakery", byName["Sunrise Bakery"].BusinessType)
	assert.Equal(t, "dairy", byName["Hidden Brook Creamery"].BusinessType)
	assert.Equal(t, "unknown", byName["Acme Foods LLC"].BusinessType)

	for _, v := range vendors {
		assert.Equal(t, model.SourcePattern, v.Source)
		assert.Equal(t, "https://example.org/vendors", v.SourceURL)
		assert.Equal(t, model.DefaultConfidence, v.Confidence)
	}
}

func TestExtractVendorsDedupes(t *testing.T) {
	text := "Green Acres Farm sells produce. Visit Green Acres Farm on Saturdays."

	vendors := ExtractVendors(text, "https://example.org")
	assert.Len(t, vendors, 1)
}

func TestExtractVendorsNoMatches(t *testing.T) {
	vendors := ExtractVendors("The market runs every Saturday from 9am to 1pm.", "https://example.org")
	assert.Empty(t, vendors)
}

func TestExtractVendorsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 26; i++ {
		c := rune('A' + i)
		fmt.Fprintf(&sb, "%c%c Hollow Farm sells produce. ", c, c+32)
	}

	vendors := ExtractVendors(sb.String(), "https://example.org")
	assert.Len(t, vendors, maxPatternVendors)
}

func TestPageConfidence(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name        string
		text        string
		vendorCount int
		want        float64
	}{
		{"empty page no vendors", "", 0, 0},
		{"two vendors no keywords", "xxxx", 2, 0.2},
		{"five vendors bonus", "xxxx", 5, 0.7},
		{"vendor count capped", "xxxx", 20, 0.7},
		{"keyword component capped", strings.Repeat("farm ", 40), 0, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PageConfidence(cfg, tt.text, tt.vendorCount), 0.0001)
		})
	}
}
