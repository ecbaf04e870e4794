package scorer

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkScorerScore(t *testing.T) {
	s := NewLinkScorer(Default())

	tests := []struct {
		name   string
		anchor string
		url    string
		want   float64
	}{
		{"medium tier anchor", "Producers", "/producers", 0.2},
		{"low tier anchor", "About", "/about-us", 0.1},
		{"no keywords", "Directions", "/directions", 0},
		{"low tier keyword in url only scores nothing", "Click here ok", "/list", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := s.Score(tt.anchor, tt.url)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestLinkScorerHighTierOutscoresLow(t *testing.T) {
	s := NewLinkScorer(Default())

	high, highReasons := s.Score("Vendor Directory", "/page")
	low, _ := s.Score("Community", "/page")

	assert.Greater(t, high, low)
	assert.NotEmpty(t, highReasons)
}

func TestLinkScorerURLPathKeyword(t *testing.T) {
	s := NewLinkScorer(Default())

	// Keyword only in the URL path scores the lower path weight.
	got, reasons := s.Score("Click here ok", "/our-producers")
	assert.InDelta(t, 0.15, got, 0.0001)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "url contains")
}

func TestLinkScorerClamp(t *testing.T) {
	s := NewLinkScorer(Default())

	got, reasons := s.Score("Meet the Vendors - Vendor List and Vendor Directory", "/market-vendors")
	assert.Equal(t, 1.0, got)
	assert.Greater(t, len(reasons), 3)
}

func TestLinkScorerEligible(t *testing.T) {
	s := NewLinkScorer(Default())
	base, err := url.Parse("https://www.westfieldfarmersmarket.org")
	require.NoError(t, err)

	longAnchor := make([]byte, 101)
	for i := range longAnchor {
		longAnchor[i] = 'a'
	}

	tests := []struct {
		name   string
		target string
		anchor string
		want   bool
	}{
		{"same-origin relative", "/vendors", "Vendors", true},
		{"same-origin absolute", "https://www.westfieldfarmersmarket.org/vendors", "Vendors", true},
		{"off-origin", "https://www.instagram.com/market", "Instagram", false},
		{"pdf", "/vendor-application.pdf", "Apply", false},
		{"image", "/photos/market.jpg", "Photo", false},
		{"empty anchor", "/vendors", "", false},
		{"whitespace anchor", "/vendors", "   ", false},
		{"oversized anchor", "/vendors", string(longAnchor), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Eligible(base, tt.target, tt.anchor))
		})
	}
}
