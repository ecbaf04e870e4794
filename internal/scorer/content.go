package scorer

import (
	"fmt"
	"strings"
)

// ContentScorer rates fetched page text by how strongly it resembles a
// vendor directory.
type ContentScorer struct {
	cfg Config
}

// NewContentScorer returns a ContentScorer using the given tables.
func NewContentScorer(cfg Config) *ContentScorer {
	return &ContentScorer{cfg: cfg}
}

// Score rates page text in [0, 1]. Signals are additive and banded: a group
// of keyword hits contributes a fixed bump once its count clears a threshold,
// so one over-represented word cannot dominate the score.
func (s *ContentScorer) Score(text string) (float64, []string) {
	lower := strings.ToLower(text)

	var score float64
	var reasons []string

	add := func(delta float64, reason string) {
		score += delta
		reasons = append(reasons, reason)
	}

	typeHits := countAny(lower, s.cfg.BusinessTypeWords)
	switch {
	case typeHits >= 5:
		add(0.3, fmt.Sprintf("%d business-type words", typeHits))
	case typeHits >= 2:
		add(0.15, fmt.Sprintf("%d business-type words", typeHits))
	}

	if n := countAny(lower, s.cfg.BusinessIndicators); n >= 3 {
		add(0.2, fmt.Sprintf("%d business indicators", n))
	}

	if n := countAny(lower, s.cfg.ProductIndicators); n >= 3 {
		add(0.2, fmt.Sprintf("%d product indicators", n))
	}

	contactHits := countAny(lower, s.cfg.ContactIndicators)
	switch {
	case contactHits >= 5:
		add(0.25, fmt.Sprintf("%d contact indicators", contactHits))
	case contactHits >= 2:
		add(0.1, fmt.Sprintf("%d contact indicators", contactHits))
	}

	if n := len(listEntryRe.FindAllString(text, -1)); n >= 3 {
		add(0.3, fmt.Sprintf("%d name-description list entries", n))
	}

	if n := CountPhones(text); n >= 3 {
		add(0.2, fmt.Sprintf("%d phone numbers", n))
	}

	if n := CountEmails(text); n >= 2 {
		add(0.15, fmt.Sprintf("%d email addresses", n))
	}

	// Thin pages can rack up keyword hits from nav chrome alone.
	if len(text) < s.cfg.MinContentLen && score > 0 {
		score *= 0.5
		reasons = append(reasons, "short content penalty")
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score, reasons
}

// countAny counts occurrences of every keyword in text. Repeats of the same
// keyword all count; bands absorb the noise.
func countAny(text string, keywords []string) int {
	var n int
	for _, kw := range keywords {
		n += strings.Count(text, kw)
	}
	return n
}
