package scorer

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkScorer rates outbound links by how likely they lead to a vendor list.
type LinkScorer struct {
	cfg Config
}

// NewLinkScorer returns a LinkScorer using the given tables.
func NewLinkScorer(cfg Config) *LinkScorer {
	return &LinkScorer{cfg: cfg}
}

// Eligible reports whether a link is worth scoring at all. Links off the
// market's origin, links to binary files, and links with empty or oversized
// anchors are dropped before scoring.
func (s *LinkScorer) Eligible(base *url.URL, target, anchor string) bool {
	anchor = strings.TrimSpace(anchor)
	if anchor == "" || len(anchor) > s.cfg.MaxAnchorLen {
		return false
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, base.Host) {
		return false
	}

	lower := strings.ToLower(u.Path)
	for _, ext := range s.cfg.SkipExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}

	return true
}

// Score rates one link from its anchor text and URL. Each keyword counts at
// most once; the total is clamped to 1.0. Reasons name every keyword that
// contributed, for auditability of why a page was crawled.
func (s *LinkScorer) Score(anchor, linkURL string) (float64, []string) {
	anchorLower := strings.ToLower(anchor)
	pathLower := strings.ToLower(linkURL)

	var score float64
	var reasons []string

	for _, tier := range []Tier{s.cfg.HighTier, s.cfg.MediumTier, s.cfg.LowTier} {
		for _, kw := range tier.Keywords {
			switch {
			case strings.Contains(anchorLower, kw):
				score += tier.AnchorWeight
				reasons = append(reasons, fmt.Sprintf("anchor contains %q", kw))
			case tier.PathWeight > 0 && strings.Contains(pathLower, kw):
				score += tier.PathWeight
				reasons = append(reasons, fmt.Sprintf("url contains %q", kw))
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}
