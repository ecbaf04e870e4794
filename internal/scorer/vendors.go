package scorer

import (
	"strings"

	"github.com/sells-group/vendor-scout/internal/model"
)

// maxPatternVendors caps pattern extraction per page. Directories longer
// than this are handled better by the LLM pass anyway.
const maxPatternVendors = 20

// ExtractVendors scans page text for capitalized business-name patterns and
// returns them as pattern-provenance vendor records. This is the cheap
// deterministic pass that runs before any LLM call.
func ExtractVendors(text, pageURL string) []model.Vendor {
	seen := make(map[string]bool)
	var vendors []model.Vendor

	for _, re := range businessNameRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[0])
			if len(name) < 5 || len(name) > 60 || seen[name] {
				continue
			}
			seen[name] = true

			vendors = append(vendors, model.Vendor{
				Name:         name,
				BusinessType: typeFromSuffix(m[2]),
				Confidence:   model.DefaultConfidence,
				SourceURL:    pageURL,
				Source:       model.SourcePattern,
			})
			if len(vendors) >= maxPatternVendors {
				return vendors
			}
		}
	}

	return vendors
}

// PageConfidence estimates how likely a page is a real vendor directory,
// from the count of extracted vendors and vendor-keyword density. The
// pipeline drops pattern hits from pages that score too low here.
func PageConfidence(cfg Config, text string, vendorCount int) float64 {
	lower := strings.ToLower(text)

	conf := float64(vendorCount) * 0.1
	if conf > 0.5 {
		conf = 0.5
	}

	kw := float64(countAny(lower, cfg.BusinessTypeWords)) * 0.02
	if kw > 0.3 {
		kw = 0.3
	}
	conf += kw

	if vendorCount >= 5 {
		conf += 0.2
	}

	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func typeFromSuffix(suffix string) string {
	switch strings.ToLower(strings.TrimSuffix(suffix, ".")) {
	case "farm", "farms", "homestead", "ranch":
		return "farm"
	case "bakery":
		return "bakery"
	case "dairy", "creamery":
		return "dairy"
	case "orchard", "orchards":
		return "orchard"
	case "garden", "gardens", "greenhouse":
		return "garden"
	case "kitchen":
		return "prepared foods"
	case "apiary":
		return "apiary"
	case "winery", "brewery":
		return "beverages"
	default:
		return "unknown"
	}
}
