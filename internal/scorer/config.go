package scorer

// Tier holds one keyword tier and its weights. AnchorWeight applies when a
// keyword appears in the link's anchor text, PathWeight when it appears in
// the URL path. A PathWeight of 0 means the tier only scores anchor text.
type Tier struct {
	Keywords     []string
	AnchorWeight float64
	PathWeight   float64
}

// Config parameterizes both scorers. All knobs have working defaults; tests
// and callers with unusual sites can swap keyword tables without touching
// scorer code.
type Config struct {
	// Link tiers, strongest first.
	HighTier   Tier
	MediumTier Tier
	LowTier    Tier

	// Anchors longer than this are navigation junk, not labels.
	MaxAnchorLen int

	// URL extensions that never lead to a vendor page.
	SkipExtensions []string

	// Content signal keyword groups.
	BusinessTypeWords  []string
	BusinessIndicators []string
	ProductIndicators  []string
	ContactIndicators  []string

	// Texts shorter than this get their content score halved.
	MinContentLen int
}

// Default returns the scoring tables tuned on New Jersey farmers-market
// sites.
func Default() Config {
	return Config{
		HighTier: Tier{
			Keywords: []string{
				"vendor", "vendors", "our vendors", "vendor list",
				"meet the vendors", "vendor directory", "market vendors",
			},
			AnchorWeight: 0.4,
			PathWeight:   0.3,
		},
		MediumTier: Tier{
			Keywords: []string{
				"farmers", "producers", "sellers", "merchants",
				"participants", "members", "businesses",
			},
			AnchorWeight: 0.2,
			PathWeight:   0.15,
		},
		LowTier: Tier{
			Keywords:     []string{"about", "meet", "directory", "list", "who", "community"},
			AnchorWeight: 0.1,
		},
		MaxAnchorLen:   100,
		SkipExtensions: []string{".pdf", ".jpg", ".jpeg", ".png", ".gif"},
		BusinessTypeWords: []string{
			"farm", "farms", "bakery", "orchard", "orchards", "dairy",
			"creamery", "ranch", "apiary", "winery", "brewery", "kitchen",
			"gardens", "greenhouse", "homestead",
		},
		BusinessIndicators: []string{
			"llc", "inc.", "co.", "company", "family owned", "family-owned",
			"established", "est.", "since",
		},
		ProductIndicators: []string{
			"organic", "fresh", "homemade", "handmade", "local", "seasonal",
			"artisan", "baked", "produce", "honey", "jam", "bread", "cheese",
			"eggs", "flowers", "meat", "pickles",
		},
		ContactIndicators: []string{
			"phone", "email", "website", "contact", "call", "visit", "@", "www.",
		},
		MinContentLen: 300,
	}
}
