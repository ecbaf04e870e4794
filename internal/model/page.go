package model

// Link is an outbound anchor found on a fetched page.
type Link struct {
	URL    string `json:"url"`
	Anchor string `json:"anchor"`
}

// Page is the parsed form of a fetched HTML document.
type Page struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Links      []Link `json:"links,omitempty"`
}

// LinkEdge is a scored outbound link considered for crawling. Edges live only
// for the duration of one site crawl and are never persisted.
type LinkEdge struct {
	SourceURL  string
	TargetURL  string
	AnchorText string
	Score      float64
	Reasons    []string
}

// Candidate is a page judged likely to carry a vendor list.
type Candidate struct {
	MarketName    string   `json:"market_name"`
	PageURL       string   `json:"page_url"`
	PageTitle     string   `json:"page_title"`
	ContentSample string   `json:"content_sample,omitempty"`
	Score         float64  `json:"score"`
	Reasons       []string `json:"reasons,omitempty"`
	Depth         int      `json:"depth"`
}

// DiscoveryResult records the best vendor-page candidate for one market.
type DiscoveryResult struct {
	MarketName        string   `json:"market_name"`
	MarketURL         string   `json:"market_url"`
	VendorPageFound   bool     `json:"vendor_page_found"`
	VendorPageURL     string   `json:"vendor_page_url,omitempty"`
	VendorPageTitle   string   `json:"vendor_page_title,omitempty"`
	VendorPageScore   float64  `json:"vendor_page_score"`
	VendorPageReasons []string `json:"vendor_page_reasons,omitempty"`
}
