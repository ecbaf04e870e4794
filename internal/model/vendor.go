package model

import "time"

// Vendor provenance values. Pattern-matched vendors come from regex scans of
// page text; llm vendors from parsed Claude output; llm_fallback vendors from
// the last-resort name scrape when the model's JSON cannot be recovered.
const (
	SourcePattern     = "pattern_match"
	SourceLLM         = "llm"
	SourceLLMFallback = "llm_fallback"
)

// DefaultConfidence is assigned when a vendor record arrives without one.
const DefaultConfidence = 0.8

// Vendor is one extracted vendor record. Name is the only required field.
type Vendor struct {
	Name         string            `json:"name"`
	BusinessType string            `json:"business_type,omitempty"`
	Products     []string          `json:"products,omitempty"`
	Location     string            `json:"location,omitempty"`
	ContactInfo  map[string]string `json:"contact_info,omitempty"`
	Description  string            `json:"description,omitempty"`
	Confidence   float64           `json:"confidence"`
	SourceURL    string            `json:"source_url,omitempty"`
	Source       string            `json:"source,omitempty"`
}

// ClampConfidence forces Confidence into [0, 1].
func (v *Vendor) ClampConfidence() {
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
}

// ExtractionResult is the outcome of extracting vendors from one page.
// Per-page failures are recorded here rather than propagated: a dead page in
// a 200-market batch should cost one flagged result, not the batch.
type ExtractionResult struct {
	MarketName        string   `json:"market_name"`
	PageURL           string   `json:"page_url"`
	Vendors           []Vendor `json:"vendors"`
	ExtractionSuccess bool     `json:"extraction_success"`
	ErrorMessage      string   `json:"error_message,omitempty"`
	ProcessingTime    float64  `json:"processing_time"`
}

// MarketResult is the full per-market rollup: discovery, per-page
// extractions, and the deduplicated site-level vendor list.
type MarketResult struct {
	Market         Market             `json:"market"`
	SiteType       SiteType           `json:"site_type"`
	Discovery      DiscoveryResult    `json:"discovery"`
	Candidates     []Candidate        `json:"candidates,omitempty"`
	Extractions    []ExtractionResult `json:"extractions,omitempty"`
	Vendors        []Vendor           `json:"vendors"`
	Error          string             `json:"error,omitempty"`
	ProcessingTime float64            `json:"processing_time"`
}

// RunStatus tracks a batch run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one batch invocation over a market list.
type Run struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	MarketCount int        `json:"market_count"`
	Status      RunStatus  `json:"status"`
	Summary     *RunSummary `json:"summary,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RunSummary aggregates a completed run.
type RunSummary struct {
	TotalMarkets     int     `json:"total_markets"`
	VendorPagesFound int     `json:"vendor_pages_found"`
	TotalVendors     int     `json:"total_vendors"`
	FailedMarkets    int     `json:"failed_markets"`
	ProcessingTime   float64 `json:"processing_time"`
}
