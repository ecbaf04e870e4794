package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/sells-group/vendor-scout/internal/config"
	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/scorer"
	"github.com/sells-group/vendor-scout/pkg/anthropic"
)

// mockAI returns scripted responses in order, repeating the last one.
type mockAI struct {
	responses []string
	errs      []error
	calls     atomic.Int64
	lastReq   anthropic.MessageRequest
}

func (m *mockAI) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.lastReq = req
	i := int(m.calls.Add(1)) - 1

	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}

	text := ""
	if len(m.responses) > 0 {
		if i >= len(m.responses) {
			i = len(m.responses) - 1
		}
		text = m.responses[i]
	}

	return &anthropic.MessageResponse{
		ID:         "msg_test",
		Content:    []anthropic.ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
		Usage:      anthropic.TokenUsage{InputTokens: 500, OutputTokens: 100},
	}, nil
}

const vendorPageHTML = `<html><head><title>Our Vendors</title></head><body>
<h1>2024 Market Vendors</h1>
<p>Green Acres Farm - certified organic vegetables and seasonal produce, phone (609) 555-1234</p>
<p>Sunrise Bakery - fresh baked bread and handmade pastries, email sunrise@example.com</p>
<p>Hidden Brook Dairy - artisan cheese and fresh eggs, call (908) 555-9876</p>
<p>Maple Hill Orchard - apples, honey and homemade jam, phone (732) 555-4567</p>
<p>Old Mill Creamery - local butter and cheese, email oldmill@example.com</p>
</body></html>`

const homeHTML = `<html><head><title>Westfield Farmers Market</title></head><body>
<h1>Welcome</h1>
<p>Open Saturdays 9am to 1pm in the municipal lot.</p>
<a href="/vendors">Our Vendors</a>
<a href="/about">About</a>
<a href="/directions">Directions</a>
<a href="/flyer.pdf">Season Flyer</a>
</body></html>`

const aboutHTML = `<html><head><title>About</title></head><body>
<p>The market has served the town since 1998 and is run by friendly volunteers.</p>
</body></html>`

// newTestSite serves a minimal market website and counts requests per path.
func newTestSite() (*httptest.Server, *atomic.Int64) {
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(homeHTML))
		case "/vendors":
			_, _ = w.Write([]byte(vendorPageHTML))
		case "/about":
			_, _ = w.Write([]byte(aboutHTML))
		default:
			http.NotFound(w, r)
		}
	})
	return httptest.NewServer(mux), &hits
}

func testCrawlConfig() config.CrawlConfig {
	return config.CrawlConfig{
		MaxDepth:        2,
		MaxCandidates:   5,
		TopLinks:        3,
		FetchDelayMS:    0,
		TimeoutSecs:     5,
		MinContentScore: 0.3,
		MinLinkScore:    0.2,
		UserAgent:       "vendor-scout-test",
	}
}

func testExtractConfig() config.ExtractConfig {
	return config.ExtractConfig{
		Model:           "claude-haiku-4-5-20251001",
		MaxTokens:       4000,
		CallDelayMS:     0,
		MaxContentChars: 8000,
		MaxRetries:      3,
		PagesPerMarket:  1,
	}
}

func newTestDiscoverer() *Discoverer {
	f := fetcher.NewClient(5*time.Second, "vendor-scout-test")
	return NewDiscoverer(f, scorer.Default(), testCrawlConfig())
}

func newTestExtractor(ai anthropic.Client) *Extractor {
	f := fetcher.NewClient(5*time.Second, "vendor-scout-test")
	e := NewExtractor(ai, f, testExtractConfig())
	e.retry.InitialBackoff = time.Millisecond
	return e
}
