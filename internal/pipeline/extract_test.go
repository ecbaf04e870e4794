package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/resilience"
)

func TestExtractPage(t *testing.T) {
	srv, _ := newTestSite()
	defer srv.Close()

	ai := &mockAI{responses: []string{
		"Here are the vendors:\n```json\n" +
			`[{"name": "Green Acres Farm", "business_type": "farm", "confidence": 0.9},
			  {"name": "Sunrise Bakery", "business_type": "bakery", "confidence": 0.85}]` +
			"\n```",
	}}
	e := newTestExtractor(ai)

	result := e.ExtractPage(t.Context(), "Westfield Farmers Market", srv.URL+"/vendors")

	assert.True(t, result.ExtractionSuccess)
	assert.Empty(t, result.ErrorMessage)
	require.Len(t, result.Vendors, 2)
	assert.Equal(t, "Green Acres Farm", result.Vendors[0].Name)
	assert.Equal(t, model.SourceLLM, result.Vendors[0].Source)
	assert.Equal(t, srv.URL+"/vendors", result.Vendors[0].SourceURL)
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)

	// The request carries the market context and the page content.
	require.Len(t, ai.lastReq.Messages, 1)
	assert.Contains(t, ai.lastReq.Messages[0].Content, "Westfield Farmers Market")
	assert.Contains(t, ai.lastReq.Messages[0].Content, "Green Acres Farm")
	require.Len(t, ai.lastReq.System, 1)
	assert.NotNil(t, ai.lastReq.System[0].CacheControl)
}

func TestExtractPageFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	ai := &mockAI{}
	e := newTestExtractor(ai)

	result := e.ExtractPage(t.Context(), "Gone Market", srv.URL)

	assert.False(t, result.ExtractionSuccess)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.Empty(t, result.Vendors)
	assert.Equal(t, int64(0), ai.calls.Load())
}

func TestExtractPageRetriesTransient(t *testing.T) {
	srv, _ := newTestSite()
	defer srv.Close()

	ai := &mockAI{
		errs:      []error{resilience.NewTransientError(eris.New("overloaded"), 529)},
		responses: []string{"", `[{"name": "Green Acres Farm"}]`},
	}
	e := newTestExtractor(ai)

	result := e.ExtractPage(t.Context(), "Westfield Farmers Market", srv.URL+"/vendors")

	assert.True(t, result.ExtractionSuccess)
	require.Len(t, result.Vendors, 1)
	assert.Equal(t, int64(2), ai.calls.Load())
}

func TestExtractPagePermanentAPIError(t *testing.T) {
	srv, _ := newTestSite()
	defer srv.Close()

	ai := &mockAI{errs: []error{eris.New("invalid_request"), eris.New("invalid_request"), eris.New("invalid_request")}}
	e := newTestExtractor(ai)

	result := e.ExtractPage(t.Context(), "Westfield Farmers Market", srv.URL+"/vendors")

	assert.False(t, result.ExtractionSuccess)
	assert.Contains(t, result.ErrorMessage, "invalid_request")
	// Permanent errors are not retried.
	assert.Equal(t, int64(1), ai.calls.Load())
}

func TestExtractPageUnparseableOutputIsStillSuccess(t *testing.T) {
	srv, _ := newTestSite()
	defer srv.Close()

	ai := &mockAI{responses: []string{"I could not find any vendor information on this page."}}
	e := newTestExtractor(ai)

	result := e.ExtractPage(t.Context(), "Westfield Farmers Market", srv.URL+"/vendors")

	// The call succeeded; the parser simply recovered nothing.
	assert.True(t, result.ExtractionSuccess)
	assert.Empty(t, result.Vendors)
}

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "abc", truncateContent("abc", 10))
	assert.Equal(t, "abcde...", truncateContent("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", truncateContent("abcdefgh", 0))
}
