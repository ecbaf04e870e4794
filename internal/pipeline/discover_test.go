package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/vendor-scout/internal/model"
)

func TestDiscoverFindsVendorPage(t *testing.T) {
	srv, _ := newTestSite()
	defer srv.Close()

	d := newTestDiscoverer()
	market := model.Market{ID: 1, Name: "Westfield Farmers Market", URL: srv.URL}

	disc, candidates, err := d.Discover(t.Context(), market)
	require.NoError(t, err)

	assert.True(t, disc.VendorPageFound)
	assert.Equal(t, srv.URL+"/vendors", disc.VendorPageURL)
	assert.Equal(t, "Our Vendors", disc.VendorPageTitle)
	assert.GreaterOrEqual(t, disc.VendorPageScore, 0.3)
	assert.NotEmpty(t, disc.VendorPageReasons)

	// Ranked best-first, with the root page kept as a floor candidate.
	require.Len(t, candidates, 2)
	assert.Equal(t, srv.URL+"/vendors", candidates[0].PageURL)
	assert.Equal(t, 1, candidates[0].Depth)
	assert.Equal(t, srv.URL, candidates[1].PageURL)
	assert.Equal(t, rootScoreFloor, candidates[1].Score)
	assert.Contains(t, candidates[1].Reasons, "root page fallback")
}

func TestDiscoverRootOnlySite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Tiny Market</title></head><body><p>See you in spring.</p></body></html>`))
	}))
	defer srv.Close()

	d := newTestDiscoverer()
	disc, candidates, err := d.Discover(t.Context(), model.Market{Name: "Tiny Market", URL: srv.URL})
	require.NoError(t, err)

	assert.False(t, disc.VendorPageFound)
	require.Len(t, candidates, 1)
	assert.Equal(t, rootScoreFloor, candidates[0].Score)
	// The best page is still reported even below the threshold.
	assert.Equal(t, srv.URL, disc.VendorPageURL)
}

func TestDiscoverRootUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	d := newTestDiscoverer()
	_, _, err := d.Discover(t.Context(), model.Market{Name: "Gone Market", URL: srv.URL})
	assert.Error(t, err)
}

func TestDiscoverUnusableURL(t *testing.T) {
	d := newTestDiscoverer()
	_, _, err := d.Discover(t.Context(), model.Market{Name: "Facebook Only", URL: "facebook.com"})
	assert.Error(t, err)
}

func TestDiscoverDeadLinkPruned(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(`<html><body><a href="/vendors">Our Vendors</a></body></html>`))
			return
		}
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d := newTestDiscoverer()
	disc, candidates, err := d.Discover(t.Context(), model.Market{Name: "Broken Market", URL: srv.URL})
	require.NoError(t, err)

	// The 404 vendor link is dropped; the crawl still completes with root.
	assert.False(t, disc.VendorPageFound)
	require.Len(t, candidates, 1)
	assert.Equal(t, 0, candidates[0].Depth)
}

func TestDiscoverVisitsEachPageOnce(t *testing.T) {
	srv, hits := newTestSite()
	defer srv.Close()

	d := newTestDiscoverer()
	_, _, err := d.Discover(t.Context(), model.Market{Name: "Westfield Farmers Market", URL: srv.URL})
	require.NoError(t, err)

	// Root, /vendors. The duplicate /vendors link targets are deduplicated
	// by the visited set.
	assert.Equal(t, int64(2), hits.Load())
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://a.org/x", normalizeURL("https://a.org/x/"))
	assert.Equal(t, "https://a.org/x", normalizeURL("https://a.org/x#section"))
	assert.Equal(t, "https://a.org", normalizeURL("https://a.org/"))
}
