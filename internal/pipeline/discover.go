package pipeline

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/vendor-scout/internal/config"
	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/scorer"
)

// rootScoreFloor keeps the market's root page alive as a candidate even when
// its content scores zero. Many small markets list vendors right on the
// homepage in a layout the scorer can't see.
const rootScoreFloor = 0.05

// contentSampleLen caps the text stored per candidate.
const contentSampleLen = 1000

// Discoverer crawls one market site looking for vendor-list pages. Each
// Discover call owns its frontier and visited set; nothing is shared across
// sites.
type Discoverer struct {
	fetcher *fetcher.Client
	links   *scorer.LinkScorer
	content *scorer.ContentScorer
	cfg     config.CrawlConfig
	limiter *rate.Limiter
}

// NewDiscoverer builds a Discoverer. The fetch-delay limiter is deliberate
// politeness toward small market sites, not an optimization target.
func NewDiscoverer(f *fetcher.Client, scoring scorer.Config, cfg config.CrawlConfig) *Discoverer {
	delay := time.Duration(cfg.FetchDelayMS) * time.Millisecond
	if delay <= 0 {
		delay = time.Nanosecond
	}
	return &Discoverer{
		fetcher: f,
		links:   scorer.NewLinkScorer(scoring),
		content: scorer.NewContentScorer(scoring),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

type frontierItem struct {
	url   string
	depth int
}

// Discover crawls a market site breadth-first from its root and returns the
// best-page result plus all candidates ranked by score. The root page fetch
// failing is an error; deeper pages failing just prune the frontier.
func (d *Discoverer) Discover(ctx context.Context, market model.Market) (*model.DiscoveryResult, []model.Candidate, error) {
	rootURL, err := fetcher.CleanURL(market.URL)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pipeline: market %q has no usable url", market.Name)
	}

	base, err := url.Parse(rootURL)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pipeline: parse market url %q", rootURL)
	}

	visited := make(map[string]bool)
	queue := []frontierItem{{url: rootURL, depth: 0}}
	var candidates []model.Candidate

	for len(queue) > 0 && len(candidates) < d.cfg.MaxCandidates {
		item := queue[0]
		queue = queue[1:]

		key := normalizeURL(item.url)
		if visited[key] {
			continue
		}
		visited[key] = true

		if err := d.limiter.Wait(ctx); err != nil {
			return nil, nil, eris.Wrap(err, "pipeline: crawl cancelled")
		}

		page, err := d.fetcher.Fetch(ctx, item.url)
		if err != nil {
			if item.depth == 0 {
				return nil, nil, eris.Wrapf(err, "pipeline: fetch root page for %q", market.Name)
			}
			zap.L().Debug("discover: page fetch failed",
				zap.String("market", market.Name),
				zap.String("url", item.url),
				zap.Error(err),
			)
			continue
		}

		score, reasons := d.content.Score(page.Text)
		if item.depth == 0 && score < rootScoreFloor {
			score = rootScoreFloor
			reasons = append(reasons, "root page fallback")
		}

		if score >= d.cfg.MinContentScore || item.depth == 0 {
			candidates = append(candidates, model.Candidate{
				MarketName:    market.Name,
				PageURL:       page.URL,
				PageTitle:     page.Title,
				ContentSample: sample(page.Text, contentSampleLen),
				Score:         score,
				Reasons:       reasons,
				Depth:         item.depth,
			})
		}

		// Links are only followed off the root page. One hop finds the
		// vendor page on nearly every site that has one; deeper crawls
		// mostly collect event archives.
		if item.depth == 0 && d.cfg.MaxDepth > 0 {
			for _, edge := range d.topLinks(base, page) {
				target := normalizeURL(edge.TargetURL)
				if visited[target] {
					continue
				}
				queue = append(queue, frontierItem{url: edge.TargetURL, depth: item.depth + 1})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	disc := &model.DiscoveryResult{
		MarketName: market.Name,
		MarketURL:  rootURL,
	}
	if len(candidates) > 0 {
		best := candidates[0]
		disc.VendorPageFound = best.Score >= d.cfg.MinContentScore
		disc.VendorPageURL = best.PageURL
		disc.VendorPageTitle = best.PageTitle
		disc.VendorPageScore = best.Score
		disc.VendorPageReasons = best.Reasons
	}

	zap.L().Info("discover: site crawled",
		zap.String("market", market.Name),
		zap.Int("pages_visited", len(visited)),
		zap.Int("candidates", len(candidates)),
		zap.Bool("vendor_page_found", disc.VendorPageFound),
	)

	return disc, candidates, nil
}

// topLinks scores the page's outbound links and returns the best few, scored
// above the floor, resolved to absolute URLs.
func (d *Discoverer) topLinks(base *url.URL, page *model.Page) []model.LinkEdge {
	var edges []model.LinkEdge
	for _, link := range page.Links {
		if !d.links.Eligible(base, link.URL, link.Anchor) {
			continue
		}
		score, reasons := d.links.Score(link.Anchor, link.URL)
		if score < d.cfg.MinLinkScore {
			continue
		}
		edges = append(edges, model.LinkEdge{
			SourceURL:  page.URL,
			TargetURL:  resolveURL(base, link.URL),
			AnchorText: link.Anchor,
			Score:      score,
			Reasons:    reasons,
		})
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Score > edges[j].Score
	})

	if len(edges) > d.cfg.TopLinks {
		edges = edges[:d.cfg.TopLinks]
	}
	return edges
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// normalizeURL produces the visited-set key: fragment dropped, trailing
// slash trimmed.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	s := u.String()
	return strings.TrimSuffix(s, "/")
}

func sample(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
