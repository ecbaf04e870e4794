package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/config"
	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/scorer"
	"github.com/sells-group/vendor-scout/internal/store"
	"github.com/sells-group/vendor-scout/internal/vendor"
)

// patternConfidenceFloor gates the deterministic extraction pass: pattern
// hits on a page whose overall vendor-directory confidence is below this are
// mostly navigation noise and are discarded.
const patternConfidenceFloor = 0.3

// Pipeline orchestrates discovery, extraction, and normalization per market,
// and batch runs over a whole market list. Markets are processed one at a
// time on purpose: the politeness delays dominate wall time either way, and
// sequential order keeps checkpoint/resume semantics trivial.
type Pipeline struct {
	cfg     *config.Config
	disc    *Discoverer
	ext     *Extractor
	store   store.Store
	scoring scorer.Config
}

// New builds a Pipeline. st may be nil for cache-less one-off runs, and ext
// may be nil for discovery-only use.
func New(cfg *config.Config, st store.Store, disc *Discoverer, ext *Extractor) *Pipeline {
	return &Pipeline{cfg: cfg, disc: disc, ext: ext, store: st, scoring: scorer.Default()}
}

// BatchOptions tunes one RunBatch invocation.
type BatchOptions struct {
	// Source labels the run (usually the input file path).
	Source string
	// StartFrom skips markets before this zero-based index, for resuming.
	StartFrom int
	// Limit stops after this many markets (0 = all).
	Limit int
	// SkipExtraction runs discovery only.
	SkipExtraction bool
}

// RunMarket processes one market end to end. It never returns an error:
// failures are recorded on the result so one dead site cannot sink a batch.
func (p *Pipeline) RunMarket(ctx context.Context, market model.Market) *model.MarketResult {
	return p.runMarket(ctx, market, false)
}

func (p *Pipeline) runMarket(ctx context.Context, market model.Market, skipExtraction bool) *model.MarketResult {
	start := time.Now()
	result := &model.MarketResult{
		Market:   market,
		SiteType: model.ClassifySite(market.URL),
	}

	disc, candidates, err := p.discoverCached(ctx, market)
	if err != nil {
		result.Error = err.Error()
		result.ProcessingTime = time.Since(start).Seconds()
		return result
	}
	result.Discovery = *disc
	result.Candidates = candidates

	maxPages := p.cfg.Extract.PagesPerMarket
	if maxPages <= 0 {
		maxPages = 1
	}

	var collected []model.Vendor
	for i, cand := range candidates {
		if i >= maxPages {
			break
		}

		// Cheap deterministic pass over the sampled text first. Pattern hits
		// only count when the page itself looks like a vendor directory.
		patternVendors := scorer.ExtractVendors(cand.ContentSample, cand.PageURL)
		if len(patternVendors) > 0 &&
			scorer.PageConfidence(p.scoring, cand.ContentSample, len(patternVendors)) > patternConfidenceFloor {
			collected = append(collected, patternVendors...)
		}

		if !skipExtraction {
			extraction := p.ext.ExtractPage(ctx, market.Name, cand.PageURL)
			result.Extractions = append(result.Extractions, extraction)
			collected = append(collected, extraction.Vendors...)
		}

		if ctx.Err() != nil {
			break
		}
	}

	result.Vendors = vendor.Merge(vendor.Filter(collected), vendor.DedupeOptions{})
	result.ProcessingTime = time.Since(start).Seconds()
	return result
}

// discoverCached consults the discovery cache before crawling, and fills it
// after a successful crawl.
func (p *Pipeline) discoverCached(ctx context.Context, market model.Market) (*model.DiscoveryResult, []model.Candidate, error) {
	if p.store != nil {
		cached, err := p.store.GetCachedDiscovery(ctx, market.URL)
		if err != nil {
			zap.L().Warn("pipeline: discovery cache read failed",
				zap.String("market", market.Name), zap.Error(err))
		} else if cached != nil {
			zap.L().Debug("pipeline: discovery cache hit", zap.String("market", market.Name))
			return &cached.Discovery, cached.Candidates, nil
		}
	}

	disc, candidates, err := p.disc.Discover(ctx, market)
	if err != nil {
		return nil, nil, err
	}

	if p.store != nil {
		ttl := time.Duration(p.cfg.Store.CacheTTLHours) * time.Hour
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		cached := &store.CachedDiscovery{Discovery: *disc, Candidates: candidates}
		if err := p.store.SetCachedDiscovery(ctx, market.URL, cached, ttl); err != nil {
			zap.L().Warn("pipeline: discovery cache write failed",
				zap.String("market", market.Name), zap.Error(err))
		}
	}

	return disc, candidates, nil
}

// RunBatch processes a market list sequentially with periodic checkpoints.
// The returned results cover only the markets processed in this invocation.
func (p *Pipeline) RunBatch(ctx context.Context, markets []model.Market, opts BatchOptions) ([]*model.MarketResult, *model.RunSummary, error) {
	start := time.Now()

	if opts.StartFrom > 0 {
		if opts.StartFrom >= len(markets) {
			return nil, nil, nil
		}
		markets = markets[opts.StartFrom:]
	}
	if opts.Limit > 0 && opts.Limit < len(markets) {
		markets = markets[:opts.Limit]
	}

	var runID string
	if p.store != nil {
		run, err := p.store.CreateRun(ctx, opts.Source, len(markets))
		if err != nil {
			return nil, nil, err
		}
		runID = run.ID
		if err := p.store.UpdateRunStatus(ctx, runID, model.RunStatusRunning); err != nil {
			return nil, nil, err
		}
	}

	checkpointEvery := p.cfg.Batch.CheckpointEvery
	summary := &model.RunSummary{TotalMarkets: len(markets)}
	var results []*model.MarketResult

	for i, market := range markets {
		if ctx.Err() != nil {
			break
		}

		zap.L().Info(fmt.Sprintf("======== market %d/%d ========", i+1, len(markets)),
			zap.String("name", market.Name),
			zap.String("url", market.URL),
		)

		result := p.runMarket(ctx, market, opts.SkipExtraction)
		results = append(results, result)

		if result.Error != "" {
			summary.FailedMarkets++
			zap.L().Error("pipeline: market failed",
				zap.String("market", market.Name),
				zap.String("error", result.Error),
			)
		} else {
			if result.Discovery.VendorPageFound {
				summary.VendorPagesFound++
			}
			summary.TotalVendors += len(result.Vendors)
		}

		if p.store != nil && runID != "" {
			if err := p.store.SaveMarketResult(ctx, runID, result); err != nil {
				zap.L().Warn("pipeline: save market result failed",
					zap.String("market", market.Name), zap.Error(err))
			}
		}

		processed := i + 1
		if checkpointEvery > 0 && processed%checkpointEvery == 0 && processed < len(markets) {
			path, err := store.WriteCheckpoint(p.cfg.Batch.CheckpointDir, opts.StartFrom+processed, results)
			if err != nil {
				zap.L().Warn("pipeline: checkpoint write failed", zap.Error(err))
			} else {
				zap.L().Info("pipeline: checkpoint written",
					zap.String("path", path),
					zap.Int("processed", opts.StartFrom+processed),
				)
			}
		}
	}

	summary.ProcessingTime = time.Since(start).Seconds()

	if p.store != nil && runID != "" {
		if err := p.store.UpdateRunSummary(ctx, runID, summary); err != nil {
			zap.L().Warn("pipeline: save run summary failed", zap.Error(err))
		}
		status := model.RunStatusComplete
		if ctx.Err() != nil {
			status = model.RunStatusFailed
		}
		if err := p.store.UpdateRunStatus(ctx, runID, status); err != nil {
			zap.L().Warn("pipeline: update run status failed", zap.Error(err))
		}
	}

	zap.L().Info("pipeline: batch complete",
		zap.Int("markets", len(results)),
		zap.Int("vendor_pages_found", summary.VendorPagesFound),
		zap.Int("total_vendors", summary.TotalVendors),
		zap.Int("failed", summary.FailedMarkets),
		zap.Float64("seconds", summary.ProcessingTime),
	)

	return results, summary, nil
}
