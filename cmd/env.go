package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/pipeline"
	"github.com/sells-group/vendor-scout/internal/scorer"
	"github.com/sells-group/vendor-scout/internal/store"
	"github.com/sells-group/vendor-scout/pkg/anthropic"
)

// pipelineEnv holds the initialized store and pipeline shared by the scan,
// discover, and extract commands.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up the store, the Anthropic client, and the full
// discovery+extraction pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if err := validateAPIKey(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	f := fetcher.NewClient(time.Duration(cfg.Crawl.TimeoutSecs)*time.Second, cfg.Crawl.UserAgent)
	disc := pipeline.NewDiscoverer(f, scorer.Default(), cfg.Crawl)

	ai := anthropic.NewClient(cfg.Anthropic.Key)
	ext := pipeline.NewExtractor(ai, f, cfg.Extract)

	return &pipelineEnv{
		Store:    st,
		Pipeline: pipeline.New(cfg, st, disc, ext),
	}, nil
}

// initDiscoveryEnv sets up a discovery-only pipeline. No API key is needed
// because the extraction stage is never reached.
func initDiscoveryEnv(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	f := fetcher.NewClient(time.Duration(cfg.Crawl.TimeoutSecs)*time.Second, cfg.Crawl.UserAgent)
	disc := pipeline.NewDiscoverer(f, scorer.Default(), cfg.Crawl)

	return &pipelineEnv{
		Store:    st,
		Pipeline: pipeline.New(cfg, st, disc, nil),
	}, nil
}

// initStore opens the SQLite store, runs migrations, and sweeps expired
// discovery cache entries.
func initStore(ctx context.Context) (store.Store, error) {
	dsn := cfg.Store.Path
	if dsn == "" {
		dsn = "vendor-scout.db"
	}

	st, err := store.NewSQLite(dsn)
	if err != nil {
		return nil, eris.Wrap(err, "init sqlite store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	if n, err := st.DeleteExpiredDiscoveries(ctx); err != nil {
		zap.L().Warn("expired cache sweep failed", zap.Error(err))
	} else if n > 0 {
		zap.L().Debug("swept expired discovery cache entries", zap.Int64("deleted", n))
	}

	return st, nil
}

// validateAPIKey checks that the Anthropic key is configured before any
// command that reaches the extraction stage.
func validateAPIKey() error {
	if cfg.Anthropic.Key == "" {
		return eris.New("VENDORSCOUT_ANTHROPIC_KEY not set (required for vendor extraction; use discover for crawl-only runs)")
	}
	return nil
}

// writeOutputJSON writes v as indented JSON to path, or stdout when path is
// empty.
func writeOutputJSON(path string, v any) error {
	var w *os.File
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrap(err, "create output file")
		}
		defer f.Close() //nolint:errcheck
		w = f
	} else {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readResultsJSON loads a results file written by scan or discover.
func readResultsJSON(path string) ([]*model.MarketResult, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read results file")
	}
	var results []*model.MarketResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, eris.Wrap(err, "parse results file")
	}
	return results, nil
}
