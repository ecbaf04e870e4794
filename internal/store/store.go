package store

import (
	"context"
	"time"

	"github.com/sells-group/vendor-scout/internal/model"
)

// Store persists run bookkeeping, per-market results, and the discovery
// cache. Results of record live in the JSON output files; the store exists
// so interrupted batches can resume and repeated runs skip re-crawling.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateRun(ctx context.Context, source string, marketCount int) (*model.Run, error)
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunSummary(ctx context.Context, runID string, summary *model.RunSummary) error

	SaveMarketResult(ctx context.Context, runID string, result *model.MarketResult) error
	ListMarketResults(ctx context.Context, runID string) ([]model.MarketResult, error)

	GetCachedDiscovery(ctx context.Context, marketURL string) (*CachedDiscovery, error)
	SetCachedDiscovery(ctx context.Context, marketURL string, disc *CachedDiscovery, ttl time.Duration) error
	DeleteExpiredDiscoveries(ctx context.Context) (int64, error)
}

// CachedDiscovery is the cached output of one site crawl.
type CachedDiscovery struct {
	Discovery  model.DiscoveryResult `json:"discovery"`
	Candidates []model.Candidate     `json:"candidates"`
}
