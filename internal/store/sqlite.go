package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/vendor-scout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	source       TEXT NOT NULL,
	market_count INTEGER NOT NULL,
	status       TEXT NOT NULL DEFAULT 'queued',
	summary      TEXT,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS market_results (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	market_id  INTEGER NOT NULL,
	market_url TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS discovery_cache (
	id         TEXT PRIMARY KEY,
	market_url TEXT NOT NULL UNIQUE,
	discovery  TEXT NOT NULL,
	crawled_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_market_results_run_id ON market_results(run_id);
CREATE INDEX IF NOT EXISTS idx_discovery_cache_expires_at ON discovery_cache(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, source string, marketCount int) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, market_count, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, source, marketCount, string(model.RunStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:          id,
		Source:      source,
		MarketCount: marketCount,
		Status:      model.RunStatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, market_count, status, summary, created_at, updated_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, market_count, status, summary, created_at, updated_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run status %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) UpdateRunSummary(ctx context.Context, runID string, summary *model.RunSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal summary")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET summary = ?, updated_at = ? WHERE id = ?`,
		string(payload), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run summary %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) SaveMarketResult(ctx context.Context, runID string, result *model.MarketResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal market result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO market_results (id, run_id, market_id, market_url, result) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, result.Market.ID, result.Market.URL, string(payload),
	)
	return eris.Wrap(err, "sqlite: insert market result")
}

func (s *SQLiteStore) ListMarketResults(ctx context.Context, runID string) ([]model.MarketResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result FROM market_results WHERE run_id = ? ORDER BY market_id`, runID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list market results")
	}
	defer rows.Close() //nolint:errcheck

	var results []model.MarketResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan market result")
		}
		var result model.MarketResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal market result")
		}
		results = append(results, result)
	}
	return results, eris.Wrap(rows.Err(), "sqlite: iterate market results")
}

func (s *SQLiteStore) GetCachedDiscovery(ctx context.Context, marketURL string) (*CachedDiscovery, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT discovery FROM discovery_cache WHERE market_url = ? AND expires_at > ?`,
		marketURL, time.Now().UTC(),
	)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: get cached discovery")
	}

	var cached CachedDiscovery
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal cached discovery")
	}
	return &cached, nil
}

func (s *SQLiteStore) SetCachedDiscovery(ctx context.Context, marketURL string, disc *CachedDiscovery, ttl time.Duration) error {
	payload, err := json.Marshal(disc)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal cached discovery")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO discovery_cache (id, market_url, discovery, crawled_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(market_url) DO UPDATE SET discovery = excluded.discovery,
			 crawled_at = excluded.crawled_at, expires_at = excluded.expires_at`,
		uuid.New().String(), marketURL, string(payload), now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: set cached discovery")
}

func (s *SQLiteStore) DeleteExpiredDiscoveries(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM discovery_cache WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired discoveries")
	}
	n, err := res.RowsAffected()
	return n, eris.Wrap(err, "sqlite: rows affected")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var status string
	var summary sql.NullString

	if err := row.Scan(&run.ID, &run.Source, &run.MarketCount, &status, &summary, &run.CreatedAt, &run.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, eris.New("sqlite: run not found")
		}
		return nil, eris.Wrap(err, "sqlite: scan run")
	}

	run.Status = model.RunStatus(status)
	if summary.Valid && summary.String != "" {
		var s model.RunSummary
		if err := json.Unmarshal([]byte(summary.String), &s); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal run summary")
		}
		run.Summary = &s
	}
	return &run, nil
}

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s %s not found", kind, id)
	}
	return nil
}
