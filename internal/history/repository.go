package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edgewatch/backend/internal/contracts"
)

// Repository archives completed scan runs in PostgreSQL. It is
// optional: without a DATABASE_URL the scanner runs file-only and
// this package is never constructed.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a run-history repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Migrate creates the history table when it does not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS scan_runs (
			id            BIGSERIAL PRIMARY KEY,
			generated_at  TIMESTAMPTZ NOT NULL,
			variant       TEXT NOT NULL,
			date_range    TEXT NOT NULL,
			total_filings INT NOT NULL,
			enriched      INT NOT NULL,
			qualified     INT NOT NULL,
			api_calls     INT NOT NULL,
			config_hash   TEXT NOT NULL DEFAULT '',
			leaderboard   JSONB NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS scan_runs_variant_generated_idx
			ON scan_runs (variant, generated_at DESC);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("migrate scan_runs: %w", err)
	}
	return nil
}

// SaveReport archives one run.
func (r *Repository) SaveReport(ctx context.Context, report *contracts.Report) error {
	leaderboardJSON, err := json.Marshal(report.Leaderboard)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}

	query := `
		INSERT INTO scan_runs (
			generated_at,
			variant,
			date_range,
			total_filings,
			enriched,
			qualified,
			api_calls,
			config_hash,
			leaderboard
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Exec(ctx, query,
		report.GeneratedAt,
		report.Variant,
		report.DateRange,
		report.TotalFilings,
		report.Enriched,
		report.Qualified,
		report.APICalls,
		report.ConfigHash,
		leaderboardJSON,
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}

	return nil
}

// RecentRuns returns the latest runs for a variant, newest first.
func (r *Repository) RecentRuns(ctx context.Context, variant string, limit int) ([]*contracts.Report, error) {
	query := `
		SELECT
			generated_at,
			variant,
			date_range,
			total_filings,
			enriched,
			qualified,
			api_calls,
			config_hash,
			leaderboard
		FROM scan_runs
		WHERE variant = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, variant, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan runs: %w", err)
	}
	defer rows.Close()

	var reports []*contracts.Report
	for rows.Next() {
		report := &contracts.Report{}
		var leaderboardJSON []byte
		if err := rows.Scan(
			&report.GeneratedAt,
			&report.Variant,
			&report.DateRange,
			&report.TotalFilings,
			&report.Enriched,
			&report.Qualified,
			&report.APICalls,
			&report.ConfigHash,
			&leaderboardJSON,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if err := json.Unmarshal(leaderboardJSON, &report.Leaderboard); err != nil {
			return nil, fmt.Errorf("unmarshal leaderboard: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// LatestRun returns the newest archived run for a variant, or nil
// when none exists yet.
func (r *Repository) LatestRun(ctx context.Context, variant string) (*contracts.Report, error) {
	reports, err := r.RecentRuns(ctx, variant, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return reports[0], nil
}

// LastAlertDates returns the most recent alerted date per ticker
// across all archived runs since the given time.
func (r *Repository) LastAlertDates(ctx context.Context, since time.Time) (map[string]time.Time, error) {
	query := `
		SELECT entry->>'ticker', MAX(generated_at)
		FROM scan_runs,
			jsonb_array_elements(leaderboard) AS entry
		WHERE generated_at >= $1
		GROUP BY 1
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query alert dates: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var ticker string
		var at time.Time
		if err := rows.Scan(&ticker, &at); err != nil {
			return nil, fmt.Errorf("alert date row: %w", err)
		}
		out[ticker] = at
	}

	return out, rows.Err()
}
