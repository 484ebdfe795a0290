package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/observability"
)

// PostgresSink persists scored snapshots to a Postgres table, upserting on
// the (county, state) key so repeated exports refresh scores in place.
type PostgresSink struct {
	db      *sql.DB
	table   string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPostgresSink opens a connection pool, verifies it with a ping, and
// ensures the target table exists. metrics may be nil.
func NewPostgresSink(ctx context.Context, dsn, table string, logger *slog.Logger, metrics *observability.Metrics) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresSink{db: db, table: table, logger: logger, metrics: metrics}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSink) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		county            TEXT          NOT NULL,
		state             TEXT          NOT NULL,
		region            TEXT,
		population        BIGINT        NOT NULL,
		median_income     DOUBLE PRECISION NOT NULL,
		pct_college       DOUBLE PRECISION NOT NULL,
		median_age        DOUBLE PRECISION NOT NULL,
		pct_hispanic      DOUBLE PRECISION NOT NULL,
		pct_asian         DOUBLE PRECISION NOT NULL,
		metro             BOOLEAN       NOT NULL,
		affluent          BOOLEAN       NOT NULL,
		opportunity_score DOUBLE PRECISION NOT NULL,
		exported_at       TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
		PRIMARY KEY (county, state)
	);

	CREATE INDEX IF NOT EXISTS idx_%s_score  ON %s (opportunity_score DESC);
	CREATE INDEX IF NOT EXISTS idx_%s_region ON %s (region);
	`, s.table, s.table, s.table, s.table, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Write upserts the scored counties in a single transaction.
func (s *PostgresSink) Write(ctx context.Context, counties []domain.ScoredCounty) error {
	if len(counties) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (county, state, region, population, median_income,
			pct_college, median_age, pct_hispanic, pct_asian, metro,
			affluent, opportunity_score, exported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (county, state) DO UPDATE SET
			opportunity_score = EXCLUDED.opportunity_score,
			affluent          = EXCLUDED.affluent,
			exported_at       = EXCLUDED.exported_at
	`, s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range counties {
		if _, err := stmt.ExecContext(ctx,
			c.County, c.State, c.Region, c.Population, c.MedianIncome,
			c.PctCollege, c.MedianAge, c.PctHispanic, c.PctAsian, c.Metro,
			c.Affluent, c.Opportunity,
		); err != nil {
			return fmt.Errorf("insert %s: %w", c.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ExportRows.WithLabelValues("postgres").Add(float64(len(counties)))
	}
	s.logger.Info("snapshot persisted", "table", s.table, "rows", len(counties))
	return nil
}

func (s *PostgresSink) Close() error { return s.db.Close() }
