// Package repository persists extraction results and job bookkeeping over
// database/sql. Postgres (via the pgx stdlib driver) backs shared
// deployments; sqlite backs local runs and tests. SQL stays in the common
// dialect subset; the only divergence, placeholder syntax, is handled by
// rebind.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/auctionkit/appraisal-extractor/internal/common"
)

// DB wraps the sql handle with the driver name needed for placeholder
// rebinding.
type DB struct {
	conn   *sql.DB
	driver string
	log    *slog.Logger
}

// Open connects using cfg.Driver ("pgx" or "sqlite") and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "driver", cfg.Driver)
	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.Driver, "error", err)
		return nil, dbErr("DB_OPEN", "failed to open database", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		logger.Error("failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, dbErr("DB_PING", "failed to connect to database", err)
	}
	logger.Info("successfully connected to database")
	return &DB{conn: conn, driver: cfg.Driver, log: logger}, nil
}

// Close closes the database connection gracefully.
func (d *DB) Close() {
	d.log.Info("closing database connection")
	if err := d.conn.Close(); err != nil {
		d.log.Error("failed to close database", "error", err)
	}
}

// HealthCheck pings the database to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

// dbErr tags repository failures so callers can match errors.Is(err,
// common.ErrDatabase) without knowing the driver error types.
func dbErr(code, message string, err error) error {
	return common.NewAppError(code, message, fmt.Errorf("%w: %w", common.ErrDatabase, err))
}

// rebind converts ? placeholders to the $N form the pgx driver expects.
// sqlite accepts ? natively.
func (d *DB) rebind(query string) string {
	if d.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS auction_reports (
		auction_no       TEXT PRIMARY KEY,
		pdf_filename     TEXT NOT NULL,
		location_address TEXT,
		appraisal_type   TEXT NOT NULL,
		appraisal_fields TEXT NOT NULL,
		photo_count      INTEGER NOT NULL,
		is_text_based    BOOLEAN NOT NULL,
		total_pages      INTEGER NOT NULL,
		status           TEXT NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS extract_jobs (
		id            TEXT PRIMARY KEY,
		auction_no    TEXT NOT NULL,
		pdf_path      TEXT NOT NULL,
		status        TEXT NOT NULL,
		error_message TEXT,
		started_at    TIMESTAMP NOT NULL,
		finished_at   TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_extract_jobs_auction_no ON extract_jobs (auction_no)`,
}

// InitSchema creates the tables if they do not exist. Statements are written
// in the dialect subset both drivers accept.
func (d *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	d.log.Info("database schema ready")
	return nil
}
