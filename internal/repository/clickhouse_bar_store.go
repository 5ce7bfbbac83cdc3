package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"MarketSim/internal/domain/models"
	applogger "MarketSim/pkg/logger"
)

// ClickHouseBarStore persists daily bars into a ClickHouse table.
type ClickHouseBarStore struct {
	db    *sql.DB
	table string
	log   *applogger.Logger
}

// NewClickHouseBarStore creates a bar store writing to the given table
// (fully qualified, e.g. "marketsim.daily_bars").
func NewClickHouseBarStore(db *sql.DB, table string) *ClickHouseBarStore {
	return &ClickHouseBarStore{db: db, table: table}
}

// SetLogger attaches an optional logger.
func (s *ClickHouseBarStore) SetLogger(l *applogger.Logger) { s.log = l }

// Store inserts a single bar.
func (s *ClickHouseBarStore) Store(ctx context.Context, b *models.Bar) error {
	return s.StoreBatch(ctx, []models.Bar{*b})
}

// StoreBatch inserts bars in one prepared batch transaction.
func (s *ClickHouseBarStore) StoreBatch(ctx context.Context, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (symbol, day, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.table,
	)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range bars {
		b := &bars[i]
		if _, err := stmt.ExecContext(ctx,
			b.Symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert bar %s/%s: %w", b.Symbol, b.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	if s.log != nil {
		s.log.Debug("bars stored",
			applogger.Int("count", len(bars)),
			applogger.Duration("took", time.Since(start)),
		)
	}
	return nil
}

// Query returns stored bars for a symbol in [from, to], oldest first.
// limit <= 0 means no limit.
func (s *ClickHouseBarStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.Bar, error) {
	query := fmt.Sprintf(
		"SELECT symbol, day, open, high, low, close, volume FROM %s WHERE symbol = ? AND day >= ? AND day <= ? ORDER BY day",
		s.table,
	)
	args := []interface{}{symbol, from, to}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var out []models.Bar
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars: %w", err)
	}
	return out, nil
}

// Health pings the database.
func (s *ClickHouseBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the connection pool is owned by the client.
func (s *ClickHouseBarStore) Close() error { return nil }
