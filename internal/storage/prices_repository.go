package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/stockstats/internal/domain/models"
	pq "github.com/lib/pq"
)

// PricesRepository defines contract for DB operations on daily prices.
// It is also the service's MarketDataProvider.
type PricesRepository interface {
	InsertPricesBatch(prices []models.DailyPrice) error
	GetHistoricalPrices(ctx context.Context, symbol string, date time.Time) (models.FinancialStats, error)
	HasIngestionForDate(date time.Time) (bool, error)
	UpsertIngestionLog(date time.Time, filename string, rowCount int) error
	DeletePricesByDate(date time.Time) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// InsertPricesBatch inserts multiple daily bars into DB in a single transaction.
func (r *pricesRepository) InsertPricesBatch(prices []models.DailyPrice) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"daily_prices",
		"trade_date",
		"symbol",
		"open",
		"high",
		"low",
		"close",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, p := range prices {
		if _, err := stmt.Exec(
			p.TradeDate,
			p.Symbol,
			p.Open,
			p.High,
			p.Low,
			p.Close,
			p.Volume,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForDate checks if an ingestion was already recorded for a given business day.
func (r *pricesRepository) HasIngestionForDate(date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a given day.
func (r *pricesRepository) UpsertIngestionLog(date time.Time, filename string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (file_date, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_date)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, date, filename, rowCount)
	return err
}

// DeletePricesByDate removes all bars for a given trade_date.
func (r *pricesRepository) DeletePricesByDate(date time.Time) error {
	_, err := r.db.Exec(`DELETE FROM daily_prices WHERE trade_date = $1`, date)
	return err
}

// GetHistoricalPrices returns the OHLCV bar of symbol on date.
//
// Errors:
//   - wraps models.ErrUnknownSymbol if the symbol has no bar at all.
//   - wraps models.ErrNoPriceData if the symbol exists but not on that date.
func (r *pricesRepository) GetHistoricalPrices(ctx context.Context, symbol string, date time.Time) (models.FinancialStats, error) {
	var fin models.FinancialStats
	err := r.db.QueryRowContext(ctx, `
		SELECT open, high, low, close, volume
		FROM daily_prices
		WHERE symbol = $1 AND trade_date = $2
	`, symbol, date).Scan(&fin.Open, &fin.High, &fin.Low, &fin.Close, &fin.Volume)
	if err == nil {
		return fin, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.FinancialStats{}, fmt.Errorf("query daily price: %w", err)
	}

	// No bar: tell an unlisted symbol apart from a non-trading day.
	var known bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM daily_prices WHERE symbol = $1)`, symbol).Scan(&known); err != nil {
		return models.FinancialStats{}, fmt.Errorf("check symbol: %w", err)
	}
	if !known {
		return models.FinancialStats{}, fmt.Errorf("%w: %s", models.ErrUnknownSymbol, symbol)
	}
	return models.FinancialStats{}, fmt.Errorf("%w: %s on %s", models.ErrNoPriceData, symbol, date.Format("2006-01-02"))
}
