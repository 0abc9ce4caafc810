package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/stockstats/db/migrations"
	"github.com/guttosm/stockstats/internal/logger"
	goose "github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration embedded in the binary.
//
// The daily_prices and ingestion_log tables are created here so that a fresh
// database is usable by both the API and the ingestion job.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err == nil {
		logger.L().Info().Int64("version", version).Msg("database migrated")
	}
	return nil
}

// migrator is an indirection used by InitializeApp; overridden in tests.
var migrator = Migrate
