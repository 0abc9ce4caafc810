package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockstats/internal/logger"
	"github.com/guttosm/stockstats/internal/storage"
)

const (
	fileDateLayout   = "2006-01-02" // YYYY-MM-DD
	fileSuffix       = "_PRICES.txt"
	defaultBatchSize = 5000
	maxDays          = 30
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.PricesRepository {
	return storage.NewPricesRepository(db)
}

// now is overridden in tests.
var now = time.Now

// FileName returns the expected price file name for a business day.
func FileName(day time.Time) string {
	return day.Format(fileDateLayout) + fileSuffix
}

// ProcessDirectory loads the daily price files of the last nDays business days.
//
//   - dir: directory containing YYYY-MM-DD_PRICES.txt files.
//   - db:  open *sql.DB (PostgreSQL).
//   - nDays: number of business days to load, clamped to 1..30.
//   - parallel: files processed concurrently (0 = min(NumCPU, 8)).
//   - force: reprocess days already present in ingestion_log.
//
// Behavior:
//   - Expects exactly one file per business day; fails upfront if any is missing.
//   - For each file, parses & inserts bars in batches via repository.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, nDays int, parallel int, force bool) error {
	repo := repoCtor(db)

	dates := LastNBusinessDays(max(1, min(nDays, maxDays)), now())
	files := make([]string, len(dates))
	var missing []string
	for i, d := range dates {
		files[i] = filepath.Join(dir, FileName(d))
		_, err := os.Stat(files[i])
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, FileName(d))
		case err != nil:
			return fmt.Errorf("stat failed for %s: %w", files[i], err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	workers := parallelism(parallel)
	logger.L().Info().Int("files", len(files)).Int("workers", workers).Str("dir", dir).Bool("force", force).Msg("ingestion start")

	// the first failing file cancels gctx for the others
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range files {
		path, day := files[i], dates[i]
		g.Go(func() error {
			return loadDay(gctx, repo, path, day, force)
		})
	}

	return g.Wait()
}

// parallelism resolves the requested worker count: 0 means min(NumCPU, 8),
// any explicit value is capped at 8.
func parallelism(requested int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	return min(requested, maxParallelFiles)
}

// loadDay ingests one price file unless ingestion_log already lists its day.
// Any day that gets loaded is cleared first: bars left by an earlier run
// that failed mid-file have no ingestion_log entry and would otherwise
// collide with the (symbol, trade_date) key.
func loadDay(ctx context.Context, repo storage.PricesRepository, path string, day time.Time, force bool) error {
	start := time.Now()
	name := filepath.Base(path)
	log := logger.L().With().Str("file", name).Logger()

	done, err := repo.HasIngestionForDate(day)
	if err != nil {
		return fmt.Errorf("file %s: check ingestion log: %w", name, err)
	}
	if done && !force {
		log.Info().Bool("skipped", true).Msg("already ingested")
		return nil
	}
	if err := repo.DeletePricesByDate(day); err != nil {
		return fmt.Errorf("file %s: delete existing: %w", name, err)
	}

	rows, err := parseAndPersistFile(ctx, path, day, repo, defaultBatchSize)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("file failed")
		return fmt.Errorf("file %s: %w", name, err)
	}
	if err := repo.UpsertIngestionLog(day, name, rows); err != nil {
		return fmt.Errorf("file %s: upsert ingestion log: %w", name, err)
	}
	log.Info().Int("rows", rows).Dur("elapsed", time.Since(start)).Msg("file done")
	return nil
}
