//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/guttosm/stockstats/db/migrations"
	"github.com/guttosm/stockstats/internal/domain/models"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "stockstats",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=stockstats sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "stockstats")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })
	if err := goose.Up(db, "."); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestPricesRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewPricesRepository(db)
	day := time.Date(2012, 11, 1, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	bars := []models.DailyPrice{
		{TradeDate: day, Symbol: "XYZ", Open: 58.23, High: 60.74, Low: 58.12, Close: 60.51, Volume: 12345678},
		{TradeDate: day, Symbol: "ABC", Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 1000},
		{TradeDate: next, Symbol: "ABC", Open: 10.5, High: 12, Low: 10, Close: 11.5, Volume: 2000},
	}
	if err := repo.InsertPricesBatch(bars); err != nil {
		t.Fatalf("insert: %v", err)
	}

	cases := []struct {
		name    string
		symbol  string
		date    time.Time
		want    models.FinancialStats
		wantErr error
	}{
		{name: "found", symbol: "XYZ", date: day, want: bars[0].Stats()},
		{name: "second day", symbol: "ABC", date: next, want: bars[2].Stats()},
		{name: "known symbol missing day", symbol: "XYZ", date: next, wantErr: models.ErrNoPriceData},
		{name: "unknown symbol", symbol: "NOPE", date: day, wantErr: models.ErrUnknownSymbol},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := repo.GetHistoricalPrices(context.Background(), c.symbol, c.date)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("want %v got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %+v want %+v", got, c.want)
			}
		})
	}

	t.Run("ingestion log upsert+exists", func(t *testing.T) {
		if err := repo.UpsertIngestionLog(day, "2012-11-01_PRICES.txt", 2); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		ok, err := repo.HasIngestionForDate(day)
		if err != nil || !ok {
			t.Fatalf("exists want true, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("delete by date", func(t *testing.T) {
		if err := repo.DeletePricesByDate(day); err != nil {
			t.Fatalf("delete: %v", err)
		}
		var cnt int
		if err := db.QueryRow("SELECT COUNT(*) FROM daily_prices WHERE trade_date=$1", day).Scan(&cnt); err != nil {
			t.Fatalf("count: %v", err)
		}
		if cnt != 0 {
			t.Fatalf("expected 0 rows after delete, got %d", cnt)
		}
	})
}
