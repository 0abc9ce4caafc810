package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/stockstats/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*pricesRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &pricesRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestGetHistoricalPrices_SQLMock(t *testing.T) {
	barRegex := `SELECT open, high, low, close, volume\s+FROM daily_prices\s+WHERE symbol = \$1 AND trade_date = \$2`
	existsRegex := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM daily_prices WHERE symbol = $1)`)
	day := time.Date(2012, 11, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    models.FinancialStats
		wantErr error
	}{
		{
			name: "bar found",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"open", "high", "low", "close", "volume"}).
					AddRow(58.23, 60.74, 58.12, 60.51, int64(12345678))
				mock.ExpectQuery(barRegex).WithArgs("XYZ", day).WillReturnRows(rows)
			},
			want: models.FinancialStats{Open: 58.23, High: 60.74, Low: 58.12, Close: 60.51, Volume: 12345678},
		},
		{
			name: "unknown symbol",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(barRegex).WithArgs("XYZ", day).WillReturnRows(sqlmock.NewRows([]string{"open", "high", "low", "close", "volume"}))
				mock.ExpectQuery(existsRegex).WithArgs("XYZ").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: models.ErrUnknownSymbol,
		},
		{
			name: "known symbol without bar",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(barRegex).WithArgs("XYZ", day).WillReturnRows(sqlmock.NewRows([]string{"open", "high", "low", "close", "volume"}))
				mock.ExpectQuery(existsRegex).WithArgs("XYZ").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: models.ErrNoPriceData,
		},
		{
			name: "query failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(barRegex).WithArgs("XYZ", day).WillReturnError(dummyErr{})
			},
			wantErr: dummyErr{},
		},
		{
			name: "exists check failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(barRegex).WithArgs("XYZ", day).WillReturnRows(sqlmock.NewRows([]string{"open", "high", "low", "close", "volume"}))
				mock.ExpectQuery(existsRegex).WithArgs("XYZ").WillReturnError(dummyErr{})
			},
			wantErr: dummyErr{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)

			got, err := repo.GetHistoricalPrices(context.Background(), "XYZ", day)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want err %v, got %v", tc.wantErr, err)
				}
				if errors.Is(tc.wantErr, models.ErrUnknownSymbol) && errors.Is(err, models.ErrNoPriceData) {
					t.Fatalf("unknown symbol reported as missing data")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %+v want %+v", got, tc.want)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestIngestionLog_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d := time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_date = $1)")).
		WithArgs(d).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasIngestionForDate(d)
	if err != nil || !ok {
		t.Fatalf("HasIngestionForDate: ok=%v err=%v", ok, err)
	}

	mock.ExpectExec(`INSERT INTO ingestion_log \(file_date, filename, row_count\)\s+VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(file_date\)`).
		WithArgs(d, "file.txt", 10).WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.UpsertIngestionLog(d, "file.txt", 10); err != nil {
		t.Fatalf("UpsertIngestionLog: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM daily_prices WHERE trade_date = $1")).
		WithArgs(d).WillReturnResult(sqlmock.NewResult(0, 3))
	if err := repo.DeletePricesByDate(d); err != nil {
		t.Fatalf("DeletePricesByDate: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewPricesRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewPricesRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func samplePrice() models.DailyPrice {
	return models.DailyPrice{
		TradeDate: time.Date(2012, 11, 1, 0, 0, 0, 0, time.UTC),
		Symbol:    "XYZ",
		Open:      58.23,
		High:      60.74,
		Low:       58.12,
		Close:     60.51,
		Volume:    12345678,
	}
}

func TestInsertPricesBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	// pq.CopyIn is driver specific; sqlmock only sees a prepared statement executed per row plus a final flush.
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.InsertPricesBatch([]models.DailyPrice{samplePrice()}); err != nil {
		t.Fatalf("InsertPricesBatch: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertPricesBatch_Errors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "set local",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "row exec",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final exec",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(".*").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)
			if err := repo.InsertPricesBatch([]models.DailyPrice{samplePrice()}); err == nil {
				t.Fatalf("expected error on %s", tc.name)
			}
		})
	}
}
