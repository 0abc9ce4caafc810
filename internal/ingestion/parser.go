package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/stockstats/internal/domain/models"
	"github.com/guttosm/stockstats/internal/storage"
)

// expectedHeaders enforces strict column ordering for daily price files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{
	"Date",
	"Symbol",
	"Open",
	"High",
	"Low",
	"Close",
	"Volume",
}

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on:
//   - header not matching expected order/length
//   - any malformed row (missing symbol, bad number, bad date, high < low)
//   - unrecoverable I/O errors
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - path:   file path.
//   - day:    business day the file belongs to; rows with another date are rejected.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersistFile(ctx context.Context, path string, day time.Time, repo storage.PricesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1 // checked explicitly below

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	buf := make([]models.DailyPrice, 0, batch)
	lineNumber := 1 // header already read

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertPricesBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		p, err := recordToPrice(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if !p.TradeDate.Equal(day) {
			return 0, fmt.Errorf("line %d: date %s does not match file date %s", lineNumber, p.TradeDate.Format("2006-01-02"), day.Format("2006-01-02"))
		}

		buf = append(buf, p)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToPrice converts a single CSV record (already validated length==7)
// into a models.DailyPrice. Every cell is mandatory.
//
//	0 Date   → TradeDate ("2006-01-02", UTC)
//	1 Symbol → Symbol (upper-cased)
//	2 Open   → Open (float, comma or dot decimal separator)
//	3 High   → High
//	4 Low    → Low
//	5 Close  → Close
//	6 Volume → Volume (int64)
func recordToPrice(rec []string) (models.DailyPrice, error) {
	var p models.DailyPrice

	d, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
	if err != nil {
		return p, fmt.Errorf("invalid Date: %v", err)
	}
	p.TradeDate = d

	p.Symbol = strings.ToUpper(strings.TrimSpace(rec[1]))
	if p.Symbol == "" {
		return p, fmt.Errorf("empty Symbol")
	}

	prices := []struct {
		name string
		dst  *float64
		raw  string
	}{
		{"Open", &p.Open, rec[2]},
		{"High", &p.High, rec[3]},
		{"Low", &p.Low, rec[4]},
		{"Close", &p.Close, rec[5]},
	}
	for _, f := range prices {
		v, err := parseDecimal(f.raw)
		if err != nil {
			return p, fmt.Errorf("invalid %s: %v", f.name, err)
		}
		*f.dst = v
	}
	if p.High < p.Low {
		return p, fmt.Errorf("high %.4f below low %.4f", p.High, p.Low)
	}

	v, err := strconv.ParseInt(strings.TrimSpace(rec[6]), 10, 64)
	if err != nil {
		return p, fmt.Errorf("invalid Volume: %v", err)
	}
	if v < 0 {
		return p, fmt.Errorf("negative Volume %d", v)
	}
	p.Volume = v

	return p, nil
}

func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}
