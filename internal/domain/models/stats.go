package models

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownSymbol is returned by market data providers when the ticker is not listed.
	ErrUnknownSymbol = errors.New("unknown stock symbol")

	// ErrNoPriceData is returned when the symbol is known but has no bar for the requested date.
	ErrNoPriceData = errors.New("no price data for date")
)

// FinancialStats holds the OHLCV figures of a single trading date.
//
// swagger:model FinancialStats
type FinancialStats struct {
	Open   float64 `json:"open" example:"58.23"`
	High   float64 `json:"high" example:"60.74"`
	Low    float64 `json:"low" example:"58.12"`
	Close  float64 `json:"close" example:"60.51"`
	Volume int64   `json:"volume" example:"12345678"`
}

// SocialStats is the ordered list of messages mentioning the ticker.
// Order is the order returned by the social feed provider.
type SocialStats struct {
	Messages []Message `json:"messages"`
}

// StockStats combines the financial and social statistics of a ticker
// for one closing date.
//
// Fields:
//   - ClosingDate: the requested date, echoed back as received (YYYY-MM-DD).
//   - FinancialStats: price and volume for that date.
//   - SocialStats: sentiment-labelled messages.
//
// swagger:model StockStats
type StockStats struct {
	ClosingDate    string         `json:"closing_date" example:"2012-11-01"`
	FinancialStats FinancialStats `json:"financial_stats"`
	SocialStats    SocialStats    `json:"social_stats"`
}

// NewStockStats builds a StockStats in one step. The messages slice is copied
// so later changes by the caller do not leak into the result.
func NewStockStats(closingDate string, fin FinancialStats, messages []Message) StockStats {
	msgs := make([]Message, len(messages))
	copy(msgs, messages)
	return StockStats{
		ClosingDate:    closingDate,
		FinancialStats: fin,
		SocialStats:    SocialStats{Messages: msgs},
	}
}

// Equal reports whether both values hold the same closing date, financial
// figures and messages (same order, same labels).
func (s StockStats) Equal(o StockStats) bool {
	return s.ClosingDate == o.ClosingDate &&
		s.FinancialStats == o.FinancialStats &&
		slices.Equal(s.SocialStats.Messages, o.SocialStats.Messages)
}
