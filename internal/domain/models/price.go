package models

import "time"

// DailyPrice represents one row of a daily price file and of the
// daily_prices table.
//
// Column order in the input file:
//  1. TradeDate
//  2. Symbol
//  3. Open
//  4. High
//  5. Low
//  6. Close
//  7. Volume
type DailyPrice struct {
	TradeDate time.Time
	Symbol    string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Stats returns the OHLCV figures of the bar.
func (p DailyPrice) Stats() FinancialStats {
	return FinancialStats{
		Open:   p.Open,
		High:   p.High,
		Low:    p.Low,
		Close:  p.Close,
		Volume: p.Volume,
	}
}
