package dto

import "github.com/guttosm/stockstats/internal/domain/models"

// StockStatsResponse represents the JSON structure returned by the
// GET /api/v1/stats endpoint.
//
// It mirrors models.StockStats but lives here so the API contract can evolve
// independently of the domain model.
type StockStatsResponse struct {
	Ticker         string                `json:"ticker" example:"XYZ"`
	ClosingDate    string                `json:"closing_date" example:"2012-11-01"`
	FinancialStats models.FinancialStats `json:"financial_stats"`
	SocialStats    SocialStatsResponse   `json:"social_stats"`
}

// SocialStatsResponse lists the classified messages and a per-label tally.
type SocialStatsResponse struct {
	Messages []models.Message `json:"messages"`
	Positive int              `json:"positive" example:"1"`
	Negative int              `json:"negative" example:"1"`
	Neutral  int              `json:"neutral" example:"1"`
}

// NewStockStatsResponse maps a domain StockStats into the response DTO.
// Messages keep their order; an empty feed is rendered as [] rather than null.
func NewStockStatsResponse(ticker string, s models.StockStats) StockStatsResponse {
	msgs := s.SocialStats.Messages
	if msgs == nil {
		msgs = []models.Message{}
	}
	social := SocialStatsResponse{Messages: msgs}
	for _, m := range msgs {
		switch m.Sentiment {
		case models.SentimentPositive:
			social.Positive++
		case models.SentimentNegative:
			social.Negative++
		case models.SentimentNeutral:
			social.Neutral++
		}
	}
	return StockStatsResponse{
		Ticker:         ticker,
		ClosingDate:    s.ClosingDate,
		FinancialStats: s.FinancialStats,
		SocialStats:    social,
	}
}
