package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/guttosm/stockstats/internal/domain/models"
	"github.com/guttosm/stockstats/internal/logger"
)

const (
	// DateLayout is the only accepted format for the as-of date.
	DateLayout = "2006-01-02"

	socialPageSize = 100
	socialPage     = 1
)

// MarketDataProvider returns the historical OHLCV figures of a symbol.
// It must return an error wrapping models.ErrUnknownSymbol for tickers it does not know.
type MarketDataProvider interface {
	GetHistoricalPrices(ctx context.Context, symbol string, date time.Time) (models.FinancialStats, error)
}

// SocialFeedProvider searches short messages mentioning a symbol.
type SocialFeedProvider interface {
	Search(ctx context.Context, symbol string, date time.Time, pageSize, page int) ([]models.Message, error)
}

// SentimentClassifier labels every message of the slice in place.
type SentimentClassifier interface {
	Classify(ctx context.Context, messages []models.Message) error
}

// NormalizeTicker returns the canonical upper-case form of a ticker query value.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// StatsService combines market data and social sentiment for a ticker.
type StatsService interface {
	Search(ctx context.Context, ticker, dateText string) (*models.StockStats, error)
}

type statsService struct {
	market     MarketDataProvider
	social     SocialFeedProvider
	classifier SentimentClassifier
}

// NewStatsService wires the three collaborators into a StatsService.
func NewStatsService(market MarketDataProvider, social SocialFeedProvider, classifier SentimentClassifier) StatsService {
	return &statsService{market: market, social: social, classifier: classifier}
}

// Search validates the request, then calls the price, social and sentiment
// collaborators one after the other and merges their results.
//
// Errors:
//   - KindInvalidRequest: empty ticker, empty or malformed date, unknown symbol,
//     or no price bar for the date.
//   - KindInternal: any other collaborator failure.
func (s *statsService) Search(ctx context.Context, ticker, dateText string) (*models.StockStats, error) {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return nil, InvalidRequest("ticker is required", nil)
	}
	if dateText == "" {
		return nil, InvalidRequest("date is required", nil)
	}
	asOf, err := time.Parse(DateLayout, dateText)
	if err != nil {
		return nil, InvalidRequest("invalid date format, expected YYYY-MM-DD", err)
	}

	fin, err := s.market.GetHistoricalPrices(ctx, ticker, asOf)
	if err != nil {
		if errors.Is(err, models.ErrUnknownSymbol) || errors.Is(err, models.ErrNoPriceData) {
			return nil, InvalidRequest("no market data for ticker", err)
		}
		logger.L().Error().Err(err).Str("ticker", ticker).Str("date", dateText).Str("stage", "market").Msg("market data lookup failed")
		return nil, Internal("failed to fetch market data", err)
	}

	msgs, err := s.social.Search(ctx, ticker, asOf, socialPageSize, socialPage)
	if err != nil {
		logger.L().Error().Err(err).Str("ticker", ticker).Str("date", dateText).Str("stage", "social").Msg("social search failed")
		return nil, Internal("failed to fetch social messages", err)
	}

	if err := s.classifier.Classify(ctx, msgs); err != nil {
		logger.L().Error().Err(err).Str("ticker", ticker).Int("messages", len(msgs)).Str("stage", "sentiment").Msg("classification failed")
		return nil, Internal("failed to classify messages", err)
	}

	out := models.NewStockStats(dateText, fin, msgs)
	logger.L().Debug().Str("ticker", ticker).Str("date", dateText).Int("messages", len(msgs)).Msg("stats assembled")
	return &out, nil
}
