package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockstats/internal/domain/dto"
	"github.com/guttosm/stockstats/internal/middleware"
	"github.com/guttosm/stockstats/internal/service"
)

// Handler provides HTTP handlers for the stock statistics endpoint.
//
// Responsibilities:
//   - Read the ticker and date query parameters
//   - Delegate validation and aggregation to the service layer
//   - Translate service error kinds into HTTP status codes
//   - Return structured JSON responses
type Handler struct {
	svc service.StatsService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.StatsService): Service that validates the request and merges the three data sources.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.StatsService) *Handler {
	return &Handler{svc: svc}
}

// GetStats handles GET /api/v1/stats requests.
//
// Query Parameters:
//   - ticker (string, required): Stock ticker symbol (e.g., "XYZ"), case-insensitive.
//   - date (string, required): As-of date in YYYY-MM-DD format.
//
// Responses:
//   - 200 OK: StockStatsResponse with the daily bar and classified messages.
//   - 400 Bad Request: Missing/invalid parameters or ticker unknown to the market data store.
//   - 500 Internal Server Error: Failure of the price store, social feed or sentiment API.
//
// GetStats godoc
// @Summary      Get stock statistics
// @Description  Returns the daily price bar of a ticker together with social messages classified by sentiment
// @Tags         stats
// @Accept       json
// @Produce      json
// @Param        ticker  query     string  true  "Stock ticker" example(XYZ)
// @Param        date    query     string  true  "As-of date in YYYY-MM-DD" example(2012-11-01)
// @Success      200     {object}  dto.StockStatsResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse       "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	ticker := c.Query("ticker")

	stats, err := h.svc.Search(c.Request.Context(), ticker, c.Query("date"))
	if err != nil {
		status, msg, cause := describe(err)
		middleware.AbortWithError(c, status, msg, cause)
		return
	}

	c.JSON(http.StatusOK, dto.NewStockStatsResponse(service.NormalizeTicker(ticker), *stats))
}

// statusFor is the single place where service error kinds become HTTP codes.
func statusFor(k service.Kind) int {
	switch k {
	case service.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func describe(err error) (status int, message string, cause error) {
	var se *service.Error
	if errors.As(err, &se) {
		return statusFor(se.Kind), se.Message, se.Err
	}
	return http.StatusInternalServerError, "internal error", err
}
