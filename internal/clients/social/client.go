package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/stockstats/internal/domain/models"
)

// Client searches the social feed API for messages mentioning a ticker.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a social feed client. token may be empty.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// searchResponse is the body of GET /messages/search.
type searchResponse struct {
	Messages []struct {
		ID   string `json:"id"`
		Body string `json:"body"`
	} `json:"messages"`
}

// Search fetches one page of messages mentioning symbol that were posted on date.
// The returned slice keeps the order of the API response.
func (c *Client) Search(ctx context.Context, symbol string, date time.Time, pageSize, page int) ([]models.Message, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("date", date.Format("2006-01-02"))
	q.Set("per_page", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("social API error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	msgs := make([]models.Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, models.Message{ID: m.ID, Text: m.Body})
	}
	return msgs, nil
}
