package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/stockstats/internal/domain/models"
)

// Client calls the sentiment classification API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a sentiment client. token may be empty.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Texts []string `json:"texts"`
}

// classifyResponse holds one label per input text, in input order.
type classifyResponse struct {
	Labels []string `json:"labels"`
}

// Classify sends the message texts in one batch and writes the returned
// labels back into messages. Nothing is written unless every label is valid.
func (c *Client) Classify(ctx context.Context, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	in := classifyRequest{Texts: make([]string, len(messages))}
	for i, m := range messages {
		in.Texts[i] = m.Text
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sentiment API error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out classifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if len(out.Labels) != len(messages) {
		return fmt.Errorf("sentiment API returned %d labels for %d messages", len(out.Labels), len(messages))
	}

	labels := make([]models.Sentiment, len(out.Labels))
	for i, l := range out.Labels {
		s := models.Sentiment(strings.ToUpper(strings.TrimSpace(l)))
		if !s.Valid() {
			return fmt.Errorf("unknown sentiment label %q for message %s", l, messages[i].ID)
		}
		labels[i] = s
	}
	for i := range messages {
		messages[i].Sentiment = labels[i]
	}
	return nil
}
