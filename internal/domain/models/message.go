package models

// Sentiment is the tone label assigned to a message by the classifier.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Message is a short social-media post mentioning a ticker.
// Sentiment stays empty until the classifier has labelled it.
type Message struct {
	ID        string    `json:"id" example:"1"`
	Text      string    `json:"text" example:"Love it."`
	Sentiment Sentiment `json:"sentiment,omitempty" example:"POSITIVE"`
}
