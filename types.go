package reviewlex

import (
	"encoding/json"
	"fmt"
)

// A ReviewRecord represents one row of the review dataset.
type ReviewRecord struct {
	ID     string // Product or style identifier
	Rating int    // Star rating, 1 to 5
	Text   string // Review text, possibly empty
}

// TokenList is an ordered sequence of tokens taken from normalized text.
type TokenList []string

// SentimentLabel represents the sentiment category derived from a score.
type SentimentLabel string

const (
	Positive SentimentLabel = "positive"
	Neutral  SentimentLabel = "neutral"
	Negative SentimentLabel = "negative"
)

// sentimentLabels lists the labels in display order.
var sentimentLabels = []SentimentLabel{Positive, Neutral, Negative}

// SentimentLabels returns every sentiment label in display order.
func SentimentLabels() []SentimentLabel {
	out := make([]SentimentLabel, len(sentimentLabels))
	copy(out, sentimentLabels)
	return out
}

// String returns the label text.
func (l SentimentLabel) String() string {
	return string(l)
}

// UnmarshalJSON decodes a label and rejects unknown values.
func (l *SentimentLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, known := range sentimentLabels {
		if string(known) == s {
			*l = known
			return nil
		}
	}
	return fmt.Errorf("reviewlex: unknown sentiment label: %q", s)
}

// RatingLabel represents the verbal encoding of a star rating.
type RatingLabel string

const (
	VeryPositiveRating RatingLabel = "very positive" // 5 stars
	PositiveRating     RatingLabel = "positive"      // 4 stars
	NeutralRating      RatingLabel = "neutral"       // 3 stars
	NegativeRating     RatingLabel = "negative"      // 2 stars
	VeryNegativeRating RatingLabel = "very negative" // 1 star
)

var ratingLabels = map[int]RatingLabel{
	5: VeryPositiveRating,
	4: PositiveRating,
	3: NeutralRating,
	2: NegativeRating,
	1: VeryNegativeRating,
}

// EncodeRating returns the label of a star rating, or "" for ratings outside 1..5.
func EncodeRating(rating int) RatingLabel {
	return ratingLabels[rating]
}

// SentimentRow is one line of the per-review sentiment table.
type SentimentRow struct {
	ID    string         `json:"id"`
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`
}

// LabelCount counts reviews per sentiment label.
type LabelCount struct {
	Label SentimentLabel `json:"sentiment"`
	Count int            `json:"count"`
}

// ProductLabelCount counts reviews per product and sentiment label.
type ProductLabelCount struct {
	ID    string         `json:"product_id"`
	Label SentimentLabel `json:"sentiment"`
	Count int            `json:"count"`
}

// ProductRating holds the rounded mean rating of a product.
type ProductRating struct {
	ID     string  `json:"article"`
	Rating float64 `json:"rating"`
}

// RatingCount counts reviews per star rating.
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// EncodedRating pairs a review's product with its verbal rating.
type EncodedRating struct {
	ID    string      `json:"id"`
	Label RatingLabel `json:"rating"`
}

// RatingLabelCount counts reviews per verbal rating.
type RatingLabelCount struct {
	Label RatingLabel `json:"rating"`
	Count int         `json:"count"`
}

// ProductTokens holds the retained keywords of one review.
type ProductTokens struct {
	ID     string    `json:"id"`
	Tokens TokenList `json:"text"`
}

// WordCount is a word and its frequency in the keyword corpus.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ReviewLength holds the size of one normalized review.
type ReviewLength struct {
	ID        string `json:"id"`
	Sentences int    `json:"sentences"`
	Tokens    int    `json:"tokens"`
}

// ProductLengthStats holds the mean review size of a product.
type ProductLengthStats struct {
	ID            string  `json:"product_id"`
	Reviews       int     `json:"reviews"`
	MeanSentences float64 `json:"mean_sentences"`
	MeanTokens    float64 `json:"mean_tokens"`
}
