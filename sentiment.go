package reviewlex

// Classification thresholds. A score of exactly PositiveThreshold is
// positive and a score of exactly NegativeThreshold is negative.
const (
	PositiveThreshold = 0.33
	NegativeThreshold = -0.33
)

// ScoreTokens returns the sum of the lexicon scores of tokens. Unknown tokens
// count as 0.0 and an empty list scores 0.0.
func ScoreTokens(tokens TokenList, lex SentimentLexicon) float64 {
	score := 0.0
	for _, tok := range tokens {
		score += lex.Score(tok)
	}
	return score
}

// Classify buckets a score into a sentiment label.
//
// The comparison chain is kept as three explicit checks; the middle check is
// redundant after the first one but pins which branch the boundaries take.
func Classify(score float64) SentimentLabel {
	if score >= PositiveThreshold {
		return Positive
	}
	if score < PositiveThreshold && score > NegativeThreshold {
		return Neutral
	}
	return Negative
}

// SentimentAnalyzer scores normalized review text against a lexicon.
type SentimentAnalyzer struct {
	lexicon SentimentLexicon
}

// NewSentimentAnalyzer creates a sentiment analyzer for lex.
func NewSentimentAnalyzer(lex SentimentLexicon) *SentimentAnalyzer {
	return &SentimentAnalyzer{lexicon: lex}
}

// Score tokenizes normalized text and returns its summed polarity.
func (sa *SentimentAnalyzer) Score(text string) float64 {
	return ScoreTokens(Tokenize(text), sa.lexicon)
}

// Analyze returns the score and label of normalized text.
func (sa *SentimentAnalyzer) Analyze(text string) (float64, SentimentLabel) {
	score := sa.Score(text)
	return score, Classify(score)
}

// AnalyzeRecord returns the sentiment row of a normalized review.
func (sa *SentimentAnalyzer) AnalyzeRecord(rec ReviewRecord) SentimentRow {
	score, label := sa.Analyze(rec.Text)
	return SentimentRow{ID: rec.ID, Score: score, Label: label}
}
