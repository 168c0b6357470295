package reviewlex

import (
	"encoding/json"
	"math"
	"testing"
)

func testLexicon() SentimentLexicon {
	return NewSentimentLexicon(map[string]float64{
		"gut":      0.5,
		"schlecht": -0.7,
		"toll":     0.33,
		"mies":     -0.33,
	})
}

func TestScoreTokens(t *testing.T) {
	lex := testLexicon()

	tests := []struct {
		tokens   TokenList
		expected float64
		label    SentimentLabel
		desc     string
	}{
		{TokenList{"gut", "gut", "unknown"}, 1.0, Positive, "Repeated positive word"},
		{TokenList{"schlecht"}, -0.7, Negative, "Negative word"},
		{TokenList{}, 0.0, Neutral, "Empty list"},
		{nil, 0.0, Neutral, "Nil list"},
		{TokenList{"gut", "schlecht"}, -0.2, Neutral, "Mixed"},
		{TokenList{"unknown", "words"}, 0.0, Neutral, "Unknown words"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			score := ScoreTokens(tt.tokens, lex)
			if math.Abs(score-tt.expected) > 1e-9 {
				t.Errorf("Tokens: %q\nExpected score: %.2f\nGot: %.2f", tt.tokens, tt.expected, score)
			}
			if label := Classify(score); label != tt.label {
				t.Errorf("Tokens: %q\nExpected label: %s\nGot: %s", tt.tokens, tt.label, label)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score    float64
		expected SentimentLabel
		desc     string
	}{
		{0.33, Positive, "Positive boundary"},
		{-0.33, Negative, "Negative boundary"},
		{0.0, Neutral, "Zero"},
		{0.3299, Neutral, "Just below positive boundary"},
		{-0.3299, Neutral, "Just above negative boundary"},
		{5.0, Positive, "Large positive"},
		{-5.0, Negative, "Large negative"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Classify(tt.score); got != tt.expected {
				t.Errorf("Score: %v\nExpected: %s\nGot: %s", tt.score, tt.expected, got)
			}
		})
	}
}

func TestClassifyLexiconBoundaries(t *testing.T) {
	lex := testLexicon()
	if got := Classify(ScoreTokens(TokenList{"toll"}, lex)); got != Positive {
		t.Errorf("toll: got %s, want positive", got)
	}
	if got := Classify(ScoreTokens(TokenList{"mies"}, lex)); got != Negative {
		t.Errorf("mies: got %s, want negative", got)
	}
}

func TestSentimentAnalyzer(t *testing.T) {
	sa := NewSentimentAnalyzer(testLexicon())

	tests := []struct {
		text  string
		score float64
		label SentimentLabel
		desc  string
	}{
		{Normalize("Gut, wirklich gut!"), 1.0, Positive, "Normalized text"},
		{Normalize("Schlecht verarbeitet."), -0.7, Negative, "Negative review"},
		{"", 0.0, Neutral, "Empty text"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			score, label := sa.Analyze(tt.text)
			if math.Abs(score-tt.score) > 1e-9 || label != tt.label {
				t.Errorf("Text: %q\nExpected: %.2f %s\nGot: %.2f %s", tt.text, tt.score, tt.label, score, label)
			}
		})
	}

	row := sa.AnalyzeRecord(ReviewRecord{ID: "42", Rating: 5, Text: ""})
	if row.ID != "42" || row.Score != 0 || row.Label != Neutral {
		t.Errorf("empty review: got %+v", row)
	}
}

func TestLexiconDefault(t *testing.T) {
	lex := testLexicon()
	if got := lex.Score("absent"); got != 0.0 {
		t.Errorf("Score of absent word = %v, want 0", got)
	}
	if _, ok := lex.Lookup("absent"); ok {
		t.Error("Lookup reported an absent word as known")
	}

	var zero SentimentLexicon
	if got := zero.Score("gut"); got != 0.0 {
		t.Errorf("zero lexicon scored %v", got)
	}
}

func TestSentimentLabelJSON(t *testing.T) {
	var l SentimentLabel
	if err := json.Unmarshal([]byte(`"negative"`), &l); err != nil || l != Negative {
		t.Errorf("got %q, %v", l, err)
	}
	if err := json.Unmarshal([]byte(`"great"`), &l); err == nil {
		t.Error("expected an error for an unknown label")
	}

	labels := SentimentLabels()
	labels[0] = "changed"
	if SentimentLabels()[0] != Positive {
		t.Error("SentimentLabels exposes internal state")
	}
}
