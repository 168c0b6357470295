package reviewlex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTopWords is the number of most frequent keywords kept in a report.
const DefaultTopWords = 10

// Report holds every table produced by an analysis run.
type Report struct {
	Records []ReviewRecord `json:"-"` // Normalized input

	Sentiments           []SentimentRow           `json:"sentiments"`
	OverallSentiment     []LabelCount             `json:"overall_sentiment"`
	SentimentPerProduct  []ProductLabelCount      `json:"sentiment_per_product"`
	AverageRatings       []ProductRating          `json:"average_ratings"`
	RatingDistribution   []RatingCount            `json:"rating_distribution"`
	ProductDistributions map[string][]RatingCount `json:"product_distributions"`
	EncodedRatings       []EncodedRating          `json:"encoded_ratings"`
	RatingLabelCounts    []RatingLabelCount       `json:"rating_label_counts"`
	Keywords             []ProductTokens          `json:"keywords"`
	KeywordCorpus        []string                 `json:"keyword_corpus"`
	TopWords             []WordCount              `json:"top_words"`
	ReviewLengths        []ReviewLength           `json:"review_lengths"`
	ReviewLengthStats    []ProductLengthStats     `json:"review_length_stats"`

	// Timings holds the wall time of every step. It differs between runs
	// and is not part of the report's content.
	Timings map[string]time.Duration `json:"-"`
}

// An AnalyzeOpt represents a setting that changes an analysis run.
type AnalyzeOpt func(opts *AnalyzeOpts)

// AnalyzeOpts controls an analysis run.
type AnalyzeOpts struct {
	Concurrent bool           // Run the independent steps in parallel
	Workers    int            // Parallelism bound; below 1 means runtime.NumCPU()
	Logger     *zap.Logger    // Receives step timings
	TopWords   int            // Number of most frequent keywords
	Segmenter  Segmenter      // Sentence splitter for review lengths
	Progress   func(done int) // Called while normalizing records
}

// WithConcurrency selects the fan-out mode.
func WithConcurrency(include bool) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.Concurrent = include
	}
}

// WithWorkers bounds the number of steps running at once.
func WithWorkers(n int) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.Workers = n
	}
}

// WithLogger sets the logger that receives step timings.
func WithLogger(logger *zap.Logger) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithTopWords sets the number of most frequent keywords kept.
func WithTopWords(n int) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.TopWords = n
	}
}

// WithSegmenter sets the sentence splitter used for review lengths. The
// default is a PunktSegmenter.
func WithSegmenter(seg Segmenter) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.Segmenter = seg
	}
}

// WithProgress sets a callback receiving the number of normalized records.
func WithProgress(fn func(done int)) AnalyzeOpt {
	return func(opts *AnalyzeOpts) {
		opts.Progress = fn
	}
}

// Analyze normalizes records and computes every report table.
//
// The independent steps run one after the other or, WithConcurrency(true),
// through RunAll. The aggregate tables are derived after all steps finished,
// so both modes produce the same report.
func Analyze(ctx context.Context, records []ReviewRecord, res Resources, opts ...AnalyzeOpt) (*Report, error) {
	base := AnalyzeOpts{
		Logger:   zap.NewNop(),
		TopWords: DefaultTopWords,
	}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if base.Segmenter == nil {
		seg, err := NewPunktSegmenter()
		if err != nil {
			return nil, fmt.Errorf("failed to load sentence model: %w", err)
		}
		base.Segmenter = seg
	}

	log := base.Logger.With(zap.Bool("concurrent", base.Concurrent))
	rep := &Report{Timings: make(map[string]time.Duration)}

	start := time.Now()
	rep.Records = NormalizeRecords(records, base.Progress)
	rep.Timings["normalize"] = time.Since(start)
	log.Info("normalized reviews", zap.Int("records", len(records)), zap.Duration("took", rep.Timings["normalize"]))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	norm := rep.Records
	steps := []struct {
		name string
		run  func()
	}{
		{"sentiment", func() { rep.Sentiments = SentimentRows(norm, res.Lexicon) }},
		{"average_rating", func() { rep.AverageRatings = AverageRatingPerProduct(norm) }},
		{"rating_distribution", func() {
			rep.RatingDistribution = RatingDistribution(norm)
			rep.ProductDistributions = RatingDistributionPerProduct(norm)
		}},
		{"encode_ratings", func() { rep.EncodedRatings = EncodeRatings(norm) }},
		{"keywords", func() { rep.Keywords = FilteredKeywords(norm, res.Stopwords, res.Nouns) }},
		{"review_lengths", func() { rep.ReviewLengths = ReviewLengths(norm, base.Segmenter) }},
	}

	// Every step writes its own slot; the map is filled after the barrier.
	took := make([]time.Duration, len(steps))
	tasks := make([]Task, len(steps))
	for i, step := range steps {
		i, step := i, step
		tasks[i] = func(context.Context) error {
			t := time.Now()
			step.run()
			took[i] = time.Since(t)
			return nil
		}
	}

	start = time.Now()
	var err error
	if base.Concurrent {
		err = RunAll(ctx, base.Workers, tasks...)
	} else {
		err = RunSequential(ctx, tasks...)
	}
	if err != nil {
		return nil, err
	}
	rep.Timings["steps"] = time.Since(start)
	for i, step := range steps {
		rep.Timings[step.name] = took[i]
		log.Debug("step finished", zap.String("step", step.name), zap.Duration("took", took[i]))
	}

	rep.OverallSentiment = OverallSentiment(rep.Sentiments)
	rep.SentimentPerProduct = SentimentPerProduct(rep.Sentiments)
	rep.RatingLabelCounts = RatingLabelCounts(rep.EncodedRatings)
	rep.KeywordCorpus = KeywordCorpus(rep.Keywords)
	rep.TopWords = TopWords(rep.KeywordCorpus, base.TopWords)
	rep.ReviewLengthStats = ReviewLengthStats(rep.ReviewLengths)

	log.Info("analysis finished",
		zap.Int("records", len(norm)),
		zap.Int("keywords", len(rep.KeywordCorpus)),
		zap.Duration("took", rep.Timings["steps"]),
	)
	return rep, nil
}
