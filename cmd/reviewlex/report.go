package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"github.com/tsawler/reviewlex"
)

// Chart kinds, named after the plots they replace.
const (
	KindPie       = "pie"
	KindHistogram = "histogram"
)

// ChartSpec describes how a table is meant to be plotted.
type ChartSpec struct {
	Name   string `json:"-"` // File name without extension
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	X      string `json:"x"`
	Y      string `json:"y"`
}

// chartDoc is the JSON document written for every chart.
type chartDoc struct {
	ChartSpec
	Rows any `json:"rows"`
}

// Summary is written to summary.json after a run.
type Summary struct {
	RunID     string           `json:"run_id"`
	Mode      string           `json:"mode"`
	StartedAt time.Time        `json:"started_at"`
	Records   int              `json:"records"`
	Products  int              `json:"products"`
	Keywords  int              `json:"keywords"`
	Durations map[string]int64 `json:"durations_ms"`
}

// reportWriter writes report files below dir.
type reportWriter struct {
	dir string
	log *zap.Logger
}

func newReportWriter(outputDir string, log *zap.Logger) (*reportWriter, error) {
	dir := filepath.Join(outputDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create report dir: %w", err)
	}
	return &reportWriter{dir: dir, log: log}, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// fileID makes a product id usable inside a file name.
func fileID(id string) string {
	return unsafeName.ReplaceAllString(id, "_")
}

// writeChart writes the JSON document of spec and a CSV rendering of rows.
// csvRows must be a slice of structs with plain field types; an empty slice
// writes no CSV.
func (w *reportWriter) writeChart(spec *ChartSpec, rows any, csvRows any, n int) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("%w: chart without name", reviewlex.ErrConfiguration)
	}
	if err := w.writeJSON(spec.Name+".json", chartDoc{ChartSpec: *spec, Rows: rows}); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return w.writeCSV(spec.Name+".csv", csvRows)
}

func (w *reportWriter) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return err
	}
	w.log.Debug("report written", zap.String("file", path))
	return nil
}

func (w *reportWriter) writeCSV(name string, rows any) error {
	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return fmt.Errorf("%s: %w", name, df.Err)
	}
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	w.log.Debug("report written", zap.String("file", path))
	return f.Close()
}

func (w *reportWriter) writeLines(name string, lines []string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Plain row types for CSV output.
type (
	labelCountRow struct {
		Sentiment string `dataframe:"sentiment"`
		Count     int    `dataframe:"count"`
	}
	ratingCountRow struct {
		Rating int `dataframe:"rating"`
		Count  int `dataframe:"count"`
	}
	ratingLabelRow struct {
		Rating string `dataframe:"rating"`
		Count  int    `dataframe:"count"`
	}
	productRatingRow struct {
		Article string  `dataframe:"article"`
		Rating  float64 `dataframe:"rating"`
	}
	wordCountRow struct {
		Word  string `dataframe:"word"`
		Count int    `dataframe:"count"`
	}
	sentimentRow struct {
		ID    string `dataframe:"id"`
		Label string `dataframe:"encoded_score"`
	}
	lengthStatsRow struct {
		ProductID     string  `dataframe:"product_id"`
		Reviews       int     `dataframe:"reviews"`
		MeanSentences float64 `dataframe:"mean_sentences"`
		MeanTokens    float64 `dataframe:"mean_tokens"`
	}
)

func labelCountRows(in []reviewlex.LabelCount) []labelCountRow {
	out := make([]labelCountRow, len(in))
	for i, c := range in {
		out[i] = labelCountRow{Sentiment: c.Label.String(), Count: c.Count}
	}
	return out
}

func ratingCountRows(in []reviewlex.RatingCount) []ratingCountRow {
	out := make([]ratingCountRow, len(in))
	for i, c := range in {
		out[i] = ratingCountRow{Rating: c.Rating, Count: c.Count}
	}
	return out
}

// writeReport writes every table of rep.
func (w *reportWriter) writeReport(rep *reviewlex.Report) error {
	// Sentiment per product, one pie per product.
	perProduct := make(map[string][]reviewlex.LabelCount)
	for _, c := range rep.SentimentPerProduct {
		perProduct[c.ID] = append(perProduct[c.ID], reviewlex.LabelCount{Label: c.Label, Count: c.Count})
	}
	for _, id := range reviewlex.ProductIDs(rep.Records) {
		counts := perProduct[id]
		spec := &ChartSpec{
			Name:  fmt.Sprintf("product_%s_sentiment_from_text", fileID(id)),
			Kind:  KindPie,
			Title: fmt.Sprintf("Sentiment from text for product: %s", id),
			X:     "sentiment",
			Y:     "count",
		}
		if err := w.writeChart(spec, counts, labelCountRows(counts), len(counts)); err != nil {
			return err
		}
	}

	overall := &ChartSpec{
		Name:  "overall_sentiment_from_text",
		Kind:  KindPie,
		Title: "Overall sentiment from text",
		X:     "sentiment",
		Y:     "count",
	}
	if err := w.writeChart(overall, rep.OverallSentiment, labelCountRows(rep.OverallSentiment), len(rep.OverallSentiment)); err != nil {
		return err
	}

	avg := make([]productRatingRow, len(rep.AverageRatings))
	for i, r := range rep.AverageRatings {
		avg[i] = productRatingRow{Article: r.ID, Rating: r.Rating}
	}
	avgSpec := &ChartSpec{
		Name:   "average_rating_per_product",
		Kind:   KindHistogram,
		Title:  "Average rating per product",
		XLabel: "Article",
		YLabel: "Rating",
		X:      "article",
		Y:      "rating",
	}
	if err := w.writeChart(avgSpec, rep.AverageRatings, avg, len(avg)); err != nil {
		return err
	}

	total := &ChartSpec{
		Name:   "total_rating_distribution",
		Kind:   KindHistogram,
		Title:  "Total Ratings",
		XLabel: "Ratings",
		YLabel: "Count",
		X:      "rating",
		Y:      "count",
	}
	if err := w.writeChart(total, rep.RatingDistribution, ratingCountRows(rep.RatingDistribution), len(rep.RatingDistribution)); err != nil {
		return err
	}
	for _, id := range reviewlex.ProductIDs(rep.Records) {
		dist := rep.ProductDistributions[id]
		spec := &ChartSpec{
			Name:   fmt.Sprintf("product_%s_rating_distribution", fileID(id)),
			Kind:   KindHistogram,
			Title:  fmt.Sprintf("Total ratings for product: %s", id),
			XLabel: "Ratings",
			YLabel: "Count",
			X:      "rating",
			Y:      "count",
		}
		if err := w.writeChart(spec, dist, ratingCountRows(dist), len(dist)); err != nil {
			return err
		}
	}

	encoded := make([]ratingLabelRow, len(rep.RatingLabelCounts))
	for i, c := range rep.RatingLabelCounts {
		encoded[i] = ratingLabelRow{Rating: string(c.Label), Count: c.Count}
	}
	encSpec := &ChartSpec{
		Name:  "total_ratings_encoded",
		Kind:  KindPie,
		Title: "Ratings from very positive to very negative",
		X:     "rating",
		Y:     "count",
	}
	if err := w.writeChart(encSpec, rep.RatingLabelCounts, encoded, len(encoded)); err != nil {
		return err
	}

	words := make([]wordCountRow, len(rep.TopWords))
	for i, wc := range rep.TopWords {
		words[i] = wordCountRow{Word: wc.Word, Count: wc.Count}
	}
	wordSpec := &ChartSpec{
		Name:   "most_frequent_words",
		Kind:   KindHistogram,
		Title:  "Most frequent words",
		XLabel: "Word",
		YLabel: "Count",
		X:      "word",
		Y:      "count",
	}
	if err := w.writeChart(wordSpec, rep.TopWords, words, len(words)); err != nil {
		return err
	}

	lengths := make([]lengthStatsRow, len(rep.ReviewLengthStats))
	for i, s := range rep.ReviewLengthStats {
		lengths[i] = lengthStatsRow{ProductID: s.ID, Reviews: s.Reviews, MeanSentences: s.MeanSentences, MeanTokens: s.MeanTokens}
	}
	lenSpec := &ChartSpec{
		Name:   "review_length_stats",
		Kind:   KindHistogram,
		Title:  "Mean review length per product",
		XLabel: "Article",
		YLabel: "Tokens",
		X:      "product_id",
		Y:      "mean_tokens",
	}
	if err := w.writeChart(lenSpec, rep.ReviewLengthStats, lengths, len(lengths)); err != nil {
		return err
	}

	if len(rep.Sentiments) > 0 {
		rows := make([]sentimentRow, len(rep.Sentiments))
		for i, s := range rep.Sentiments {
			rows[i] = sentimentRow{ID: s.ID, Label: s.Label.String()}
		}
		if err := w.writeCSV("sentiment_per_review.csv", rows); err != nil {
			return err
		}
	}

	return w.writeLines("keyword_corpus.txt", rep.KeywordCorpus)
}

// writeSummary writes summary.json.
func (w *reportWriter) writeSummary(s Summary) error {
	return w.writeJSON("summary.json", s)
}
