package reviewlex

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// NormalizeRecords returns copies of records with normalized text. When
// progress is not nil it is called after every record with the number of
// records done.
func NormalizeRecords(records []ReviewRecord, progress func(done int)) []ReviewRecord {
	out := make([]ReviewRecord, len(records))
	for i, rec := range records {
		rec.Text = Normalize(rec.Text)
		out[i] = rec
		if progress != nil {
			progress(i + 1)
		}
	}
	return out
}

// SentimentRows scores every normalized review.
func SentimentRows(records []ReviewRecord, lex SentimentLexicon) []SentimentRow {
	sa := NewSentimentAnalyzer(lex)
	rows := make([]SentimentRow, len(records))
	for i, rec := range records {
		rows[i] = sa.AnalyzeRecord(rec)
	}
	return rows
}

// OverallSentiment counts reviews per label, most frequent first. Labels
// with equal counts keep display order; labels with no reviews are omitted.
func OverallSentiment(rows []SentimentRow) []LabelCount {
	counts := make(map[SentimentLabel]int)
	for _, row := range rows {
		counts[row.Label]++
	}
	out := make([]LabelCount, 0, len(counts))
	for _, label := range sentimentLabels {
		if n := counts[label]; n > 0 {
			out = append(out, LabelCount{Label: label, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// SentimentPerProduct counts reviews per product and label, sorted by
// product id and then label.
func SentimentPerProduct(rows []SentimentRow) []ProductLabelCount {
	type key struct {
		id    string
		label SentimentLabel
	}
	counts := make(map[key]int)
	for _, row := range rows {
		counts[key{row.ID, row.Label}]++
	}
	out := make([]ProductLabelCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, ProductLabelCount{ID: k.id, Label: k.label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// ProductIDs returns the distinct product ids of records in sorted order.
func ProductIDs(records []ReviewRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, rec := range records {
		if !seen[rec.ID] {
			seen[rec.ID] = true
			ids = append(ids, rec.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// AverageRatingPerProduct returns the mean rating of every product rounded
// to two decimals, sorted by product id.
func AverageRatingPerProduct(records []ReviewRecord) []ProductRating {
	ratings := make(map[string][]float64)
	for _, rec := range records {
		ratings[rec.ID] = append(ratings[rec.ID], float64(rec.Rating))
	}
	ids := ProductIDs(records)
	out := make([]ProductRating, len(ids))
	for i, id := range ids {
		out[i] = ProductRating{ID: id, Rating: round2(stat.Mean(ratings[id], nil))}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RatingDistribution counts reviews per rating, in ascending rating order.
// Ratings without reviews are omitted.
func RatingDistribution(records []ReviewRecord) []RatingCount {
	counts := make(map[int]int)
	for _, rec := range records {
		counts[rec.Rating]++
	}
	out := make([]RatingCount, 0, len(counts))
	for rating, n := range counts {
		out = append(out, RatingCount{Rating: rating, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	return out
}

// RatingDistributionPerProduct returns the rating distribution of every product.
func RatingDistributionPerProduct(records []ReviewRecord) map[string][]RatingCount {
	byID := make(map[string][]ReviewRecord)
	for _, rec := range records {
		byID[rec.ID] = append(byID[rec.ID], rec)
	}
	out := make(map[string][]RatingCount, len(byID))
	for id, recs := range byID {
		out[id] = RatingDistribution(recs)
	}
	return out
}

// EncodeRatings replaces every rating with its verbal label.
func EncodeRatings(records []ReviewRecord) []EncodedRating {
	out := make([]EncodedRating, len(records))
	for i, rec := range records {
		out[i] = EncodedRating{ID: rec.ID, Label: EncodeRating(rec.Rating)}
	}
	return out
}

// RatingLabelCounts counts encoded ratings per label, most frequent first.
// Labels with equal counts are ordered from very positive to very negative.
func RatingLabelCounts(encoded []EncodedRating) []RatingLabelCount {
	counts := make(map[RatingLabel]int)
	for _, e := range encoded {
		counts[e.Label]++
	}
	var out []RatingLabelCount
	for rating := 5; rating >= 1; rating-- {
		label := EncodeRating(rating)
		if n := counts[label]; n > 0 {
			out = append(out, RatingLabelCount{Label: label, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// FilteredKeywords tokenizes every normalized review and keeps its
// whitelisted non-stopword nouns.
func FilteredKeywords(records []ReviewRecord, stop StopwordSet, nouns NounWhitelist) []ProductTokens {
	out := make([]ProductTokens, len(records))
	for i, rec := range records {
		out[i] = ProductTokens{ID: rec.ID, Tokens: FilterTokens(Tokenize(rec.Text), stop, nouns)}
	}
	return out
}

// KeywordCorpus flattens the retained keywords of all reviews into one list.
// Duplicates are kept for frequency counting.
func KeywordCorpus(filtered []ProductTokens) []string {
	corpus := []string{}
	for _, pt := range filtered {
		corpus = append(corpus, pt.Tokens...)
	}
	return corpus
}

// TopWords returns the n most frequent words of corpus. Words with equal
// counts are ordered by first occurrence. A negative n returns every word.
func TopWords(corpus []string, n int) []WordCount {
	counts := make(map[string]int)
	var order []string
	for _, w := range corpus {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	out := make([]WordCount, len(order))
	for i, w := range order {
		out[i] = WordCount{Word: w, Count: counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ReviewLengths counts the sentences and tokens of every normalized review.
func ReviewLengths(records []ReviewRecord, seg Segmenter) []ReviewLength {
	out := make([]ReviewLength, len(records))
	for i, rec := range records {
		out[i] = ReviewLength{
			ID:        rec.ID,
			Sentences: len(seg.Segment(rec.Text)),
			Tokens:    len(Tokenize(rec.Text)),
		}
	}
	return out
}

// ReviewLengthStats averages review lengths per product, sorted by product id.
func ReviewLengthStats(lengths []ReviewLength) []ProductLengthStats {
	sentences := make(map[string][]float64)
	tokens := make(map[string][]float64)
	var ids []string
	for _, l := range lengths {
		if _, ok := sentences[l.ID]; !ok {
			ids = append(ids, l.ID)
		}
		sentences[l.ID] = append(sentences[l.ID], float64(l.Sentences))
		tokens[l.ID] = append(tokens[l.ID], float64(l.Tokens))
	}
	sort.Strings(ids)

	out := make([]ProductLengthStats, len(ids))
	for i, id := range ids {
		out[i] = ProductLengthStats{
			ID:            id,
			Reviews:       len(sentences[id]),
			MeanSentences: round2(stat.Mean(sentences[id], nil)),
			MeanTokens:    round2(stat.Mean(tokens[id], nil)),
		}
	}
	return out
}
