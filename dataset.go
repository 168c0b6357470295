package reviewlex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

// A LoadOpt represents a setting that changes how the review dataset is read.
//
// For example, it might switch the input encoding:
//
//	records, err := reviewlex.LoadReviews("reviews.csv", reviewlex.WithEncoding("utf-8"))
type LoadOpt func(opts *LoadOpts)

// LoadOpts controls how the review dataset is read.
type LoadOpts struct {
	Delimiter    rune   // Field separator
	Encoding     string // Input encoding: latin-1, windows-1252 or utf-8
	IDColumn     string // Header of the product id column
	RatingColumn string // Header of the rating column
	TextColumn   string // Header of the review text column
}

var defaultLoadOpts = LoadOpts{
	Delimiter:    ';',
	Encoding:     "latin-1",
	IDColumn:     "id",
	RatingColumn: "rating",
	TextColumn:   "text",
}

// WithDelimiter sets the field separator.
func WithDelimiter(delim rune) LoadOpt {
	return func(opts *LoadOpts) {
		opts.Delimiter = delim
	}
}

// WithEncoding sets the input encoding.
func WithEncoding(name string) LoadOpt {
	return func(opts *LoadOpts) {
		opts.Encoding = name
	}
}

// WithColumns sets the headers of the id, rating and text columns. Empty
// names keep the current setting.
func WithColumns(id, rating, text string) LoadOpt {
	return func(opts *LoadOpts) {
		if id != "" {
			opts.IDColumn = id
		}
		if rating != "" {
			opts.RatingColumn = rating
		}
		if text != "" {
			opts.TextColumn = text
		}
	}
}

// LoadReviews reads the review dataset at path.
func LoadReviews(path string, opts ...LoadOpt) ([]ReviewRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, resourceErr(path, 0, ErrResourceNotFound, nil)
		}
		return nil, &ResourceError{Path: path, Err: err}
	}
	defer f.Close()
	return readReviews(f, path, opts...)
}

// ReadReviews reads a review dataset from r.
func ReadReviews(r io.Reader, opts ...LoadOpt) ([]ReviewRecord, error) {
	return readReviews(r, "dataset", opts...)
}

func readReviews(r io.Reader, name string, opts ...LoadOpt) ([]ReviewRecord, error) {
	base := defaultLoadOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}

	dec, err := decodeReader(r, base.Encoding, name)
	if err != nil {
		return nil, err
	}

	df := dataframe.ReadCSV(dec,
		dataframe.WithDelimiter(base.Delimiter),
		dataframe.WithLazyQuotes(true),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, resourceErr(name, 0, ErrParse, df.Err)
	}

	ids, err := column(df, base.IDColumn, name)
	if err != nil {
		return nil, err
	}
	ratings, err := column(df, base.RatingColumn, name)
	if err != nil {
		return nil, err
	}
	texts, err := column(df, base.TextColumn, name)
	if err != nil {
		return nil, err
	}

	records := make([]ReviewRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		// Row i is line i+2 of the file: line 1 is the header.
		line := i + 2

		id := cellString(ids.Elem(i))
		if id == "" {
			return nil, resourceErr(name, line, ErrParse, errors.New("missing id"))
		}

		rating, err := strconv.Atoi(cellString(ratings.Elem(i)))
		if err != nil || rating < 1 || rating > 5 {
			return nil, resourceErr(name, line, ErrParse,
				fmt.Errorf("rating %q is not an integer from 1 to 5", cellString(ratings.Elem(i))))
		}

		records = append(records, ReviewRecord{
			ID:     id,
			Rating: rating,
			Text:   cellString(texts.Elem(i)),
		})
	}

	return records, nil
}

// column finds a column by header, ignoring case and surrounding spaces.
func column(df dataframe.DataFrame, header, name string) (series.Series, error) {
	for _, n := range df.Names() {
		if strings.EqualFold(strings.TrimSpace(n), header) {
			return df.Col(n), nil
		}
	}
	return series.Series{}, resourceErr(name, 1, ErrParse, fmt.Errorf("missing column %q", header))
}

func cellString(e series.Element) string {
	if e.IsNA() {
		return ""
	}
	return strings.TrimSpace(e.String())
}

// decodeReader wraps r so that it yields UTF-8.
func decodeReader(r io.Reader, encoding, name string) (io.Reader, error) {
	switch canonicalEncoding(encoding) {
	case "latin1", "iso88591":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case "utf8":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, &ResourceError{Path: name, Err: err}
		}
		if !utf8.Valid(data) {
			return nil, resourceErr(name, 0, ErrDecode, errors.New("invalid UTF-8"))
		}
		return bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
	}
	return nil, fmt.Errorf("%w: unknown encoding %q", ErrConfiguration, encoding)
}

func canonicalEncoding(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}
