package reviewlex

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// NounTag is the part-of-speech tag kept when building the noun whitelist.
const NounTag = "NN"

// maxLineBytes bounds a single line of a word list.
const maxLineBytes = 1 << 20 // 1 MiB

// wordSet is an immutable set of normalized words.
type wordSet struct {
	words map[string]struct{}
}

func newWordSet(words []string) wordSet {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = NormalizeEntry(w); w != "" {
			m[w] = struct{}{}
		}
	}
	return wordSet{words: m}
}

// Contains reports whether word is in the set. Word is expected to be
// normalized already; no folding happens at lookup time.
func (s wordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s wordSet) Len() int {
	return len(s.words)
}

// Words returns the words in sorted order.
func (s wordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func (s wordSet) union(other wordSet) wordSet {
	m := make(map[string]struct{}, len(s.words)+len(other.words))
	for w := range s.words {
		m[w] = struct{}{}
	}
	for w := range other.words {
		m[w] = struct{}{}
	}
	return wordSet{words: m}
}

// StopwordSet is the set of words excluded from keyword extraction.
type StopwordSet struct {
	wordSet
}

// NewStopwordSet builds a stopword set; every word is normalized with
// NormalizeEntry and blanks are dropped.
func NewStopwordSet(words ...string) StopwordSet {
	return StopwordSet{newWordSet(words)}
}

// Union returns a new set holding the words of both sets.
func (s StopwordSet) Union(other StopwordSet) StopwordSet {
	return StopwordSet{s.wordSet.union(other.wordSet)}
}

// NounWhitelist is the set of nouns kept by keyword extraction.
type NounWhitelist struct {
	wordSet
}

// NewNounWhitelist builds a noun whitelist; every word is normalized with
// NormalizeEntry and blanks are dropped.
func NewNounWhitelist(words ...string) NounWhitelist {
	return NounWhitelist{newWordSet(words)}
}

// Union returns a new whitelist holding the words of both whitelists.
func (n NounWhitelist) Union(other NounWhitelist) NounWhitelist {
	return NounWhitelist{n.wordSet.union(other.wordSet)}
}

// SentimentLexicon maps normalized words to polarity scores.
type SentimentLexicon struct {
	scores map[string]float64
}

// NewSentimentLexicon builds a lexicon from word scores. Keys are normalized
// with NormalizeEntry. When several keys normalize to the same word, a key
// that was already normalized wins, then the smallest raw key.
func NewSentimentLexicon(scores map[string]float64) SentimentLexicon {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := make(map[string]float64, len(scores))
	// Exact keys first.
	for _, k := range keys {
		if NormalizeEntry(k) == k && k != "" {
			m[k] = scores[k]
		}
	}
	for _, k := range keys {
		word := NormalizeEntry(k)
		if word == "" {
			continue
		}
		if _, taken := m[word]; !taken {
			m[word] = scores[k]
		}
	}
	return SentimentLexicon{scores: m}
}

// Score returns the polarity of word, or 0.0 when the word is unknown.
func (l SentimentLexicon) Score(word string) float64 {
	return l.scores[word]
}

// Lookup returns the polarity of word and whether the word is known.
func (l SentimentLexicon) Lookup(word string) (float64, bool) {
	v, ok := l.scores[word]
	return v, ok
}

// Len returns the number of words in the lexicon.
func (l SentimentLexicon) Len() int {
	return len(l.scores)
}

// Resources bundles the lexicon tables consumed by an analysis run.
// It is built once and never mutated, so it can be shared by concurrent tasks.
type Resources struct {
	Stopwords StopwordSet
	Nouns     NounWhitelist
	Lexicon   SentimentLexicon
}

// openResource opens a required input file.
func openResource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, resourceErr(path, 0, ErrResourceNotFound, nil)
		}
		return nil, &ResourceError{Path: path, Err: err}
	}
	return f, nil
}

// scanLines calls fn with every line of r after checking it is valid UTF-8.
func scanLines(r io.Reader, name string, fn func(line string, lineNo int) error) error {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for scan.Scan() {
		lineNo++
		raw := scan.Bytes()
		if lineNo == 1 {
			raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
		}
		if !utf8.Valid(raw) {
			return resourceErr(name, lineNo, ErrDecode, errors.New("invalid UTF-8"))
		}
		if err := fn(strings.TrimRight(string(raw), "\r"), lineNo); err != nil {
			return err
		}
	}
	if err := scan.Err(); err != nil {
		return resourceErr(name, lineNo+1, ErrDecode, err)
	}
	return nil
}

// readWordList reads one word per line.
func readWordList(r io.Reader, name string) ([]string, error) {
	var words []string
	err := scanLines(r, name, func(line string, _ int) error {
		if strings.TrimSpace(line) != "" {
			words = append(words, line)
		}
		return nil
	})
	return words, err
}

// LoadStopwords reads a stopword list with one word per line.
func LoadStopwords(path string) (StopwordSet, error) {
	f, err := openResource(path)
	if err != nil {
		return StopwordSet{}, err
	}
	defer f.Close()
	return readStopwords(f, path)
}

// ReadStopwords reads a stopword list from r.
func ReadStopwords(r io.Reader) (StopwordSet, error) {
	return readStopwords(r, "stopwords")
}

func readStopwords(r io.Reader, name string) (StopwordSet, error) {
	words, err := readWordList(r, name)
	if err != nil {
		return StopwordSet{}, err
	}
	return NewStopwordSet(words...), nil
}

// LoadNounWhitelist reads tagged word lists, keeps the entries tagged as
// nouns, and adds the words of the optional extra list (empty extraPath
// means no extra list).
func LoadNounWhitelist(taggedPaths []string, extraPath string) (NounWhitelist, error) {
	var nouns []string
	for _, path := range taggedPaths {
		words, err := loadTaggedNouns(path)
		if err != nil {
			return NounWhitelist{}, err
		}
		nouns = append(nouns, words...)
	}

	if extraPath != "" {
		f, err := openResource(extraPath)
		if err != nil {
			return NounWhitelist{}, err
		}
		defer f.Close()
		extra, err := readWordList(f, extraPath)
		if err != nil {
			return NounWhitelist{}, err
		}
		nouns = append(nouns, extra...)
	}

	return NewNounWhitelist(nouns...), nil
}

func loadTaggedNouns(path string) ([]string, error) {
	f, err := openResource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTaggedNouns(f, path)
}

// ReadTaggedNouns returns the noun entries of a tagged word list read from r.
//
// Lines look like "Abbau|NN<TAB>-0.058<TAB>Abbaus,Abbaues". The first field
// is split on the pipe into word and tag. A first field without a pipe is
// read as the word, with the tag taken from the second field.
func ReadTaggedNouns(r io.Reader) ([]string, error) {
	return readTaggedNouns(r, "tagged words")
}

func readTaggedNouns(r io.Reader, name string) ([]string, error) {
	var nouns []string
	err := scanLines(r, name, func(line string, lineNo int) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		fields := strings.Split(line, "\t")
		word, tag, ok := strings.Cut(fields[0], "|")
		if !ok {
			if len(fields) < 2 {
				return resourceErr(name, lineNo, ErrParse, fmt.Errorf("no tag in %q", line))
			}
			word, tag = fields[0], fields[1]
		}
		if strings.TrimSpace(tag) != NounTag {
			return nil
		}
		if w := NormalizeEntry(word); w != "" {
			nouns = append(nouns, w)
		}
		return nil
	})
	return nouns, err
}

// lexiconEntry is the JSON object stored for every lexicon word.
type lexiconEntry struct {
	Score *float64 `json:"score"`
}

// LoadSentimentLexicon reads a JSON object mapping words to objects with a
// numeric "score" field.
func LoadSentimentLexicon(path string) (SentimentLexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SentimentLexicon{}, resourceErr(path, 0, ErrResourceNotFound, nil)
		}
		return SentimentLexicon{}, &ResourceError{Path: path, Err: err}
	}
	return parseSentimentLexicon(data, path)
}

// ReadSentimentLexicon reads a sentiment lexicon from r.
func ReadSentimentLexicon(r io.Reader) (SentimentLexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SentimentLexicon{}, err
	}
	return parseSentimentLexicon(data, "sentiment lexicon")
}

func parseSentimentLexicon(data []byte, name string) (SentimentLexicon, error) {
	if !utf8.Valid(data) {
		return SentimentLexicon{}, resourceErr(name, 0, ErrDecode, errors.New("invalid UTF-8"))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return SentimentLexicon{}, resourceErr(name, 0, ErrParse, err)
	}

	scores := make(map[string]float64, len(raw))
	for word, msg := range raw {
		var entry lexiconEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return SentimentLexicon{}, resourceErr(name, 0, ErrParse, fmt.Errorf("entry %q: %v", word, err))
		}
		if entry.Score == nil {
			return SentimentLexicon{}, resourceErr(name, 0, ErrParse, fmt.Errorf("entry %q has no score", word))
		}
		scores[word] = *entry.Score
	}

	return NewSentimentLexicon(scores), nil
}
