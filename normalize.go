// Package reviewlex analyses German customer reviews with word lists.
//
// Raw review text is normalized by an ordered chain of rewrite rules
// (Normalize), split into tokens (Tokenize) and then either scored against a
// sentiment lexicon (ScoreTokens, Classify) or reduced to whitelisted nouns
// for keyword counting (FilterTokens). Analyze runs every table of a report
// over a dataset, optionally fanning the independent steps out with RunAll.
//
// The lexicon tables are loaded once (LoadStopwords, LoadNounWhitelist,
// LoadSentimentLexicon) and never mutated, so they can be shared by
// concurrent steps.
package reviewlex

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// A Rule rewrites a string. Rules are pure and total.
type Rule func(string) string

// Pipeline applies rules to value from left to right.
func Pipeline(value string, rules ...Rule) string {
	for _, rule := range rules {
		value = rule(value)
	}
	return value
}

var quoteRemover = strings.NewReplacer(`"`, "", "'", "")

// RemoveQuotes deletes every double and single quote character.
func RemoveQuotes(text string) string {
	return quoteRemover.Replace(text)
}

var umlautFolder = strings.NewReplacer(
	"ä", "ae",
	"Ä", "Ae",
	"ö", "oe",
	"Ö", "Oe",
	"ü", "ue",
	"Ü", "Ue",
	"ß", "ss",
	"ẞ", "SS",
)

// FoldUmlauts replaces German umlauts and eszett with their ASCII digraphs.
// The input is composed to NFC first so that decomposed umlauts fold as well.
func FoldUmlauts(text string) string {
	return umlautFolder.Replace(norm.NFC.String(text))
}

// RemoveAccents decomposes text with NFKD and keeps only printable ASCII and
// ASCII whitespace. This is lossy: combining marks and every other non-ASCII
// character are dropped.
func RemoveAccents(text string) string {
	return strings.Map(func(r rune) rune {
		if isPrintableASCII(r) {
			return r
		}
		return -1
	}, norm.NFKD.String(text))
}

func isPrintableASCII(r rune) bool {
	switch {
	case r >= 0x20 && r <= 0x7e:
		return true
	case r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
		return true
	}
	return false
}

var (
	reSpecialChars   = regexp.MustCompile(`[,|():]`)
	reDateDot        = regexp.MustCompile(`(\s\d{1,2})\.`)
	reMultipleDots   = regexp.MustCompile(`\.{3}`)
	reIsolatedDot    = regexp.MustCompile(`\s\.\s`)
	reHeadline       = regexp.MustCompile(`\+{2,3}.*?\+{2,3}`)
	reSentenceEnd    = regexp.MustCompile(`[!?;]`)
	reAbbreviatedDot = regexp.MustCompile(`(\s\w)\.`)
	reWhitespace     = regexp.MustCompile(`[\t\n\v\f\r ]+`)
)

// RemoveNewlines deletes newline characters.
func RemoveNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "")
}

// RemoveSpecialChars deletes , ( ) : and |.
func RemoveSpecialChars(text string) string {
	return reSpecialChars.ReplaceAllString(text, "")
}

// ReplaceDashes turns every dash into a space.
func ReplaceDashes(text string) string {
	return strings.ReplaceAll(text, "-", " ")
}

// CollapseThousands deletes every dot that sits between two digits, so
// "1.000" becomes "1000" and "1.2.3" becomes "123".
func CollapseThousands(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' && i > 0 && i+1 < len(text) && isDigit(text[i-1]) && isDigit(text[i+1]) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// RemoveDateDots deletes the dot after a one or two digit number that
// follows whitespace, e.g. " 12." in "am 12. Mai".
func RemoveDateDots(text string) string {
	return reDateDot.ReplaceAllString(text, "${1}")
}

// ReplaceSlashes turns every forward slash into a space.
func ReplaceSlashes(text string) string {
	return strings.ReplaceAll(text, "/", " ")
}

// ReplaceEllipses turns "..." into ". ".
func ReplaceEllipses(text string) string {
	return reMultipleDots.ReplaceAllString(text, ". ")
}

// RemoveIsolatedDots replaces a dot surrounded by whitespace with a space.
func RemoveIsolatedDots(text string) string {
	return reIsolatedDot.ReplaceAllString(text, " ")
}

// RemoveHeadlines deletes "++...++" and "+++...+++" markers with their content.
func RemoveHeadlines(text string) string {
	return reHeadline.ReplaceAllString(text, "")
}

// UnifySentenceEnds turns ! ? and ; into dots.
func UnifySentenceEnds(text string) string {
	return reSentenceEnd.ReplaceAllString(text, ".")
}

// RemoveAbbreviationDots deletes the dot after a single word character that
// follows whitespace, e.g. " A." becomes " A".
func RemoveAbbreviationDots(text string) string {
	return reAbbreviatedDot.ReplaceAllString(text, "${1}")
}

// CollapseWhitespace replaces every whitespace run with a single space.
func CollapseWhitespace(text string) string {
	return reWhitespace.ReplaceAllString(text, " ")
}

// TrimSpace removes leading and trailing whitespace.
func TrimSpace(text string) string {
	return strings.TrimSpace(text)
}

// ToLower lowercases the whole string.
func ToLower(text string) string {
	return strings.ToLower(text)
}

// cleaningRules is the review text chain. Order matters: thousands
// separators must collapse before date dots are removed.
var cleaningRules = []Rule{
	RemoveQuotes,
	FoldUmlauts,
	RemoveAccents,
	RemoveNewlines,
	RemoveSpecialChars,
	ReplaceDashes,
	CollapseThousands,
	RemoveDateDots,
	ReplaceSlashes,
	ReplaceEllipses,
	RemoveIsolatedDots,
	RemoveHeadlines,
	UnifySentenceEnds,
	RemoveAbbreviationDots,
	CollapseWhitespace,
	TrimSpace,
	ToLower,
}

// entryRules is the shorter chain used for lexicon and stopword entries.
var entryRules = []Rule{
	RemoveQuotes,
	FoldUmlauts,
	TrimSpace,
	ToLower,
}

// CleaningRules returns a copy of the ordered review text chain.
func CleaningRules() []Rule {
	out := make([]Rule, len(cleaningRules))
	copy(out, cleaningRules)
	return out
}

// Normalize converts raw review text into normalized text.
//
// The cleaning chain is re-applied until the text stops changing, which makes
// Normalize idempotent. After the first pass the text is ASCII and no rule
// grows it, so every further pass either shortens the text, removes a dot, or
// is the last one.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, "")
	}
	current := Pipeline(raw, cleaningRules...)
	for {
		next := Pipeline(current, cleaningRules...)
		if next == current {
			return current
		}
		current = next
	}
}

// NormalizeEntry normalizes a lexicon or stopword entry: quotes removed,
// umlauts folded, whitespace trimmed, lowercased.
func NormalizeEntry(entry string) string {
	return Pipeline(entry, entryRules...)
}
