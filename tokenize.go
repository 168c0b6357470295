package reviewlex

import "strings"

// Tokenize strips every dot from text and splits the rest on whitespace.
// Empty segments are dropped and token order is preserved.
func Tokenize(text string) TokenList {
	text = strings.ReplaceAll(text, ".", "")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return TokenList{}
	}
	return TokenList(fields)
}

// FilterTokens keeps the tokens that are not stopwords and are whitelisted
// nouns. Order and duplicates are preserved.
func FilterTokens(tokens TokenList, stop StopwordSet, nouns NounWhitelist) TokenList {
	out := TokenList{}
	for _, tok := range tokens {
		if stop.Contains(tok) {
			continue
		}
		if !nouns.Contains(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
