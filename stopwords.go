package reviewlex

import (
	"fmt"
	"strings"

	"github.com/bbalet/stopwords"
)

// Language is an ISO 639-1 language code.
type Language string

const (
	German  Language = "de"
	English Language = "en"
)

// BuiltinStopwords returns the stopwords that github.com/bbalet/stopwords
// recognises for lang, normalized with NormalizeEntry.
//
// The library does not export its lists, so a fixed set of candidate words is
// run through it and every candidate it removes is kept.
func BuiltinStopwords(lang Language) (StopwordSet, error) {
	candidates, ok := stopwordCandidates[lang]
	if !ok {
		return StopwordSet{}, fmt.Errorf("%w: no builtin stopwords for language %q", ErrConfiguration, lang)
	}

	var found []string
	for _, word := range candidates {
		cleaned := stopwords.CleanString(word, string(lang), false)
		if strings.TrimSpace(cleaned) == "" {
			found = append(found, word)
		}
	}
	return NewStopwordSet(found...), nil
}

// stopwordCandidates lists the words tested against the library per language.
var stopwordCandidates = map[Language][]string{
	German: {
		"aber", "alle", "allem", "allen", "aller", "alles", "als", "also", "am", "an",
		"ander", "andere", "anderem", "anderen", "anderer", "anderes", "auch", "auf",
		"aus", "bei", "bin", "bis", "bist", "da", "damit", "dann", "das", "dass",
		"dein", "deine", "dem", "den", "denn", "der", "des", "dich", "die", "dies",
		"diese", "diesem", "diesen", "dieser", "dieses", "dir", "doch", "dort", "du",
		"durch", "ein", "eine", "einem", "einen", "einer", "eines", "einig", "er",
		"es", "etwas", "euer", "für", "gegen", "gewesen", "hab", "habe", "haben",
		"hat", "hatte", "hatten", "hier", "hin", "hinter", "ich", "ihm", "ihn",
		"ihnen", "ihr", "ihre", "im", "in", "indem", "ins", "ist", "jede", "jedem",
		"jeden", "jeder", "jedes", "jene", "jetzt", "kann", "kein", "keine",
		"können", "man", "manche", "mein", "meine", "mich", "mir", "mit", "muss",
		"musste", "nach", "nicht", "nichts", "noch", "nun", "nur", "ob", "oder",
		"ohne", "sehr", "sein", "seine", "sich", "sie", "sind", "so", "solche",
		"soll", "sondern", "sonst", "über", "um", "und", "uns", "unser", "unter",
		"viel", "vom", "von", "vor", "während", "war", "waren", "warst", "was",
		"weg", "weil", "weiter", "welche", "wenn", "werde", "werden", "wie",
		"wieder", "will", "wir", "wird", "wo", "wollen", "würde", "würden", "zu",
		"zum", "zur", "zwar", "zwischen",
	},
	English: {
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by", "for",
		"from", "has", "have", "he", "her", "his", "i", "in", "is", "it", "its",
		"of", "on", "or", "she", "that", "the", "their", "them", "they", "this",
		"to", "was", "we", "were", "what", "when", "which", "who", "will", "with",
		"you", "your",
	},
}
