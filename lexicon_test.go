package reviewlex

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadStopwords(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stopwords.txt", "\xef\xbb\xbfund\r\n  Für \n\nÜber\nder\n")

	stop, err := LoadStopwords(path)
	if err != nil {
		t.Fatalf("LoadStopwords: %v", err)
	}
	want := []string{"der", "fuer", "ueber", "und"}
	if got := stop.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if stop.Contains("Für") {
		t.Error("lookups must not fold")
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	invalid := writeFile(t, dir, "invalid.txt", "gut\n\xff\xfe\n")
	badJSON := writeFile(t, dir, "bad.json", `{"gut": {"score": 0.5},`)
	noScore := writeFile(t, dir, "noscore.json", `{"gut": {"pos": "ADJX"}}`)
	untagged := writeFile(t, dir, "untagged.txt", "Abbau\n")

	tests := []struct {
		load func() error
		want error
		desc string
	}{
		{func() error { _, err := LoadStopwords(missing); return err }, ErrResourceNotFound, "Missing stopwords"},
		{func() error { _, err := LoadStopwords(invalid); return err }, ErrDecode, "Invalid UTF-8 stopwords"},
		{func() error { _, err := LoadSentimentLexicon(missing); return err }, ErrResourceNotFound, "Missing lexicon"},
		{func() error { _, err := LoadSentimentLexicon(badJSON); return err }, ErrParse, "Malformed lexicon"},
		{func() error { _, err := LoadSentimentLexicon(noScore); return err }, ErrParse, "Entry without score"},
		{func() error { _, err := LoadNounWhitelist([]string{missing}, ""); return err }, ErrResourceNotFound, "Missing tagged list"},
		{func() error { _, err := LoadNounWhitelist(nil, missing); return err }, ErrResourceNotFound, "Missing extra list"},
		{func() error { _, err := LoadNounWhitelist([]string{untagged}, ""); return err }, ErrParse, "Line without tag"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := tt.load()
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			var rerr *ResourceError
			if !errors.As(err, &rerr) || rerr.Path == "" {
				t.Errorf("error %v does not name the resource", err)
			}
		})
	}
}

func TestDecodeErrorLine(t *testing.T) {
	_, err := ReadStopwords(strings.NewReader("gut\nok\n\xff\n"))
	var rerr *ResourceError
	if !errors.As(err, &rerr) {
		t.Fatalf("got %v", err)
	}
	if rerr.Line != 3 {
		t.Errorf("line = %d, want 3", rerr.Line)
	}
}

func TestLoadNounWhitelist(t *testing.T) {
	dir := t.TempDir()
	neg := writeFile(t, dir, "negative.txt",
		"Abbau|NN\t-0.058\tAbbaus,Abbaues\n"+
			"abbrechen|VVINF\t-0.0048\tabbreche\n"+
			"Ärger|NN\t-0.3\n")
	pos := writeFile(t, dir, "positive.txt",
		"Qualität|NN\t0.2\n"+
			"Schuh\tNN\n"+
			"gut|ADJX\t0.37\n")
	extra := writeFile(t, dir, "extra.txt", "Hose\n\nPassform\n")

	nouns, err := LoadNounWhitelist([]string{neg, pos}, extra)
	if err != nil {
		t.Fatalf("LoadNounWhitelist: %v", err)
	}
	want := []string{"abbau", "aerger", "hose", "passform", "qualitaet", "schuh"}
	if got := nouns.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	noExtra, err := LoadNounWhitelist([]string{neg}, "")
	if err != nil {
		t.Fatalf("without extra list: %v", err)
	}
	if noExtra.Len() != 2 {
		t.Errorf("got %d nouns, want 2", noExtra.Len())
	}
}

func TestLoadSentimentLexicon(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "words.json", `{
		"Gut": {"score": 0.5, "pos": "ADJX"},
		"gut": {"score": 0.37},
		"Schlecht": {"score": -0.77},
		"Ärgerlich": {"score": -0.4}
	}`)

	lex, err := LoadSentimentLexicon(path)
	if err != nil {
		t.Fatalf("LoadSentimentLexicon: %v", err)
	}

	tests := []struct {
		word  string
		score float64
	}{
		{"gut", 0.37}, // Already normalized key wins.
		{"schlecht", -0.77},
		{"aergerlich", -0.4},
		{"Gut", 0},
	}
	for _, tt := range tests {
		if got := lex.Score(tt.word); got != tt.score {
			t.Errorf("Score(%q) = %v, want %v", tt.word, got, tt.score)
		}
	}
	if lex.Len() != 3 {
		t.Errorf("Len = %d, want 3", lex.Len())
	}
}

func TestNewSentimentLexiconCollisions(t *testing.T) {
	lex := NewSentimentLexicon(map[string]float64{
		"Über":  0.1,
		"ÜBER":  0.2,
		" über": 0.3,
	})
	// No key is normalized; the smallest raw key wins.
	if got := lex.Score("ueber"); got != 0.3 {
		t.Errorf("got %v, want 0.3", got)
	}
}

func TestSetUnion(t *testing.T) {
	a := NewStopwordSet("und")
	b := NewStopwordSet("der", "und")
	u := a.Union(b)
	if u.Len() != 2 || !u.Contains("der") || !u.Contains("und") {
		t.Errorf("union = %q", u.Words())
	}
	if a.Len() != 1 {
		t.Error("Union modified its receiver")
	}

	var zero StopwordSet
	if zero.Union(a).Len() != 1 {
		t.Error("union with zero set")
	}
}

func TestBuiltinStopwords(t *testing.T) {
	stop, err := BuiltinStopwords(German)
	if err != nil {
		t.Fatalf("BuiltinStopwords: %v", err)
	}
	for _, w := range []string{"und", "der", "die"} {
		if !stop.Contains(w) {
			t.Errorf("German stopwords miss %q", w)
		}
	}
	if stop.Contains("hose") {
		t.Error("German stopwords contain a noun")
	}

	if _, err := BuiltinStopwords("xx"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("unknown language: got %v", err)
	}
}
