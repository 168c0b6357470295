package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/reviewlex"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviewlex.yaml")
	content := `
dataset:
  path: data/reviews.csv
  delimiter: ","
lexicon:
  sentiment: /abs/words.json
  tagged_nouns: [nouns.txt]
run:
  mode: both
  top_words: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	tests := []struct {
		got, want string
		desc      string
	}{
		{cfg.Dataset.Path, filepath.Join(dir, "data/reviews.csv"), "Relative path resolved"},
		{cfg.Lexicon.Sentiment, "/abs/words.json", "Absolute path kept"},
		{cfg.Lexicon.TaggedNouns[0], filepath.Join(dir, "nouns.txt"), "List entries resolved"},
		{cfg.Dataset.Encoding, "latin-1", "Default kept"},
		{cfg.Run.Mode, ModeBoth, "Mode"},
		{cfg.Log.File, filepath.Join(dir, "log/logfile.log"), "Default log file"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.desc, tt.got, tt.want)
		}
	}
	if cfg.Run.TopWords != 5 {
		t.Errorf("top_words = %d", cfg.Run.TopWords)
	}
	if cfg.Dataset.delimiter() != ',' {
		t.Errorf("delimiter = %q", cfg.Dataset.delimiter())
	}
}

func TestLoadConfigEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviewlex.yaml")
	if err := os.WriteFile(path, []byte("run:\n  mode: sequential\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("REVIEWLEX_WORKERS=3\nREVIEWLEX_MODE=concurrent\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Variables already set win over .env.
	t.Setenv("REVIEWLEX_MODE", "both")
	t.Setenv("REVIEWLEX_WORKERS", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Run.Mode != ModeBoth {
		t.Errorf("mode = %q, want both", cfg.Run.Mode)
	}
	if cfg.Run.Workers != 0 {
		t.Errorf("workers = %d, want 0", cfg.Run.Workers)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"REVIEWLEX_DATASET":     "/data/r.csv",
		"REVIEWLEX_WORKERS":     "4",
		"REVIEWLEX_LOG_CONSOLE": "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Dataset.Path != "/data/r.csv" || cfg.Run.Workers != 4 || !cfg.Log.Console {
		t.Errorf("got %+v", cfg)
	}

	env["REVIEWLEX_WORKERS"] = "many"
	if err := cfg.applyEnv(lookup); !errors.Is(err, reviewlex.ErrConfiguration) {
		t.Errorf("got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		edit func(c *Config)
		desc string
	}{
		{func(c *Config) { c.Run.Mode = "parallel" }, "Unknown mode"},
		{func(c *Config) { c.Dataset.Delimiter = ";;" }, "Long delimiter"},
		{func(c *Config) { c.Lexicon.Sentiment = "" }, "No lexicon"},
		{func(c *Config) { c.Lexicon.Stopwords = "" }, "No stopwords"},
		{func(c *Config) { c.Run.Segmenter = "spacy" }, "Unknown segmenter"},
		{func(c *Config) { c.Log.Level = "loud" }, "Unknown level"},
		{func(c *Config) { c.Run.TopWords = -1 }, "Negative top words"},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			if err := cfg.Validate(); !errors.Is(err, reviewlex.ErrConfiguration) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, reviewlex.ErrResourceNotFound) {
		t.Errorf("missing file: got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("run: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, reviewlex.ErrConfiguration) {
		t.Errorf("bad yaml: got %v", err)
	}
}
