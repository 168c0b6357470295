package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/reviewlex"
)

// envPrefix prefixes every environment variable read by the configuration.
const envPrefix = "REVIEWLEX_"

// Run modes.
const (
	ModeSequential = "sequential"
	ModeConcurrent = "concurrent"
	ModeBoth       = "both"
)

// Config is the YAML configuration of a pipeline run.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Output  OutputConfig  `yaml:"output"`
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
}

type DatasetConfig struct {
	Path      string        `yaml:"path"`
	Encoding  string        `yaml:"encoding"`
	Delimiter string        `yaml:"delimiter"`
	Columns   ColumnsConfig `yaml:"columns"`
}

type ColumnsConfig struct {
	ID     string `yaml:"id"`
	Rating string `yaml:"rating"`
	Text   string `yaml:"text"`
}

type LexiconConfig struct {
	Stopwords        string   `yaml:"stopwords"`
	BuiltinStopwords string   `yaml:"builtin_stopwords"` // Language code; empty disables
	TaggedNouns      []string `yaml:"tagged_nouns"`
	ExtraNouns       string   `yaml:"extra_nouns"`
	Sentiment        string   `yaml:"sentiment"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type RunConfig struct {
	Mode      string `yaml:"mode"`
	Workers   int    `yaml:"workers"`
	TopWords  int    `yaml:"top_words"`
	Segmenter string `yaml:"segmenter"` // punkt or dot
}

type LogConfig struct {
	File    string `yaml:"file"`
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// DefaultConfig returns the configuration used for missing settings.
func DefaultConfig() Config {
	return Config{
		Dataset: DatasetConfig{
			Path:      "resources/dataset/reviews.csv",
			Encoding:  "latin-1",
			Delimiter: ";",
			Columns:   ColumnsConfig{ID: "styleid", Rating: "rating", Text: "text"},
		},
		Lexicon: LexiconConfig{
			Stopwords: "resources/nlp_resources/german_stopwords_full.txt",
			TaggedNouns: []string{
				"resources/nlp_resources/SentiWS_v2.0_Negative.txt",
				"resources/nlp_resources/SentiWS_v2.0_Positive.txt",
			},
			ExtraNouns: "config/additional_nouns.txt",
			Sentiment:  "resources/nlp_resources/complete_sentiment_words.json",
		},
		Output: OutputConfig{Dir: "output"},
		Run: RunConfig{
			Mode:      ModeConcurrent,
			TopWords:  reviewlex.DefaultTopWords,
			Segmenter: "punkt",
		},
		Log: LogConfig{
			File:  "log/logfile.log",
			Level: "info",
		},
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig, applies
// .env and environment overrides and validates the result. An empty path
// uses the defaults only. Relative paths are resolved against the
// directory of the configuration file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	baseDir := "."

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("%w: config file %s", reviewlex.ErrResourceNotFound, path)
			}
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", reviewlex.ErrConfiguration, path, err)
		}
		baseDir = filepath.Dir(path)
	}

	if err := loadDotEnv(filepath.Join(baseDir, ".env")); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	cfg.resolvePaths(baseDir)
	return cfg, cfg.Validate()
}

// loadDotEnv loads an optional .env file. Variables already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", reviewlex.ErrConfiguration, path, err)
	}
	return nil
}

// applyEnv overrides settings from REVIEWLEX_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("DATASET", &c.Dataset.Path)
	str("ENCODING", &c.Dataset.Encoding)
	str("SENTIMENT_LEXICON", &c.Lexicon.Sentiment)
	str("STOPWORDS", &c.Lexicon.Stopwords)
	str("OUTPUT_DIR", &c.Output.Dir)
	str("MODE", &c.Run.Mode)
	str("LOG_FILE", &c.Log.File)
	str("LOG_LEVEL", &c.Log.Level)

	if v, ok := lookup(envPrefix + "WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q is not a number", reviewlex.ErrConfiguration, envPrefix, v)
		}
		c.Run.Workers = n
	}
	if v, ok := lookup(envPrefix + "LOG_CONSOLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sLOG_CONSOLE=%q is not a boolean", reviewlex.ErrConfiguration, envPrefix, v)
		}
		c.Log.Console = b
	}
	return nil
}

func (c *Config) resolvePaths(baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	c.Dataset.Path = resolve(c.Dataset.Path)
	c.Lexicon.Stopwords = resolve(c.Lexicon.Stopwords)
	c.Lexicon.ExtraNouns = resolve(c.Lexicon.ExtraNouns)
	c.Lexicon.Sentiment = resolve(c.Lexicon.Sentiment)
	for i, p := range c.Lexicon.TaggedNouns {
		c.Lexicon.TaggedNouns[i] = resolve(p)
	}
	c.Output.Dir = resolve(c.Output.Dir)
	c.Log.File = resolve(c.Log.File)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	var problems []string
	if c.Dataset.Path == "" {
		problems = append(problems, "dataset.path is empty")
	}
	if utf8.RuneCountInString(c.Dataset.Delimiter) != 1 {
		problems = append(problems, fmt.Sprintf("dataset.delimiter %q must be a single character", c.Dataset.Delimiter))
	}
	if c.Lexicon.Sentiment == "" {
		problems = append(problems, "lexicon.sentiment is empty")
	}
	if c.Lexicon.Stopwords == "" && c.Lexicon.BuiltinStopwords == "" {
		problems = append(problems, "lexicon.stopwords and lexicon.builtin_stopwords are both empty")
	}
	if c.Output.Dir == "" {
		problems = append(problems, "output.dir is empty")
	}
	switch c.Run.Mode {
	case ModeSequential, ModeConcurrent, ModeBoth:
	default:
		problems = append(problems, fmt.Sprintf("run.mode %q is not one of sequential, concurrent, both", c.Run.Mode))
	}
	if c.Run.TopWords < 0 {
		problems = append(problems, "run.top_words is negative")
	}
	switch c.Run.Segmenter {
	case "punkt", "dot":
	default:
		problems = append(problems, fmt.Sprintf("run.segmenter %q is not one of punkt, dot", c.Run.Segmenter))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", reviewlex.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// delimiter returns the configured field separator.
func (c DatasetConfig) delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// loadOpts converts the dataset settings into loader options.
func (c DatasetConfig) loadOpts() []reviewlex.LoadOpt {
	return []reviewlex.LoadOpt{
		reviewlex.WithDelimiter(c.delimiter()),
		reviewlex.WithEncoding(c.Encoding),
		reviewlex.WithColumns(c.Columns.ID, c.Columns.Rating, c.Columns.Text),
	}
}

// loadResources reads the lexicon tables named by c.
func (c LexiconConfig) loadResources() (reviewlex.Resources, error) {
	var res reviewlex.Resources

	if c.Stopwords != "" {
		stop, err := reviewlex.LoadStopwords(c.Stopwords)
		if err != nil {
			return res, err
		}
		res.Stopwords = stop
	}
	if c.BuiltinStopwords != "" {
		builtin, err := reviewlex.BuiltinStopwords(reviewlex.Language(c.BuiltinStopwords))
		if err != nil {
			return res, err
		}
		res.Stopwords = res.Stopwords.Union(builtin)
	}

	nouns, err := reviewlex.LoadNounWhitelist(c.TaggedNouns, c.ExtraNouns)
	if err != nil {
		return res, err
	}
	res.Nouns = nouns

	lex, err := reviewlex.LoadSentimentLexicon(c.Sentiment)
	if err != nil {
		return res, err
	}
	res.Lexicon = lex
	return res, nil
}

// segmenter returns the configured sentence splitter.
func (c RunConfig) segmenter() (reviewlex.Segmenter, error) {
	if c.Segmenter == "dot" {
		return reviewlex.DotSegmenter{}, nil
	}
	return reviewlex.NewPunktSegmenter()
}
