package reviewlex

import (
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A Segmenter splits text into sentences.
type Segmenter interface {
	Segment(text string) []string
}

// PunktSegmenter segments text with the punkt tokenizer shipped with
// gopkg.in/neurosnap/sentences.v1. Normalized reviews end every sentence with
// a dot, so the English model is sufficient.
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter loads the punkt model.
func NewPunktSegmenter() (*PunktSegmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &PunktSegmenter{tokenizer: tok}, nil
}

// Segment returns the non-blank sentences of text.
func (p *PunktSegmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DotSegmenter splits normalized text on dots. It needs no model.
type DotSegmenter struct{}

// Segment returns the non-blank dot-separated pieces of text.
func (DotSegmenter) Segment(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ".") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
