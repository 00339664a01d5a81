// Package stats computes size figures for extracted pairs: Japanese
// morpheme counts via kagome and whitespace-delimited English word counts.
package stats

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/hyperifyio/goalign/internal/pair"
)

// Summary aggregates counts over a set of pairs.
type Summary struct {
	Pairs        int `json:"pairs"`
	SourceTokens int `json:"source_tokens"`
	TargetWords  int `json:"target_words"`
	SourceChars  int `json:"source_chars"`
	TargetChars  int `json:"target_chars"`
}

// Add folds o into s.
func (s *Summary) Add(o Summary) {
	s.Pairs += o.Pairs
	s.SourceTokens += o.SourceTokens
	s.TargetWords += o.TargetWords
	s.SourceChars += o.SourceChars
	s.TargetChars += o.TargetChars
}

// Counter tokenizes Japanese text. A single Counter may be shared between
// goroutines.
type Counter struct {
	t *tokenizer.Tokenizer
}

// NewCounter loads the IPA dictionary.
func NewCounter() (*Counter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}
	return &Counter{t: t}, nil
}

// SourceTokens counts morphemes in s, ignoring symbols and whitespace.
func (c *Counter) SourceTokens(s string) int {
	n := 0
	for _, tok := range c.t.Tokenize(s) {
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		if pos := tok.POS(); len(pos) > 0 && pos[0] == "記号" {
			continue
		}
		n++
	}
	return n
}

// TargetWords counts whitespace-separated words.
func TargetWords(s string) int {
	return len(strings.Fields(s))
}

// Summarize computes counts for pairs. A nil Counter skips morpheme counts.
func (c *Counter) Summarize(pairs []pair.Pair) Summary {
	s := Summary{Pairs: len(pairs)}
	for _, p := range pairs {
		if c != nil {
			s.SourceTokens += c.SourceTokens(p.Source)
		}
		s.TargetWords += TargetWords(p.Target)
		s.SourceChars += len([]rune(p.Source))
		s.TargetChars += len([]rune(p.Target))
	}
	return s
}
