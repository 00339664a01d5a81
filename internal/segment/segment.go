// Package segment splits a decoded bilingual document into blocks: runs of
// non-empty lines separated by blank lines. Blocks are the scope of pairing.
package segment

import (
	"regexp"
	"strings"
)

// Block is one blank-line-delimited unit of a document. Lines are trimmed
// and never empty; a Block with no lines is kept so indices stay stable.
type Block struct {
	Index int
	Lines []string
}

// Options controls segmentation.
type Options struct {
	// StripNotes drops a trailing footnote section (see StripNotes).
	StripNotes bool
}

var (
	// A section header that is exactly 注 or Note/Notes (any case) with an
	// optional colon, preceded by a blank line.
	notesHeader = regexp.MustCompile(`\n\n(?:注|(?i:notes?))[:：]?[\t\f\r \x{3000}]*(?:\n|$)`)
	blankRun    = regexp.MustCompile(`\n\n+`)
)

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// StripNotes removes everything from the first footnote section header to
// the end of text. Text without such a header is returned unchanged.
func StripNotes(text string) string {
	loc := notesHeader.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]]
}

// Split breaks normalized text into blocks on one or more blank lines.
func Split(text string) []Block {
	parts := blankRun.Split(text, -1)
	blocks := make([]Block, 0, len(parts))
	for i, part := range parts {
		raw := strings.Split(part, "\n")
		lines := make([]string, 0, len(raw))
		for _, l := range raw {
			if s := strings.TrimSpace(l); s != "" {
				lines = append(lines, s)
			}
		}
		blocks = append(blocks, Block{Index: i, Lines: lines})
	}
	return blocks
}

// Segment runs newline normalization, optional footnote removal and
// block splitting.
func Segment(document string, opts Options) []Block {
	text := NormalizeNewlines(document)
	if opts.StripNotes {
		text = StripNotes(text)
	}
	return Split(text)
}
