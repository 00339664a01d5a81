// Package classify decides whether a line of a bilingual document is noise
// and, when it is not, which side of the translation pair it belongs to.
//
// All functions are pure: the noise patterns and the script table are passed
// in through Rules instead of living in package state.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the label assigned to a line.
type Kind int

const (
	Noise Kind = iota
	Source
	Target
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Target:
		return "target"
	default:
		return "noise"
	}
}

// Reason names the noise rule that matched a line.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonBlank           Reason = "blank"
	ReasonRule            Reason = "rule"
	ReasonURL             Reason = "url"
	ReasonExclaim         Reason = "exclaim"
	ReasonTranslatorNote  Reason = "translator-note"
	ReasonFootnote        Reason = "footnote"
	ReasonMetadata        Reason = "metadata"
	ReasonShort           Reason = "short"
	ReasonEmptyAfterClean Reason = "empty"
)

// Line is a cleaned line together with its label. Reason is set only for
// noise lines.
type Line struct {
	Text   string
	Kind   Kind
	Reason Reason
}

// Clean removes numeric character-reference artifacts (&# plus four digits)
// and trims surrounding whitespace.
func Clean(line string, r Rules) string {
	if r.Artifact != nil {
		line = r.Artifact.ReplaceAllString(line, "")
	}
	return strings.TrimSpace(line)
}

// IsNoise reports whether line carries no translatable content. Rules are
// checked in a fixed order and the first match wins.
func IsNoise(line string, r Rules) (Reason, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return ReasonBlank, true
	}
	if r.DecorativeRule && decorativeRule.MatchString(s) {
		return ReasonRule, true
	}
	if r.URL && isURL(s) {
		return ReasonURL, true
	}
	if r.Exclaim && exclaimOnly.MatchString(s) {
		return ReasonExclaim, true
	}
	for _, p := range r.TranslatorNotePrefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return ReasonTranslatorNote, true
		}
	}
	for _, re := range r.FootnotePatterns {
		if re.MatchString(s) {
			return ReasonFootnote, true
		}
	}
	if r.Metadata && isMetadata(s) {
		return ReasonMetadata, true
	}
	if r.ShortLine && utf8.RuneCountInString(Clean(s, r)) <= r.MaxShortLen {
		return ReasonShort, true
	}
	return ReasonNone, false
}

// HasScript reports whether s contains at least one rune from table.
func HasScript(s string, table *unicode.RangeTable) bool {
	if table == nil {
		return false
	}
	for _, c := range s {
		if unicode.Is(table, c) {
			return true
		}
	}
	return false
}

// Classify labels a single line. Noise lines keep their trimmed text so
// callers can log what was dropped.
func Classify(line string, r Rules) Line {
	if reason, noise := IsNoise(line, r); noise {
		return Line{Text: strings.TrimSpace(line), Kind: Noise, Reason: reason}
	}
	cleaned := Clean(line, r)
	if cleaned == "" {
		return Line{Kind: Noise, Reason: ReasonEmptyAfterClean}
	}
	if HasScript(cleaned, r.Script) {
		return Line{Text: cleaned, Kind: Source}
	}
	return Line{Text: cleaned, Kind: Target}
}

// ClassifyAll labels lines in order and drops the noise.
func ClassifyAll(lines []string, r Rules) (kept []Line, noise int) {
	kept = make([]Line, 0, len(lines))
	for _, l := range lines {
		c := Classify(l, r)
		if c.Kind == Noise {
			noise++
			continue
		}
		kept = append(kept, c)
	}
	return kept, noise
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "<http")
}

func isMetadata(s string) bool {
	if !strings.Contains(s, "Version") {
		return false
	}
	return strings.Contains(s, "Page") || strings.Contains(s, "Progress")
}
