// Package pair turns the classified lines of one block into sentence pairs.
//
// The number of source and target lines in a block decides the tier:
//
//	Empty       either side has no lines
//	Equal       same count on both sides, zipped by position
//	FanIn       one source line, several target lines joined into one
//	Mismatched  any other shape, zipped up to the shorter side
//
// Reconciliation never fails. Degenerate blocks just yield fewer pairs.
package pair

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/goalign/internal/classify"
)

// Pair is one aligned sentence pair.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Tier is the reconciliation strategy chosen for a block.
type Tier int

const (
	Empty Tier = iota
	Equal
	FanIn
	Mismatched
)

func (t Tier) String() string {
	switch t {
	case Equal:
		return "equal"
	case FanIn:
		return "fan-in"
	case Mismatched:
		return "mismatched"
	default:
		return "empty"
	}
}

// Options tunes reconciliation.
type Options struct {
	// MinChars is the minimum length, in runes, of both sides of a pair.
	MinChars int
	// FanIn enables joining several target lines onto a single source line.
	// When false such blocks are treated as Mismatched.
	FanIn bool
}

// DefaultOptions keeps pairs of at least three characters and enables fan-in.
func DefaultOptions() Options {
	return Options{MinChars: 3, FanIn: true}
}

var semicolonGap = regexp.MustCompile(`;[\s\x{3000}]*`)

// TierFor picks the tier for a block with the given line counts.
func TierFor(sources, targets int, fanIn bool) Tier {
	switch {
	case sources == 0 || targets == 0:
		return Empty
	case sources == targets:
		return Equal
	case fanIn && sources == 1 && targets > 1:
		return FanIn
	default:
		return Mismatched
	}
}

// Sides splits classified lines into source and target texts, keeping order.
// Noise lines are ignored.
func Sides(lines []classify.Line) (sources, targets []string) {
	for _, l := range lines {
		switch l.Kind {
		case classify.Source:
			sources = append(sources, l.Text)
		case classify.Target:
			targets = append(targets, l.Text)
		}
	}
	return sources, targets
}

// JoinTargets merges wrapped target lines with single spaces and leaves
// exactly one space after every semicolon.
func JoinTargets(lines []string) string {
	return semicolonGap.ReplaceAllString(strings.Join(lines, " "), "; ")
}

// Reconcile produces the pairs of one block.
func Reconcile(lines []classify.Line, opts Options) []Pair {
	pairs, _ := ReconcileWithTier(lines, opts)
	return pairs
}

// ReconcileWithTier is Reconcile that also reports the tier used.
func ReconcileWithTier(lines []classify.Line, opts Options) ([]Pair, Tier) {
	sources, targets := Sides(lines)
	tier := TierFor(len(sources), len(targets), opts.FanIn)
	var out []Pair
	switch tier {
	case Equal, Mismatched:
		n := min(len(sources), len(targets))
		for i := 0; i < n; i++ {
			out = appendValid(out, Pair{Source: sources[i], Target: targets[i]}, opts.MinChars)
		}
	case FanIn:
		out = appendValid(out, Pair{Source: sources[0], Target: JoinTargets(targets)}, opts.MinChars)
	}
	return out, tier
}

func appendValid(out []Pair, p Pair, minChars int) []Pair {
	if utf8.RuneCountInString(p.Source) < minChars || utf8.RuneCountInString(p.Target) < minChars {
		return out
	}
	if p.Source == "" || p.Target == "" {
		return out
	}
	return append(out, p)
}
