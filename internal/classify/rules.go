package classify

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnknownProfile is returned for a profile or rule name that is not built in.
var ErrUnknownProfile = errors.New("unknown noise profile")

var (
	decorativeRule = regexp.MustCompile(`^[-=_*]{3,}$`)
	exclaimOnly    = regexp.MustCompile(`^[!！]+$`)
	entityArtifact = regexp.MustCompile(`&#\p{Nd}{4}`)
)

// Japanese is the source-language script: Hiragana, Katakana and the CJK
// Unified Ideographs block.
var Japanese = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x309f, Stride: 1},
		{Lo: 0x30a0, Hi: 0x30ff, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1},
	},
}

// Rules is a noise-filter profile. The blank-line rule is always on; every
// other rule can be switched off.
type Rules struct {
	Name string

	DecorativeRule bool
	URL            bool
	Exclaim        bool
	Metadata       bool
	ShortLine      bool
	// MaxShortLen is the longest cleaned line, in runes, that ShortLine treats
	// as noise.
	MaxShortLen int

	TranslatorNotePrefixes []string
	FootnotePatterns       []*regexp.Regexp

	// Artifact is removed from every line by Clean.
	Artifact *regexp.Regexp
	// Script marks a line as Source when any of its runes is in the table.
	Script *unicode.RangeTable
}

// Full is the rule set for UTF-8 sources: decorative rules, URLs,
// exclamation-only lines and short fragments are all dropped.
func Full() Rules {
	return Rules{
		Name:           "full",
		DecorativeRule: true,
		URL:            true,
		Exclaim:        true,
		Metadata:       true,
		ShortLine:      true,
		MaxShortLen:    2,
		TranslatorNotePrefixes: []string{
			"（訳注：",
			"(訳注:",
			"訳注：",
		},
		FootnotePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^注[:：]?[\s\x{3000}]*$`),
			regexp.MustCompile(`^注[\s\x{3000}]*\p{Nd}+[:：]`),
			regexp.MustCompile(`^注[A-Z][:：]`),
			regexp.MustCompile(`^\p{Nd}+\.?[\s\x{3000}]*$`),
		},
		Artifact: entityArtifact,
		Script:   Japanese,
	}
}

// Basic is the smaller rule set used for Shift-JIS sources.
func Basic() Rules {
	return Rules{
		Name:     "basic",
		Metadata: true,
		TranslatorNotePrefixes: []string{
			"（訳注：",
			"(訳注:",
		},
		FootnotePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^注[A-Z][:：]`),
			regexp.MustCompile(`^\p{Nd}+$`),
		},
		Artifact: entityArtifact,
		Script:   Japanese,
	}
}

// ProfileByName returns a built-in rule set.
func ProfileByName(name string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "full":
		return Full(), nil
	case "basic":
		return Basic(), nil
	}
	return Rules{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Override adjusts a profile. Zero values keep the base setting.
type Override struct {
	Disable                []Reason
	TranslatorNotePrefixes []string
	FootnotePatterns       []string
	MaxShortLen            int
}

// Apply returns a copy of r with o applied.
func (r Rules) Apply(o Override) (Rules, error) {
	out := r
	if len(o.TranslatorNotePrefixes) > 0 {
		out.TranslatorNotePrefixes = append([]string(nil), o.TranslatorNotePrefixes...)
	}
	if len(o.FootnotePatterns) > 0 {
		pats := make([]*regexp.Regexp, 0, len(o.FootnotePatterns))
		for _, p := range o.FootnotePatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return r, fmt.Errorf("footnote pattern %q: %w", p, err)
			}
			pats = append(pats, re)
		}
		out.FootnotePatterns = pats
	}
	if o.MaxShortLen > 0 {
		out.MaxShortLen = o.MaxShortLen
	}
	for _, d := range o.Disable {
		switch d {
		case ReasonRule:
			out.DecorativeRule = false
		case ReasonURL:
			out.URL = false
		case ReasonExclaim:
			out.Exclaim = false
		case ReasonMetadata:
			out.Metadata = false
		case ReasonShort:
			out.ShortLine = false
		case ReasonTranslatorNote:
			out.TranslatorNotePrefixes = nil
		case ReasonFootnote:
			out.FootnotePatterns = nil
		default:
			return r, fmt.Errorf("%w: cannot disable rule %q", ErrUnknownProfile, d)
		}
	}
	return out, nil
}

// Fingerprint is a stable textual digest of the rule set, used as part of
// cache keys so a rule change invalidates earlier results.
func (r Rules) Fingerprint() string {
	var b strings.Builder
	b.WriteString(r.Name)
	for _, on := range []bool{r.DecorativeRule, r.URL, r.Exclaim, r.Metadata, r.ShortLine} {
		b.WriteString("|")
		b.WriteString(strconv.FormatBool(on))
	}
	b.WriteString("|")
	b.WriteString(strconv.Itoa(r.MaxShortLen))
	for _, p := range r.TranslatorNotePrefixes {
		b.WriteString("|n:")
		b.WriteString(p)
	}
	for _, re := range r.FootnotePatterns {
		b.WriteString("|f:")
		b.WriteString(re.String())
	}
	if r.Artifact != nil {
		b.WriteString("|a:")
		b.WriteString(r.Artifact.String())
	}
	return b.String()
}
