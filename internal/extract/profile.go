package extract

import (
    "fmt"
    "strconv"
    "strings"

    "github.com/hyperifyio/goalign/internal/classify"
    "github.com/hyperifyio/goalign/internal/pair"
    "github.com/hyperifyio/goalign/internal/segment"
)

// Profile bundles everything that varies between kinds of source material:
// text encoding, noise rules, segmentation and pairing options.
type Profile struct {
    Name     string
    Encoding string
    Rules    classify.Rules
    Segment  segment.Options
    Pair     pair.Options
}

// UTF8Profile matches UTF-8 documents that carry decorations, URLs and a
// trailing notes section.
func UTF8Profile() Profile {
    return Profile{
        Name:     "full",
        Encoding: "utf-8",
        Rules:    classify.Full(),
        Segment:  segment.Options{StripNotes: true},
        Pair:     pair.DefaultOptions(),
    }
}

// ShiftJISProfile matches older Shift-JIS documents: fewer noise rules, no
// notes stripping and no fan-in.
func ShiftJISProfile() Profile {
    return Profile{
        Name:     "basic",
        Encoding: "shift_jis",
        Rules:    classify.Basic(),
        Pair:     pair.Options{MinChars: 3},
    }
}

// ProfileByName resolves "full" (alias "utf8") or "basic" (alias "sjis").
func ProfileByName(name string) (Profile, error) {
    switch strings.ToLower(strings.TrimSpace(name)) {
    case "", "full", "utf8", "utf-8":
        return UTF8Profile(), nil
    case "basic", "sjis", "shift_jis":
        return ShiftJISProfile(), nil
    }
    return Profile{}, fmt.Errorf("%w: %q", classify.ErrUnknownProfile, name)
}

// Fingerprint identifies the profile settings that influence output.
func (p Profile) Fingerprint() string {
    var b strings.Builder
    b.WriteString(p.Name)
    b.WriteString("|enc:")
    b.WriteString(strings.ToLower(p.Encoding))
    b.WriteString("|rules:")
    b.WriteString(p.Rules.Fingerprint())
    b.WriteString("|notes:")
    b.WriteString(strconv.FormatBool(p.Segment.StripNotes))
    b.WriteString("|min:")
    b.WriteString(strconv.Itoa(p.Pair.MinChars))
    b.WriteString("|fanin:")
    b.WriteString(strconv.FormatBool(p.Pair.FanIn))
    return b.String()
}
