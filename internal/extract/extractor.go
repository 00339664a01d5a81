package extract

import (
    "fmt"
    "io"

    "github.com/rs/zerolog/log"

    "github.com/hyperifyio/goalign/internal/pair"
)

// Extractor defines a minimal interface for pair extraction strategies.
// Implementations can swap heuristics without changing callers.
type Extractor interface {
    // Extract converts raw document bytes into a Document.
    // Implementations should be deterministic and avoid side effects.
    Extract(raw []byte) Document
}

// HeuristicExtractor uses block segmentation, script classification and
// tiered reconciliation as configured by its Profile.
type HeuristicExtractor struct {
    Profile Profile
    enc     Encoding
}

var _ Extractor = (*HeuristicExtractor)(nil)

// New validates the profile's encoding once so per-document extraction
// cannot fail on configuration.
func New(p Profile) (*HeuristicExtractor, error) {
    enc, err := LookupEncoding(p.Encoding)
    if err != nil {
        return nil, fmt.Errorf("profile %s: %w", p.Name, err)
    }
    if p.Pair.MinChars <= 0 {
        p.Pair.MinChars = pair.DefaultOptions().MinChars
    }
    return &HeuristicExtractor{Profile: p, enc: enc}, nil
}

// Encoding returns the resolved encoding.
func (x *HeuristicExtractor) Encoding() Encoding {
    return x.enc
}

func (x *HeuristicExtractor) Extract(raw []byte) Document {
    return x.ExtractText(x.enc.Decode(raw))
}

// ExtractReader decodes r while reading. Only read errors are returned.
func (x *HeuristicExtractor) ExtractReader(r io.Reader) (Document, error) {
    decoded, err := io.ReadAll(x.enc.NewReader(r))
    if err != nil {
        return Document{}, fmt.Errorf("read document: %w", err)
    }
    return x.ExtractText(x.enc.Sanitize(decoded)), nil
}

// ExtractText runs the pipeline on already-decoded text.
func (x *HeuristicExtractor) ExtractText(text string) Document {
    doc := FromText(text, x.Profile)
    log.Debug().
        Str("profile", x.Profile.Name).
        Int("blocks", doc.Blocks).
        Int("noise", doc.NoiseLines).
        Int("pairs", len(doc.Pairs)).
        Msg("extracted document")
    return doc
}
