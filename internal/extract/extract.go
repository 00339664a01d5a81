// Package extract composes segmentation, line classification and pair
// reconciliation into per-document sentence-pair extraction.
package extract

import (
    "github.com/hyperifyio/goalign/internal/classify"
    "github.com/hyperifyio/goalign/internal/pair"
    "github.com/hyperifyio/goalign/internal/segment"
)

// TierCounts records how many blocks were reconciled with each tier.
type TierCounts struct {
    Empty      int `json:"empty"`
    Equal      int `json:"equal"`
    FanIn      int `json:"fan_in"`
    Mismatched int `json:"mismatched"`
}

// Add counts one block reconciled with t.
func (c *TierCounts) Add(t pair.Tier) {
    switch t {
    case pair.Equal:
        c.Equal++
    case pair.FanIn:
        c.FanIn++
    case pair.Mismatched:
        c.Mismatched++
    default:
        c.Empty++
    }
}

// Document is the extraction result of one input file.
type Document struct {
    Pairs      []pair.Pair `json:"pairs"`
    Blocks     int         `json:"blocks"`
    NoiseLines int         `json:"noise_lines"`
    Tiers      TierCounts  `json:"tiers"`
}

// Empty reports a document that yielded no pairs. This is a condition worth
// surfacing to the operator, not an error.
func (d Document) Empty() bool {
    return len(d.Pairs) == 0
}

// FromText extracts pairs from decoded text, block by block, in order.
func FromText(text string, p Profile) Document {
    blocks := segment.Segment(text, p.Segment)
    doc := Document{Blocks: len(blocks)}
    for _, b := range blocks {
        pairs, tier, noise := FromBlock(b.Lines, p)
        doc.NoiseLines += noise
        doc.Tiers.Add(tier)
        doc.Pairs = append(doc.Pairs, pairs...)
    }
    return doc
}

// FromBlock filters, classifies and reconciles the lines of one block.
func FromBlock(lines []string, p Profile) ([]pair.Pair, pair.Tier, int) {
    kept, noise := classify.ClassifyAll(lines, p.Rules)
    pairs, tier := pair.ReconcileWithTier(kept, p.Pair)
    return pairs, tier, noise
}
