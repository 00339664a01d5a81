package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperifyio/goalign/internal/extract"
)

// manifestEntry is a compact record of a single input document.
type manifestEntry struct {
	Index        int                `json:"index"`
	Name         string             `json:"name"`
	SHA256       string             `json:"sha256,omitempty"`
	Status       string             `json:"status"`
	Error        string             `json:"error,omitempty"`
	Pairs        int                `json:"pairs"`
	Blocks       int                `json:"blocks"`
	NoiseLines   int                `json:"noise_lines"`
	Tiers        extract.TierCounts `json:"tiers"`
	SourceTokens int                `json:"source_tokens"`
	TargetWords  int                `json:"target_words"`
	Cached       bool               `json:"cached"`
	Outputs      []string           `json:"outputs,omitempty"`
}

// manifestMeta captures high-level run details that aid reproducibility.
type manifestMeta struct {
	Profile     string    `json:"profile"`
	Encoding    string    `json:"encoding"`
	Fingerprint string    `json:"fingerprint"`
	Documents   int       `json:"documents"`
	Pairs       int       `json:"pairs"`
	Cache       bool      `json:"cache"`
	GeneratedAt time.Time `json:"generated_at"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of b.
func computeSHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// buildManifestEntries converts batch results into manifest records, in
// document order.
func buildManifestEntries(results []DocResult) []manifestEntry {
	out := make([]manifestEntry, 0, len(results))
	for _, r := range results {
		e := manifestEntry{
			Index:        r.Index,
			Name:         r.Name,
			SHA256:       r.SHA256,
			Status:       "ok",
			Pairs:        len(r.Doc.Pairs),
			Blocks:       r.Doc.Blocks,
			NoiseLines:   r.Doc.NoiseLines,
			Tiers:        r.Doc.Tiers,
			SourceTokens: r.Stats.SourceTokens,
			TargetWords:  r.Stats.TargetWords,
			Cached:       r.Cached,
		}
		for _, p := range r.Outputs {
			e.Outputs = append(e.Outputs, filepath.Base(p))
		}
		switch {
		case r.Err != nil:
			e.Status = "failed"
			e.Error = r.Err.Error()
		case r.Doc.Empty():
			e.Status = "empty"
		}
		out = append(out, e)
	}
	return out
}

// marshalManifestJSON encodes a machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, entries []manifestEntry) ([]byte, error) {
	payload := struct {
		Meta      manifestMeta    `json:"meta"`
		Documents []manifestEntry `json:"documents"`
	}{Meta: meta, Documents: entries}
	return json.MarshalIndent(payload, "", "  ")
}

func writeManifest(path string, meta manifestMeta, entries []manifestEntry) error {
	b, err := marshalManifestJSON(meta, entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// deriveManifestPath returns the manifest location inside the output directory.
func deriveManifestPath(outputDir string) string {
	return filepath.Join(outputDir, "manifest.json")
}
