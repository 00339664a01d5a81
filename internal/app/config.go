package app

import (
	"time"

	"github.com/hyperifyio/goalign/internal/classify"
)

// Output formats for per-document files.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
	FormatBoth  = "both"
)

// Config holds runtime configuration for the application.
type Config struct {
	InputDir  string
	OutputDir string
	// Extension selects input files, e.g. ".alm".
	Extension string

	// Extraction
	Profile  string
	Encoding string
	Rules    *classify.Override
	MinChars int

	// Output
	Format         string
	CombinedPath   string
	MergedPath     string
	SourceField    string
	TargetField    string
	SentinelSource string
	SentinelTarget string
	Manifest       bool
	Stats          bool

	// Behavior
	Workers int
	DryRun  bool
	Verbose bool

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
}
