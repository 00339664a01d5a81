package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/goalign/internal/classify"
)

// ErrInputDirMissing is returned when the input directory does not exist.
var ErrInputDirMissing = errors.New("input directory does not exist")

// Defaults applied after flags, environment and config file.
const (
    DefaultExtension = ".alm"
    DefaultProfile   = "full"
    DefaultFormat    = FormatTSV
    DefaultWorkers   = 1
)

// FileConfig represents the single-file configuration schema.
// Nested sections improve readability and map naturally to flags/env.
type FileConfig struct {
    Input     string `yaml:"input" json:"input"`
    Output    string `yaml:"output" json:"output"`
    Extension string `yaml:"extension" json:"extension"`

    Profile  string `yaml:"profile" json:"profile"`
    Encoding string `yaml:"encoding" json:"encoding"`
    MinChars int    `yaml:"minChars" json:"minChars"`

    Rules *struct {
        Disable         []string `yaml:"disable" json:"disable"`
        TranslatorNotes []string `yaml:"translatorNotes" json:"translatorNotes"`
        Footnotes       []string `yaml:"footnotes" json:"footnotes"`
        MaxShortLen     int      `yaml:"maxShortLen" json:"maxShortLen"`
    } `yaml:"rules" json:"rules"`

    Format   string `yaml:"format" json:"format"`
    Combined string `yaml:"combined" json:"combined"`
    Merged   string `yaml:"merged" json:"merged"`

    Fields struct {
        Source string `yaml:"source" json:"source"`
        Target string `yaml:"target" json:"target"`
    } `yaml:"fields" json:"fields"`

    Sentinel struct {
        Source string `yaml:"source" json:"source"`
        Target string `yaml:"target" json:"target"`
    } `yaml:"sentinel" json:"sentinel"`

    Manifest bool `yaml:"manifest" json:"manifest"`
    Stats    bool `yaml:"stats" json:"stats"`
    Workers  int  `yaml:"workers" json:"workers"`
    DryRun   bool `yaml:"dryRun" json:"dryRun"`
    Verbose  bool `yaml:"verbose" json:"verbose"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
    } `yaml:"cache" json:"cache"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are still unset. Flags and environment have already been applied, so the
// file only supplies what neither of them set.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.InputDir == "" && fc.Input != "" { cfg.InputDir = fc.Input }
    if cfg.OutputDir == "" && fc.Output != "" { cfg.OutputDir = fc.Output }
    if cfg.Extension == "" && fc.Extension != "" { cfg.Extension = fc.Extension }

    if cfg.Profile == "" && fc.Profile != "" { cfg.Profile = fc.Profile }
    if cfg.Encoding == "" && fc.Encoding != "" { cfg.Encoding = fc.Encoding }
    if cfg.MinChars == 0 && fc.MinChars > 0 { cfg.MinChars = fc.MinChars }
    if cfg.Rules == nil && fc.Rules != nil {
        o := &classify.Override{
            TranslatorNotePrefixes: append([]string{}, fc.Rules.TranslatorNotes...),
            FootnotePatterns:       append([]string{}, fc.Rules.Footnotes...),
            MaxShortLen:            fc.Rules.MaxShortLen,
        }
        for _, d := range fc.Rules.Disable {
            if s := strings.TrimSpace(d); s != "" { o.Disable = append(o.Disable, classify.Reason(s)) }
        }
        cfg.Rules = o
    }

    if cfg.Format == "" && fc.Format != "" { cfg.Format = fc.Format }
    if cfg.CombinedPath == "" && fc.Combined != "" { cfg.CombinedPath = fc.Combined }
    if cfg.MergedPath == "" && fc.Merged != "" { cfg.MergedPath = fc.Merged }
    if cfg.SourceField == "" && fc.Fields.Source != "" { cfg.SourceField = fc.Fields.Source }
    if cfg.TargetField == "" && fc.Fields.Target != "" { cfg.TargetField = fc.Fields.Target }
    if cfg.SentinelSource == "" && fc.Sentinel.Source != "" { cfg.SentinelSource = fc.Sentinel.Source }
    if cfg.SentinelTarget == "" && fc.Sentinel.Target != "" { cfg.SentinelTarget = fc.Sentinel.Target }
    if !cfg.Manifest && fc.Manifest { cfg.Manifest = true }
    if !cfg.Stats && fc.Stats { cfg.Stats = true }

    if cfg.Workers == 0 && fc.Workers > 0 { cfg.Workers = fc.Workers }
    if !cfg.DryRun && fc.DryRun { cfg.DryRun = true }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }

    if cfg.CacheDir == "" && fc.Cache.Dir != "" { cfg.CacheDir = fc.Cache.Dir }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 { cfg.CacheMaxAge = fc.Cache.MaxAge }
    if !cfg.CacheClear && fc.Cache.Clear { cfg.CacheClear = true }
    if !cfg.CacheStrictPerms && fc.Cache.StrictPerms { cfg.CacheStrictPerms = true }
}

// ApplyDefaults fills whatever flags, environment and config file left unset.
func ApplyDefaults(cfg *Config) {
    if cfg == nil { return }
    if cfg.Extension == "" { cfg.Extension = DefaultExtension }
    if !strings.HasPrefix(cfg.Extension, ".") { cfg.Extension = "." + cfg.Extension }
    if cfg.Profile == "" { cfg.Profile = DefaultProfile }
    if cfg.Format == "" { cfg.Format = DefaultFormat }
    if cfg.Workers == 0 { cfg.Workers = DefaultWorkers }
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.InputDir) == "" {
        return errors.New("config: input directory is required")
    }
    if !cfg.DryRun && strings.TrimSpace(cfg.OutputDir) == "" && cfg.CombinedPath == "" && cfg.MergedPath == "" {
        return errors.New("config: output directory is required")
    }
    if info, err := os.Stat(cfg.InputDir); err != nil || !info.IsDir() {
        return fmt.Errorf("config: %w: %s", ErrInputDirMissing, cfg.InputDir)
    }
    switch cfg.Format {
    case "", FormatTSV, FormatJSONL, FormatBoth:
    default:
        return fmt.Errorf("config: unknown format %q (want tsv, jsonl or both)", cfg.Format)
    }
    if cfg.Workers < 0 || cfg.MinChars < 0 {
        return errors.New("config: negative limits are not allowed")
    }
    return nil
}
