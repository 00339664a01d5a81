package app

import (
    "os"
    "path/filepath"
    "reflect"
    "strings"
    "testing"
    "time"

    "github.com/hyperifyio/goalign/internal/classify"
)

func TestLoadConfigFile_YAMLWithRules(t *testing.T) {
    dir := t.TempDir()
    p := filepath.Join(dir, "goalign.yaml")
    content := `
input: texts
output: out
profile: basic
format: both
workers: 3
rules:
  disable: [url, exclaim]
  translatorNotes: ["［訳注"]
  maxShortLen: 4
fields:
  source: src
  target: tgt
cache:
  dir: .cache
  maxAge: 36h
`
    if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    fc, err := LoadConfigFile(p)
    if err != nil {
        t.Fatalf("LoadConfigFile: %v", err)
    }

    cfg := Config{Format: FormatJSONL}
    ApplyFileConfig(&cfg, fc)
    if cfg.InputDir != "texts" || cfg.OutputDir != "out" || cfg.Profile != "basic" {
        t.Fatalf("paths/profile not applied: %+v", cfg)
    }
    if cfg.Format != FormatJSONL {
        t.Fatalf("file overrode explicit format: %q", cfg.Format)
    }
    if cfg.Workers != 3 || cfg.SourceField != "src" || cfg.TargetField != "tgt" {
        t.Fatalf("unexpected cfg: %+v", cfg)
    }
    if cfg.CacheDir != ".cache" || cfg.CacheMaxAge != 36*time.Hour {
        t.Fatalf("cache settings: dir=%q maxAge=%v", cfg.CacheDir, cfg.CacheMaxAge)
    }
    want := &classify.Override{
        Disable:                []classify.Reason{classify.ReasonURL, classify.ReasonExclaim},
        TranslatorNotePrefixes: []string{"［訳注"},
        FootnotePatterns:       []string{},
        MaxShortLen:            4,
    }
    if !reflect.DeepEqual(cfg.Rules, want) {
        t.Fatalf("rules=%+v, want %+v", cfg.Rules, want)
    }
}

func TestLoadConfigFile_JSON(t *testing.T) {
    dir := t.TempDir()
    p := filepath.Join(dir, "goalign.json")
    if err := os.WriteFile(p, []byte(`{"input":"in","merged":"all.jsonl","dryRun":true}`), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    fc, err := LoadConfigFile(p)
    if err != nil {
        t.Fatalf("LoadConfigFile: %v", err)
    }
    var cfg Config
    ApplyFileConfig(&cfg, fc)
    if cfg.InputDir != "in" || cfg.MergedPath != "all.jsonl" || !cfg.DryRun {
        t.Fatalf("unexpected cfg: %+v", cfg)
    }
}

func TestApplyDefaults(t *testing.T) {
    cfg := Config{Extension: "txt"}
    ApplyDefaults(&cfg)
    if cfg.Extension != ".txt" || cfg.Profile != DefaultProfile || cfg.Format != FormatTSV || cfg.Workers != 1 {
        t.Fatalf("unexpected defaults: %+v", cfg)
    }
}

func TestValidateConfig(t *testing.T) {
    in := t.TempDir()
    cases := []struct {
        name    string
        cfg     Config
        wantErr string
    }{
        {"ok", Config{InputDir: in, OutputDir: "out"}, ""},
        {"dry run needs no output", Config{InputDir: in, DryRun: true}, ""},
        {"no input", Config{OutputDir: "out"}, "input directory is required"},
        {"no output", Config{InputDir: in}, "output directory is required"},
        {"bad format", Config{InputDir: in, OutputDir: "out", Format: "csv"}, "unknown format"},
        {"negative workers", Config{InputDir: in, OutputDir: "out", Workers: -1}, "negative"},
    }
    for _, tc := range cases {
        err := ValidateConfig(tc.cfg)
        if tc.wantErr == "" {
            if err != nil {
                t.Fatalf("%s: unexpected error %v", tc.name, err)
            }
            continue
        }
        if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
            t.Fatalf("%s: err=%v, want containing %q", tc.name, err, tc.wantErr)
        }
    }
}
