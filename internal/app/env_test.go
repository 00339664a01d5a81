package app

import (
    "os"
    "path/filepath"
    "testing"
    "time"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates os.Environ.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
    t.Setenv("FOO", "")
    t.Setenv("BAR", "")

    dir := t.TempDir()
    envPath := filepath.Join(dir, ".env.test")
    content := "\n# sample dotenv file\nFOO=alpha\nBAR=\"beta\"\n"
    if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
        t.Fatalf("write dotenv: %v", err)
    }

    if err := LoadEnvFiles(envPath); err != nil {
        t.Fatalf("LoadEnvFiles error: %v", err)
    }

    if got := os.Getenv("FOO"); got != "alpha" {
        t.Fatalf("FOO=%q, want alpha", got)
    }
    if got := os.Getenv("BAR"); got != "beta" {
        t.Fatalf("BAR=%q, want beta", got)
    }
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
    t.Setenv("K", "")
    dir := t.TempDir()
    a := filepath.Join(dir, ".env.a")
    b := filepath.Join(dir, ".env.b")
    if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil { t.Fatalf("write a: %v", err) }
    if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil { t.Fatalf("write b: %v", err) }

    if err := LoadEnvFiles(a, filepath.Join(dir, "missing.env"), b); err != nil {
        t.Fatalf("LoadEnvFiles error: %v", err)
    }
    if got := os.Getenv("K"); got != "second" {
        t.Fatalf("override order failed: got %q, want second", got)
    }
}

func TestApplyEnvToConfig_FromEnv(t *testing.T) {
    t.Setenv("GOALIGN_PROFILE", "basic")
    t.Setenv("GOALIGN_CACHE_DIR", "/tmp/goalign-cache")
    t.Setenv("GOALIGN_WORKERS", "4")
    t.Setenv("GOALIGN_CACHE_MAX_AGE", "2h")
    t.Setenv("GOALIGN_DRY_RUN", "yes")
    t.Setenv("GOALIGN_FORMAT", "jsonl")

    cfg := Config{Format: FormatBoth}
    ApplyEnvToConfig(&cfg)
    if cfg.Profile != "basic" {
        t.Fatalf("Profile=%q, want basic", cfg.Profile)
    }
    if cfg.CacheDir != "/tmp/goalign-cache" {
        t.Fatalf("CacheDir=%q", cfg.CacheDir)
    }
    if cfg.Workers != 4 || cfg.CacheMaxAge != 2*time.Hour || !cfg.DryRun {
        t.Fatalf("unexpected cfg: %+v", cfg)
    }
    if cfg.Format != FormatBoth {
        t.Fatalf("explicit Format overridden by env: %q", cfg.Format)
    }
}
