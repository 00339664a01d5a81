package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// envPrefix namespaces every variable read by ApplyEnvToConfig.
const envPrefix = "GOALIGN_"

func getenv(key string) string {
    return strings.TrimSpace(os.Getenv(envPrefix + key))
}

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    setString := func(dst *string, key string) {
        if *dst == "" { *dst = getenv(key) }
    }
    setString(&cfg.InputDir, "INPUT")
    setString(&cfg.OutputDir, "OUTPUT")
    setString(&cfg.Extension, "EXTENSION")
    setString(&cfg.Profile, "PROFILE")
    setString(&cfg.Encoding, "ENCODING")
    setString(&cfg.Format, "FORMAT")
    setString(&cfg.CombinedPath, "COMBINED")
    setString(&cfg.MergedPath, "MERGED")
    setString(&cfg.SourceField, "SOURCE_FIELD")
    setString(&cfg.TargetField, "TARGET_FIELD")
    setString(&cfg.SentinelSource, "SENTINEL_SOURCE")
    setString(&cfg.SentinelTarget, "SENTINEL_TARGET")
    setString(&cfg.CacheDir, "CACHE_DIR")

    setInt := func(dst *int, key string) {
        if *dst != 0 { return }
        if n, err := strconv.Atoi(getenv(key)); err == nil && n > 0 {
            *dst = n
        }
    }
    setInt(&cfg.Workers, "WORKERS")
    setInt(&cfg.MinChars, "MIN_CHARS")

    // Optional durations
    if cfg.CacheMaxAge == 0 {
        if s := getenv("CACHE_MAX_AGE"); s != "" {
            if d, err := time.ParseDuration(s); err == nil {
                cfg.CacheMaxAge = d
            }
        }
    }

    // Booleans
    setBool := func(dst *bool, key string) {
        if *dst { return }
        switch strings.ToLower(getenv(key)) {
        case "1", "true", "yes", "on":
            *dst = true
        }
    }
    setBool(&cfg.Manifest, "MANIFEST")
    setBool(&cfg.Stats, "STATS")
    setBool(&cfg.DryRun, "DRY_RUN")
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.CacheClear, "CACHE_CLEAR")
    setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
}
