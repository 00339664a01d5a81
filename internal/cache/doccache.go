package cache

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "github.com/hyperifyio/goalign/internal/extract"
)

// DocCache stores extraction results keyed by a digest of the profile
// fingerprint and the raw document bytes.
type DocCache struct {
    Dir         string
    // StrictPerms, when true, enforces 0700 on cache directories and 0600 on
    // files.
    StrictPerms bool
}

func (c *DocCache) ensureDir() error {
    if c == nil || c.Dir == "" {
        return errors.New("cache dir not configured")
    }
    perm := os.FileMode(0o755)
    if c.StrictPerms {
        perm = 0o700
    }
    if err := os.MkdirAll(c.Dir, perm); err != nil {
        return err
    }
    // If directory already existed and StrictPerms is on, tighten perms
    if c.StrictPerms {
        if info, err := os.Stat(c.Dir); err == nil {
            if info.Mode()&0o777 != 0o700 {
                _ = os.Chmod(c.Dir, 0o700)
            }
        }
    }
    return nil
}

// KeyFrom builds a cache key from a profile fingerprint and document content.
func KeyFrom(fingerprint string, content []byte) string {
    h := sha256.New()
    h.Write([]byte(fingerprint))
    h.Write([]byte("\n\n"))
    h.Write(content)
    return hex.EncodeToString(h.Sum(nil))
}

func (c *DocCache) pathFor(key string) string {
    return filepath.Join(c.Dir, key+".json")
}

// Get returns the cached document if present. A corrupt entry is treated as
// a miss.
func (c *DocCache) Get(_ context.Context, key string) (extract.Document, bool, error) {
    var doc extract.Document
    if err := c.ensureDir(); err != nil {
        return doc, false, err
    }
    p := c.pathFor(key)
    b, err := os.ReadFile(p)
    if err != nil {
        return doc, false, nil
    }
    if err := json.Unmarshal(b, &doc); err != nil {
        return extract.Document{}, false, nil
    }
    // Touch file mtime on access so age-based purges keep hot entries
    now := time.Now()
    _ = os.Chtimes(p, now, now)
    return doc, true, nil
}

// Save writes doc to the cache.
func (c *DocCache) Save(_ context.Context, key string, doc extract.Document) error {
    if err := c.ensureDir(); err != nil {
        return err
    }
    data, err := json.Marshal(doc)
    if err != nil {
        return fmt.Errorf("encode cache entry: %w", err)
    }
    mode := os.FileMode(0o644)
    if c.StrictPerms {
        mode = 0o600
    }
    return os.WriteFile(c.pathFor(key), data, mode)
}
