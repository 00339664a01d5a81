package app

import (
    "fmt"
    "os"
    "path/filepath"
    "sort"
    "strings"
)

// listInputs returns the names of regular files in dir whose extension
// matches ext (case-insensitive), in lexicographic order.
func listInputs(dir, ext string) ([]string, error) {
    entries, err := os.ReadDir(dir)
    if err != nil {
        return nil, fmt.Errorf("list %s: %w", dir, err)
    }
    var names []string
    for _, e := range entries {
        if e.IsDir() { continue }
        if ext != "" && !strings.EqualFold(filepath.Ext(e.Name()), ext) { continue }
        names = append(names, e.Name())
    }
    sort.Strings(names)
    return names, nil
}

// stem strips the final extension from a file name.
func stem(name string) string {
    return strings.TrimSuffix(name, filepath.Ext(name))
}

// deriveOutputPaths returns the per-document output files for format. The
// base name is kept so "story.alm" becomes "story.tsv" and/or "story.jsonl".
func deriveOutputPaths(outDir, inputName, format string) []string {
    base := filepath.Join(outDir, stem(inputName))
    switch format {
    case FormatJSONL:
        return []string{base + ".jsonl"}
    case FormatBoth:
        return []string{base + ".tsv", base + ".jsonl"}
    default:
        return []string{base + ".tsv"}
    }
}
