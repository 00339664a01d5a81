package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goalign/internal/corpus"
	"github.com/hyperifyio/goalign/internal/pair"
)

// ConvertResult summarises a directory conversion or merge.
type ConvertResult struct {
	Files   int
	Records int
}

// ConvertTSVDir rewrites every *.tsv file in inDir as a *.jsonl file in
// outDir. With swap the TSV columns are read as target then source.
func ConvertTSVDir(ctx context.Context, inDir, outDir string, swap bool, f corpus.Fields) (ConvertResult, error) {
	var res ConvertResult
	names, err := listInputs(inDir, ".tsv")
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := convertTSVFile(filepath.Join(inDir, name), filepath.Join(outDir, stem(name)+".jsonl"), swap, f)
		if err != nil {
			return res, fmt.Errorf("convert %s: %w", name, err)
		}
		log.Debug().Str("file", name).Int("records", n).Msg("converted")
		res.Files++
		res.Records += n
	}
	log.Info().Int("files", res.Files).Int("records", res.Records).Msg("conversion complete")
	return res, nil
}

func convertTSVFile(inPath, outPath string, swap bool, f corpus.Fields) (int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	pairs, err := corpus.ReadTSV(in, swap)
	if err != nil {
		return 0, err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	w := corpus.NewJSONLWriter(out, f)
	if err := w.WriteAll(pairs); err != nil {
		return 0, err
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	return len(pairs), out.Close()
}

// MergeJSONLDir concatenates every *.jsonl file in inDir, in sorted order,
// into outPath with a sentinel record after each file.
func MergeJSONLDir(ctx context.Context, inDir, outPath string, f corpus.Fields, sentinel pair.Pair) (ConvertResult, error) {
	var res ConvertResult
	names, err := listInputs(inDir, ".jsonl")
	if err != nil {
		return res, err
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("create output dir: %w", err)
		}
	}
	absOut, _ := filepath.Abs(outPath)
	out, err := os.Create(outPath)
	if err != nil {
		return res, err
	}
	defer out.Close()
	m := corpus.NewMergedWriter(out, f, sentinel)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p := filepath.Join(inDir, name)
		// The output may live inside the input directory.
		if abs, _ := filepath.Abs(p); abs == absOut {
			continue
		}
		if err := copyDocument(m, p); err != nil {
			return res, fmt.Errorf("merge %s: %w", name, err)
		}
	}
	if err := m.Flush(); err != nil {
		return res, err
	}
	res.Files, res.Records = m.Documents(), m.Records()
	log.Info().Int("files", res.Files).Int("records", res.Records).Str("output", outPath).Msg("merge complete")
	return res, out.Close()
}

func copyDocument(m *corpus.MergedWriter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.CopyDocument(f)
}
