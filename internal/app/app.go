package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/goalign/internal/cache"
	"github.com/hyperifyio/goalign/internal/corpus"
	"github.com/hyperifyio/goalign/internal/extract"
	"github.com/hyperifyio/goalign/internal/pair"
	"github.com/hyperifyio/goalign/internal/stats"
)

// App runs batch extraction over a directory of documents.
type App struct {
	cfg      Config
	profile  extract.Profile
	x        *extract.HeuristicExtractor
	docCache *cache.DocCache
	counter  *stats.Counter
	fields   corpus.Fields
	sentinel pair.Pair
}

// DocResult records the outcome for one input document.
type DocResult struct {
	Index   int
	Name    string
	SHA256  string
	Doc     extract.Document
	Stats   stats.Summary
	Cached  bool
	Outputs []string
	Err     error
}

// Summary describes a completed batch.
type Summary struct {
	Files     int
	Pairs     int
	Empty     []string
	Failed    []string
	OutputDir string
	Totals    stats.Summary
	Documents []DocResult
}

func New(ctx context.Context, cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	profile, err := extract.ProfileByName(cfg.Profile)
	if err != nil {
		return nil, err
	}
	if cfg.Encoding != "" {
		profile.Encoding = cfg.Encoding
	}
	if cfg.Rules != nil {
		rules, err := profile.Rules.Apply(*cfg.Rules)
		if err != nil {
			return nil, fmt.Errorf("noise rules: %w", err)
		}
		profile.Rules = rules
	}
	if cfg.MinChars > 0 {
		profile.Pair.MinChars = cfg.MinChars
	}
	x, err := extract.New(profile)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		profile:  x.Profile,
		x:        x,
		fields:   corpus.Fields{Source: cfg.SourceField, Target: cfg.TargetField},
		sentinel: pair.Pair{Source: cfg.SentinelSource, Target: cfg.SentinelTarget},
	}
	if cfg.CacheDir != "" {
		// Apply cache invalidation controls
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.docCache = &cache.DocCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	if cfg.Stats || cfg.Manifest {
		c, err := stats.NewCounter()
		if err != nil {
			return nil, err
		}
		a.counter = c
	}
	log.Debug().
		Str("profile", profile.Name).
		Str("encoding", x.Encoding().Name).
		Int("workers", cfg.Workers).
		Msg("extractor ready")
	return a, nil
}

// Close releases resources held by the App.
func (a *App) Close() {}

// Run processes every matching document in the input directory. Individual
// document failures are recorded in the summary and do not stop the batch.
func (a *App) Run(ctx context.Context) (Summary, error) {
	sum := Summary{OutputDir: a.cfg.OutputDir}
	names, err := listInputs(a.cfg.InputDir, a.cfg.Extension)
	if err != nil {
		return sum, err
	}
	if !a.cfg.DryRun && a.cfg.OutputDir != "" {
		if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
			return sum, fmt.Errorf("create output dir: %w", err)
		}
	}

	results := make([]DocResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		i, name := i, name
		g.Go(func() error {
			results[i] = a.processDocument(gctx, i, name)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	for _, r := range results {
		sum.Files++
		switch {
		case r.Err != nil:
			sum.Failed = append(sum.Failed, r.Name)
		case r.Doc.Empty():
			sum.Empty = append(sum.Empty, r.Name)
		}
		sum.Pairs += len(r.Doc.Pairs)
		sum.Totals.Add(r.Stats)
	}
	sum.Documents = results

	if !a.cfg.DryRun {
		if a.cfg.CombinedPath != "" {
			if err := a.writeCombined(results); err != nil {
				return sum, fmt.Errorf("write combined output: %w", err)
			}
		}
		if a.cfg.MergedPath != "" {
			if err := a.writeMerged(results); err != nil {
				return sum, fmt.Errorf("write merged dataset: %w", err)
			}
		}
		if a.cfg.Manifest && a.cfg.OutputDir != "" {
			meta := manifestMeta{
				Profile:     a.profile.Name,
				Encoding:    a.x.Encoding().Name,
				Fingerprint: a.profile.Fingerprint(),
				Documents:   sum.Files,
				Pairs:       sum.Pairs,
				Cache:       a.docCache != nil,
				GeneratedAt: time.Now().UTC(),
			}
			if err := writeManifest(deriveManifestPath(a.cfg.OutputDir), meta, buildManifestEntries(results)); err != nil {
				return sum, fmt.Errorf("write manifest: %w", err)
			}
		}
	}

	log.Info().
		Int("files", sum.Files).
		Int("pairs", sum.Pairs).
		Int("empty", len(sum.Empty)).
		Int("failed", len(sum.Failed)).
		Msg("extraction complete")
	return sum, nil
}

func (a *App) processDocument(ctx context.Context, index int, name string) DocResult {
	res := DocResult{Index: index, Name: name}
	raw, err := os.ReadFile(filepath.Join(a.cfg.InputDir, name))
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", name, err)
		log.Warn().Err(err).Str("file", name).Msg("document read failed")
		return res
	}
	res.SHA256 = computeSHA256Hex(raw)

	var key string
	if a.docCache != nil {
		key = cache.KeyFrom(a.profile.Fingerprint(), raw)
		if doc, ok, err := a.docCache.Get(ctx, key); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("cache read failed")
		} else if ok {
			res.Doc, res.Cached = doc, true
		}
	}
	if !res.Cached {
		res.Doc = a.x.Extract(raw)
		if a.docCache != nil {
			if err := a.docCache.Save(ctx, key, res.Doc); err != nil {
				log.Warn().Err(err).Str("file", name).Msg("cache write failed")
			}
		}
	}
	if a.counter != nil {
		res.Stats = a.counter.Summarize(res.Doc.Pairs)
	} else {
		res.Stats = stats.Summary{Pairs: len(res.Doc.Pairs)}
	}

	if res.Doc.Empty() {
		log.Warn().Str("file", name).Int("blocks", res.Doc.Blocks).Msg("no pairs extracted")
		return res
	}
	if !a.cfg.DryRun && a.cfg.CombinedPath == "" && a.cfg.OutputDir != "" {
		outs, err := a.writeDocument(name, res.Doc.Pairs)
		res.Outputs = outs
		if err != nil {
			res.Err = err
			log.Warn().Err(err).Str("file", name).Msg("document write failed")
			return res
		}
	}
	log.Info().
		Str("file", name).
		Int("pairs", len(res.Doc.Pairs)).
		Bool("cached", res.Cached).
		Msg("document processed")
	return res
}

func (a *App) writeDocument(name string, pairs []pair.Pair) ([]string, error) {
	paths := deriveOutputPaths(a.cfg.OutputDir, name, a.cfg.Format)
	for _, p := range paths {
		if err := a.writePairsFile(p, pairs); err != nil {
			return paths, fmt.Errorf("write %s: %w", filepath.Base(p), err)
		}
	}
	return paths, nil
}

// writePairsFile picks TSV or JSON Lines from the path's extension.
func (a *App) writePairsFile(path string, pairs []pair.Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isJSONLPath(path) {
		w := corpus.NewJSONLWriter(f, a.fields)
		if err := w.WriteAll(pairs); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	} else {
		bw := bufio.NewWriter(f)
		if err := corpus.WriteTSV(bw, pairs); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	}
	return f.Close()
}

func (a *App) writeCombined(results []DocResult) error {
	var all []pair.Pair
	for _, r := range results {
		if r.Err == nil {
			all = append(all, r.Doc.Pairs...)
		}
	}
	if err := a.writePairsFile(a.cfg.CombinedPath, all); err != nil {
		return err
	}
	log.Info().Str("file", a.cfg.CombinedPath).Int("pairs", len(all)).Msg("wrote combined output")
	return nil
}

func (a *App) writeMerged(results []DocResult) error {
	f, err := os.Create(a.cfg.MergedPath)
	if err != nil {
		return err
	}
	defer f.Close()
	m := corpus.NewMergedWriter(f, a.fields, a.sentinel)
	for _, r := range results {
		if r.Err != nil || r.Doc.Empty() {
			continue
		}
		if err := m.WriteDocument(r.Doc.Pairs); err != nil {
			return err
		}
	}
	if err := m.Flush(); err != nil {
		return err
	}
	log.Info().
		Str("file", a.cfg.MergedPath).
		Int("documents", m.Documents()).
		Int("records", m.Records()).
		Msg("wrote merged dataset")
	return f.Close()
}

func isJSONLPath(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".jsonl" || ext == ".json"
}
