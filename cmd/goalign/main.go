package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goalign/internal/app"
	"github.com/hyperifyio/goalign/internal/corpus"
	"github.com/hyperifyio/goalign/internal/pair"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	os.Exit(runCLI(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  goalign extract [flags] <input_dir> <output_dir>")
	fmt.Fprintln(w, "  goalign jsonl [flags] <tsv_dir> <jsonl_dir>")
	fmt.Fprintln(w, "  goalign merge [flags] <jsonl_dir> <output_file>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'goalign <command> -h' for command flags.")
}

// runCLI dispatches a subcommand and returns the process exit code. A bare
// "<input_dir> <output_dir>" is treated as extract.
func runCLI(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}
	switch args[0] {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "extract":
		return runExtract(ctx, args[1:], stdout, stderr)
	case "jsonl":
		return runJSONL(ctx, args[1:], stderr)
	case "merge":
		return runMerge(ctx, args[1:], stderr)
	default:
		return runExtract(ctx, args, stdout, stderr)
	}
}

func setVerbose(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// parseFlags maps flag errors to exit codes; ok is false when the caller
// should return code immediately.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func runExtract(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg        app.Config
		configPath string
		envFiles   string
	)
	fs.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	fs.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load")
	fs.StringVar(&cfg.Profile, "profile", "", "Noise profile: full (UTF-8) or basic (Shift-JIS)")
	fs.StringVar(&cfg.Encoding, "encoding", "", "Override the profile's text encoding, e.g. utf-8 or shift_jis")
	fs.StringVar(&cfg.Extension, "ext", "", "Input file extension (default .alm)")
	fs.StringVar(&cfg.Format, "format", "", "Per-document output format: tsv, jsonl or both")
	fs.StringVar(&cfg.CombinedPath, "combined", "", "Write all pairs to this single file instead of per-document files")
	fs.StringVar(&cfg.MergedPath, "merged", "", "Also write a merged JSONL dataset with a sentinel after each document")
	fs.IntVar(&cfg.MinChars, "min.chars", 0, "Minimum characters per pair side (default 3)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Documents processed in parallel (default 1)")
	fs.StringVar(&cfg.SourceField, "field.source", "", "JSON key for the Japanese side (default ja)")
	fs.StringVar(&cfg.TargetField, "field.target", "", "JSON key for the English side (default en)")
	fs.StringVar(&cfg.SentinelSource, "sentinel.source", "", "Japanese text of the merged-dataset sentinel")
	fs.StringVar(&cfg.SentinelTarget, "sentinel.target", "", "English text of the merged-dataset sentinel")
	fs.BoolVar(&cfg.Manifest, "manifest", false, "Write manifest.json to the output directory")
	fs.BoolVar(&cfg.Stats, "stats", false, "Count Japanese morphemes and English words")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Extract and report without writing files")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.StringVar(&cfg.CacheDir, "cache.dir", "", "Cache directory for extraction results (empty disables)")
	fs.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	fs.BoolVar(&cfg.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: goalign extract [flags] <input_dir> <output_dir>")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		cfg.InputDir = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		cfg.OutputDir = fs.Arg(1)
	}

	if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}
	app.ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("config load failed")
			return 1
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	setVerbose(cfg.Verbose)

	if cfg.InputDir == "" || (cfg.OutputDir == "" && !cfg.DryRun) {
		fs.Usage()
		return 1
	}

	sum, err := run(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		return 1
	}
	sum.Report(stdout)
	return 0
}

func run(ctx context.Context, cfg app.Config) (app.Summary, error) {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return app.Summary{}, fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}

func fieldFlags(fs *flag.FlagSet) *corpus.Fields {
	f := corpus.DefaultFields()
	fs.StringVar(&f.Source, "field.source", f.Source, "JSON key for the Japanese side")
	fs.StringVar(&f.Target, "field.target", f.Target, "JSON key for the English side")
	return &f
}

func runJSONL(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	swap := fs.Bool("swap", false, "TSV columns are English then Japanese")
	verbose := fs.Bool("v", false, "Verbose logging")
	fields := fieldFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: goalign jsonl [flags] <tsv_dir> <jsonl_dir>")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 1
	}
	setVerbose(*verbose)

	res, err := app.ConvertTSVDir(ctx, fs.Arg(0), fs.Arg(1), *swap, *fields)
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
		return 1
	}
	log.Debug().Int("files", res.Files).Msg("done")
	return 0
}

func runMerge(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose logging")
	fields := fieldFlags(fs)
	var sentinel pair.Pair
	fs.StringVar(&sentinel.Source, "sentinel.source", corpus.DefaultSentinel.Source, "Japanese text of the sentinel record")
	fs.StringVar(&sentinel.Target, "sentinel.target", corpus.DefaultSentinel.Target, "English text of the sentinel record")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: goalign merge [flags] <jsonl_dir> <output_file>")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 1
	}
	setVerbose(*verbose)

	if _, err := app.MergeJSONLDir(ctx, fs.Arg(0), fs.Arg(1), *fields, sentinel); err != nil {
		log.Error().Err(err).Msg("merge failed")
		return 1
	}
	return 0
}
