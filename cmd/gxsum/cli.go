package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/hupe1980/gxhash"
	"github.com/hupe1980/gxhash/executor"
	"github.com/hupe1980/gxhash/hashlib"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	algorithm  string
	seed       int64
	decompress bool
	json       bool
	check      string
	output     string
	jobs       int
	ioLimit    int64
	quiet      bool
	verbose    bool
	files      []string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "version" {
		printVersion(stdout)
		return exitOK
	}

	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	a, err := newApp(opts, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "gxsum: %v\n", err)
		return exitFailure
	}
	defer a.close()

	if opts.check != "" {
		return a.check(ctx)
	}
	return a.sum(ctx)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("gxsum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.algorithm, "a", "gxhash64", "algorithm: "+strings.Join(hashlib.Algorithms(), ", "))
	fs.Int64Var(&opts.seed, "s", 0, "hash seed")
	fs.BoolVar(&opts.decompress, "d", false, "hash the decompressed content of .gz, .zst and .lz4 inputs")
	fs.BoolVar(&opts.json, "json", false, "write JSON instead of text")
	fs.StringVar(&opts.check, "c", "", "verify the checksums listed in `manifest`")
	fs.StringVar(&opts.output, "o", "", "write the manifest to `path` instead of stdout")
	fs.IntVar(&opts.jobs, "j", runtime.GOMAXPROCS(0), "number of inputs hashed in parallel")
	fs.Int64Var(&opts.ioLimit, "limit", 0, "read at most `n` bytes per second from streamed inputs (0 = unlimited)")
	fs.BoolVar(&opts.quiet, "q", false, "with -c, do not print OK lines")
	fs.BoolVar(&opts.verbose, "v", false, "log debug output to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  gxsum [flags] [file ...]\n  gxsum -c manifest [flags]\n  gxsum version\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.files = fs.Args()

	usage := func(format string, args ...any) (options, error) {
		err := fmt.Errorf(format, args...)
		fmt.Fprintf(stderr, "gxsum: %v\n", err)
		fs.Usage()
		return opts, err
	}

	if _, err := hashlib.ParseAlgorithm(opts.algorithm); err != nil {
		return usage("%w", err)
	}
	if opts.jobs < 1 {
		return usage("-j must be at least 1, got %d", opts.jobs)
	}
	if opts.ioLimit < 0 {
		return usage("-limit must not be negative")
	}
	if opts.check != "" && opts.output != "" {
		return usage("-c and -o are mutually exclusive")
	}
	if opts.check != "" && len(opts.files) > 0 {
		return usage("-c takes no file arguments")
	}
	if len(opts.files) == 0 && opts.check == "" {
		opts.files = []string{"-"}
	}
	return opts, nil
}

type app struct {
	opts    options
	alg     hashlib.Algorithm
	rt      *executor.Runtime
	logger  *gxhash.Logger
	metrics *gxhash.BasicMetricsCollector
	sources *resolver

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(opts options, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	alg, err := hashlib.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := gxhash.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := executor.ConfigFromEnv(executor.Config{
		IOLimitBytesPerSec: opts.ioLimit,
		Logger:             logger.Logger,
	})
	if err != nil {
		return nil, err
	}
	rt, err := executor.New(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		opts:    opts,
		alg:     alg,
		rt:      rt,
		logger:  logger,
		metrics: &gxhash.BasicMetricsCollector{},
		sources: newResolver(),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

func (a *app) close() {
	stats := a.metrics.GetStats()
	a.logger.Debug("hash stats",
		"inline", stats.InlineCount,
		"inline_bytes", stats.InlineBytes,
		"offloaded", stats.OffloadCount,
		"offloaded_bytes", stats.OffloadBytes,
		"offload_errors", stats.OffloadErrors,
	)
	if err := a.sources.close(); err != nil {
		a.logger.Warn("store close failed", "error", err)
	}
	if err := a.rt.Close(); err != nil {
		a.logger.Warn("runtime close failed", "error", err)
	}
}

func (a *app) hashOptions(seed int64) []hashlib.Option {
	return []hashlib.Option{
		hashlib.WithSeed(seed),
		hashlib.WithResourceController(a.rt.Controller()),
	}
}

func (a *app) hasherOptions() []gxhash.Option {
	return []gxhash.Option{
		gxhash.WithRuntime(a.rt),
		gxhash.WithLogger(a.logger),
		gxhash.WithMetricsCollector(a.metrics),
	}
}

func (a *app) errorf(name string, err error) {
	fmt.Fprintf(a.stderr, "gxsum: %s: %v\n", name, err)
}
