// Package main is the entry point for tablefmt.
//
// tablefmt reads a document fixture, normalizes its tables and prints the
// result as YAML or as a text grid.
package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/dshills/edittable/internal/config"
	"github.com/dshills/edittable/internal/engine"
	"github.com/dshills/edittable/internal/fixture"
	"github.com/dshills/edittable/internal/logging"
	"github.com/dshills/edittable/internal/plugin"
	"github.com/dshills/edittable/internal/table"
	"github.com/dshills/edittable/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// Output formats.
const (
	formatYAML = "yaml"
	formatGrid = "grid"
)

type options struct {
	ConfigPath string
	LogLevel   string
	Format     string
	Scripts    []string
	Watch      bool
	Write      bool
	File       string
}

type scriptList []string

func (s *scriptList) String() string { return fmt.Sprint(*s) }

func (s *scriptList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts == nil {
		fmt.Fprintf(stdout, "tablefmt %s (%s)\n", version, commit)
		return 0
	}

	cfg := config.New(config.WithFile(opts.ConfigPath))
	if err := cfg.Load(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return 1
	}

	logCfg := cfg.Logging()
	if opts.LogLevel != "" {
		logCfg.Level = opts.LogLevel
	}
	logger, err := logging.New(stderr, logCfg.Level, logCfg.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	f, err := newFormatter(cfg, opts, stdout, stderr, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := f.process(ctx); err != nil {
		logger.Error("format failed", slog.String("file", opts.File), slog.Any("err", err))
		if !opts.Watch {
			return 1
		}
	}
	if !opts.Watch {
		return 0
	}
	if err := f.watch(ctx); err != nil {
		logger.Error("watch failed", slog.Any("err", err))
		return 1
	}
	return 0
}

// parseFlags returns nil options when only the version was requested.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options
	var scripts scriptList
	var showVersion bool

	fs := flag.NewFlagSet("tablefmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	fs.StringVar(&opts.Format, "format", formatYAML, "Output format (yaml, grid)")
	fs.Var(&scripts, "script", "Lua script to run after loading (repeatable)")
	fs.BoolVar(&opts.Watch, "watch", false, "Reformat whenever the file changes")
	fs.BoolVar(&opts.Write, "write", false, "Write the result back to the file instead of stdout")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "tablefmt - normalize tables in a document fixture\n\n")
		fmt.Fprintf(stderr, "Usage: tablefmt [options] file.yaml\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if showVersion {
		return nil, nil
	}

	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return nil, err
		}
	}
	switch opts.Format {
	case formatYAML, formatGrid:
	default:
		err := fmt.Errorf("invalid format %q (must be yaml or grid)", opts.Format)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, err
	}
	if opts.Write && opts.Format != formatYAML {
		err := errors.New("-write requires -format yaml")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one file")
	}
	opts.File = fs.Arg(0)
	opts.Scripts = scripts
	return &opts, nil
}

// formatter runs one normalize pass over the input file per call to process.
type formatter struct {
	opts      *options
	tableOpts table.Options
	maxSteps  int
	maxUndo   int
	scripts   []string
	stdout    io.Writer
	scriptOut io.Writer
	logger    *slog.Logger

	// Digest of the bytes last written by -write. Reading them back is a
	// no-op, so scripts are not applied twice to their own output.
	written     bool
	writtenHash [sha256.Size]byte
}

func newFormatter(cfg *config.Config, opts *options, stdout, stderr io.Writer, logger *slog.Logger) (*formatter, error) {
	tableOpts, err := cfg.TableOptions()
	if err != nil {
		return nil, fmt.Errorf("table options: %w", err)
	}
	normalizeCfg := cfg.Normalize()
	historyCfg := cfg.History()
	for path, err := range cfg.ConfigErrors() {
		logger.Warn("invalid setting, using default", slog.String("setting", path), slog.Any("err", err))
	}

	return &formatter{
		opts:      opts,
		tableOpts: tableOpts,
		maxSteps:  normalizeCfg.MaxSteps,
		maxUndo:   historyCfg.MaxEntries,
		scripts:   slices.Concat(cfg.Plugins().Scripts, opts.Scripts),
		stdout:    stdout,
		scriptOut: stderr,
		logger:    logger,
	}, nil
}

func (f *formatter) process(ctx context.Context) error {
	input, err := os.ReadFile(f.opts.File)
	if err != nil {
		return err
	}
	if f.opts.Write && f.written && sha256.Sum256(input) == f.writtenHash {
		f.logger.Debug("skipping own write", slog.String("file", f.opts.File))
		return nil
	}
	fx, err := fixture.Decode(bytes.NewReader(input))
	if err != nil {
		return err
	}

	eng, err := engine.New(
		engine.WithTableOptions(f.tableOpts),
		engine.WithDocument(fx.Document),
		engine.WithSelection(fx.Selection),
		engine.WithMaxSteps(f.maxSteps),
		engine.WithMaxUndoEntries(f.maxUndo),
		engine.WithLogger(f.logger),
	)
	if err != nil {
		return err
	}

	if err := f.runScripts(ctx, eng); err != nil {
		return err
	}

	if f.opts.Format == formatGrid {
		return renderGrid(f.stdout, eng.Document(), f.tableOpts)
	}

	var out bytes.Buffer
	if err := fixture.Encode(&out, &fixture.Fixture{Document: eng.Document(), Selection: eng.Selection()}); err != nil {
		return err
	}
	if !f.opts.Write {
		_, err := f.stdout.Write(out.Bytes())
		return err
	}
	if bytes.Equal(out.Bytes(), input) {
		f.logger.Debug("file unchanged", slog.String("file", f.opts.File))
		return nil
	}
	if err := os.WriteFile(f.opts.File, out.Bytes(), 0o644); err != nil {
		return err
	}
	f.written = true
	f.writtenHash = sha256.Sum256(out.Bytes())
	f.logger.Info("wrote file", slog.String("file", f.opts.File))
	return nil
}

func (f *formatter) runScripts(ctx context.Context, eng *engine.Engine) error {
	if len(f.scripts) == 0 {
		return nil
	}
	host, err := plugin.NewHost(eng, plugin.WithLogger(f.logger), plugin.WithOutput(f.scriptOut))
	if err != nil {
		return err
	}
	defer host.Close()

	for _, path := range f.scripts {
		if err := host.RunFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// watch reprocesses the file on every change until ctx is done. The event
// triggered by a -write is skipped by process.
func (f *formatter) watch(ctx context.Context) error {
	w, err := watcher.New(watcher.WithLogger(f.logger))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(f.opts.File); err != nil {
		return err
	}
	f.logger.Info("watching", slog.String("file", f.opts.File))
	return f.watchLoop(ctx, w)
}

func (f *formatter) watchLoop(ctx context.Context, w *watcher.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
				if _, err := os.Stat(f.opts.File); err != nil {
					f.logger.Warn("file gone, waiting for it to return", slog.String("file", f.opts.File))
					continue
				}
			}
			if err := f.process(ctx); err != nil {
				f.logger.Error("format failed", slog.String("file", f.opts.File), slog.Any("err", err))
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			f.logger.Warn("watch error", slog.Any("err", err))
		}
	}
}
