package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mpyw/nextcall/internal/cache"
	"github.com/mpyw/nextcall/internal/config"
	"github.com/mpyw/nextcall/internal/continuation"
	"github.com/mpyw/nextcall/internal/jslint"
)

var errFindings = errors.New("findings reported")

type options struct {
	configPath   string
	continuation string
	aggregation  string
	format       string
	color        string
	jobs         int
	cacheDir     string
	noCache      bool
	verbose      bool
}

// execute runs the command line and returns the exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFindings):
		return exitFindings
	default:
		fmt.Fprintln(stderr, "nextcall-js:", err)
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "nextcall-js [paths...]",
		Short: "Check that JavaScript chain handlers call next()",
		Long: `nextcall-js reports functions taking (req, res, next) that do not call
next on every path. Directories are searched recursively for .js, .mjs, .cjs
and .jsx files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to "+config.FileName+" (default: searched upward from the first path argument)")
	flags.StringVar(&opts.continuation, "continuation", continuation.DefaultName, "name of the continuation parameter")
	flags.StringVar(&opts.aggregation, "aggregation", continuation.AnyStatement.String(), "statement aggregation (any|last)")
	flags.StringVar(&opts.format, "format", "text", "output format (text|json)")
	flags.StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel workers (0 = GOMAXPROCS)")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "result cache directory (default: user cache directory)")
	flags.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	switch opts.color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("unknown color mode %q (want auto, on or off)", opts.color)
	}

	out, err := newPrinter(cmd.OutOrStdout(), opts.format, useColor(cmd.OutOrStdout(), opts.color))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}
	logger.Debug("configuration", slog.String("path", cfg.Path), slog.String("fingerprint", cfg.Fingerprint()))

	linter := &jslint.Linter{Config: cfg, Logger: logger}
	if !opts.noCache {
		c, err := cache.Open(opts.cacheDir)
		if err != nil {
			logger.Warn("cache disabled", slog.Any("error", err))
		} else {
			linter.Cache = c
			logger.Debug("cache enabled", slog.String("dir", c.Dir()))
		}
	}

	report, err := linter.LintPaths(cmd.Context(), args, opts.jobs)
	if err != nil {
		return err
	}

	if err := out.print(report); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d file(s) could not be checked: %w", len(failed), failed[0].Err)
	}
	if len(report.Findings) > 0 {
		return errFindings
	}

	return nil
}

// loadConfig reads the configuration file and applies flags set on the
// command line on top of it.
func loadConfig(cmd *cobra.Command, opts *options, args []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.Discover(configStart(args))
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("continuation") {
		cfg.Continuation = opts.continuation
	}
	if flags.Changed("aggregation") {
		if err := cfg.Aggregation.Set(opts.aggregation); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// useColor resolves the --color flag. auto colours only terminals.
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}

	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// configStart returns the directory the configuration search starts from:
// the first path argument (its directory for a file), or the working
// directory.
func configStart(args []string) string {
	if len(args) == 0 {
		return "."
	}

	info, err := os.Stat(args[0])
	if err == nil && !info.IsDir() {
		return filepath.Dir(args[0])
	}

	return args[0]
}
