// Package jslint runs the continuation check over JavaScript files.
//
// Files are parsed with tree-sitter, walked with the rule's visitor table,
// filtered through nextcall:ignore directives and optionally cached on disk.
package jslint

import (
	"cmp"
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/mpyw/nextcall/internal/cache"
	"github.com/mpyw/nextcall/internal/config"
	"github.com/mpyw/nextcall/internal/continuation"
	"github.com/mpyw/nextcall/internal/directive/ignore"
	"github.com/mpyw/nextcall/internal/syntax/jssyntax"
)

// DirectiveCheck is the check name of unused directive findings.
const DirectiveCheck = "directive"

// Finding is a reported problem with a resolved position.
type Finding struct {
	Path    string `json:"path"`
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path     string
	Findings []Finding

	// HasErrors reports that the parser recovered from syntax errors.
	HasErrors bool

	// Cached reports that the findings came from the cache.
	Cached bool

	// Err is set when the file could not be read or parsed at all.
	Err error
}

// Report aggregates a LintPaths run.
type Report struct {
	Files    []*FileResult
	Findings []Finding
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}

	return out
}

// Linter lints JavaScript sources. The zero value uses config.Default, no
// cache and slog.Default.
type Linter struct {
	Config *config.Config
	Cache  *cache.Cache
	Logger *slog.Logger
}

func (l *Linter) config() *config.Config {
	if l.Config == nil {
		return config.Default()
	}

	return l.Config
}

func (l *Linter) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}

	return l.Logger
}

// LintFile checks one source file. Positions in fset are only registered on
// a cache miss; findings always carry resolved positions.
func (l *Linter) LintFile(ctx context.Context, fset *token.FileSet, path string, src []byte) (*FileResult, error) {
	cfg := l.config()
	key := cache.NewKey(cfg.Fingerprint(), path, src)

	var payload cache.Payload
	hit, err := l.Cache.Get(key, &payload)
	if err != nil {
		l.logger().Debug("cache read failed", slog.String("file", path), slog.Any("error", err))
	}
	if hit {
		l.logger().Debug("cache hit", slog.String("file", path))
		return fromPayload(path, &payload), nil
	}

	res, err := l.lint(ctx, fset, path, src, cfg.Rule())
	if err != nil {
		return nil, err
	}

	if err := l.Cache.Put(key, toPayload(res)); err != nil {
		l.logger().Warn("cache write failed", slog.String("file", path), slog.Any("error", err))
	}

	return res, nil
}

func (l *Linter) lint(ctx context.Context, fset *token.FileSet, path string, src []byte, rule *continuation.Rule) (*FileResult, error) {
	f, err := jssyntax.Parse(ctx, fset, path, src)
	if err != nil {
		return nil, err
	}
	if f.HasErrors {
		l.logger().Warn("syntax errors recovered", slog.String("file", path))
	}

	ignores := ignore.Build(fset, f.Comments)
	res := &FileResult{Path: path, HasErrors: f.HasErrors}

	add := func(pos token.Pos, check, message string) {
		p := fset.Position(pos)
		res.Findings = append(res.Findings, Finding{
			Path:    path,
			Offset:  p.Offset,
			Line:    p.Line,
			Column:  p.Column,
			Check:   check,
			Message: message,
		})
	}

	rule.Visitors(func(d continuation.Diagnostic) {
		if ignores.ShouldIgnore(fset.Position(d.Pos()).Line, d.Check) {
			return
		}
		add(d.Pos(), string(d.Check), d.Message())
	}).Run(f.Root)

	for _, unused := range ignores.GetUnusedIgnores(rule.Enabled()) {
		add(unused.Pos, DirectiveCheck, unused.Message())
	}

	sortFindings(res.Findings)

	return res, nil
}

// LintPaths discovers files under paths and lints them with up to jobs
// workers (GOMAXPROCS when jobs <= 0). Per-file failures are recorded in the
// report; the returned error is for discovery failures and cancellation.
func (l *Linter) LintPaths(ctx context.Context, paths []string, jobs int) (*Report, error) {
	files, err := Discover(l.config(), paths)
	if err != nil {
		return nil, err
	}

	report := &Report{Files: make([]*FileResult, len(files))}
	if len(files) == 0 {
		return report, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	fset := token.NewFileSet()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// Indexes are unique per goroutine.
			report.Files[i] = l.lintPath(gctx, fset, path)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}

	for _, f := range report.Files {
		report.Findings = append(report.Findings, f.Findings...)
	}
	sortFindings(report.Findings)

	l.logger().Debug("lint finished",
		slog.Int("files", len(files)),
		slog.Int("findings", len(report.Findings)),
	)

	return report, nil
}

func (l *Linter) lintPath(ctx context.Context, fset *token.FileSet, path string) *FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		l.logger().Error("read failed", slog.String("file", path), slog.Any("error", err))
		return &FileResult{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	res, err := l.LintFile(ctx, fset, path, src)
	if err != nil {
		l.logger().Error("lint failed", slog.String("file", path), slog.Any("error", err))
		return &FileResult{Path: path, Err: err}
	}

	return res
}

func sortFindings(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Offset, b.Offset),
			cmp.Compare(a.Check, b.Check),
		)
	})
}

func toPayload(res *FileResult) *cache.Payload {
	p := &cache.Payload{Path: res.Path, HasErrors: res.HasErrors}
	for _, f := range res.Findings {
		p.Records = append(p.Records, cache.Record{
			Offset:  f.Offset,
			Line:    f.Line,
			Column:  f.Column,
			Check:   f.Check,
			Message: f.Message,
		})
	}

	return p
}

func fromPayload(path string, p *cache.Payload) *FileResult {
	res := &FileResult{Path: path, HasErrors: p.HasErrors, Cached: true}
	for _, r := range p.Records {
		res.Findings = append(res.Findings, Finding{
			Path:    path,
			Offset:  r.Offset,
			Line:    r.Line,
			Column:  r.Column,
			Check:   r.Check,
			Message: r.Message,
		})
	}

	return res
}
