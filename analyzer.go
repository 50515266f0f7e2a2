// Package nextcall provides a go/analysis based analyzer for detecting chain
// handlers that do not call their continuation.
//
// A chain handler is a function of three parameters whose last parameter is
// named next, as in negroni middleware:
//
//	func (m *Auth) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
//	    if authorized(r) {
//	        next(rw, r)
//	    } else {
//	        rw.WriteHeader(http.StatusUnauthorized) // next() is not being called in the alternate block
//	    }
//	}
package nextcall

import (
	"errors"
	"flag"
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/nextcall/internal/continuation"
	"github.com/mpyw/nextcall/internal/directive/ignore"
	"github.com/mpyw/nextcall/internal/syntax"
	"github.com/mpyw/nextcall/internal/syntax/gosyntax"
)

// Flags for the analyzer.
var (
	continuationName string
	aggregation      continuation.Aggregation

	// Check enable/disable flags (all enabled by default).
	enableHandler bool
	enableFactory bool
)

func init() {
	Analyzer.Flags.StringVar(&continuationName, "continuation", continuation.DefaultName,
		"name of the continuation parameter handlers must call")
	Analyzer.Flags.Var(&aggregation, "aggregation",
		"how statements of a block combine: any (a block calls next if any statement does) or last (last statement wins)")

	Analyzer.Flags.BoolVar(&enableHandler, "handler", true, "enable handler check (function declarations and literals)")
	Analyzer.Flags.BoolVar(&enableFactory, "factory", true, "enable factory check (function literals returned from factories)")
}

// Analyzer is the main analyzer for nextcall.
var Analyzer = &analysis.Analyzer{
	Name:     "nextcall",
	Doc:      "checks that chain handlers call their continuation (next) on every path",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build ignore maps for each file (excluding skipped files)
	ignoreMaps := buildIgnoreMaps(pass, skipFiles)

	rule := newRule()

	runChecks(pass, insp, rule, ignoreMaps, skipFiles)

	// Report unused ignore directives
	reportUnusedIgnores(pass, ignoreMaps, rule.Enabled())

	return nil, nil
}

func newRule() *continuation.Rule {
	return &continuation.Rule{
		Config: continuation.Config{
			Name:        continuationName,
			Aggregation: aggregation,
		},
		Disabled: map[ignore.CheckerName]bool{
			ignore.Handler: !enableHandler,
			ignore.Factory: !enableFactory,
		},
	}
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		// Always skip generated files
		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildIgnoreMaps creates ignore maps for each file in the pass.
func buildIgnoreMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]ignore.Map {
	ignoreMaps := make(map[string]ignore.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = ignore.BuildFile(pass.Fset, file)
	}

	return ignoreMaps
}

// runChecks converts every function declaration, function literal and return
// statement and hands it to the rule.
func runChecks(
	pass *analysis.Pass,
	insp *inspector.Inspector,
	rule *continuation.Rule,
	ignoreMaps map[string]ignore.Map,
	skipFiles map[string]bool,
) {
	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
		(*ast.ReturnStmt)(nil),
	}

	report := func(d continuation.Diagnostic) {
		pos := pass.Fset.Position(d.Pos())
		if ignoreMaps[pos.Filename].ShouldIgnore(pos.Line, d.Check) {
			return
		}

		pass.Report(analysis.Diagnostic{
			Pos:      d.Pos(),
			End:      d.End(),
			Category: string(d.Check),
			Message:  d.Message(),
		})
	}

	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		if skipFiles[pass.Fset.Position(n.Pos()).Filename] {
			return false
		}

		var (
			d  continuation.Diagnostic
			ok bool
		)

		switch n := n.(type) {
		case *ast.FuncDecl:
			d, ok = rule.CheckFunction(gosyntax.FuncDecl(n))
		case *ast.FuncLit:
			// Returned literals belong to the factory check.
			if isReturnOperand(n, stack) {
				return true
			}
			d, ok = rule.CheckFunction(gosyntax.FuncLit(n))
		case *ast.ReturnStmt:
			d, ok = checkReturn(rule, n)
		}

		if ok {
			report(d)
		}

		return true
	})
}

func checkReturn(rule *continuation.Rule, ret *ast.ReturnStmt) (continuation.Diagnostic, bool) {
	n := gosyntax.ReturnStmt(ret)
	if !n.X.Is(syntax.FunctionExpression) {
		return continuation.Diagnostic{}, false
	}

	return rule.CheckReturn(n)
}

// isReturnOperand reports whether lit, the top of stack, is the operand of
// the enclosing return statement. Parentheses around the literal are looked
// through.
func isReturnOperand(lit *ast.FuncLit, stack []ast.Node) bool {
	for i := len(stack) - 2; i >= 0; i-- {
		switch parent := stack[i].(type) {
		case *ast.ParenExpr:
			continue
		case *ast.ReturnStmt:
			return gosyntax.IsReturnOperand(parent, lit)
		default:
			return false
		}
	}

	return false
}

// reportUnusedIgnores reports any ignore directives that were not used.
func reportUnusedIgnores(pass *analysis.Pass, ignoreMaps map[string]ignore.Map, enabled ignore.EnabledCheckers) {
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		ignoreMap, ok := ignoreMaps[filename]
		if !ok {
			continue
		}

		for _, unused := range ignoreMap.GetUnusedIgnores(enabled) {
			pass.Reportf(unused.Pos, "%s", unused.Message())
		}
	}
}
