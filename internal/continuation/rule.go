package continuation

import (
	"go/token"

	"github.com/mpyw/nextcall/internal/directive/ignore"
	"github.com/mpyw/nextcall/internal/syntax"
)

// Diagnostic reports a handler that does not provably call the continuation.
type Diagnostic struct {
	// Node is the anchor: the function itself, or the return statement
	// yielding it.
	Node *syntax.Node

	// Check names the check that produced the diagnostic.
	Check ignore.CheckerName

	// Fragments holds the base message followed by branch notes.
	Fragments []string
}

// Pos returns the anchor position.
func (d Diagnostic) Pos() token.Pos {
	return d.Node.Pos
}

// End returns the anchor end position.
func (d Diagnostic) End() token.Pos {
	return d.Node.End
}

// Message joins the fragments into the reported text.
func (d Diagnostic) Message() string {
	return JoinFragments(d.Fragments)
}

// Rule wires classification and reachability into per-node checks.
type Rule struct {
	Config Config

	// Disabled switches individual checks off.
	Disabled map[ignore.CheckerName]bool
}

// Enabled returns the set of checks that run.
func (r *Rule) Enabled() ignore.EnabledCheckers {
	enabled := make(ignore.EnabledCheckers)
	for _, name := range ignore.AllCheckerNames() {
		if !r.Disabled[name] {
			enabled[name] = true
		}
	}

	return enabled
}

// Visitors returns the dispatch table a host walks the tree with. Every
// diagnostic goes to report.
func (r *Rule) Visitors(report func(Diagnostic)) syntax.Visitors {
	visit := func(check func(*syntax.Node) (Diagnostic, bool)) syntax.Visitor {
		return func(n *syntax.Node) {
			if d, ok := check(n); ok {
				report(d)
			}
		}
	}

	return syntax.Visitors{
		syntax.FunctionDeclaration: visit(r.CheckFunction),
		syntax.ArrowFunction:       visit(r.CheckFunction),
		syntax.ReturnStatement:     visit(r.CheckReturn),
	}
}

// CheckFunction checks a function declaration or arrow function.
func (r *Rule) CheckFunction(n *syntax.Node) (Diagnostic, bool) {
	if r.Disabled[ignore.Handler] {
		return Diagnostic{}, false
	}

	return r.check(n, n, ignore.Handler)
}

// CheckReturn checks a return statement whose operand is a function
// expression, as written by handler factories.
func (r *Rule) CheckReturn(n *syntax.Node) (Diagnostic, bool) {
	if r.Disabled[ignore.Factory] || !n.Is(syntax.ReturnStatement) {
		return Diagnostic{}, false
	}
	if !n.X.Is(syntax.FunctionExpression) {
		return Diagnostic{}, false
	}

	return r.check(n, n.X, ignore.Factory)
}

func (r *Rule) check(anchor, fn *syntax.Node, check ignore.CheckerName) (Diagnostic, bool) {
	// Bodyless declarations cannot be checked.
	if !r.Config.IsHandler(fn) || fn.Body == nil {
		return Diagnostic{}, false
	}

	res := r.Config.FunctionGuaranteesCall(fn)
	if res.Guaranteed {
		return Diagnostic{}, false
	}

	return Diagnostic{
		Node:      anchor,
		Check:     check,
		Fragments: r.Config.Fragments(res),
	}, true
}
