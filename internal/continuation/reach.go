package continuation

import "github.com/mpyw/nextcall/internal/syntax"

// Result is the verdict for a statement or block.
type Result struct {
	// Guaranteed is true when every path modelled by the rules calls the
	// continuation.
	Guaranteed bool

	// Notes describe the conditional branches found to be missing the call,
	// in discovery order. Always empty when Guaranteed is true.
	Notes []string
}

var guaranteed = Result{Guaranteed: true}

// GuaranteesCall decides whether n, a statement or a block, is guaranteed to
// call the continuation.
//
// Recognised statements:
//
//	next()                      direct call
//	fn(next)                    continuation forwarded to another function
//	fn(function() { next() })   callback whose block guarantees the call
//	return <one of the above>
//	if (...) {...} else {...}   both branches must guarantee the call
//
// Everything else does not guarantee the call. An if statement without an
// alternate takes the verdict of its consequent; the implicit fallthrough
// path is not inspected.
func (c Config) GuaranteesCall(n *syntax.Node) Result {
	if n == nil {
		return Result{}
	}
	if n.Kind == syntax.Block || n.Kind == syntax.Program {
		return c.block(n.List)
	}

	return c.statement(n)
}

// FunctionGuaranteesCall evaluates the body of a function-like node. An
// expression body (arrow functions) is treated as `return <expr>`.
func (c Config) FunctionGuaranteesCall(fn *syntax.Node) Result {
	if fn == nil || fn.Body == nil {
		return Result{}
	}
	if fn.HasBlockBody() {
		return c.block(fn.Body.List)
	}

	return c.returned(fn.Body)
}

func (c Config) statement(n *syntax.Node) Result {
	if n == nil {
		return Result{}
	}

	switch n.Kind {
	case syntax.ExpressionStatement:
		return c.callStatement(n.X)
	case syntax.ReturnStatement:
		return c.returned(n.X)
	case syntax.IfStatement:
		return c.ifStatement(n)
	case syntax.Block:
		return c.block(n.List)
	default:
		return Result{}
	}
}

func (c Config) block(list []*syntax.Node) Result {
	var res Result
	for _, stmt := range list {
		res = c.aggregate(res, c.statement(stmt))
	}

	return settle(res)
}

// callStatement handles `next()` and delegating calls used as statements.
func (c Config) callStatement(x *syntax.Node) Result {
	if !x.Is(syntax.CallExpression) {
		return Result{}
	}
	if x.Fun.IsIdent(c.name()) {
		return guaranteed
	}

	return c.delegates(x)
}

// returned handles the operand of a return statement.
func (c Config) returned(x *syntax.Node) Result {
	if !x.Is(syntax.CallExpression) {
		return Result{}
	}

	res := c.delegates(x)
	if res.Guaranteed {
		return res
	}
	if x.Fun.IsIdent(c.name()) {
		return guaranteed
	}

	return res
}

// delegates checks the arguments of a call: forwarding the continuation
// itself wins immediately, callback arguments are analysed and aggregated.
func (c Config) delegates(call *syntax.Node) Result {
	var res Result

	for _, arg := range call.Args {
		if arg.IsIdent(c.name()) {
			return guaranteed
		}

		cb, ok := c.callback(arg)
		if !ok {
			continue
		}
		res = c.aggregate(res, cb)
	}

	return settle(res)
}

// callback analyses a function argument. ok is false for anything that is
// not a function with a body.
func (c Config) callback(arg *syntax.Node) (Result, bool) {
	if arg == nil || !arg.Kind.IsFunction() || arg.Body == nil {
		return Result{}, false
	}

	return c.FunctionGuaranteesCall(arg), true
}

func (c Config) ifStatement(n *syntax.Node) Result {
	then := c.branch(n.Then)
	if n.Else == nil {
		return then
	}
	els := c.branch(n.Else)

	switch {
	case then.Guaranteed && els.Guaranteed:
		return guaranteed
	case then.Guaranteed:
		return Result{Notes: joinNotes(els.Notes, []string{c.branchNote(alternateBranch)})}
	case els.Guaranteed:
		return Result{Notes: joinNotes(then.Notes, []string{c.branchNote(consequentBranch)})}
	default:
		return Result{Notes: joinNotes(then.Notes, els.Notes)}
	}
}

// branch evaluates an if branch. A branch that is a single statement,
// including an else-if, counts as a one-statement block.
func (c Config) branch(n *syntax.Node) Result {
	if n.Is(syntax.Block) {
		return c.block(n.List)
	}

	return c.block([]*syntax.Node{n})
}

func (c Config) aggregate(acc, r Result) Result {
	notes := joinNotes(acc.Notes, r.Notes)

	if c.Aggregation == LastStatement {
		return Result{Guaranteed: r.Guaranteed, Notes: notes}
	}

	return Result{Guaranteed: acc.Guaranteed || r.Guaranteed, Notes: notes}
}

// settle drops notes from a guaranteed result.
func settle(r Result) Result {
	if r.Guaranteed {
		return guaranteed
	}

	return r
}

func joinNotes(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}

	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)

	return append(out, b...)
}
