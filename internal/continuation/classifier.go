package continuation

import "github.com/mpyw/nextcall/internal/syntax"

// IsHandler reports whether n is a chain handler candidate: a function-like
// node with exactly three parameters, the last of which is an identifier
// spelled like the continuation.
//
// The comparison is by name only. A third parameter called anything else is
// never a handler, and destructuring, default-valued or rest parameters do
// not count as identifiers.
func (c Config) IsHandler(n *syntax.Node) bool {
	if n == nil || !n.Kind.IsFunction() {
		return false
	}
	if len(n.Params) != 3 {
		return false
	}

	return n.Params[2].IsIdent(c.name())
}
