package syntax

// Walk traverses the tree rooted at n in pre-order document order. If fn
// returns false the children of the current node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, fn)
	}
}

// children lists the direct children of n in source order.
func children(n *Node) []*Node {
	var out []*Node

	switch n.Kind {
	case FunctionDeclaration, FunctionExpression, ArrowFunction:
		out = append(out, n.Params...)
		out = appendNode(out, n.Body)
	case Program, Block:
		out = append(out, n.List...)
	case ExpressionStatement, ReturnStatement:
		out = appendNode(out, n.X)
	case IfStatement:
		out = appendNode(out, n.Cond)
		out = appendNode(out, n.Then)
		out = appendNode(out, n.Else)
	case CallExpression:
		out = appendNode(out, n.Fun)
		out = append(out, n.Args...)
	case Other:
		out = append(out, n.Children...)
	}

	return out
}

func appendNode(list []*Node, n *Node) []*Node {
	if n == nil {
		return list
	}
	return append(list, n)
}

// Visitor is called for every node of the kind it is registered for.
type Visitor func(*Node)

// Visitors maps node kinds to the callback run when traversal enters a node
// of that kind.
type Visitors map[Kind]Visitor

// Run walks root and dispatches every node to its registered visitor.
func (v Visitors) Run(root *Node) {
	Walk(root, func(n *Node) bool {
		if fn, ok := v[n.Kind]; ok && fn != nil {
			fn(n)
		}
		return true
	})
}
