package syntax

// Constructors used by frontends and tests. Positions are left zero; callers
// that need them set Pos and End on the result.

// Ident returns an Identifier node.
func Ident(name string) *Node {
	return &Node{Kind: Identifier, Name: name}
}

// Call returns a CallExpression node.
func Call(fun *Node, args ...*Node) *Node {
	return &Node{Kind: CallExpression, Fun: fun, Args: args}
}

// CallName returns a call to the identifier name.
func CallName(name string, args ...*Node) *Node {
	return Call(Ident(name), args...)
}

// ExprStmt wraps x in an ExpressionStatement.
func ExprStmt(x *Node) *Node {
	return &Node{Kind: ExpressionStatement, X: x}
}

// Return returns a ReturnStatement; x may be nil.
func Return(x *Node) *Node {
	return &Node{Kind: ReturnStatement, X: x}
}

// If returns an IfStatement; els may be nil.
func If(cond, then, els *Node) *Node {
	return &Node{Kind: IfStatement, Cond: cond, Then: then, Else: els}
}

// BlockOf returns a Block holding stmts.
func BlockOf(stmts ...*Node) *Node {
	return &Node{Kind: Block, List: stmts}
}

// Func returns a function-like node of kind k.
func Func(k Kind, name string, params []*Node, body *Node) *Node {
	return &Node{Kind: k, Name: name, Params: params, Body: body}
}

// Params builds a parameter list of identifiers.
func Params(names ...string) []*Node {
	out := make([]*Node, len(names))
	for i, name := range names {
		out[i] = Ident(name)
	}
	return out
}
