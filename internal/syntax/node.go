// Package syntax defines the language-neutral tree the continuation check
// runs over.
//
// # Overview
//
// Frontends (see [gosyntax] and [jssyntax]) convert their native trees into
// [Node] values. Only the shapes the check cares about get dedicated kinds;
// everything else becomes [Other] with its interesting descendants kept in
// [Node.Children] so that traversal still reaches nested functions.
//
// # Traversal
//
// [Walk] visits nodes in pre-order document order. [Visitors] maps a kind to
// a callback, mirroring the rule tables lint engines hand to a traversal:
//
//	visitors := syntax.Visitors{
//	    syntax.FunctionDeclaration: checkHandler,
//	    syntax.ReturnStatement:     checkFactory,
//	}
//	visitors.Run(root)
//
// Positions are go/token positions so Go and JavaScript sources can share a
// [token.FileSet].
//
// [gosyntax]: github.com/mpyw/nextcall/internal/syntax/gosyntax
// [jssyntax]: github.com/mpyw/nextcall/internal/syntax/jssyntax
package syntax

import (
	"fmt"
	"go/token"
)

// Kind tags a Node.
type Kind int

// Node kinds.
const (
	Other Kind = iota
	Program
	FunctionDeclaration
	FunctionExpression
	ArrowFunction
	Block
	ExpressionStatement
	ReturnStatement
	IfStatement
	CallExpression
	Identifier
)

var kindNames = map[Kind]string{
	Other:               "Other",
	Program:             "Program",
	FunctionDeclaration: "FunctionDeclaration",
	FunctionExpression:  "FunctionExpression",
	ArrowFunction:       "ArrowFunctionExpression",
	Block:               "BlockStatement",
	ExpressionStatement: "ExpressionStatement",
	ReturnStatement:     "ReturnStatement",
	IfStatement:         "IfStatement",
	CallExpression:      "CallExpression",
	Identifier:          "Identifier",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsFunction reports whether k is one of the function-like kinds.
func (k Kind) IsFunction() bool {
	return k == FunctionDeclaration || k == FunctionExpression || k == ArrowFunction
}

// Node is a read-only syntax tree node. Which fields are set depends on Kind:
//
//	Identifier           Name
//	Function kinds       Name (optional), Params, Body
//	Program, Block       List
//	ExpressionStatement  X
//	ReturnStatement      X (nil for a bare return)
//	IfStatement          Cond, Then, Else (nil when absent)
//	CallExpression       Fun, Args
//	Other                Children
type Node struct {
	Kind Kind
	Pos  token.Pos
	End  token.Pos

	Name string

	Params []*Node
	Body   *Node

	List []*Node

	X *Node

	Cond *Node
	Then *Node
	Else *Node

	Fun  *Node
	Args []*Node

	Children []*Node
}

// Is reports whether n is non-nil and of kind k.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.Kind == k
}

// IsIdent reports whether n is an identifier spelled name.
func (n *Node) IsIdent(name string) bool {
	return n.Is(Identifier) && n.Name == name
}

// HasBlockBody reports whether n is a function whose body is a block.
func (n *Node) HasBlockBody() bool {
	return n != nil && n.Kind.IsFunction() && n.Body.Is(Block)
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
	}
	return n.Kind.String()
}

// Comment is a source comment, delimiters included.
type Comment struct {
	Pos  token.Pos
	Text string
}
