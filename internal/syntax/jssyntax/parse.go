// Package jssyntax converts JavaScript source into syntax trees using
// tree-sitter.
//
// Only the node types the continuation check understands get dedicated
// kinds; anything else is kept as syntax.Other with its named children, so
// functions nested in objects, classes or call arguments are still reached by
// traversal. Comments are collected separately for directive handling.
package jssyntax

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"unicode/utf8"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/mpyw/nextcall/internal/syntax"
)

// ErrInvalidContent is returned for sources that are not valid UTF-8.
var ErrInvalidContent = errors.New("source is not valid UTF-8")

// tree-sitter-javascript node types.
const (
	jsProgram              = "program"
	jsComment              = "comment"
	jsFunctionDeclaration  = "function_declaration"
	jsGeneratorDeclaration = "generator_function_declaration"
	jsFunction             = "function" // renamed function_expression in newer grammars
	jsFunctionExpression   = "function_expression"
	jsGeneratorFunction    = "generator_function"
	jsArrowFunction        = "arrow_function"
	jsStatementBlock       = "statement_block"
	jsExpressionStatement  = "expression_statement"
	jsReturnStatement      = "return_statement"
	jsIfStatement          = "if_statement"
	jsElseClause           = "else_clause"
	jsCallExpression       = "call_expression"
	jsArguments            = "arguments"
	jsIdentifier           = "identifier"
	jsParenthesized        = "parenthesized_expression"
	jsExportStatement      = "export_statement"
)

// File is a converted JavaScript source file.
type File struct {
	// Root is the Program node.
	Root *syntax.Node

	// Comments lists every comment in source order.
	Comments []syntax.Comment

	// HasErrors reports that tree-sitter had to recover from syntax errors.
	// The tree is still usable; broken regions show up as syntax.Other.
	HasErrors bool

	// TokenFile maps positions in Root back to lines and columns.
	TokenFile *token.File
}

// Parse parses src and converts it. The file is registered in fset under
// filename so that positions in the returned tree resolve through fset.
func Parse(ctx context.Context, fset *token.FileSet, filename string, src []byte) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("parse %s: %w", filename, ErrInvalidContent)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: tree-sitter: %w", filename, err)
	}
	defer tree.Close()

	tf := fset.AddFile(filename, -1, len(src))
	tf.SetLinesForContent(src)

	root := tree.RootNode()
	c := &converter{src: src, file: tf}
	c.collectComments(root)

	return &File{
		Root:      c.convert(root),
		Comments:  c.comments,
		HasErrors: root.HasError(),
		TokenFile: tf,
	}, nil
}

type converter struct {
	src      []byte
	file     *token.File
	comments []syntax.Comment
}

func (c *converter) pos(off uint32) token.Pos {
	o, err := safecast.Conv[int](off)
	if err != nil || o > c.file.Size() {
		return token.NoPos
	}

	return c.file.Pos(o)
}

func (c *converter) node(kind syntax.Kind, n *sitter.Node) *syntax.Node {
	return &syntax.Node{
		Kind: kind,
		Pos:  c.pos(n.StartByte()),
		End:  c.pos(n.EndByte()),
	}
}

// collectComments records every comment under n in source order. Comments
// are extras in tree-sitter and may sit between any two tokens, so this walks
// all children rather than the named ones convert looks at.
func (c *converter) collectComments(n *sitter.Node) {
	if n.Type() == jsComment {
		c.comments = append(c.comments, syntax.Comment{
			Pos:  c.pos(n.StartByte()),
			Text: n.Content(c.src),
		})
		return
	}

	for i := range int(n.ChildCount()) {
		c.collectComments(n.Child(i))
	}
}

// convert maps n to a syntax node. It returns nil for comments.
func (c *converter) convert(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case jsComment:
		return nil

	case jsProgram:
		out := c.node(syntax.Program, n)
		out.List = c.namedChildren(n)
		return out

	case jsFunctionDeclaration, jsGeneratorDeclaration:
		return c.function(syntax.FunctionDeclaration, n)

	case jsFunction, jsFunctionExpression, jsGeneratorFunction:
		// export default function (...) {} is a declaration, named or not.
		if p := n.Parent(); p != nil && p.Type() == jsExportStatement {
			return c.function(syntax.FunctionDeclaration, n)
		}
		return c.function(syntax.FunctionExpression, n)

	case jsParenthesized:
		// Parentheses carry no meaning for the check.
		return c.firstNamed(n)

	case jsArrowFunction:
		return c.function(syntax.ArrowFunction, n)

	case jsStatementBlock:
		out := c.node(syntax.Block, n)
		out.List = c.namedChildren(n)
		return out

	case jsExpressionStatement:
		out := c.node(syntax.ExpressionStatement, n)
		out.X = c.firstNamed(n)
		return out

	case jsReturnStatement:
		out := c.node(syntax.ReturnStatement, n)
		out.X = c.firstNamed(n)
		return out

	case jsIfStatement:
		return c.ifStatement(n)

	case jsCallExpression:
		return c.call(n)

	case jsIdentifier:
		out := c.node(syntax.Identifier, n)
		out.Name = n.Content(c.src)
		return out

	default:
		out := c.node(syntax.Other, n)
		out.Children = c.namedChildren(n)
		return out
	}
}

func (c *converter) function(kind syntax.Kind, n *sitter.Node) *syntax.Node {
	out := c.node(kind, n)

	if name := n.ChildByFieldName("name"); name != nil {
		out.Name = name.Content(c.src)
	}

	switch {
	case n.ChildByFieldName("parameters") != nil:
		out.Params = c.namedChildren(n.ChildByFieldName("parameters"))
	case n.ChildByFieldName("parameter") != nil:
		// x => ...
		out.Params = []*syntax.Node{c.convert(n.ChildByFieldName("parameter"))}
	}

	out.Body = c.convert(n.ChildByFieldName("body"))

	return out
}

func (c *converter) ifStatement(n *sitter.Node) *syntax.Node {
	out := c.node(syntax.IfStatement, n)
	out.Cond = c.convert(n.ChildByFieldName("condition"))
	out.Then = c.convert(n.ChildByFieldName("consequence"))

	if alt := n.ChildByFieldName("alternative"); alt != nil {
		if alt.Type() == jsElseClause {
			out.Else = c.firstNamed(alt)
		} else {
			out.Else = c.convert(alt)
		}
	}

	return out
}

func (c *converter) call(n *sitter.Node) *syntax.Node {
	out := c.node(syntax.CallExpression, n)
	out.Fun = c.convert(n.ChildByFieldName("function"))

	args := n.ChildByFieldName("arguments")
	if args == nil {
		return out
	}
	if args.Type() != jsArguments {
		// Tagged template: keep the template reachable without treating it
		// as an argument list.
		out.Fun = &syntax.Node{
			Kind:     syntax.Other,
			Pos:      out.Pos,
			End:      out.End,
			Children: []*syntax.Node{out.Fun, c.convert(args)},
		}
		return out
	}

	out.Args = c.namedChildren(args)

	return out
}

// namedChildren converts the named children of n, dropping comments.
func (c *converter) namedChildren(n *sitter.Node) []*syntax.Node {
	if n == nil {
		return nil
	}

	count := int(n.NamedChildCount())
	out := make([]*syntax.Node, 0, count)

	for i := range count {
		if child := c.convert(n.NamedChild(i)); child != nil {
			out = append(out, child)
		}
	}

	return out
}

// firstNamed converts the first named non-comment child of n.
func (c *converter) firstNamed(n *sitter.Node) *syntax.Node {
	children := c.namedChildren(n)
	if len(children) == 0 {
		return nil
	}

	return children[0]
}
