// Package gosyntax converts Go functions into syntax trees.
//
// The mapping is shallow: statements the continuation check does not
// understand become syntax.Other without children, because the go/analysis
// inspector, not syntax.Walk, drives traversal of Go code.
//
//	func(w, r, next) {...}          ArrowFunction
//	return func(w, r, next) {...}   ReturnStatement{FunctionExpression}
//	func Name(w, r, next) {...}     FunctionDeclaration
//	defer f()                       ExpressionStatement (runs on every return)
//	next.ServeHTTP(w, r)            call of next
//	go f()                          Other (not guaranteed to run before return)
package gosyntax

import (
	"go/ast"

	"github.com/mpyw/nextcall/internal/syntax"
)

// Convert converts a function declaration, function literal, statement or
// expression. Nodes the check does not model become syntax.Other; nil
// converts to nil.
func Convert(n ast.Node) *syntax.Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.FuncDecl:
		return FuncDecl(n)
	case *ast.FuncLit:
		return FuncLit(n)
	case ast.Stmt:
		return stmt(n)
	case ast.Expr:
		return expr(n)
	default:
		return &syntax.Node{Kind: syntax.Other, Pos: n.Pos(), End: n.End()}
	}
}

// FuncDecl converts a function or method declaration. The receiver is not a
// parameter.
func FuncDecl(decl *ast.FuncDecl) *syntax.Node {
	out := &syntax.Node{
		Kind:   syntax.FunctionDeclaration,
		Pos:    decl.Pos(),
		End:    decl.End(),
		Name:   decl.Name.Name,
		Params: params(decl.Type),
	}
	if decl.Body != nil {
		out.Body = block(decl.Body)
	}

	return out
}

// FuncLit converts a function literal appearing anywhere but as a return
// operand.
func FuncLit(lit *ast.FuncLit) *syntax.Node {
	return funcLit(syntax.ArrowFunction, lit)
}

// ReturnStmt converts a return statement. A single function literal operand
// becomes a FunctionExpression, as returned by handler factories.
func ReturnStmt(ret *ast.ReturnStmt) *syntax.Node {
	out := &syntax.Node{Kind: syntax.ReturnStatement, Pos: ret.Pos(), End: ret.End()}

	if len(ret.Results) != 1 {
		return out
	}

	if lit, ok := ast.Unparen(ret.Results[0]).(*ast.FuncLit); ok {
		out.X = funcLit(syntax.FunctionExpression, lit)
		return out
	}
	out.X = expr(ret.Results[0])

	return out
}

// IsReturnOperand reports whether lit is the only operand of ret.
func IsReturnOperand(ret *ast.ReturnStmt, lit *ast.FuncLit) bool {
	return len(ret.Results) == 1 && ast.Unparen(ret.Results[0]) == lit
}

func funcLit(kind syntax.Kind, lit *ast.FuncLit) *syntax.Node {
	return &syntax.Node{
		Kind:   kind,
		Pos:    lit.Pos(),
		End:    lit.End(),
		Params: params(lit.Type),
		Body:   block(lit.Body),
	}
}

// params flattens grouped parameter names. Unnamed and blank parameters
// become syntax.Other so they never match a continuation name.
func params(typ *ast.FuncType) []*syntax.Node {
	if typ == nil || typ.Params == nil {
		return nil
	}

	var out []*syntax.Node

	for _, field := range typ.Params.List {
		if len(field.Names) == 0 {
			out = append(out, &syntax.Node{Kind: syntax.Other, Pos: field.Pos(), End: field.End()})
			continue
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				out = append(out, &syntax.Node{Kind: syntax.Other, Pos: name.Pos(), End: name.End()})
				continue
			}
			out = append(out, ident(name))
		}
	}

	return out
}

func block(b *ast.BlockStmt) *syntax.Node {
	out := &syntax.Node{Kind: syntax.Block, Pos: b.Pos(), End: b.End()}
	out.List = make([]*syntax.Node, 0, len(b.List))

	for _, s := range b.List {
		out.List = append(out.List, stmt(s))
	}

	return out
}

func stmt(s ast.Stmt) *syntax.Node {
	switch s := s.(type) {
	case *ast.ExprStmt:
		return &syntax.Node{Kind: syntax.ExpressionStatement, Pos: s.Pos(), End: s.End(), X: expr(s.X)}

	case *ast.DeferStmt:
		return &syntax.Node{Kind: syntax.ExpressionStatement, Pos: s.Pos(), End: s.End(), X: call(s.Call)}

	case *ast.ReturnStmt:
		return ReturnStmt(s)

	case *ast.IfStmt:
		out := &syntax.Node{Kind: syntax.IfStatement, Pos: s.Pos(), End: s.End(), Then: block(s.Body)}
		if s.Else != nil {
			out.Else = stmt(s.Else)
		}
		return out

	case *ast.BlockStmt:
		return block(s)

	default:
		return &syntax.Node{Kind: syntax.Other, Pos: s.Pos(), End: s.End()}
	}
}

func expr(e ast.Expr) *syntax.Node {
	switch e := ast.Unparen(e).(type) {
	case *ast.CallExpr:
		return call(e)

	case *ast.Ident:
		return ident(e)

	case *ast.FuncLit:
		return funcLit(syntax.ArrowFunction, e)

	default:
		return &syntax.Node{Kind: syntax.Other, Pos: e.Pos(), End: e.End()}
	}
}

func call(c *ast.CallExpr) *syntax.Node {
	out := &syntax.Node{Kind: syntax.CallExpression, Pos: c.Pos(), End: c.End(), Fun: callee(c.Fun)}

	for _, arg := range c.Args {
		out.Args = append(out.Args, expr(arg))
	}

	return out
}

// callee converts the function part of a call. next.ServeHTTP(w, r) counts as
// calling next, so http.Handler continuations work like negroni.HandlerFunc.
func callee(fun ast.Expr) *syntax.Node {
	if sel, ok := ast.Unparen(fun).(*ast.SelectorExpr); ok && sel.Sel.Name == "ServeHTTP" {
		if x, ok := ast.Unparen(sel.X).(*ast.Ident); ok {
			return ident(x)
		}
	}

	return expr(fun)
}

func ident(id *ast.Ident) *syntax.Node {
	return &syntax.Node{Kind: syntax.Identifier, Pos: id.Pos(), End: id.End(), Name: id.Name}
}
