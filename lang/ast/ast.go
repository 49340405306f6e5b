// Package ast defines the abstract syntax tree produced by lang/parser and
// consumed by lang/compiler. Expr and Stmt are the two sum types, each
// identified by a small marker method rather than reflection-based
// dispatch. There is no generic Walk or Visitor: the compiler is the only
// consumer and it walks the tree directly with a type switch, single pass,
// with no separate resolver stage to generalize traversal for.
package ast

import "github.com/ohaddr/vesper/lang/token"

// An Expr is any expression node.
type Expr interface {
	Pos() token.Position
	exprNode()
}

// A Stmt is any statement or declaration node.
type Stmt interface {
	Pos() token.Position
	stmtNode()
}

// Program is the root of a parsed source file: a sequence of declarations.
type Program struct {
	Stmts []Stmt
}
