// Package ast defines MoonLang's abstract syntax tree: a closed sum of
// expression and statement variants built during parsing and immutable
// thereafter. The tree is strictly owned (no sharing, no cycles) and is
// the only artifact the parser hands to downstream consumers such as a
// code generator.
package ast

// SourceLocation pins a node or token to a 1-based line/column in the
// source it was parsed from.
type SourceLocation struct {
	Line   int
	Column int
}

// Node is implemented by every AST node.
type Node interface {
	Location() SourceLocation
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root AST node: an ordered list of statements.
type Program struct {
	Statements []Stmt
}

// Location reports the start of the source: a Program spans the whole file.
func (p *Program) Location() SourceLocation { return SourceLocation{Line: 1, Column: 1} }

// Parameter is a function/method/lambda parameter. Default is nil when
// the parameter has no default value.
type Parameter struct {
	Name    string
	Default Expr
}
