package ast

// IntegerLit is an integer literal, e.g. 42.
type IntegerLit struct {
	Value int64
	Loc   SourceLocation
}

func (e *IntegerLit) exprNode()               {}
func (e *IntegerLit) Location() SourceLocation { return e.Loc }

// FloatLit is a floating point literal, e.g. 3.14 or 1e10.
type FloatLit struct {
	Value float64
	Loc   SourceLocation
}

func (e *FloatLit) exprNode()               {}
func (e *FloatLit) Location() SourceLocation { return e.Loc }

// StringLit is a string literal.
type StringLit struct {
	Value string
	Loc   SourceLocation
}

func (e *StringLit) exprNode()               {}
func (e *StringLit) Location() SourceLocation { return e.Loc }

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	Loc   SourceLocation
}

func (e *BoolLit) exprNode()               {}
func (e *BoolLit) Location() SourceLocation { return e.Loc }

// NullLit is the `null` literal.
type NullLit struct {
	Loc SourceLocation
}

func (e *NullLit) exprNode()               {}
func (e *NullLit) Location() SourceLocation { return e.Loc }

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Loc  SourceLocation
}

func (e *Identifier) exprNode()               {}
func (e *Identifier) Location() SourceLocation { return e.Loc }

// Binary is a binary operator expression. Op is the operator's lexeme
// (e.g. "+", "**", "and") rather than a lexer.TokenType, so the AST stays
// independent of the lexer's internal token numbering.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	Loc   SourceLocation
}

func (e *Binary) exprNode()               {}
func (e *Binary) Location() SourceLocation { return e.Loc }

// Unary is a prefix operator expression (`-x`, `not x`, `~x`).
type Unary struct {
	Op      string
	Operand Expr
	Loc     SourceLocation
}

func (e *Unary) exprNode()               {}
func (e *Unary) Location() SourceLocation { return e.Loc }

// Call is a function/value call `callee(args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Loc    SourceLocation
}

func (e *Call) exprNode()               {}
func (e *Call) Location() SourceLocation { return e.Loc }

// Index is a subscript expression `object[index]`.
type Index struct {
	Object Expr
	Index  Expr
	Loc    SourceLocation
}

func (e *Index) exprNode()               {}
func (e *Index) Location() SourceLocation { return e.Loc }

// Member is a dotted field access `object.name`.
type Member struct {
	Object Expr
	Name   string
	Loc    SourceLocation
}

func (e *Member) exprNode()               {}
func (e *Member) Location() SourceLocation { return e.Loc }

// List is a list literal `[a, b, c]`.
type List struct {
	Elements []Expr
	Loc      SourceLocation
}

func (e *List) exprNode()               {}
func (e *List) Location() SourceLocation { return e.Loc }

// DictEntry is one key/value pair of a Dict. Key is always a *StringLit:
// a bare identifier key is lifted to a string literal at parse time,
// per the dict key policy.
type DictEntry struct {
	Key   *StringLit
	Value Expr
}

// Dict is a dict literal `{ k: v, ... }`.
type Dict struct {
	Entries []DictEntry
	Loc     SourceLocation
}

func (e *Dict) exprNode()               {}
func (e *Dict) Location() SourceLocation { return e.Loc }

// Lambda is a lambda expression. Exactly one of Body or BlockBody is set:
// Body for the single-expression form (`=> expr`), BlockBody for the
// brace or colon block form (`=> { ... }` / `=>: ... end`).
type Lambda struct {
	Params    []*Parameter
	Body      Expr
	BlockBody []Stmt
	Loc       SourceLocation
}

func (e *Lambda) exprNode()               {}
func (e *Lambda) Location() SourceLocation { return e.Loc }

// IsBlockBody reports whether this lambda uses the block-body form.
func (e *Lambda) IsBlockBody() bool { return e.BlockBody != nil }

// New is a class instantiation `new ClassName(args...)`.
type New struct {
	ClassName string
	Args      []Expr
	Loc       SourceLocation
}

func (e *New) exprNode()               {}
func (e *New) Location() SourceLocation { return e.Loc }

// Self is the `self` keyword.
type Self struct {
	Loc SourceLocation
}

func (e *Self) exprNode()               {}
func (e *Self) Location() SourceLocation { return e.Loc }

// Super is a superclass method call `super.method(args...)`.
type Super struct {
	Method string
	Args   []Expr
	Loc    SourceLocation
}

func (e *Super) exprNode()               {}
func (e *Super) Location() SourceLocation { return e.Loc }

// ChanRecv is the channel-receive expression `<- channel`.
type ChanRecv struct {
	Channel Expr
	Loc     SourceLocation
}

func (e *ChanRecv) exprNode()               {}
func (e *ChanRecv) Location() SourceLocation { return e.Loc }
