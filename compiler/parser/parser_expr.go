package parser

import (
	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
)

// parseExpression is the entry point of the precedence-climbing ladder.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_OR) {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "or", Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_AND) {
		op := p.advance()
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "and", Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	left, err := p.parseBitXor()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_BIT_OR) {
		op := p.advance()
		right, err := p.parseBitXor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "|", Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	left, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_BIT_XOR) {
		op := p.advance()
		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "^", Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_BIT_AND) {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "&", Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_EQ) || p.check(lexer.TOKEN_NE) {
		op := p.advance()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opLexeme(op), Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseCompare() (ast.Expr, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_LT) || p.check(lexer.TOKEN_LE) || p.check(lexer.TOKEN_GT) || p.check(lexer.TOKEN_GE) {
		op := p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opLexeme(op), Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseShift() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_LSHIFT) || p.check(lexer.TOKEN_RSHIFT) {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opLexeme(op), Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opLexeme(op), Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_SLASH) || p.check(lexer.TOKEN_PERCENT) {
		op := p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opLexeme(op), Left: left, Right: right, Loc: p.locAt(op)}
	}
	return left, nil
}

// parsePower is right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2).
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.TOKEN_POWER) {
		op := p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: "**", Left: left, Right: right, Loc: p.locAt(op)}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch {
	case p.check(lexer.TOKEN_MINUS):
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "-", Operand: operand, Loc: p.locAt(op)}, nil
	case p.check(lexer.TOKEN_NOT):
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "not", Operand: operand, Loc: p.locAt(op)}, nil
	case p.check(lexer.TOKEN_BIT_NOT):
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "~", Operand: operand, Loc: p.locAt(op)}, nil
	case p.check(lexer.TOKEN_CHAN_ARROW):
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.ChanRecv{Channel: operand, Loc: p.locAt(op)}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(lexer.TOKEN_LPAREN):
			op := p.advance()
			args, err := p.parseArgList(lexer.TOKEN_RPAREN)
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args, Loc: p.locAt(op)}
		case p.check(lexer.TOKEN_LBRACKET):
			op := p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.TOKEN_RBRACKET, "expected ']' after index expression"); err != nil {
				return nil, err
			}
			expr = &ast.Index{Object: expr, Index: idx, Loc: p.locAt(op)}
		case p.check(lexer.TOKEN_DOT):
			op := p.advance()
			name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected member name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{Object: expr, Name: name.Lexeme, Loc: p.locAt(op)}
		default:
			return expr, nil
		}
	}
}

// parseArgList parses a comma-separated expression list terminated by
// closer, which has not yet been consumed.
func (p *Parser) parseArgList(closer lexer.TokenType) ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(closer) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		if _, err := p.consume(closer, "expected ',' or closing delimiter in argument list"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		v, _ := tok.Literal.(int64)
		return &ast.IntegerLit{Value: v, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		v, _ := tok.Literal.(float64)
		return &ast.FloatLit{Value: v, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		v, _ := tok.Literal.(string)
		return &ast.StringLit{Value: v, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_NULL:
		p.advance()
		return &ast.NullLit{Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_SELF:
		p.advance()
		return &ast.Self{Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_SUPER:
		return p.parseSuper()
	case lexer.TOKEN_NEW:
		return p.parseNew()
	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return &ast.Identifier{Name: tok.Lexeme, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_LBRACKET:
		return p.parseListLiteral()
	case lexer.TOKEN_LBRACE:
		return p.parseDictLiteral()
	case lexer.TOKEN_LPAREN:
		return p.parseParenOrLambda()
	default:
		return nil, p.errorAtCurrent("expected expression")
	}
}

func (p *Parser) parseSuper() (ast.Expr, error) {
	tok := p.advance() // 'super'
	if _, err := p.consume(lexer.TOKEN_DOT, "expected '.' after 'super'"); err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected method name after 'super.'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_LPAREN, "expected '(' after super method name"); err != nil {
		return nil, err
	}
	args, err := p.parseArgList(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.Super{Method: name.Lexeme, Args: args, Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseNew() (ast.Expr, error) {
	tok := p.advance() // 'new'
	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected class name after 'new'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_LPAREN, "expected '(' after class name"); err != nil {
		return nil, err
	}
	args, err := p.parseArgList(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.New{ClassName: name.Lexeme, Args: args, Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseListLiteral() (ast.Expr, error) {
	tok := p.advance() // '['
	elems, err := p.parseArgList(lexer.TOKEN_RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.List{Elements: elems, Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseDictLiteral() (ast.Expr, error) {
	tok := p.advance() // '{'
	var entries []ast.DictEntry
	p.skipNewlines()
	if p.check(lexer.TOKEN_RBRACE) {
		p.advance()
		return &ast.Dict{Entries: entries, Loc: p.locAt(tok)}, nil
	}
	for {
		p.skipNewlines()
		key, err := p.parseDictKey()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TOKEN_COLON, "expected ':' after dict key"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		p.skipNewlines()
		if p.match(lexer.TOKEN_COMMA) {
			p.skipNewlines()
			if p.check(lexer.TOKEN_RBRACE) {
				p.advance()
				return &ast.Dict{Entries: entries, Loc: p.locAt(tok)}, nil
			}
			continue
		}
		if _, err := p.consume(lexer.TOKEN_RBRACE, "expected ',' or '}' in dict literal"); err != nil {
			return nil, err
		}
		return &ast.Dict{Entries: entries, Loc: p.locAt(tok)}, nil
	}
}

// parseDictKey accepts a string literal or a bare identifier, lifting
// either to a *ast.StringLit: the AST preserves no syntactic distinction
// between the two forms.
func (p *Parser) parseDictKey() (*ast.StringLit, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		v, _ := tok.Literal.(string)
		return &ast.StringLit{Value: v, Loc: p.locAt(tok)}, nil
	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return &ast.StringLit{Value: tok.Lexeme, Loc: p.locAt(tok)}, nil
	default:
		return nil, p.errorAtCurrent("expected string literal or identifier as dict key")
	}
}

// parseParenOrLambda implements the lambda-vs-parenthesized-expression
// disambiguation: it first attempts to parse a `()` or `(ident, ...)`
// parameter list followed by '=>'. On any failure of that attempt it
// rewinds to just after the opening '(' and parses a parenthesized
// expression instead. This is the parser's only backtracking point.
func (p *Parser) parseParenOrLambda() (ast.Expr, error) {
	mark := p.checkpoint()
	p.advance() // '('

	if params, ok := p.tryParseLambdaParams(); ok {
		if p.check(lexer.TOKEN_ARROW) {
			arrow := p.advance()
			return p.finishLambda(params, arrow)
		}
	}

	p.restore(mark)
	p.advance() // '(' again
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_RPAREN, "expected ')' to close parenthesized expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

// tryParseLambdaParams attempts to parse `)` or `ident(, ident)* )` from
// just after the opening '('. It returns ok=false on any parse failure,
// including a default value appearing on any parameter: a default inside
// a lambda candidate's parameter list aborts the lambda attempt entirely,
// and the whole `(...)` is reparsed by the caller as a parenthesized
// expression.
func (p *Parser) tryParseLambdaParams() ([]*ast.Parameter, bool) {
	var params []*ast.Parameter
	if p.check(lexer.TOKEN_RPAREN) {
		p.advance()
		return params, true
	}
	for {
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			return nil, false
		}
		name := p.advance()
		if p.check(lexer.TOKEN_ASSIGN) {
			return nil, false
		}
		params = append(params, &ast.Parameter{Name: name.Lexeme})
		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		if !p.check(lexer.TOKEN_RPAREN) {
			return nil, false
		}
		p.advance()
		return params, true
	}
}

// finishLambda parses the lambda body, having already consumed the
// parameter list and '=>'.
func (p *Parser) finishLambda(params []*ast.Parameter, arrow lexer.Token) (ast.Expr, error) {
	if p.check(lexer.TOKEN_LBRACE) || p.check(lexer.TOKEN_COLON) {
		braces, err := p.expectBlockStart("lambda body", false)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlockBody(braces)
		if err != nil {
			return nil, err
		}
		if err := p.closeColonBlock(braces); err != nil {
			return nil, err
		}
		return &ast.Lambda{Params: params, BlockBody: body, Loc: p.locAt(arrow)}, nil
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Params: params, Body: body, Loc: p.locAt(arrow)}, nil
}

// opLexeme recovers the source-faithful operator spelling for a token so
// that ast.Binary.Op always holds a lexeme rather than an internal token
// number.
func opLexeme(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TOKEN_EQ:
		return "=="
	case lexer.TOKEN_NE:
		return "!="
	case lexer.TOKEN_LT:
		return "<"
	case lexer.TOKEN_LE:
		return "<="
	case lexer.TOKEN_GT:
		return ">"
	case lexer.TOKEN_GE:
		return ">="
	case lexer.TOKEN_LSHIFT:
		return "<<"
	case lexer.TOKEN_RSHIFT:
		return ">>"
	case lexer.TOKEN_PLUS:
		return "+"
	case lexer.TOKEN_MINUS:
		return "-"
	case lexer.TOKEN_STAR:
		return "*"
	case lexer.TOKEN_SLASH:
		return "/"
	case lexer.TOKEN_PERCENT:
		return "%"
	default:
		return tok.Lexeme
	}
}
