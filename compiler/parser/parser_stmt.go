package parser

import (
	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
)

// parseStatement dispatches on the current token to the statement-form
// parser for MoonLang's grammar (spec §4.3).
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.peek().Type {
	case lexer.TOKEN_IF:
		return p.parseIf()
	case lexer.TOKEN_WHILE:
		return p.parseWhile()
	case lexer.TOKEN_FOR:
		return p.parseFor()
	case lexer.TOKEN_EXPORT:
		return p.parseFuncDecl(true)
	case lexer.TOKEN_FUNC, lexer.TOKEN_FUNCTION:
		return p.parseFuncDecl(false)
	case lexer.TOKEN_RETURN:
		return p.parseReturn()
	case lexer.TOKEN_BREAK:
		return p.parseBreak()
	case lexer.TOKEN_CONTINUE:
		return p.parseContinue()
	case lexer.TOKEN_TRY:
		return p.parseTry()
	case lexer.TOKEN_THROW:
		return p.parseThrow()
	case lexer.TOKEN_SWITCH:
		return p.parseSwitch()
	case lexer.TOKEN_CLASS:
		return p.parseClassDecl()
	case lexer.TOKEN_IMPORT:
		return p.parseImport()
	case lexer.TOKEN_FROM:
		return p.parseFromImport()
	case lexer.TOKEN_MOON:
		return p.parseMoon()
	case lexer.TOKEN_GLOBAL:
		return p.parseGlobal()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	tok := p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	braces, err := p.expectBlockStart("if", false)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockBody(braces)
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{Cond: cond, Then: then, Loc: p.locAt(tok)}

	for p.check(lexer.TOKEN_ELIF) {
		p.advance()
		econd, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		ebraces, err := p.expectBlockStart("elif", false)
		if err != nil {
			return nil, err
		}
		ebody, err := p.parseBlockBody(ebraces)
		if err != nil {
			return nil, err
		}
		stmt.Elifs = append(stmt.Elifs, ast.ElifBranch{Cond: econd, Body: ebody})
		braces = ebraces
	}

	if p.check(lexer.TOKEN_ELSE) {
		p.advance()
		ebraces, err := p.expectBlockStart("else", false)
		if err != nil {
			return nil, err
		}
		ebody, err := p.parseBlockBody(ebraces)
		if err != nil {
			return nil, err
		}
		stmt.Else = ebody
		braces = ebraces
	}

	if err := p.closeColonBlock(braces); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	tok := p.advance() // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	braces, err := p.expectBlockStart("while", false)
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
	return &ast.While{Cond: cond, Body: body, Loc: p.locAt(tok)}, nil
}

// parseFor handles both `for ident in expr` and `for ident = start to end`.
func (p *Parser) parseFor() (ast.Stmt, error) {
	tok := p.advance() // 'for'
	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected loop variable name after 'for'")
	if err != nil {
		return nil, err
	}

	if p.match(lexer.TOKEN_IN) {
		iterable, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		braces, err := p.expectBlockStart("for", false)
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
		return &ast.ForIn{Var: name.Lexeme, Iterable: iterable, Body: body, Loc: p.locAt(tok)}, nil
	}

	if _, err := p.consume(lexer.TOKEN_ASSIGN, "expected '=' or 'in' after for-loop variable"); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_TO, "expected 'to' in for-range loop"); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	braces, err := p.expectBlockStart("for", false)
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
	return &ast.ForRange{Var: name.Lexeme, Start: start, End: end, Body: body, Loc: p.locAt(tok)}, nil
}

// parseFuncDecl handles `[export] (func|function) name(params) <block> end`.
// exported is true when the statement began with the 'export' keyword.
func (p *Parser) parseFuncDecl(exported bool) (ast.Stmt, error) {
	tok := p.peek()
	if exported {
		p.advance() // 'export'
		if !p.check(lexer.TOKEN_FUNC) && !p.check(lexer.TOKEN_FUNCTION) {
			return nil, p.errorAtCurrent("expected 'func' or 'function' after 'export'")
		}
	}
	p.advance() // 'func' | 'function'

	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	braces, err := p.expectBlockStart("function body", false)
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
	return &ast.FuncDecl{Name: name.Lexeme, Params: params, Body: body, Exported: exported, Loc: p.locAt(tok)}, nil
}

// parseParameterList parses a `)`-terminated parameter list, already past
// the opening '('. Once one parameter carries a default value, every
// subsequent parameter must too.
func (p *Parser) parseParameterList() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	sawDefault := false
	if p.check(lexer.TOKEN_RPAREN) {
		p.advance()
		return params, nil
	}
	for {
		name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Name: name.Lexeme}
		if p.match(lexer.TOKEN_ASSIGN) {
			def, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Default = def
			sawDefault = true
		} else if sawDefault {
			return nil, p.errorAt(name, "parameter without a default cannot follow a parameter with one")
		}
		params = append(params, param)
		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		if _, err := p.consume(lexer.TOKEN_RPAREN, "expected ',' or ')' in parameter list"); err != nil {
			return nil, err
		}
		return params, nil
	}
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	tok := p.advance() // 'return'
	if p.check(lexer.TOKEN_NEWLINE) || blockTerminators[p.peek().Type] {
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.Return{Loc: p.locAt(tok)}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseBreak() (ast.Stmt, error) {
	tok := p.advance()
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.Break{Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseContinue() (ast.Stmt, error) {
	tok := p.advance()
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.Continue{Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	tok := p.advance() // 'try'
	braces, err := p.expectBlockStart("try", false)
	if err != nil {
		return nil, err
	}
	tryBody, err := p.parseBlockBody(braces)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_CATCH, "expected 'catch' after try block"); err != nil {
		return nil, err
	}
	errName, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected error variable name after 'catch'")
	if err != nil {
		return nil, err
	}
	cbraces, err := p.expectBlockStart("catch", false)
	if err != nil {
		return nil, err
	}
	catchBody, err := p.parseBlockBody(cbraces)
	if err != nil {
		return nil, err
	}
	if err := p.closeColonBlock(cbraces); err != nil {
		return nil, err
	}
	return &ast.Try{TryBody: tryBody, ErrVar: errName.Lexeme, CatchBody: catchBody, Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseThrow() (ast.Stmt, error) {
	tok := p.advance() // 'throw'
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.Throw{Value: value, Loc: p.locAt(tok)}, nil
}

// parseSwitch always uses the colon/end block style, regardless of the
// file's committed block style, and does not itself participate in
// block-style commitment.
func (p *Parser) parseSwitch() (ast.Stmt, error) {
	tok := p.advance() // 'switch'
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_COLON, "expected ':' after switch expression"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	stmt := &ast.Switch{Value: value, Loc: p.locAt(tok)}
	for p.check(lexer.TOKEN_CASE) {
		p.advance()
		var values []ast.Expr
		for {
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			if p.match(lexer.TOKEN_COMMA) {
				continue
			}
			break
		}
		if _, err := p.consume(lexer.TOKEN_COLON, "expected ':' after case values"); err != nil {
			return nil, err
		}
		p.skipNewlines()
		var body []ast.Stmt
		for !p.check(lexer.TOKEN_CASE) && !p.check(lexer.TOKEN_DEFAULT) && !p.check(lexer.TOKEN_END) {
			if p.isAtEnd() {
				return nil, p.errorAtCurrent("unexpected end of input inside switch")
			}
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, s)
			p.skipNewlines()
		}
		stmt.Cases = append(stmt.Cases, ast.SwitchCase{Values: values, Body: body})
	}

	if p.check(lexer.TOKEN_DEFAULT) {
		p.advance()
		if _, err := p.consume(lexer.TOKEN_COLON, "expected ':' after 'default'"); err != nil {
			return nil, err
		}
		p.skipNewlines()
		var body []ast.Stmt
		for !p.check(lexer.TOKEN_END) {
			if p.isAtEnd() {
				return nil, p.errorAtCurrent("unexpected end of input inside switch default")
			}
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, s)
			p.skipNewlines()
		}
		stmt.Default = body
	}

	if _, err := p.consume(lexer.TOKEN_END, "expected 'end' to close switch"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseClassDecl handles `class name (extends parent)? <methods> end`.
func (p *Parser) parseClassDecl() (ast.Stmt, error) {
	tok := p.advance() // 'class'
	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected class name")
	if err != nil {
		return nil, err
	}
	decl := &ast.ClassDecl{Name: name.Lexeme, Loc: p.locAt(tok)}
	if p.match(lexer.TOKEN_EXTENDS) {
		parent, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected parent class name after 'extends'")
		if err != nil {
			return nil, err
		}
		decl.Parent = parent.Lexeme
	}

	braces, err := p.expectBlockStart("class", false)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	for {
		if braces && p.check(lexer.TOKEN_RBRACE) {
			break
		}
		if !braces && p.check(lexer.TOKEN_END) {
			break
		}
		if p.isAtEnd() {
			return nil, p.errorAtCurrent("unexpected end of input inside class body")
		}
		method, err := p.parseMethodDecl(braces)
		if err != nil {
			return nil, err
		}
		decl.Methods = append(decl.Methods, method)
		p.skipNewlines()
	}
	if err := p.closeColonBlock(braces); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseMethodDecl(outerBraces bool) (*ast.MethodDecl, error) {
	tok := p.peek()
	isStatic := p.match(lexer.TOKEN_STATIC)
	if !p.check(lexer.TOKEN_FUNC) && !p.check(lexer.TOKEN_FUNCTION) {
		return nil, p.errorAtCurrent("expected method declaration")
	}
	p.advance()
	name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected method name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_LPAREN, "expected '(' after method name"); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	braces, err := p.expectBlockStart("method body", false)
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
	return &ast.MethodDecl{Name: name.Lexeme, Params: params, Body: body, IsStatic: isStatic, Loc: p.locAt(tok)}, nil
}

// parseImport handles `import path (as alias)?`.
func (p *Parser) parseImport() (ast.Stmt, error) {
	tok := p.advance() // 'import'
	path, err := p.parseModulePath()
	if err != nil {
		return nil, err
	}
	alias := ""
	if p.match(lexer.TOKEN_AS) {
		name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected alias name after 'as'")
		if err != nil {
			return nil, err
		}
		alias = name.Lexeme
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.Import{Path: path, Alias: alias, Loc: p.locAt(tok)}, nil
}

// parseFromImport handles `from path import name (as alias)?, ...`.
func (p *Parser) parseFromImport() (ast.Stmt, error) {
	tok := p.advance() // 'from'
	path, err := p.parseModulePath()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TOKEN_IMPORT, "expected 'import' after module path"); err != nil {
		return nil, err
	}
	var names []ast.ImportName
	for {
		name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected imported name")
		if err != nil {
			return nil, err
		}
		alias := ""
		if p.match(lexer.TOKEN_AS) {
			aliasTok, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected alias name after 'as'")
			if err != nil {
				return nil, err
			}
			alias = aliasTok.Lexeme
		}
		names = append(names, ast.ImportName{Name: name.Lexeme, Alias: alias})
		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		break
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.FromImport{Path: path, Names: names, Loc: p.locAt(tok)}, nil
}

// parseModulePath accepts a dotted or slashed module path spelled as a
// string literal or a bare identifier/member-access chain, returning its
// literal source text.
func (p *Parser) parseModulePath() (string, error) {
	if p.check(lexer.TOKEN_STRING_LITERAL) {
		tok := p.advance()
		s, _ := tok.Literal.(string)
		return s, nil
	}
	first, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected module path")
	if err != nil {
		return "", err
	}
	path := first.Lexeme
	for p.check(lexer.TOKEN_DOT) {
		p.advance()
		seg, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected path segment after '.'")
		if err != nil {
			return "", err
		}
		path += "." + seg.Lexeme
	}
	return path, nil
}

// parseMoon handles `moon call_expr`. A bare lambda argument (no trailing
// call) is wrapped into a zero-argument call before the Moon node is
// built.
func (p *Parser) parseMoon() (ast.Stmt, error) {
	tok := p.advance() // 'moon'
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}

	call, ok := expr.(*ast.Call)
	if !ok {
		if _, isLambda := expr.(*ast.Lambda); !isLambda {
			return nil, p.errorAt(tok, "expected a call expression after 'moon'")
		}
		call = &ast.Call{Callee: expr, Loc: expr.Location()}
	}
	return &ast.Moon{Call: call, Loc: p.locAt(tok)}, nil
}

func (p *Parser) parseGlobal() (ast.Stmt, error) {
	tok := p.advance() // 'global'
	var names []string
	for {
		name, err := p.consume(lexer.TOKEN_IDENTIFIER, "expected identifier in 'global' statement")
		if err != nil {
			return nil, err
		}
		names = append(names, name.Lexeme)
		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		break
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.Global{Names: names, Loc: p.locAt(tok)}, nil
}

// parseSimpleStatement handles assignment (including desugared compound
// assignment), channel send, and plain expression statements -- anything
// that starts with an expression rather than a keyword.
func (p *Parser) parseSimpleStatement() (ast.Stmt, error) {
	exprTok := p.peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch {
	case p.check(lexer.TOKEN_ASSIGN):
		op := p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.Assign{Target: expr, Value: value, Loc: p.locAt(op)}, nil

	case p.check(lexer.TOKEN_PLUS_EQ), p.check(lexer.TOKEN_MINUS_EQ),
		p.check(lexer.TOKEN_STAR_EQ), p.check(lexer.TOKEN_SLASH_EQ),
		p.check(lexer.TOKEN_PERCENT_EQ):
		return p.parseCompoundAssign(expr, exprTok)

	case p.check(lexer.TOKEN_CHAN_ARROW):
		op := p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.ChanSend{Channel: expr, Value: value, Loc: p.locAt(op)}, nil

	default:
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: expr, Loc: expr.Location()}, nil
	}
}

// parseCompoundAssign desugars `target OP= value` into `target = target OP
// value`. The left-hand side is re-derived as a structurally independent
// expression node (not a shared reference to the node already parsed as
// the statement's apparent target) so that a subscript or member target
// is reconstructed twice, matching the reference implementation's
// parse-time expansion. This repo takes no position on runtime
// evaluation order of that duplicated subexpression; that is outside its
// scope.
func (p *Parser) parseCompoundAssign(target ast.Expr, targetTok lexer.Token) (ast.Stmt, error) {
	op := p.advance()
	var binOp string
	switch op.Type {
	case lexer.TOKEN_PLUS_EQ:
		binOp = "+"
	case lexer.TOKEN_MINUS_EQ:
		binOp = "-"
	case lexer.TOKEN_STAR_EQ:
		binOp = "*"
	case lexer.TOKEN_SLASH_EQ:
		binOp = "/"
	case lexer.TOKEN_PERCENT_EQ:
		binOp = "%"
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	lhsEcho := cloneTargetExpr(target)
	value := &ast.Binary{Op: binOp, Left: lhsEcho, Right: rhs, Loc: p.locAt(op)}
	return &ast.Assign{Target: target, Value: value, Loc: p.locAt(targetTok)}, nil
}

// cloneTargetExpr builds a structurally independent copy of an
// assignment target expression for use on the right-hand side of a
// desugared compound assignment.
func cloneTargetExpr(e ast.Expr) ast.Expr {
	switch t := e.(type) {
	case *ast.Identifier:
		return &ast.Identifier{Name: t.Name, Loc: t.Loc}
	case *ast.Index:
		return &ast.Index{Object: cloneTargetExpr(t.Object), Index: cloneTargetExpr(t.Index), Loc: t.Loc}
	case *ast.Member:
		return &ast.Member{Object: cloneTargetExpr(t.Object), Name: t.Name, Loc: t.Loc}
	default:
		return e
	}
}
