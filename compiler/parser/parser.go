// Package parser implements MoonLang's recursive-descent parser: a
// predictive parser over a token stream that enforces operator
// precedence, block-style consistency, and default-parameter ordering,
// producing a *ast.Program or failing at the first grammar violation.
package parser

import (
	"fmt"

	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
)

// blockStyle tracks which block delimiter the file has committed to.
type blockStyle int

const (
	styleUnknown blockStyle = iota
	styleColonEnd
	styleBraces
)

// blockTerminators are the tokens that substitute for NEWLINE at the end
// of a statement (spec §4.3 newline handling).
var blockTerminators = map[lexer.TokenType]bool{
	lexer.TOKEN_END:    true,
	lexer.TOKEN_ELIF:   true,
	lexer.TOKEN_ELSE:   true,
	lexer.TOKEN_RBRACE: true,
	lexer.TOKEN_CATCH:  true,
	lexer.TOKEN_EOF:    true,
}

// Parser consumes a token stream and produces a Program AST.
type Parser struct {
	tokens  []lexer.Token
	current int
	style   blockStyle
}

// New creates a Parser over tokens, normally the output of a Lexer's
// Tokenize call.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream and returns the resulting
// Program, or the first ParseError encountered. There is no recovery:
// parsing stops at the first grammar violation and no partial AST is
// returned.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}

	p.skipNewlines()
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		p.skipNewlines()
	}

	return program, nil
}

// checkpoint returns a token-index snapshot for lambda-vs-parenthesized
// backtracking; restore(checkpoint()) rewinds to it.
func (p *Parser) checkpoint() int {
	return p.current
}

func (p *Parser) restore(mark int) {
	p.current = mark
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// match advances past and returns true if the current token's type is
// among types; otherwise it leaves the cursor untouched.
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAtCurrent(message)
}

func (p *Parser) errorAtCurrent(message string) error {
	tok := p.peek()
	return ParseError{Line: tok.Line, Column: tok.Column, Message: message}
}

func (p *Parser) errorAt(tok lexer.Token, message string) error {
	return ParseError{Line: tok.Line, Column: tok.Column, Message: message}
}

func (p *Parser) locAt(tok lexer.Token) ast.SourceLocation {
	return ast.SourceLocation{Line: tok.Line, Column: tok.Column}
}

// skipNewlines consumes any run of NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.check(lexer.TOKEN_NEWLINE) {
		p.advance()
	}
}

// expectStatementEnd requires a NEWLINE or one of the block terminators
// that substitute for it, per spec §4.3. It does not consume a
// terminator token itself (the caller's block-closing logic does that);
// it only consumes a NEWLINE, if present.
func (p *Parser) expectStatementEnd() error {
	if p.check(lexer.TOKEN_NEWLINE) {
		p.advance()
		return nil
	}
	if blockTerminators[p.peek().Type] {
		return nil
	}
	return p.errorAtCurrent(fmt.Sprintf("expected newline or end of block, found %s", p.peek().Type))
}

// expectBlockStart consumes the block opener (':' or '{') and enforces
// file-wide block-style consistency. It returns true if the file style is
// braces, false if colon/end. skipStyleCheck is used by switch, which
// always uses ':'/'end' and never participates in style commitment.
func (p *Parser) expectBlockStart(context string, skipStyleCheck bool) (bool, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_COLON:
		p.advance()
		if !skipStyleCheck {
			if err := p.commitStyle(styleColonEnd, tok); err != nil {
				return false, err
			}
		}
		return false, nil
	case lexer.TOKEN_LBRACE:
		p.advance()
		if !skipStyleCheck {
			if err := p.commitStyle(styleBraces, tok); err != nil {
				return false, err
			}
		}
		return true, nil
	default:
		return false, p.errorAtCurrent(fmt.Sprintf("expected ':' or '{' to start %s, found %s", context, tok.Type))
	}
}

// commitStyle is the one-shot UNKNOWN -> {COLON_END, BRACES} transition.
// A mismatch against an already-committed style is a hard ParseError at
// the offending block's opener.
func (p *Parser) commitStyle(want blockStyle, opener lexer.Token) error {
	if p.style == styleUnknown {
		p.style = want
		return nil
	}
	if p.style != want {
		return p.errorAt(opener, "mixed block styles not allowed; use a consistent ':'/'end' or '{'/'}' style throughout the file")
	}
	return nil
}

// parseBlockBody parses statements until the matching block closer,
// having already consumed the opener via expectBlockStart.
func (p *Parser) parseBlockBody(braces bool) ([]ast.Stmt, error) {
	var body []ast.Stmt
	p.skipNewlines()
	for {
		if braces {
			if p.check(lexer.TOKEN_RBRACE) {
				break
			}
		} else if p.check(lexer.TOKEN_END) || p.check(lexer.TOKEN_ELIF) || p.check(lexer.TOKEN_ELSE) || p.check(lexer.TOKEN_CATCH) {
			break
		}
		if p.isAtEnd() {
			return nil, p.errorAtCurrent("unexpected end of input inside block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipNewlines()
	}
	if braces {
		if _, err := p.consume(lexer.TOKEN_RBRACE, "expected '}' to close block"); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// closeColonBlock consumes the trailing `end` of a `:`-style block. It is
// a no-op for brace-style blocks, whose closer was already consumed by
// parseBlockBody.
func (p *Parser) closeColonBlock(braces bool) error {
	if braces {
		return nil
	}
	_, err := p.consume(lexer.TOKEN_END, "expected 'end' to close block")
	return err
}
