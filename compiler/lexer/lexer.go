package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/parhelia512/moonlang-sub000/compiler/alias"
)

// Lexer tokenizes MoonLang source code into a finite token sequence.
// It has no persistent state beyond (pos, line, column) and the immutable
// source and alias map, so a Lexer is restartable on fresh input and never
// shares mutable state with another.
type Lexer struct {
	source []rune // source as runes; every code point advances column by one

	start       int // rune index where the current token started
	current     int // index of the next rune to scan
	line        int
	column      int
	startLine   int
	startColumn int

	aliases *alias.Map
	tokens  []Token
}

// New creates a Lexer over source. SetAliases may be called before
// Tokenize to inject an alias map; otherwise an empty map is used.
func New(source string) *Lexer {
	return &Lexer{
		source:  []rune(source),
		line:    1,
		column:  1,
		aliases: alias.Empty(),
		tokens:  make([]Token, 0, len(source)/4),
	}
}

// SetAliases installs the alias map consulted before the built-in
// keyword/operator tables. The map is read-only for the lexer's lifetime.
func (l *Lexer) SetAliases(m *alias.Map) {
	if m == nil {
		m = alias.Empty()
	}
	l.aliases = m
}

// Tokenize scans the entire source and returns its token sequence
// terminated by a synthetic EOF, or the first LexerError encountered.
// There is no error recovery: scanning stops at the first failure.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TOKEN_LPAREN, nil)
	case ')':
		l.addToken(TOKEN_RPAREN, nil)
	case '{':
		l.addToken(TOKEN_LBRACE, nil)
	case '}':
		l.addToken(TOKEN_RBRACE, nil)
	case '[':
		l.addToken(TOKEN_LBRACKET, nil)
	case ']':
		l.addToken(TOKEN_RBRACKET, nil)
	case ',':
		l.addToken(TOKEN_COMMA, nil)
	case ':':
		l.addToken(TOKEN_COLON, nil)
	case '.':
		l.addToken(TOKEN_DOT, nil)

	case '+':
		if l.match('=') {
			l.addToken(TOKEN_PLUS_EQ, nil)
		} else {
			l.addToken(TOKEN_PLUS, nil)
		}
	case '-':
		if l.match('=') {
			l.addToken(TOKEN_MINUS_EQ, nil)
		} else {
			l.addToken(TOKEN_MINUS, nil)
		}
	case '*':
		if l.match('*') {
			l.addToken(TOKEN_POWER, nil)
		} else if l.match('=') {
			l.addToken(TOKEN_STAR_EQ, nil)
		} else {
			l.addToken(TOKEN_STAR, nil)
		}
	case '%':
		if l.match('=') {
			l.addToken(TOKEN_PERCENT_EQ, nil)
		} else {
			l.addToken(TOKEN_PERCENT, nil)
		}
	case '/':
		if l.match('/') {
			l.scanLineComment()
		} else if l.match('*') {
			return l.scanBlockComment()
		} else if l.match('=') {
			l.addToken(TOKEN_SLASH_EQ, nil)
		} else {
			l.addToken(TOKEN_SLASH, nil)
		}

	case '=':
		if l.match('=') {
			l.addToken(TOKEN_EQ, nil)
		} else if l.match('>') {
			l.addToken(TOKEN_ARROW, nil)
		} else {
			l.addToken(TOKEN_ASSIGN, nil)
		}
	case '!':
		if l.match('=') {
			l.addToken(TOKEN_NE, nil)
		} else {
			return l.errorf("unexpected character '!' (did you mean '!='?)")
		}
	case '<':
		if l.match('=') {
			l.addToken(TOKEN_LE, nil)
		} else if l.match('<') {
			l.addToken(TOKEN_LSHIFT, nil)
		} else if l.match('-') {
			l.addToken(TOKEN_CHAN_ARROW, nil)
		} else {
			l.addToken(TOKEN_LT, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(TOKEN_GE, nil)
		} else if l.match('>') {
			l.addToken(TOKEN_RSHIFT, nil)
		} else {
			l.addToken(TOKEN_GT, nil)
		}

	case '&':
		l.addToken(TOKEN_BIT_AND, nil)
	case '|':
		l.addToken(TOKEN_BIT_OR, nil)
	case '^':
		l.addToken(TOKEN_BIT_XOR, nil)
	case '~':
		l.addToken(TOKEN_BIT_NOT, nil)

	case '#':
		l.scanLineComment()

	case '"', '\'':
		return l.scanString(r)

	case ' ', '\t', '\r':
		// ignored

	case '\n':
		l.line++
		l.column = 1
		l.addToken(TOKEN_NEWLINE, nil)

	default:
		switch {
		case l.isDigit(r):
			return l.scanNumber()
		case l.isAlphaStart(r):
			return l.scanIdentifier()
		default:
			if ok, err := l.tryAliasOperator(r); ok {
				return err
			}
			return l.errorf("unexpected character: %q", r)
		}
	}

	return nil
}

// scanLineComment consumes through (but not including) the next newline.
func (l *Lexer) scanLineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanBlockComment consumes a /* ... */ comment. Block comments do not
// nest: the first */ closes the comment regardless of any /* inside it.
func (l *Lexer) scanBlockComment() error {
	for {
		if l.isAtEnd() {
			return l.errorf("unterminated block comment")
		}
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return nil
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0 // advance() below brings it to 1
		}
		l.advance()
	}
}

// scanString scans a string literal opened by quote, including the
// triple-quoted multi-line form.
func (l *Lexer) scanString(quote rune) error {
	if l.peek() == quote && l.peekAt(1) == quote {
		l.advance()
		l.advance()
		return l.scanTripleQuotedString(quote)
	}

	var b strings.Builder
	for {
		if l.isAtEnd() {
			return l.errorf("unterminated string")
		}
		c := l.peek()
		if c == quote {
			l.advance()
			break
		}
		if c == '\n' {
			return l.errorf("unterminated string")
		}
		if c == '\\' {
			l.advance()
			if l.isAtEnd() {
				return l.errorf("unterminated string")
			}
			escaped := l.advance()
			switch escaped {
			case 'n':
				b.WriteRune('\n')
			case 'r':
				b.WriteRune('\r')
			case 't':
				b.WriteRune('\t')
			case '\\':
				b.WriteRune('\\')
			case '"':
				b.WriteRune('"')
			case '\'':
				b.WriteRune('\'')
			case '0':
				b.WriteRune(0)
			default:
				return l.errorf("invalid escape sequence '\\%c'", escaped)
			}
			continue
		}
		b.WriteRune(l.advance())
	}

	l.addToken(TOKEN_STRING_LITERAL, b.String())
	return nil
}

// scanTripleQuotedString scans until the matching triple-quote delimiter,
// preserving raw bytes and embedded newlines literally.
func (l *Lexer) scanTripleQuotedString(quote rune) error {
	var b strings.Builder
	for {
		if l.isAtEnd() {
			return l.errorf("unterminated triple-quoted string")
		}
		if l.peek() == quote && l.peekAt(1) == quote && l.peekAt(2) == quote {
			l.advance()
			l.advance()
			l.advance()
			l.addToken(TOKEN_STRING_LITERAL, b.String())
			return nil
		}
		c := l.advance()
		if c == '\n' {
			l.line++
			l.column = 1
		}
		b.WriteRune(c)
	}
}

// scanNumber scans an integer, hex integer, or float literal.
func (l *Lexer) scanNumber() error {
	if l.source[l.start] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		hexStart := l.current
		for l.isHexDigit(l.peek()) {
			l.advance()
		}
		if l.current == hexStart {
			return l.errorf("invalid hex literal")
		}
		lexeme := string(l.source[hexStart:l.current])
		value, err := strconv.ParseInt(lexeme, 16, 64)
		if err != nil {
			return l.errorf("invalid hex literal: %v", err)
		}
		l.addToken(TOKEN_INT_LITERAL, value)
		return nil
	}

	for l.isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && l.isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for l.isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !l.isDigit(l.peek()) {
			return l.errorf("invalid scientific notation")
		}
		for l.isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := string(l.source[l.start:l.current])
	if isFloat {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return l.errorf("invalid float literal: %v", err)
		}
		l.addToken(TOKEN_FLOAT_LITERAL, value)
		return nil
	}

	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return l.errorf("invalid integer literal: %v", err)
	}
	l.addToken(TOKEN_INT_LITERAL, value)
	return nil
}

// scanIdentifier scans an identifier and resolves it against the alias
// keyword table, then the built-in keyword table, per spec §4.2.
func (l *Lexer) scanIdentifier() error {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])

	if target, ok := l.aliases.Keywords[lexeme]; ok {
		if tokenType, isKeyword := lookupKeyword(target); isKeyword {
			l.addToken(tokenType, nil)
			return nil
		}
	}

	if tokenType, isKeyword := lookupKeyword(lexeme); isKeyword {
		l.addToken(tokenType, nil)
		return nil
	}

	l.addToken(TOKEN_IDENTIFIER, lexeme)
	return nil
}

// tryAliasOperator attempts a longest-match against the alias operator
// table starting at the character just consumed by scanToken. On a match
// the aliased lexeme is consumed and the target string is re-scanned as
// a built-in operator.
func (l *Lexer) tryAliasOperator(first rune) (bool, error) {
	if len(l.aliases.Operators) == 0 {
		return false, nil
	}

	var best string
	bestLen := 0
	for aliasLexeme := range l.aliases.Operators {
		runes := []rune(aliasLexeme)
		if len(runes) == 0 || runes[0] != first {
			continue
		}
		if !l.runesMatchAhead(runes[1:]) {
			continue
		}
		if len(runes) > bestLen {
			bestLen = len(runes)
			best = aliasLexeme
		}
	}
	if bestLen == 0 {
		return false, nil
	}

	for i := 0; i < bestLen-1; i++ {
		l.advance()
	}

	target := l.aliases.Operators[best]
	sub := New(target)
	sub.aliases = l.aliases
	toks, err := sub.Tokenize()
	if err != nil {
		return true, l.errorf("invalid operator alias target %q", target)
	}
	if len(toks) < 2 {
		return true, l.errorf("empty operator alias target")
	}
	tok := toks[0]
	tok.Line, tok.Column = l.startLine, l.startColumn
	tok.Lexeme = best
	l.tokens = append(l.tokens, tok)
	return true, nil
}

// runesMatchAhead reports whether the upcoming runes (after the one
// scanToken already consumed) match want exactly, without consuming them.
func (l *Lexer) runesMatchAhead(want []rune) bool {
	for i, w := range want {
		if l.current+i >= len(l.source) || l.source[l.current+i] != w {
			return false
		}
	}
	return true
}

// Helper methods

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.current + offset
	if idx >= len(l.source) {
		return 0
	}
	return l.source[idx]
}

func (l *Lexer) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) isHexDigit(r rune) bool {
	return l.isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) isAlphaStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r > unicode.MaxASCII
}

func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlphaStart(r) || l.isDigit(r)
}

func (l *Lexer) addToken(tokenType TokenType, literal interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  string(l.source[l.start:l.current]),
		Literal: literal,
		Line:    l.startLine,
		Column:  l.startColumn,
	})
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return LexerError{
		Line:    l.startLine,
		Column:  l.startColumn,
		Message: fmt.Sprintf(format, args...),
	}
}
