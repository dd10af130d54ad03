package lexer

import "fmt"

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR
	TOKEN_NEWLINE

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_INT_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_STRING_LITERAL

	// Keywords - control flow
	TOKEN_IF
	TOKEN_ELIF
	TOKEN_ELSE
	TOKEN_WHILE
	TOKEN_FOR
	TOKEN_IN
	TOKEN_TO
	TOKEN_END
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_RETURN

	// Keywords - literals
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// Keywords - logic
	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT

	// Keywords - functions
	TOKEN_FUNC
	TOKEN_FUNCTION

	// Keywords - errors
	TOKEN_TRY
	TOKEN_CATCH
	TOKEN_THROW

	// Keywords - switch
	TOKEN_SWITCH
	TOKEN_CASE
	TOKEN_DEFAULT

	// Keywords - classes
	TOKEN_CLASS
	TOKEN_EXTENDS
	TOKEN_SELF
	TOKEN_SUPER
	TOKEN_NEW
	TOKEN_STATIC

	// Keywords - concurrency
	TOKEN_MOON

	// Keywords - modules
	TOKEN_EXPORT
	TOKEN_GLOBAL
	TOKEN_IMPORT
	TOKEN_FROM
	TOKEN_AS

	// Operators - assignment
	TOKEN_ASSIGN // =
	TOKEN_PLUS_EQ
	TOKEN_MINUS_EQ
	TOKEN_STAR_EQ
	TOKEN_SLASH_EQ
	TOKEN_PERCENT_EQ

	// Operators - arithmetic
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_POWER // **

	// Operators - comparison
	TOKEN_EQ // ==
	TOKEN_NE // !=
	TOKEN_LT
	TOKEN_LE
	TOKEN_GT
	TOKEN_GE

	// Operators - bitwise
	TOKEN_BIT_AND // &
	TOKEN_BIT_OR  // |
	TOKEN_BIT_XOR // ^
	TOKEN_BIT_NOT // ~
	TOKEN_LSHIFT  // <<
	TOKEN_RSHIFT  // >>

	// Operators - other
	TOKEN_ARROW      // =>
	TOKEN_CHAN_ARROW // <-
	TOKEN_DOT        // .
	TOKEN_COMMA      // ,
	TOKEN_COLON      // :

	// Delimiters
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_LBRACKET
	TOKEN_RBRACKET
)

var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_NEWLINE:        "NEWLINE",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_INT_LITERAL:    "INT_LITERAL",
	TOKEN_FLOAT_LITERAL:  "FLOAT_LITERAL",
	TOKEN_STRING_LITERAL: "STRING_LITERAL",
	TOKEN_IF:             "IF",
	TOKEN_ELIF:           "ELIF",
	TOKEN_ELSE:           "ELSE",
	TOKEN_WHILE:          "WHILE",
	TOKEN_FOR:            "FOR",
	TOKEN_IN:             "IN",
	TOKEN_TO:             "TO",
	TOKEN_END:            "END",
	TOKEN_BREAK:          "BREAK",
	TOKEN_CONTINUE:       "CONTINUE",
	TOKEN_RETURN:         "RETURN",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_NULL:           "NULL",
	TOKEN_AND:            "AND",
	TOKEN_OR:             "OR",
	TOKEN_NOT:            "NOT",
	TOKEN_FUNC:           "FUNC",
	TOKEN_FUNCTION:       "FUNCTION",
	TOKEN_TRY:            "TRY",
	TOKEN_CATCH:          "CATCH",
	TOKEN_THROW:          "THROW",
	TOKEN_SWITCH:         "SWITCH",
	TOKEN_CASE:           "CASE",
	TOKEN_DEFAULT:        "DEFAULT",
	TOKEN_CLASS:          "CLASS",
	TOKEN_EXTENDS:        "EXTENDS",
	TOKEN_SELF:           "SELF",
	TOKEN_SUPER:          "SUPER",
	TOKEN_NEW:            "NEW",
	TOKEN_STATIC:         "STATIC",
	TOKEN_MOON:           "MOON",
	TOKEN_EXPORT:         "EXPORT",
	TOKEN_GLOBAL:         "GLOBAL",
	TOKEN_IMPORT:         "IMPORT",
	TOKEN_FROM:           "FROM",
	TOKEN_AS:             "AS",
	TOKEN_ASSIGN:         "ASSIGN",
	TOKEN_PLUS_EQ:        "PLUS_EQ",
	TOKEN_MINUS_EQ:       "MINUS_EQ",
	TOKEN_STAR_EQ:        "STAR_EQ",
	TOKEN_SLASH_EQ:       "SLASH_EQ",
	TOKEN_PERCENT_EQ:     "PERCENT_EQ",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_STAR:           "STAR",
	TOKEN_SLASH:          "SLASH",
	TOKEN_PERCENT:        "PERCENT",
	TOKEN_POWER:          "POWER",
	TOKEN_EQ:             "EQ",
	TOKEN_NE:             "NE",
	TOKEN_LT:             "LT",
	TOKEN_LE:             "LE",
	TOKEN_GT:             "GT",
	TOKEN_GE:             "GE",
	TOKEN_BIT_AND:        "BIT_AND",
	TOKEN_BIT_OR:         "BIT_OR",
	TOKEN_BIT_XOR:        "BIT_XOR",
	TOKEN_BIT_NOT:        "BIT_NOT",
	TOKEN_LSHIFT:         "LSHIFT",
	TOKEN_RSHIFT:         "RSHIFT",
	TOKEN_ARROW:          "ARROW",
	TOKEN_CHAN_ARROW:     "CHAN_ARROW",
	TOKEN_DOT:            "DOT",
	TOKEN_COMMA:          "COMMA",
	TOKEN_COLON:          "COLON",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_LBRACKET:       "LBRACKET",
	TOKEN_RBRACKET:       "RBRACKET",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // populated for INT_LITERAL, FLOAT_LITERAL, STRING_LITERAL, IDENTIFIER
	Line    int
	Column  int
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%v) [%d:%d]", t.Type, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexerError reports a fatal lexical error at a fixed source position.
// Lexing stops at the first error; there is no recovery.
type LexerError struct {
	Line    int
	Column  int
	Message string
}

func (e LexerError) Error() string {
	return fmt.Sprintf("lexer error at %d:%d: %s", e.Line, e.Column, e.Message)
}
