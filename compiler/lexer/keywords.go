package lexer

// keywords maps the reserved lexemes recognized before aliasing (spec §6.4)
// to their token types for O(1) lookup.
var keywords = map[string]TokenType{
	"if":       TOKEN_IF,
	"elif":     TOKEN_ELIF,
	"else":     TOKEN_ELSE,
	"while":    TOKEN_WHILE,
	"for":      TOKEN_FOR,
	"in":       TOKEN_IN,
	"to":       TOKEN_TO,
	"end":      TOKEN_END,
	"true":     TOKEN_TRUE,
	"false":    TOKEN_FALSE,
	"null":     TOKEN_NULL,
	"and":      TOKEN_AND,
	"or":       TOKEN_OR,
	"not":      TOKEN_NOT,
	"func":     TOKEN_FUNC,
	"function": TOKEN_FUNCTION,
	"return":   TOKEN_RETURN,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
	"try":      TOKEN_TRY,
	"catch":    TOKEN_CATCH,
	"throw":    TOKEN_THROW,
	"switch":   TOKEN_SWITCH,
	"case":     TOKEN_CASE,
	"default":  TOKEN_DEFAULT,
	"class":    TOKEN_CLASS,
	"extends":  TOKEN_EXTENDS,
	"self":     TOKEN_SELF,
	"super":    TOKEN_SUPER,
	"new":      TOKEN_NEW,
	"static":   TOKEN_STATIC,
	"moon":     TOKEN_MOON,
	"export":   TOKEN_EXPORT,
	"global":   TOKEN_GLOBAL,
	"import":   TOKEN_IMPORT,
	"from":     TOKEN_FROM,
	"as":       TOKEN_AS,
}

// lookupKeyword checks whether identifier names a reserved keyword.
// Returns the token type and true if it's a keyword, TOKEN_IDENTIFIER and
// false otherwise.
func lookupKeyword(identifier string) (TokenType, bool) {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType, true
	}
	return TOKEN_IDENTIFIER, false
}

// IsKeyword reports whether identifier names a reserved keyword.
func IsKeyword(identifier string) bool {
	_, ok := keywords[identifier]
	return ok
}
