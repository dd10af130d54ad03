package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/compiler/parser"
)

func TestFromError_LexerError(t *testing.T) {
	err := lexer.LexerError{Line: 3, Column: 9, Message: "unterminated string literal"}

	d, ok := FromError(err)
	require.True(t, ok)

	assert.Equal(t, "lexer", d.Phase)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, 3, d.Location.Line)
	assert.Equal(t, 9, d.Location.Column)
	assert.Equal(t, "unterminated string literal", d.Message)
}

func TestFromError_ParseError(t *testing.T) {
	err := parser.ParseError{Line: 10, Column: 1, Message: "expected ':' or '{' to start if, found TOKEN_NEWLINE"}

	d, ok := FromError(err)
	require.True(t, ok)

	assert.Equal(t, "parser", d.Phase)
	assert.Equal(t, 10, d.Location.Line)
}

func TestFromError_UnrecognizedError(t *testing.T) {
	_, ok := FromError(assertError{})
	assert.False(t, ok)
}

func TestFromError_Nil(t *testing.T) {
	_, ok := FromError(nil)
	assert.False(t, ok)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Phase: "lexer", Location: Location{Line: 1, Column: 2}, Message: "bad token"}
	assert.Equal(t, "lexer error at 1:2: bad token", d.String())
}

type assertError struct{}

func (assertError) Error() string { return "not a lexer/parser error" }
