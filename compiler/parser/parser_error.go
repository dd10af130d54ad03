package parser

import "fmt"

// ParseError reports a fatal grammar violation at a fixed source
// position. Parsing stops at the first error; there is no recovery, and
// the AST is never partially returned on failure.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}
