// Package diagnostics wraps MoonLang's fail-fast lexer/parser errors into a
// reportable shape for the CLI and LSP. It never changes the core error
// semantics defined by compiler/lexer and compiler/parser — a Diagnostic is
// purely a presentation-layer view over a LexerError or ParseError.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/compiler/parser"
)

// Severity classifies a Diagnostic. Lexer/parser errors are always fatal,
// but the reporting layer may someday want to surface warnings (e.g. from
// a linter built on top of this one).
type Severity string

const (
	SeverityError Severity = "error"
	SeverityFatal Severity = "fatal"
)

// Location is a 1-based source position, matching LexerError/ParseError.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is a reportable view of a lexer or parser failure.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Phase    string   `json:"phase"`
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// FromError converts the error returned by lexer.Tokenize or parser.Parse
// into a Diagnostic. It returns false if err is nil or not a recognized
// lexer/parser error type.
func FromError(err error) (Diagnostic, bool) {
	switch e := err.(type) {
	case lexer.LexerError:
		return Diagnostic{
			Severity: SeverityError,
			Phase:    "lexer",
			Location: Location{Line: e.Line, Column: e.Column},
			Message:  e.Message,
		}, true
	case parser.ParseError:
		return Diagnostic{
			Severity: SeverityError,
			Phase:    "parser",
			Location: Location{Line: e.Line, Column: e.Column},
			Message:  e.Message,
		}, true
	default:
		return Diagnostic{}, false
	}
}

// jsonReport is the top-level JSON document emitted by ReportJSON.
type jsonReport struct {
	Success     bool         `json:"success"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// ReportJSON writes a single diagnostic (or a clean success report) to
// stdout as indented JSON, mirroring the host's outputErrorsJSON shape.
func ReportJSON(d *Diagnostic) error {
	report := jsonReport{Success: d == nil}
	if d != nil {
		report.Diagnostics = []Diagnostic{*d}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// ReportTerminal writes a single diagnostic to stderr in the host's
// colorized one-error-at-a-time format.
func ReportTerminal(file string, d Diagnostic) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, "%s\n", d.Message)
	fmt.Fprintf(os.Stderr, "  --> %s:%d:%d\n", file, d.Location.Line, d.Location.Column)
	fmt.Fprintf(os.Stderr, "  [%s]\n", d.Phase)
}

// String renders a Diagnostic as a single line, e.g. for log output.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error at %d:%d: %s", d.Phase, d.Location.Line, d.Location.Column, d.Message)
	return b.String()
}
