// Package tooling provides a programmatic API for IDE integration via LSP.
// It exposes the lexer and parser in a thread-safe manner suitable for
// Language Server Protocol implementations. Scope is diagnostics only:
// no hover, completion, definition, or reference lookups, since MoonLang's
// frontend carries no type checker or symbol table.
package tooling

import (
	"sync"

	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/compiler/parser"
)

// API provides thread-safe access to lex/parse results for IDE integration.
// It maintains document state and recomputes diagnostics on each update.
type API struct {
	documents map[string]*Document
	docsMutex sync.RWMutex

	config *Config
}

// Config holds configuration for the tooling API.
type Config struct {
	// CacheSize is stored with the API but not enforced: the document cache
	// is unbounded and no document is ever evicted.
	CacheSize int
}

// Document represents a cached document with its parsed AST (if any) and
// the single lex/parse error encountered, if any. MoonLang's parser is
// fail-fast: there is at most one syntax error per document, never a list.
type Document struct {
	URI     string
	Content string
	Version int

	AST   *ast.Program
	Error error
}

// Position represents a position in a document (zero-based for LSP compatibility).
type Position struct {
	Line      int
	Character int
}

// Range represents a range in a document.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic represents a lexer or parser error surfaced to an editor.
type Diagnostic struct {
	Range    Range
	Severity DiagnosticSeverity
	Phase    string
	Message  string
	Source   string
}

// DiagnosticSeverity indicates the severity of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticSeverityError DiagnosticSeverity = iota
	DiagnosticSeverityWarning
	DiagnosticSeverityInfo
	DiagnosticSeverityHint
)

// NewAPI creates a new tooling API instance with default configuration.
func NewAPI() *API {
	return NewAPIWithConfig(&Config{CacheSize: 100})
}

// NewAPIWithConfig creates a new tooling API with custom configuration.
func NewAPIWithConfig(config *Config) *API {
	return &API{
		documents: make(map[string]*Document),
		config:    config,
	}
}

// ParseFile lexes and parses a source file, caches the result under uri,
// and returns the resulting document.
func (a *API) ParseFile(uri, content string) (*Document, error) {
	doc := a.parseFileInternal(uri, content)
	doc.Version = 1

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc, nil
}

// UpdateDocument re-lexes and re-parses a document after an edit. If the
// content is unchanged from the cached version, the cached result is
// reused and only the version is bumped.
func (a *API) UpdateDocument(uri, content string, version int) (*Document, error) {
	a.docsMutex.Lock()
	oldDoc, exists := a.documents[uri]
	if exists && oldDoc.Content == content {
		oldDoc.Version = version
		a.docsMutex.Unlock()
		return oldDoc, nil
	}
	a.docsMutex.Unlock()

	doc := a.parseFileInternal(uri, content)
	doc.Version = version

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc, nil
}

func (a *API) parseFileInternal(uri, content string) *Document {
	doc := &Document{URI: uri, Content: content}

	l := lexer.New(content)
	tokens, err := l.Tokenize()
	if err != nil {
		doc.Error = err
		return doc
	}

	p := parser.New(tokens)
	program, err := p.Parse()
	if err != nil {
		doc.Error = err
		return doc
	}

	doc.AST = program
	return doc
}

// GetDocument retrieves a cached document.
func (a *API) GetDocument(uri string) (*Document, bool) {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()

	doc, exists := a.documents[uri]
	return doc, exists
}

// CloseDocument removes a document from the cache.
func (a *API) CloseDocument(uri string) {
	a.docsMutex.Lock()
	delete(a.documents, uri)
	a.docsMutex.Unlock()
}

// GetDiagnostics returns the diagnostics for a document: zero or one,
// since parsing stops at the first error.
func (a *API) GetDiagnostics(uri string) []Diagnostic {
	doc, exists := a.GetDocument(uri)
	if !exists || doc.Error == nil {
		return nil
	}

	switch e := doc.Error.(type) {
	case lexer.LexerError:
		return []Diagnostic{{
			Range:    pointRange(e.Line, e.Column, 1),
			Severity: DiagnosticSeverityError,
			Phase:    "lexer",
			Message:  e.Message,
			Source:   "moonlang",
		}}
	case parser.ParseError:
		return []Diagnostic{{
			Range:    pointRange(e.Line, e.Column, 1),
			Severity: DiagnosticSeverityError,
			Phase:    "parser",
			Message:  e.Message,
			Source:   "moonlang",
		}}
	default:
		return []Diagnostic{{
			Range:    pointRange(1, 1, 1),
			Severity: DiagnosticSeverityError,
			Phase:    "unknown",
			Message:  doc.Error.Error(),
			Source:   "moonlang",
		}}
	}
}

// pointRange builds a one-line, width-wide Range from a 1-based source
// line/column, converting to LSP's zero-based Position.
func pointRange(line, column, width int) Range {
	l := line - 1
	if l < 0 {
		l = 0
	}
	c := column - 1
	if c < 0 {
		c = 0
	}
	return Range{
		Start: Position{Line: l, Character: c},
		End:   Position{Line: l, Character: c + width},
	}
}
