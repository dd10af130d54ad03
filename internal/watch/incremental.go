package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/compiler/parser"
	"github.com/parhelia512/moonlang-sub000/internal/diagnostics"
)

// IncrementalCompiler re-lexes and re-parses changed source files and
// caches the last-good AST per file. There is no codegen or type checking
// stage: MoonLang's frontend stops at the AST.
type IncrementalCompiler struct {
	// astCache holds the last successfully parsed Program per file.
	astCache map[string]*ast.Program

	lastCompile time.Time
}

// NewIncrementalCompiler creates a new incremental compiler.
func NewIncrementalCompiler() *IncrementalCompiler {
	return &IncrementalCompiler{
		astCache: make(map[string]*ast.Program),
	}
}

// CompileResult holds the result of a lex+parse pass over a set of files.
type CompileResult struct {
	Success      bool
	Diagnostics  []FileDiagnostic
	Duration     time.Duration
	ChangedFiles []string
}

// FileDiagnostic pairs a file path with the single lexer/parser diagnostic
// produced while parsing it, since the parser is fail-fast and stops at the
// first error per file.
type FileDiagnostic struct {
	File       string
	Diagnostic diagnostics.Diagnostic
}

// IncrementalBuild re-parses only the MoonLang (.moon) files among
// changedFiles and updates the AST cache for the ones that parse cleanly.
func (ic *IncrementalCompiler) IncrementalBuild(changedFiles []string) (*CompileResult, error) {
	start := time.Now()

	result := &CompileResult{
		Success:      true,
		ChangedFiles: changedFiles,
	}

	moonFiles := make([]string, 0, len(changedFiles))
	for _, file := range changedFiles {
		if filepath.Ext(file) == ".moon" {
			moonFiles = append(moonFiles, file)
		}
	}

	if len(moonFiles) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	for _, file := range moonFiles {
		program, diag, err := ic.compileFile(file)
		if err != nil {
			result.Success = false
			result.Diagnostics = append(result.Diagnostics, FileDiagnostic{File: file, Diagnostic: diag})
			continue
		}
		ic.astCache[file] = program
	}

	result.Duration = time.Since(start)
	ic.lastCompile = time.Now()

	if !result.Success {
		return result, fmt.Errorf("incremental build failed with %d error(s)", len(result.Diagnostics))
	}
	return result, nil
}

// compileFile lexes and parses a single .moon file.
func (ic *IncrementalCompiler) compileFile(file string) (*ast.Program, diagnostics.Diagnostic, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Phase:    "io",
			Message:  fmt.Sprintf("failed to read file: %v", err),
		}, err
	}

	l := lexer.New(string(source))
	tokens, lexErr := l.Tokenize()
	if lexErr != nil {
		d, _ := diagnostics.FromError(lexErr)
		return nil, d, lexErr
	}

	p := parser.New(tokens)
	program, parseErr := p.Parse()
	if parseErr != nil {
		d, _ := diagnostics.FromError(parseErr)
		return nil, d, parseErr
	}

	return program, diagnostics.Diagnostic{}, nil
}

// FullBuild re-parses every .moon file under root.
func (ic *IncrementalCompiler) FullBuild(root string) (*CompileResult, error) {
	ic.astCache = make(map[string]*ast.Program)

	moonFiles, err := findMoonFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to find .moon files: %w", err)
	}

	if len(moonFiles) == 0 {
		return nil, fmt.Errorf("no .moon files found under %s", root)
	}

	return ic.IncrementalBuild(moonFiles)
}

// ClearCache clears the AST cache.
func (ic *IncrementalCompiler) ClearCache() {
	ic.astCache = make(map[string]*ast.Program)
}

// Get returns the last successfully cached AST for file, if any.
func (ic *IncrementalCompiler) Get(file string) (*ast.Program, bool) {
	program, ok := ic.astCache[file]
	return program, ok
}

// findMoonFiles walks root collecting .moon source files.
func findMoonFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".moon" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
