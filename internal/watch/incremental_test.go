package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIncrementalCompiler_IncrementalBuild(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "incremental-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	srcDir := filepath.Join(tmpDir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("Failed to create src dir: %v", err)
	}

	testFile := filepath.Join(srcDir, "main.moon")
	content := `
func greet(name) {
    return "hello, " + name
}
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	compiler := NewIncrementalCompiler()

	result, err := compiler.IncrementalBuild([]string{testFile})
	if err != nil {
		t.Fatalf("First build failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected first build to succeed")
	}

	if result.Duration == 0 {
		t.Error("Expected duration to be set")
	}

	if len(compiler.astCache) != 1 {
		t.Errorf("Expected 1 cached file, got %d", len(compiler.astCache))
	}

	if _, ok := compiler.Get(testFile); !ok {
		t.Error("Expected cached AST to be retrievable")
	}

	result2, err := compiler.IncrementalBuild([]string{testFile})
	if err != nil {
		t.Fatalf("Second build failed: %v", err)
	}

	if !result2.Success {
		t.Error("Expected second build to succeed")
	}
}

func TestIncrementalCompiler_CompileError(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "incremental-error-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "bad.moon")
	badContent := `
func f(a = 1, b) {
    return a + b
}
`
	if err := os.WriteFile(testFile, []byte(badContent), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	compiler := NewIncrementalCompiler()

	result, err := compiler.IncrementalBuild([]string{testFile})
	if err == nil {
		t.Error("Expected build to fail with syntax error")
	}

	if result.Success {
		t.Error("Expected result.Success to be false")
	}

	if len(result.Diagnostics) == 0 {
		t.Error("Expected a diagnostic to be reported")
	} else if result.Diagnostics[0].Diagnostic.Phase != "parser" {
		t.Errorf("Expected a parser diagnostic, got phase %q", result.Diagnostics[0].Diagnostic.Phase)
	}
}

func TestIncrementalCompiler_FullBuild(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "full-build-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	files := []string{"a.moon", "b.moon", "c.moon"}
	for _, file := range files {
		content := `
func main() {
    x = 1
    return x
}
`
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", file, err)
		}
	}

	compiler := NewIncrementalCompiler()

	result, err := compiler.FullBuild(tmpDir)
	if err != nil {
		t.Fatalf("Full build failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected full build to succeed")
	}

	if len(compiler.astCache) != len(files) {
		t.Errorf("Expected %d cached files, got %d", len(files), len(compiler.astCache))
	}
}

func TestIncrementalCompiler_ClearCache(t *testing.T) {
	compiler := NewIncrementalCompiler()

	compiler.astCache["file1.moon"] = nil
	compiler.astCache["file2.moon"] = nil

	if len(compiler.astCache) != 2 {
		t.Fatalf("Expected 2 cache entries, got %d", len(compiler.astCache))
	}

	compiler.ClearCache()

	if len(compiler.astCache) != 0 {
		t.Errorf("Expected cache to be cleared, got %d entries", len(compiler.astCache))
	}
}

func TestIncrementalCompiler_NonMoonFiles(t *testing.T) {
	compiler := NewIncrementalCompiler()

	result, err := compiler.IncrementalBuild([]string{"test.css", "test.js"})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if !result.Success {
		t.Error("Expected success for non-.moon files")
	}

	if len(result.ChangedFiles) != 2 {
		t.Errorf("Expected 2 changed files, got %d", len(result.ChangedFiles))
	}
}

func TestCompileResult_Duration(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duration-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "main.moon")
	content := `
func main() {
    return 1
}
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	compiler := NewIncrementalCompiler()

	start := time.Now()
	result, _ := compiler.IncrementalBuild([]string{testFile})
	elapsed := time.Since(start)

	if result.Duration == 0 {
		t.Error("Expected duration to be set")
	}

	if result.Duration > elapsed+time.Millisecond {
		t.Error("Result duration should not exceed actual elapsed time")
	}
}

func BenchmarkIncrementalCompiler_Build(b *testing.B) {
	tmpDir, err := os.MkdirTemp("", "bench-test-*")
	if err != nil {
		b.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "main.moon")
	content := `
func greet(name) {
    return "hello, " + name
}
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to write test file: %v", err)
	}

	compiler := NewIncrementalCompiler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compiler.IncrementalBuild([]string{testFile})
	}
}
