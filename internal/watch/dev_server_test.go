package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDevServer_NewDevServer(t *testing.T) {
	config := &DevServerConfig{
		WatchPatterns:  []string{"*.moon"},
		IgnorePatterns: []string{"*.swp"},
	}

	ds, err := NewDevServer(config)
	if err != nil {
		t.Fatalf("Failed to create dev server: %v", err)
	}

	if ds == nil {
		t.Fatal("Expected dev server to be created")
	}

	if ds.compiler == nil {
		t.Error("Expected compiler to be initialized")
	}

	if ds.diagnostics == nil {
		t.Error("Expected diagnostics server to be initialized")
	}

	if ds.watcher == nil {
		t.Error("Expected file watcher to be initialized")
	}
}

func TestDevServer_NewDevServer_DefaultConfig(t *testing.T) {
	// Test with nil config - should use defaults
	ds, err := NewDevServer(nil)
	if err != nil {
		t.Fatalf("Failed to create dev server with default config: %v", err)
	}

	if len(ds.watchPatterns) == 0 {
		t.Error("Expected default watch patterns to be set")
	}
}

func TestDevServerConfig_Verbose(t *testing.T) {
	config := &DevServerConfig{
		Verbose: true,
	}

	if !config.Verbose {
		t.Error("Expected Verbose to be true")
	}
}

func TestDevServer_Diagnostics(t *testing.T) {
	ds, err := NewDevServer(nil)
	if err != nil {
		t.Fatalf("Failed to create dev server: %v", err)
	}
	defer ds.diagnostics.Close()

	if ds.Diagnostics() != ds.diagnostics {
		t.Error("Expected Diagnostics() to return the dev server's diagnostics server")
	}
}

func TestDevServer_HandleFileChange_Backend(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "dev-server-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "main.moon")
	content := `
func main():
  return 1
end
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	ds, err := NewDevServer(nil)
	if err != nil {
		t.Fatalf("Failed to create dev server: %v", err)
	}
	defer ds.diagnostics.Close()

	if err := ds.handleFileChange([]string{testFile}); err != nil {
		t.Errorf("handleFileChange returned error: %v", err)
	}

	if _, ok := ds.compiler.Get(testFile); !ok {
		t.Error("Expected file to be cached after successful build")
	}
}

func TestDevServer_HandleFileChange_Config(t *testing.T) {
	ds, err := NewDevServer(nil)
	if err != nil {
		t.Fatalf("Failed to create dev server: %v", err)
	}
	defer ds.diagnostics.Close()

	if err := ds.handleFileChange([]string{"config/moonlang.yml"}); err != nil {
		t.Errorf("handleFileChange returned error: %v", err)
	}
}

func TestDevServer_HandleFileChange_Ignored(t *testing.T) {
	ds, err := NewDevServer(nil)
	if err != nil {
		t.Fatalf("Failed to create dev server: %v", err)
	}
	defer ds.diagnostics.Close()

	// A file that is neither a .moon source nor a config file requires no
	// rebuild at all.
	if err := ds.handleFileChange([]string{"README.md"}); err != nil {
		t.Errorf("handleFileChange returned error: %v", err)
	}
}

// Note: Full integration tests for Start()/Stop() would require mocking the
// filesystem and watching a real directory tree. The unit tests above verify
// initialization and the handleFileChange dispatch paths directly.
