package watch

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// DevServer drives the CLI's --watch mode: it watches .moon sources, keeps
// an IncrementalCompiler's AST cache warm, and republishes diagnostics
// after every change. When a playground is attached it also pushes
// diagnostics over the diagnostics server's websocket so a browser client
// sees them live, but DevServer itself never builds or runs anything
// beyond the lex/parse pipeline — MoonLang's frontend has no generated
// binary to restart.
type DevServer struct {
	watcher     *FileWatcher
	compiler    *IncrementalCompiler
	diagnostics *DiagnosticsServer

	watchPatterns  []string
	ignorePatterns []string
	verbose        bool

	isBuilding bool
	buildMutex sync.Mutex
	stopChan   chan struct{}
}

// ChangeImpact reports what a batch of changed files requires.
type ChangeImpact struct {
	Scope           ImpactScope
	RequiresRestart bool
	RequiresRebuild bool
	ChangedSources  []string
}

// ImpactScope classifies what a changed file requires of the dev server.
type ImpactScope int

const (
	ScopeBackend ImpactScope = iota // a .moon source changed, re-parse it
	ScopeConfig                     // alias-pack/moonlang.yml changed, clear the AST cache and re-parse everything
)

// AnalyzeImpact classifies a batch of changed files into the work the dev
// server needs to do: re-parsing changed .moon sources, or, for a
// moonlang.yml/alias-pack change, clearing the AST cache before re-parsing.
func AnalyzeImpact(files []string) *ChangeImpact {
	impact := &ChangeImpact{ChangedSources: make([]string, 0)}

	for _, file := range files {
		switch {
		case strings.HasSuffix(file, ".moon"):
			impact.RequiresRebuild = true
			impact.ChangedSources = append(impact.ChangedSources, file)

		case strings.Contains(file, "config/") || strings.HasSuffix(file, ".yml") || strings.HasSuffix(file, ".yaml"):
			impact.Scope = ScopeConfig
			impact.RequiresRestart = true
		}
	}

	return impact
}

// DevServerConfig holds configuration for the dev server.
type DevServerConfig struct {
	Verbose        bool
	WatchPatterns  []string
	IgnorePatterns []string
}

// NewDevServer creates a new development server.
func NewDevServer(config *DevServerConfig) (*DevServer, error) {
	if config == nil {
		config = &DevServerConfig{
			WatchPatterns: []string{
				"*.moon",
			},
			IgnorePatterns: []string{
				"*.swp",
				"*.swo",
				"*~",
				".DS_Store",
			},
		}
	}

	ds := &DevServer{
		compiler:       NewIncrementalCompiler(),
		diagnostics:    NewDiagnosticsServer(),
		watchPatterns:  config.WatchPatterns,
		ignorePatterns: config.IgnorePatterns,
		verbose:        config.Verbose,
		stopChan:       make(chan struct{}),
	}

	var err error
	ds.watcher, err = NewFileWatcher(ds.watchPatterns, ds.ignorePatterns, ds.handleFileChange)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return ds, nil
}

// Start performs an initial full build and begins watching for changes.
func (ds *DevServer) Start(root string) error {
	log.Printf("[Watch] Performing initial build of %s...", root)

	result, err := ds.compiler.FullBuild(root)
	if err != nil {
		log.Printf("[Watch] Initial build failed: %v", err)
		ds.displayDiagnostics(result)
	} else {
		log.Printf("[Watch] Initial build successful (%.2fs)", result.Duration.Seconds())
	}

	if err := ds.watcher.Start(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	log.Printf("[Watch] Watching for changes...")
	return nil
}

// Diagnostics returns the websocket server a caller can mount to push
// re-parse diagnostics to the playground frontend or another client.
func (ds *DevServer) Diagnostics() *DiagnosticsServer {
	return ds.diagnostics
}

// Stop stops the development server.
func (ds *DevServer) Stop() error {
	log.Printf("[Watch] Stopping...")

	select {
	case <-ds.stopChan:
	default:
		close(ds.stopChan)
	}

	if ds.watcher != nil {
		ds.watcher.Stop()
	}
	if ds.diagnostics != nil {
		ds.diagnostics.Close()
	}

	log.Printf("[Watch] Stopped")
	return nil
}

// handleFileChange re-parses the changed files and republishes diagnostics.
func (ds *DevServer) handleFileChange(files []string) error {
	ds.buildMutex.Lock()
	if ds.isBuilding {
		ds.buildMutex.Unlock()
		log.Printf("[Watch] Build already in progress, skipping...")
		return nil
	}
	ds.isBuilding = true
	ds.buildMutex.Unlock()

	defer func() {
		ds.buildMutex.Lock()
		ds.isBuilding = false
		ds.buildMutex.Unlock()
	}()

	impact := AnalyzeImpact(files)
	ds.diagnostics.NotifyBuilding(files)

	if impact.Scope == ScopeConfig {
		log.Printf("[Watch] Config changed: %v, clearing AST cache", files)
		ds.compiler.ClearCache()
		return ds.rebuild(files, "config")
	}

	if impact.RequiresRebuild {
		return ds.rebuild(files, "backend")
	}

	return nil
}

// rebuild runs the incremental compiler over files and notifies clients.
// scope distinguishes a plain source re-parse ("backend") from a full
// reparse triggered by a config/alias-pack change ("config").
func (ds *DevServer) rebuild(files []string, scope string) error {
	start := time.Now()

	if ds.verbose {
		log.Printf("[Watch] Re-parsing %d changed file(s): %v", len(files), files)
	}

	result, err := ds.compiler.IncrementalBuild(files)
	if err != nil {
		log.Printf("[Watch] Build failed: %v", err)
		ds.displayDiagnostics(result)

		errorInfos := make([]*ErrorInfo, len(result.Diagnostics))
		for i, fd := range result.Diagnostics {
			errorInfos[i] = &ErrorInfo{
				Message:  fd.Diagnostic.Message,
				File:     fd.File,
				Line:     fd.Diagnostic.Location.Line,
				Column:   fd.Diagnostic.Location.Column,
				Phase:    fd.Diagnostic.Phase,
				Severity: string(fd.Diagnostic.Severity),
			}
		}
		ds.diagnostics.NotifyErrors(errorInfos)
		return nil
	}

	duration := time.Since(start)
	log.Printf("[Watch] Build successful (%.0fms)", duration.Seconds()*1000)

	ds.diagnostics.NotifySuccess(duration)
	ds.diagnostics.NotifyReload(scope)
	return nil
}

// displayDiagnostics prints every diagnostic from a failed build.
func (ds *DevServer) displayDiagnostics(result *CompileResult) {
	if result == nil || len(result.Diagnostics) == 0 {
		return
	}

	fmt.Printf("\nbuild failed with %d diagnostic(s):\n\n", len(result.Diagnostics))

	for i, fd := range result.Diagnostics {
		fmt.Printf("%d. [%s] %s\n   %s:%d:%d\n",
			i+1, fd.Diagnostic.Phase, fd.Diagnostic.Message,
			fd.File, fd.Diagnostic.Location.Line, fd.Diagnostic.Location.Column)

		if i < len(result.Diagnostics)-1 {
			fmt.Println(strings.Repeat("-", 60))
		}
	}
	fmt.Println()
}
