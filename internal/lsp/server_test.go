package lsp

import (
	"reflect"
	"testing"

	"github.com/parhelia512/moonlang-sub000/internal/tooling"
	"go.lsp.dev/protocol"
)

func TestServerInitialization(t *testing.T) {
	server := NewServer()
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}

	if server.api == nil {
		t.Error("Server API is nil")
	}

	if server.logger == nil {
		t.Error("Server logger is nil")
	}

	if server.sessionID == "" {
		t.Error("Server session ID should be assigned")
	}

	caps := server.capabilities
	if caps.TextDocumentSync == nil {
		t.Fatal("TextDocumentSync capability is nil")
	}

	sync, ok := caps.TextDocumentSync.(protocol.TextDocumentSyncOptions)
	if !ok {
		t.Fatalf("TextDocumentSync is not TextDocumentSyncOptions: %T", caps.TextDocumentSync)
	}
	if sync.Change != protocol.TextDocumentSyncKindFull {
		t.Errorf("Expected full document sync, got %v", sync.Change)
	}

	// Scope is diagnostics only: every other capability field should be
	// left at its zero value rather than explicitly populated.
	zeroFields := []string{
		"CompletionProvider", "HoverProvider", "DefinitionProvider",
		"ReferencesProvider", "DocumentSymbolProvider", "WorkspaceSymbolProvider",
		"DocumentFormattingProvider", "DocumentRangeFormattingProvider",
	}
	v := reflect.ValueOf(caps)
	for _, name := range zeroFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if !f.IsZero() {
			t.Errorf("%s should be zero; LSP scope is diagnostics-only", name)
		}
	}
}

func TestConvertSeverity(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.DiagnosticSeverity
		expected protocol.DiagnosticSeverity
	}{
		{
			name:     "Error severity",
			input:    tooling.DiagnosticSeverityError,
			expected: protocol.DiagnosticSeverityError,
		},
		{
			name:     "Warning severity",
			input:    tooling.DiagnosticSeverityWarning,
			expected: protocol.DiagnosticSeverityWarning,
		},
		{
			name:     "Info severity",
			input:    tooling.DiagnosticSeverityInfo,
			expected: protocol.DiagnosticSeverityInformation,
		},
		{
			name:     "Hint severity",
			input:    tooling.DiagnosticSeverityHint,
			expected: protocol.DiagnosticSeverityHint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertSeverity(tt.input)
			if result != tt.expected {
				t.Errorf("convertSeverity(%v): expected %v, got %v", tt.input, tt.expected, result)
			}
		})
	}
}

func TestStdRWC(t *testing.T) {
	rwc := stdrwc{}

	_ = rwc.Read
	_ = rwc.Write
	_ = rwc.Close
}
