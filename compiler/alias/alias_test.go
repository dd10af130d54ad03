package alias

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "alias.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp alias file: %v", err)
	}
	return path
}

func TestEmpty(t *testing.T) {
	m := Empty()
	if m.Keywords == nil || m.Operators == nil || m.Builtins == nil || m.TypeNames == nil {
		t.Fatalf("expected all four tables initialized, got %#v", m)
	}
	if len(m.Keywords) != 0 {
		t.Fatalf("expected empty keywords table, got %d entries", len(m.Keywords))
	}
}

func TestLoadFullPack(t *testing.T) {
	path := writeTemp(t, `{
		"keywords": {"fn": "func", "ret": "return"},
		"operators": {"and_also": "and"},
		"builtins": {"imprimir": "print"},
		"type_names": {"texto": "string"}
	}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Keywords["fn"] != "func" || m.Keywords["ret"] != "return" {
		t.Fatalf("unexpected keywords table: %#v", m.Keywords)
	}
	if m.Operators["and_also"] != "and" {
		t.Fatalf("unexpected operators table: %#v", m.Operators)
	}
	if m.Builtins["imprimir"] != "print" {
		t.Fatalf("unexpected builtins table: %#v", m.Builtins)
	}
	if m.TypeNames["texto"] != "string" {
		t.Fatalf("unexpected type_names table: %#v", m.TypeNames)
	}
}

func TestLoadPartialPackLeavesMissingTablesEmpty(t *testing.T) {
	path := writeTemp(t, `{"keywords": {"fn": "func"}}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Keywords) != 1 {
		t.Fatalf("expected 1 keyword entry, got %d", len(m.Keywords))
	}
	if len(m.Operators) != 0 || len(m.Builtins) != 0 || len(m.TypeNames) != 0 {
		t.Fatalf("expected other tables empty, got %#v", m)
	}
}

func TestLoadIgnoresUnrecognizedTopLevelKeys(t *testing.T) {
	path := writeTemp(t, `{"keywords": {"fn": "func"}, "comment": "a locale pack"}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Keywords["fn"] != "func" {
		t.Fatalf("unexpected keywords table: %#v", m.Keywords)
	}
}

func TestLoadMalformedJSONReturnsConfigError(t *testing.T) {
	path := writeTemp(t, `{not valid json`)

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error")
	}
	cfgErr, ok := err.(ConfigError)
	if !ok {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.Path != path {
		t.Fatalf("expected path %q, got %q", path, cfgErr.Path)
	}
}

func TestLoadNonexistentFileReturnsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	cfgErr, ok := err.(ConfigError)
	if !ok {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.Message != "file does not exist" {
		t.Fatalf("unexpected message: %q", cfgErr.Message)
	}
}

func TestLoadTableNotAnObjectIsTreatedAsEmpty(t *testing.T) {
	path := writeTemp(t, `{"keywords": "not an object", "operators": {"x": "y"}}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Keywords) != 0 {
		t.Fatalf("expected keywords table to be empty, got %#v", m.Keywords)
	}
	if m.Operators["x"] != "y" {
		t.Fatalf("expected operators table to still load: %#v", m.Operators)
	}
}

func TestLoadNonStringEntriesAreDropped(t *testing.T) {
	path := writeTemp(t, `{"keywords": {"fn": "func", "count": 42, "flag": true, "nested": {"a": 1}}}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Keywords) != 1 {
		t.Fatalf("expected only the string entry to survive, got %#v", m.Keywords)
	}
	if m.Keywords["fn"] != "func" {
		t.Fatalf("unexpected keywords table: %#v", m.Keywords)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := ConfigError{Path: "alias.json", Message: "file does not exist"}
	want := `alias config "alias.json": file does not exist`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
