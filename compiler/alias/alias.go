// Package alias loads the optional keyword/operator alias configuration
// consumed by the lexer, letting source written against a localized or
// customized keyword pack resolve back to MoonLang's canonical lexemes.
package alias

import (
	"encoding/json"
	"fmt"
	"os"
)

// Map is the four-table alias lookup the lexer consults before falling
// back to its built-in keyword and operator tables. It is built once and
// is safe to share by reference across concurrent lexings: nothing in
// the lexer ever mutates it.
type Map struct {
	Keywords  map[string]string
	Operators map[string]string
	Builtins  map[string]string
	TypeNames map[string]string
}

// Empty returns a Map with all four tables initialized but empty, the
// value a lexer uses when no alias configuration was supplied.
func Empty() *Map {
	return &Map{
		Keywords:  map[string]string{},
		Operators: map[string]string{},
		Builtins:  map[string]string{},
		TypeNames: map[string]string{},
	}
}

// ConfigError reports a failure loading an alias configuration file.
type ConfigError struct {
	Path    string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("alias config %q: %s", e.Path, e.Message)
}

// recognizedTables names the only top-level keys Load retains; anything
// else in the document is ignored.
var recognizedTables = []string{"keywords", "operators", "builtins", "type_names"}

// Load reads and parses the alias configuration at path. A well-formed
// JSON object with some or all of the four recognized keys missing is not
// an error — the missing tables are simply empty. Only string-to-string
// entries inside a recognized table are retained; any other shape for an
// individual entry is silently dropped rather than failing the whole load.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ConfigError{Path: path, Message: "file does not exist"}
		}
		return nil, ConfigError{Path: path, Message: fmt.Sprintf("unreadable: %v", err)}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ConfigError{Path: path, Message: fmt.Sprintf("malformed JSON: %v", err)}
	}

	m := Empty()
	for _, table := range recognizedTables {
		section, ok := raw[table]
		if !ok {
			continue
		}

		var entries map[string]interface{}
		if err := json.Unmarshal(section, &entries); err != nil {
			// A recognized key whose value isn't even an object: treat the
			// whole table as empty rather than failing the entire load.
			continue
		}

		dest := m.tableFor(table)
		for k, v := range entries {
			if s, ok := v.(string); ok {
				dest[k] = s
			}
		}
	}

	return m, nil
}

func (m *Map) tableFor(name string) map[string]string {
	switch name {
	case "keywords":
		return m.Keywords
	case "operators":
		return m.Operators
	case "builtins":
		return m.Builtins
	case "type_names":
		return m.TypeNames
	default:
		panic("alias: unrecognized table " + name)
	}
}
