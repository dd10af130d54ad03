package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parhelia512/moonlang-sub000/compiler/alias"
	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/compiler/parser"
)

var (
	parseJSON  bool
	parseAlias string
	parseWatch bool
)

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output the AST as JSON")
	parseCmd.Flags().StringVar(&parseAlias, "alias-pack", "", "Path to an alias-pack JSON file (overrides moonlang.yml)")
	parseCmd.Flags().BoolVar(&parseWatch, "watch", false, "Re-parse on file change")
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.moon>",
	Short: "Parse a MoonLang source file",
	Long:  "Run the lexer and parser over a .moon file and print the AST, or report the first error",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		aliases, err := loadAliases(parseAlias)
		if err != nil {
			return err
		}

		if parseWatch {
			return watchAndRun(file, func() error { return runParse(file, aliases) })
		}
		return runParse(file, aliases)
	},
}

func runParse(file string, aliases *alias.Map) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	l := lexer.New(string(source))
	l.SetAliases(aliases)

	tokens, err := l.Tokenize()
	if err != nil {
		return reportError(file, err, parseJSON)
	}

	p := parser.New(tokens)
	program, err := p.Parse()
	if err != nil {
		return reportError(file, err, parseJSON)
	}

	if parseJSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Success bool        `json:"success"`
			AST     interface{} `json:"ast"`
		}{Success: true, AST: ast.Describe(program)})
	}

	fmt.Printf("parsed %d statement(s)\n", len(program.Statements))
	return nil
}
