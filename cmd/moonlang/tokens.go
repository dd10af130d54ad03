package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/parhelia512/moonlang-sub000/compiler/alias"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/internal/cli/config"
	"github.com/parhelia512/moonlang-sub000/internal/diagnostics"
	"github.com/parhelia512/moonlang-sub000/internal/watch"
)

var (
	tokensJSON      bool
	tokensAliasPack string
	tokensWatch     bool
)

func init() {
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "Output tokens as JSON")
	tokensCmd.Flags().StringVar(&tokensAliasPack, "alias-pack", "", "Path to an alias-pack JSON file (overrides moonlang.yml)")
	tokensCmd.Flags().BoolVar(&tokensWatch, "watch", false, "Re-tokenize on file change")
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.moon>",
	Short: "Tokenize a MoonLang source file",
	Long:  "Run the lexer over a .moon file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		aliases, err := loadAliases(tokensAliasPack)
		if err != nil {
			return err
		}

		if tokensWatch {
			return watchAndRun(file, func() error { return runTokens(file, aliases) })
		}
		return runTokens(file, aliases)
	},
}

func runTokens(file string, aliases *alias.Map) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	l := lexer.New(string(source))
	l.SetAliases(aliases)

	tokens, err := l.Tokenize()
	if err != nil {
		return reportError(file, err, tokensJSON)
	}

	if tokensJSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Success bool           `json:"success"`
			Tokens  []lexer.Token  `json:"tokens"`
		}{Success: true, Tokens: tokens})
	}

	for _, t := range tokens {
		fmt.Println(t.String())
	}
	return nil
}

// loadAliases resolves the alias pack to use: the --alias-pack flag wins,
// falling back to moonlang.yml's alias_pack setting, falling back to no
// aliases at all.
func loadAliases(flagPath string) (*alias.Map, error) {
	path := flagPath
	if path == "" {
		cfg, err := config.Load()
		if err == nil {
			path = cfg.AliasPack
		}
	}
	if path == "" {
		return alias.Empty(), nil
	}
	return alias.Load(path)
}

// reportError prints a lexer or parser error in terminal or JSON form and
// returns a plain error so cobra exits non-zero without re-printing it.
func reportError(file string, err error, asJSON bool) error {
	d, ok := diagnostics.FromError(err)
	if !ok {
		return err
	}

	if asJSON {
		diagnostics.ReportJSON(&d)
	} else {
		diagnostics.ReportTerminal(file, d)
	}
	return fmt.Errorf("%s failed", d.Phase)
}

// watchAndRun runs fn once, then again every time a .moon file in the
// watched directories (the working directory and its src, lib, examples
// and config subdirectories) changes content, until interrupted. It never returns on success — only on an
// unrecoverable watcher setup failure.
func watchAndRun(file string, fn func() error) error {
	successColor := color.New(color.FgGreen)

	run := func() {
		if err := fn(); err != nil {
			log.Printf("error: %v", err)
		} else {
			successColor.Println("ok")
		}
	}

	run()

	fw, err := watch.NewFileWatcher([]string{"*.moon"}, nil, func(files []string) error {
		run()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if err := fw.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", file, err)
	}
	defer fw.Stop()

	select {}
}
