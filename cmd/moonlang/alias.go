package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var aliasInitOutput string

func init() {
	aliasInitCmd.Flags().StringVarP(&aliasInitOutput, "output", "o", "moonlang-alias.json", "Path to write the generated alias pack")
	aliasCmd.AddCommand(aliasInitCmd)
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage alias packs for MoonLang's keyword and operator tables",
}

var aliasInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively scaffold a starter alias-pack JSON file",
	Long: `Init walks through MoonLang's four alias tables (keywords, operators,
builtins, type_names) and writes a starter alias-pack JSON file that a
moonlang.yml's alias_pack setting (or --alias-pack) can point at.`,
	RunE: runAliasInit,
}

// aliasLocale is one of the built-in starting points offered by "moonlang
// alias init" — a small set of keyword remappings for a localized or
// stylistically different keyword pack.
type aliasLocale struct {
	Name     string
	Keywords map[string]string
}

var aliasLocales = []aliasLocale{
	{Name: "none (start from an empty pack)", Keywords: map[string]string{}},
	{
		Name: "verbose (function/endfunction, loop/endloop)",
		Keywords: map[string]string{
			"function":    "func",
			"endfunction": "end",
			"loop":        "while",
			"endloop":     "end",
		},
	},
	{
		Name: "terse (fn, ret, brk, cont)",
		Keywords: map[string]string{
			"fn":   "func",
			"ret":  "return",
			"brk":  "break",
			"cont": "continue",
		},
	},
}

func runAliasInit(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	if _, err := os.Stat(aliasInitOutput); err == nil {
		overwrite := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("%s already exists. Overwrite?", aliasInitOutput),
			Default: false,
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			infoColor.Println("aborted")
			return nil
		}
	}

	options := make([]string, len(aliasLocales))
	for i, l := range aliasLocales {
		options[i] = l.Name
	}

	var selectedIdx int
	selectPrompt := &survey.Select{
		Message: "Start from which keyword locale?",
		Options: options,
	}
	if err := survey.AskOne(selectPrompt, &selectedIdx); err != nil {
		return err
	}

	addMore := false
	confirmPrompt := &survey.Confirm{
		Message: "Add custom keyword overrides now?",
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &addMore); err != nil {
		return err
	}

	keywords := aliasLocales[selectedIdx].Keywords
	for addMore {
		var alias, canonical string
		questions := []*survey.Question{
			{
				Name:     "alias",
				Prompt:   &survey.Input{Message: "Alias spelling:"},
				Validate: survey.Required,
			},
			{
				Name:     "canonical",
				Prompt:   &survey.Input{Message: "Canonical keyword it maps to:"},
				Validate: survey.Required,
			},
		}
		answers := struct {
			Alias     string
			Canonical string
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
		keywords[answers.Alias] = answers.Canonical
		alias, canonical = answers.Alias, answers.Canonical
		infoColor.Printf("mapped %q -> %q\n", alias, canonical)

		if err := survey.AskOne(confirmPrompt, &addMore); err != nil {
			return err
		}
	}

	pack := struct {
		Keywords  map[string]string `json:"keywords"`
		Operators map[string]string `json:"operators"`
		Builtins  map[string]string `json:"builtins"`
		TypeNames map[string]string `json:"type_names"`
	}{
		Keywords:  keywords,
		Operators: map[string]string{},
		Builtins:  map[string]string{},
		TypeNames: map[string]string{},
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode alias pack: %w", err)
	}

	if err := os.WriteFile(aliasInitOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", aliasInitOutput, err)
	}

	successColor.Printf("wrote %s\n", aliasInitOutput)
	return nil
}
