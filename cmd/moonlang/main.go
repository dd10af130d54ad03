package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moonlang",
		Short: "MoonLang frontend tooling",
		Long: `MoonLang is a compact scripting language. This binary exposes its lexer,
alias-pack loader, and recursive-descent parser: tokenize or parse source,
run a diagnostics-only language server, or serve an HTTP playground.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(aliasCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
