package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/parhelia512/moonlang-sub000/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Launch the diagnostics-only language server",
	Long:  "Speak LSP over stdio: tokenize/parse on didOpen/didChange and republish diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := lsp.NewServer()
		return server.Run(context.Background())
	},
}
