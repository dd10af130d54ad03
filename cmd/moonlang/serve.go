package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/parhelia512/moonlang-sub000/internal/lsp"
	"github.com/parhelia512/moonlang-sub000/internal/playground"
	"github.com/parhelia512/moonlang-sub000/internal/watch"
)

var (
	serveAddr     string
	serveWatch    bool
	serveWatchDir string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":4000", "Address to serve the playground API on")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Also watch a source tree and push reload/diagnostics over websocket")
	serveCmd.Flags().StringVar(&serveWatchDir, "watch-dir", ".", "Root directory parsed at startup when --watch is set (changes are watched under the working directory)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP playground and LSP-over-websocket endpoints",
	Long: `Serve mounts the tokenize/parse playground API at /v1, the language
server over websocket at /lsp, and, with --watch, a diagnostics channel at
/watch that republishes lex/parse diagnostics whenever a watched .moon file
or the alias-pack config changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	mux := http.NewServeMux()

	pg := playground.NewServer()
	mux.Handle("/v1/", pg)

	mux.HandleFunc("/lsp", func(w http.ResponseWriter, r *http.Request) {
		server := lsp.NewServer()
		if err := server.ServeWebSocket(r.Context(), w, r); err != nil {
			log.Printf("lsp websocket session ended: %v", err)
		}
	})

	var devServer *watch.DevServer
	if serveWatch {
		ds, err := watch.NewDevServer(&watch.DevServerConfig{Verbose: true})
		if err != nil {
			return fmt.Errorf("failed to create dev server: %w", err)
		}
		if err := ds.Start(serveWatchDir); err != nil {
			return fmt.Errorf("failed to start dev server: %w", err)
		}
		devServer = ds
		mux.HandleFunc("/watch", devServer.Diagnostics().HandleWebSocket)
	}

	httpServer := &http.Server{
		Addr:    serveAddr,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		color.New(color.FgGreen).Printf("playground listening on %s\n", serveAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server failed: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("shutdown signal received, shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	if devServer != nil {
		if err := devServer.Stop(); err != nil {
			log.Printf("dev server stop error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
