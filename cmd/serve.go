package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/storefront-insights/captain/internal/handlers"
	"github.com/storefront-insights/captain/internal/vision"
	"github.com/storefront-insights/captain/internal/visioncmd"
)

func newServeCmd() *cobra.Command {
	var port string
	var provider string
	var model string
	var goalsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the screenshot analysis API",
		Long: `Starts the Captain HTTP API on the specified port.

POST a screenshot to /api/analyze as multipart field "file" to score it.
Stored runs are available under /api/runs until the server stops.`,
		Example: `  # Start server on default port 8888
  captain serve

  # Start server on custom port with a local model
  captain serve --port 3000 --provider ollama`,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := vision.LoadGoals(goalsPath)
			if err != nil {
				return err
			}

			capability, closeProvider := visioncmd.NewCapability(cmd.Context(), provider, model)
			defer closeProvider()

			handler := handlers.New(vision.NewAnalyzer(capability, vision.WithGoals(goals)))

			addr := ":" + port
			server := &http.Server{
				Addr:         addr,
				Handler:      handler.Routes(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Captain API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider (gemini, openai, or ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&goalsPath, "goals", os.Getenv("CAPTAIN_GOALS"), "Path to project goals YAML file")

	return cmd
}
