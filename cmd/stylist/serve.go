package main

import (
	"fmt"

	"github.com/jonathan/stylist-expert/internal/metrics"
	"github.com/jonathan/stylist-expert/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the recommendation, rules dump, health and metrics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config, default 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	srv, err := newServer()
	if err != nil {
		return err
	}
	return srv.Start()
}

// newServer builds the API server from configuration and flags.
func newServer() (*server.Server, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	kb, err := loadKnowledgeBase(cfg)
	if err != nil {
		return nil, err
	}
	metrics.KnowledgeBaseRules.Set(float64(kb.Len()))

	srv, err := server.New(cfg, newEngine(kb, metrics.InferenceObserver{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}
