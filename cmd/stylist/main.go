// Package main provides the stylist CLI: the recommendation API server and
// offline commands for querying and validating the rule base.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/stylist-expert/internal/config"
	"github.com/jonathan/stylist-expert/internal/inference"
	"github.com/jonathan/stylist-expert/internal/knowledge"
	"github.com/jonathan/stylist-expert/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "stylist",
	Short:         "Rule-based fashion stylist expert system",
	Long:          "Stylist maps a person's occasion, weather, body type and style preferences to ranked outfit recommendations using forward-chaining rules, over HTTP or from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	rulesPath  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (defaults to $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to a JSON or YAML rules file (defaults to the built-in rules)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings reads configuration, applies command-line overrides and
// configures the global logger.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rulesPath != "" {
		cfg.Rules.Path = rulesPath
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}

// loadKnowledgeBase loads the configured rules, or the built-in rules when no path is set.
func loadKnowledgeBase(cfg *config.Config) (*knowledge.KnowledgeBase, error) {
	kb, err := knowledge.Load(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	source := cfg.Rules.Path
	if source == "" {
		source = "built-in"
	}
	logging.Info().Str("source", source).Int("rules", kb.Len()).Msg("knowledge base loaded")
	return kb, nil
}

// newEngine creates an engine that traces through the global logger plus any extra observers.
func newEngine(kb *knowledge.KnowledgeBase, extra ...inference.Observer) *inference.Engine {
	observers := inference.MultiObserver{inference.NewLogObserver(logging.Logger())}
	observers = append(observers, extra...)
	return inference.NewEngine(kb, inference.WithObserver(observers))
}
