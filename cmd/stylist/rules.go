package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jonathan/stylist-expert/internal/observability"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Dump or validate the rule base",
	Long:  "Prints every rule in the knowledge base as JSON (the same document served by GET /api/rules), or checks a rules file with --validate-only.",
	RunE:  runRules,
}

var (
	rulesValidateOnly bool
	rulesTable        bool
)

func init() {
	rulesCmd.Flags().BoolVar(&rulesValidateOnly, "validate-only", false, "Only validate the rules and report the rule count")
	rulesCmd.Flags().BoolVar(&rulesTable, "table", false, "Print a human-readable listing instead of JSON")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	kb, err := loadKnowledgeBase(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if rulesValidateOnly {
		source := cfg.Rules.Path
		if source == "" {
			source = "built-in rules"
		}
		_, _ = fmt.Fprintf(out, "Validation passed: %d rules in %s\n", kb.Len(), source)
		return nil
	}

	if rulesTable {
		observability.NewPrinter(out).PrintRules(kb.Dump())
		return nil
	}

	data, err := json.MarshalIndent(kb.Dump(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	_, _ = fmt.Fprintln(out, string(data))
	return nil
}
