package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args in an isolated working directory
// and returns everything written to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("RULES_PATH", "")
	t.Setenv("LOG_LEVEL", "error")

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeFile writes content to a file in a fresh temp dir and returns its absolute path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const customRulesYAML = `rules:
  - id: C1
    conditions:
      occasion: wedding
    recommendation:
      title: Linen Summer Suit
      items: [Linen suit, Loafers]
      explanation: Breathable and festive.
    confidence: 0.8
    images: []
  - id: C2
    conditions:
      occasion: wedding
      weather: hot
    recommendation:
      title: Linen Summer Suit
      items: [Linen suit]
      explanation: Second opinion.
    confidence: 0.6
`
