package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edgewatch",
	Short: "SEC filing scanner for dilution and bankruptcy risk",
	Long: `edgewatch scans SEC EDGAR full-text search for fresh dilution
signals, enriches the filers with market data, scores the risk, and
ranks the result into a small leaderboard.

Variants:
  atm       424B5 prospectus supplements (active ATM selling)
  shelf     S-3 / S-1 / S-8 registrations (shelf positioning)
  momentum  filers that already ran, gated by move size

Usage:
  go run ./cmd/edgewatch [command]

Examples:
  go run ./cmd/edgewatch atm --days 7
  go run ./cmd/edgewatch shelf --post
  go run ./cmd/edgewatch momentum --tier 2
  go run ./cmd/edgewatch serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Callers inspect the returned error for the
// nothing-new sentinel to pick the exit code.
func Execute() error {
	return rootCmd.Execute()
}
