package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/scan"
)

var atmFlags scanFlags

// atmCmd scans fresh 424B5 prospectus supplements.
var atmCmd = &cobra.Command{
	Use:   "atm",
	Short: "Scan 424B5 filings for active ATM dilution",
	Long: `Scans EDGAR full-text search for 424B5 prospectus supplements
filed in the lookback window, scores each filer's dilution risk, and
writes the atm leaderboard artifact.

Exit codes: 0 alerted, 1 failed, 2 nothing new.

Example:
  go run ./cmd/edgewatch atm --days 7 --post`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(scan.ATM{}, &atmFlags)
	},
}

func init() {
	rootCmd.AddCommand(atmCmd)
	addScanFlags(atmCmd, &atmFlags)
}
