package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/scan"
)

var momentumFlags scanFlags

// momentumCmd scans filers whose price already moved.
var momentumCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Scan recent filers that already ran, gated by move size",
	Long: `Scans recent dilution filers and keeps only those whose price
window shows a move at or above the requested tier:

  1  peak gain >= 25%
  2  peak gain >= 50%
  3  peak gain >= 100%

Candidates without usable price history are dropped. Writes the
momentum leaderboard artifact.

Exit codes: 0 alerted, 1 failed, 2 nothing new.

Example:
  go run ./cmd/edgewatch momentum --tier 2 --post`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(scan.Momentum{}, &momentumFlags)
	},
}

func init() {
	rootCmd.AddCommand(momentumCmd)
	addScanFlags(momentumCmd, &momentumFlags)
	momentumCmd.Flags().IntVar(&momentumFlags.tier, "tier", 0, "minimum move tier (0-3)")
}
