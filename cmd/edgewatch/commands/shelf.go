package commands

import (
	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/scan"
)

var shelfFlags scanFlags

// shelfCmd scans shelf and primary registrations.
var shelfCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Scan S-3 / S-1 / S-8 registrations for shelf positioning",
	Long: `Scans EDGAR full-text search across S-3, S-1 and S-8 in that
priority order. A ticker that filed several forms keeps the highest
priority one. Writes the shelf leaderboard artifact.

Exit codes: 0 alerted, 1 failed, 2 nothing new.

Example:
  go run ./cmd/edgewatch shelf --days 14 --min-score 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(scan.Shelf{}, &shelfFlags)
	},
}

func init() {
	rootCmd.AddCommand(shelfCmd)
	addScanFlags(shelfCmd, &shelfFlags)
}
