package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/cooldown"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/logger"
)

// cooldownCmd inspects the cooldown ledger.
var cooldownCmd = &cobra.Command{
	Use:   "cooldown",
	Short: "Show the ticker cooldown ledger",
	Long: `Prints every ticker in the cooldown store with its last alert
date. Entries never expire; only the suppression effect does.

Example:
  go run ./cmd/edgewatch cooldown`,
	RunE: runCooldown,
}

func init() {
	rootCmd.AddCommand(cooldownCmd)
}

func runCooldown(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	store := cooldown.NewStore(cfg.CooldownPath(), cfg.Scan.CooldownDays, log)

	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Println("cooldown store is empty")
		return nil
	}

	tickers := make([]string, 0, len(entries))
	for ticker := range entries {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	fmt.Printf("%-8s %s\n", "TICKER", "LAST ALERT")
	for _, ticker := range tickers {
		fmt.Printf("%-8s %s\n", ticker, entries[ticker])
	}
	fmt.Printf("\n%d tickers, %d day suppression window\n", len(tickers), cfg.Scan.CooldownDays)

	return nil
}
