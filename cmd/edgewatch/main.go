package main

import (
	"errors"
	"os"

	"github.com/edgewatch/backend/cmd/edgewatch/commands"
	"github.com/edgewatch/backend/internal/scan"
)

// Exit codes: 0 on success, 1 on failure, 2 when a scan completed
// cleanly but found nothing new. Cron wrappers branch on 2.
func main() {
	err := commands.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, scan.ErrNothingNew) {
		os.Exit(2)
	}
	os.Exit(1)
}
