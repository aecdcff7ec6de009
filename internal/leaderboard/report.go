package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgewatch/backend/internal/contracts"
)

// WriteReport persists the leaderboard artifact atomically: temp file
// in the target directory, then rename.
func WriteReport(path string, report *contracts.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "leaderboard-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// ReadReport loads a previously written artifact. A missing or
// malformed file returns (nil, false): absent state, not an error.
func ReadReport(path string) (*contracts.Report, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var report contracts.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}
