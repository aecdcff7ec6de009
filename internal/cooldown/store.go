package cooldown

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/edgewatch/backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// Store gates which tickers may be re-alerted within the suppression
// window. It is the only cross-run state in the scanner: a JSON file
// mapping ticker to last alert date. Entries persist indefinitely;
// only the suppression effect expires.
//
// Writes are whole-file read-modify-write with last-writer-wins
// semantics. Concurrent runs are not safe and must be serialized by
// the caller (a single cron slot).
type Store struct {
	path         string
	cooldownDays int
	logger       *logger.Logger
}

// state is the persisted file shape.
type state struct {
	Tickers   map[string]string `json:"tickers"` // ticker -> YYYY-MM-DD
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewStore creates a cooldown store backed by the file at path.
func NewStore(path string, cooldownDays int, log *logger.Logger) *Store {
	return &Store{
		path:         path,
		cooldownDays: cooldownDays,
		logger:       log,
	}
}

// load reads the persisted state. A missing or corrupt file is
// treated as an empty store, never an error.
func (s *Store) load() state {
	st := state{Tickers: make(map[string]string)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}

	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.WithError(err).WithField("path", s.path).
			Warn("Cooldown file corrupt, starting empty")
		return state{Tickers: make(map[string]string)}
	}
	if st.Tickers == nil {
		st.Tickers = make(map[string]string)
	}
	return st
}

// IsSuppressed reports whether a ticker is inside the suppression
// window as of the given date. The window is half-open: a last alert
// exactly cooldownDays ago is no longer suppressed.
func (s *Store) IsSuppressed(ticker string, asOf time.Time) bool {
	st := s.load()
	return s.suppressed(st, ticker, asOf)
}

// SuppressedSet returns all currently suppressed tickers in one file
// read, for filtering a whole candidate list.
func (s *Store) SuppressedSet(asOf time.Time) map[string]bool {
	st := s.load()
	out := make(map[string]bool)
	for ticker := range st.Tickers {
		if s.suppressed(st, ticker, asOf) {
			out[ticker] = true
		}
	}
	return out
}

func (s *Store) suppressed(st state, ticker string, asOf time.Time) bool {
	lastStr, exists := st.Tickers[ticker]
	if !exists {
		return false
	}

	last, err := time.Parse(dateLayout, lastStr)
	if err != nil {
		// Unreadable entry behaves like no entry
		return false
	}

	daysSince := int(asOf.Sub(last).Hours() / 24)
	return daysSince < s.cooldownDays
}

// RecordAlert marks tickers as alerted on the given date and persists
// the whole store.
func (s *Store) RecordAlert(tickers []string, asOf time.Time) error {
	if len(tickers) == 0 {
		return nil
	}

	st := s.load()
	day := asOf.Format(dateLayout)
	for _, ticker := range tickers {
		st.Tickers[ticker] = day
	}
	st.UpdatedAt = time.Now().UTC()

	if err := s.save(st); err != nil {
		return fmt.Errorf("failed to persist cooldown store: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"recorded": len(tickers),
		"total":    len(st.Tickers),
	}).Info("Cooldown store updated")

	return nil
}

// Entries returns the full ticker -> last-alert-date map, for the
// cooldown CLI subcommand and the API surface.
func (s *Store) Entries() map[string]string {
	return s.load().Tickers
}

// save writes atomically: temp file in the same directory, then rename.
func (s *Store) save(st state) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "cooldown-*.json")
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

	return os.Rename(tmpName, s.path)
}
