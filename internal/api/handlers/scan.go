package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/edgewatch/backend/internal/cooldown"
	"github.com/edgewatch/backend/internal/history"
	"github.com/edgewatch/backend/internal/leaderboard"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/logger"
)

// knownVariants guards the path parameter so the handler never reads
// arbitrary files under the data directory.
var knownVariants = map[string]bool{
	"atm":      true,
	"shelf":    true,
	"momentum": true,
}

// ScanHandler serves the scan artifacts: current leaderboards, the
// cooldown ledger, and archived runs when a database is configured.
type ScanHandler struct {
	cfg      *config.Config
	cooldown *cooldown.Store
	history  *history.Repository // nil without DATABASE_URL
	logger   *logger.Logger
}

// NewScanHandler creates a scan artifact handler. history may be nil.
func NewScanHandler(cfg *config.Config, store *cooldown.Store, hist *history.Repository, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		cfg:      cfg,
		cooldown: store,
		history:  hist,
		logger:   log,
	}
}

// GetLeaderboard returns the latest leaderboard artifact for a variant.
// GET /api/v1/leaderboard/{variant}
func (h *ScanHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	variant := mux.Vars(r)["variant"]
	if !knownVariants[variant] {
		respondError(w, http.StatusNotFound, "Unknown scan variant")
		return
	}

	report, ok := leaderboard.ReadReport(h.cfg.LeaderboardPath(variant))
	if !ok {
		respondError(w, http.StatusNotFound, "No leaderboard generated yet")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetCooldown returns the ticker -> last-alert-date ledger.
// GET /api/v1/cooldown
func (h *ScanHandler) GetCooldown(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tickers": h.cooldown.Entries(),
	})
}

// GetHistory returns recent archived runs for a variant.
// GET /api/v1/history/{variant}?limit=20
func (h *ScanHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	variant := mux.Vars(r)["variant"]
	if !knownVariants[variant] {
		respondError(w, http.StatusNotFound, "Unknown scan variant")
		return
	}

	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "Run history requires a configured database")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondError(w, http.StatusBadRequest, "limit must be in [1, 100]")
			return
		}
		limit = parsed
	}

	runs, err := h.history.RecentRuns(r.Context(), variant, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query run history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve run history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"variant": variant,
		"runs":    runs,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
