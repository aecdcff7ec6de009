package strategyconfig

import (
	"fmt"
	"math"
	"regexp"
)

var formPattern = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*(/A)?$`)

// Validate rejects profiles whose parameters cannot produce a usable
// run. Errors name the offending field and value.
func Validate(cfg *Config) error {
	if cfg.Meta.ProfileID == "" {
		return fmt.Errorf("meta.profile_id is required")
	}

	if cfg.Scan.LookbackDays < 1 {
		return fmt.Errorf("scan.lookback_days must be >= 1, got %d", cfg.Scan.LookbackDays)
	}
	if cfg.Scan.CooldownDays < 0 {
		return fmt.Errorf("scan.cooldown_days must be >= 0, got %d", cfg.Scan.CooldownDays)
	}
	if cfg.Scan.MinScore < 0 || cfg.Scan.MinScore > 100 {
		return fmt.Errorf("scan.min_score must be in [0, 100], got %d", cfg.Scan.MinScore)
	}
	if cfg.Scan.MaxEntries < 1 {
		return fmt.Errorf("scan.max_entries must be >= 1, got %d", cfg.Scan.MaxEntries)
	}
	if cfg.Scan.MinTier < 0 || cfg.Scan.MinTier > 3 {
		return fmt.Errorf("scan.min_tier must be in [0, 3], got %d", cfg.Scan.MinTier)
	}

	if len(cfg.Forms) == 0 {
		return fmt.Errorf("forms must list at least one form type")
	}
	for _, form := range cfg.Forms {
		if !formPattern.MatchString(form) {
			return fmt.Errorf("forms contains invalid form type %q", form)
		}
	}

	return validateWeights(cfg.Scoring)
}

// validateWeights requires the blend weights to sum to 1.0 within a
// float tolerance.
func validateWeights(s Scoring) error {
	if s.BankruptcyWeight < 0 || s.ViralityWeight < 0 {
		return fmt.Errorf("scoring weights must be >= 0")
	}
	sum := s.BankruptcyWeight + s.ViralityWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}
