package strategyconfig

// Config is a scan profile: the run parameters for one scanner
// variant, loaded from YAML. A profile overrides the environment
// defaults for the run it is passed to, and its hash is stamped into
// the resulting report so a leaderboard can always be traced back to
// the exact parameters that produced it.
type Config struct {
	Meta    Meta    `yaml:"meta" json:"meta"`
	Scan    Scan    `yaml:"scan" json:"scan"`
	Forms   []string `yaml:"forms" json:"forms"`
	Scoring Scoring `yaml:"scoring" json:"scoring"`
}

// Meta identifies the profile.
type Meta struct {
	ProfileID string `yaml:"profile_id" json:"profile_id"`
	Version   string `yaml:"version" json:"version"`
}

// Scan holds the run parameters shared by all variants.
type Scan struct {
	LookbackDays int `yaml:"lookback_days" json:"lookback_days"`
	CooldownDays int `yaml:"cooldown_days" json:"cooldown_days"`
	MinScore     int `yaml:"min_score" json:"min_score"`
	MaxEntries   int `yaml:"max_entries" json:"max_entries"`
	// MinTier gates the momentum variant; 0 accepts everything.
	MinTier int `yaml:"min_tier" json:"min_tier"`
}

// Scoring holds the composite blend weights.
type Scoring struct {
	BankruptcyWeight float64 `yaml:"bankruptcy_weight" json:"bankruptcy_weight"`
	ViralityWeight   float64 `yaml:"virality_weight" json:"virality_weight"`
}
