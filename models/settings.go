package models

import "encoding/json"

// GroupingStrategy names how grouped round-robin participants are split.
type GroupingStrategy string

const (
	GroupingSkillBalanced GroupingStrategy = "skill_balanced"
	GroupingSeeded        GroupingStrategy = "seeded"
	GroupingRandom        GroupingStrategy = "random"
)

// RoundRobinSettings defines specific settings for a RoundRobin stage.
type RoundRobinSettings struct {
	Passes           int              `json:"passes"`                // 1 for single round-robin, 2 for double
	GroupCount       int              `json:"group_count,omitempty"` // 0 or 1 means ungrouped
	GroupingStrategy GroupingStrategy `json:"grouping_strategy,omitempty"`
}

// SeedingSettings selects and tunes a seeding strategy.
type SeedingSettings struct {
	Strategy     string   `json:"strategy"`
	RecentWeight *float64 `json:"recent_weight,omitempty"`
	BaseWeight   *float64 `json:"base_weight,omitempty"`
	RngSeed      *int64   `json:"rng_seed,omitempty"` // fixed seed for reproducible shuffles
}

// DraftSettings is the per-match pick/ban configuration.
type DraftSettings struct {
	GameType string       `json:"game_type,omitempty"`
	Phases   []DraftPhase `json:"phases"`
}

// FormatConfig is the tournament-level format description handed in by the
// caller. SettingsJSON stays raw until the engine validates it.
type FormatConfig struct {
	Name         string          `json:"name"`
	BracketType  BracketFormat   `json:"bracket_type"`
	SettingsJSON json.RawMessage `json:"settings_json,omitempty"`
}

// GetRoundRobinSettings unmarshals the raw settings for a RoundRobin
// format, applying defaults for missing or out-of-range values.
func (f *FormatConfig) GetRoundRobinSettings() (*RoundRobinSettings, error) {
	settings := RoundRobinSettings{Passes: 1}
	if f.BracketType != FormatRoundRobin || len(f.SettingsJSON) == 0 {
		return &settings, nil
	}
	if err := json.Unmarshal(f.SettingsJSON, &settings); err != nil {
		return nil, err
	}
	if settings.Passes < 1 || settings.Passes > 2 {
		settings.Passes = 1
	}
	if settings.GroupCount < 0 {
		settings.GroupCount = 0
	}
	if settings.GroupCount > 1 && settings.GroupingStrategy == "" {
		settings.GroupingStrategy = GroupingSeeded
	}
	return &settings, nil
}

// TournamentConfig bundles everything the engine needs to construct a
// tournament stage: the format, how to seed, and optionally how matches
// draft. It arrives as data from the persistence layer, never from env.
type TournamentConfig struct {
	TournamentID int             `json:"tournament_id"`
	Format       FormatConfig    `json:"format"`
	Seeding      SeedingSettings `json:"seeding"`
	Draft        *DraftSettings  `json:"draft,omitempty"`
}
