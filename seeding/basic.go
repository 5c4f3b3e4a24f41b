package seeding

import (
	"context"
	"sort"

	"github.com/Sciphr/tourney-engine/models"
)

// unseededFallback sorts participants without a manual seed behind every
// seeded entry.
const unseededFallback = 999

// RandomStrategy shuffles participants uniformly (Fisher–Yates) and
// numbers them in shuffled order.
type RandomStrategy struct{}

func (s *RandomStrategy) GetName() string { return StrategyRandom }

func (s *RandomStrategy) AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error) {
	if err := validate(participants); err != nil {
		return nil, err
	}
	shuffled := make([]*models.Participant, len(participants))
	copy(shuffled, participants)
	rng := rngFrom(opts)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return sequential(shuffled), nil
}

// ManualStrategy honors pre-existing seed numbers. Unseeded entries sort
// behind all seeded ones, keeping their relative registration order.
type ManualStrategy struct{}

func (s *ManualStrategy) GetName() string { return StrategyManual }

func (s *ManualStrategy) AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error) {
	if err := validate(participants); err != nil {
		return nil, err
	}
	ordered := make([]*models.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return manualKey(ordered[i]) < manualKey(ordered[j])
	})
	return sequential(ordered), nil
}

func manualKey(p *models.Participant) int {
	if p.Seed <= 0 {
		return unseededFallback
	}
	return p.Seed
}

// RankedStrategy seeds by raw rating, best first.
type RankedStrategy struct{}

func (s *RankedStrategy) GetName() string { return StrategyRanked }

func (s *RankedStrategy) AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error) {
	if err := validate(participants); err != nil {
		return nil, err
	}
	ordered := make([]*models.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Rating > ordered[j].Rating
	})
	return sequential(ordered), nil
}
