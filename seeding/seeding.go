package seeding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Sciphr/tourney-engine/models"
)

var (
	ErrInsufficientParticipants = errors.New("not enough participants to seed (minimum 2 required)")
	ErrUnknownStrategy          = errors.New("unknown seeding strategy")
)

const (
	StrategyRandom            = "random"
	StrategyManual            = "manual"
	StrategyRanked            = "ranked"
	StrategyRecentPerformance = "recent_performance"
	StrategySkillBalanced     = "skill_balanced"
	StrategyAIOptimized       = "ai_optimized"
)

// Strategy orders participants into seed positions 1..N. Implementations
// never mutate the input slice or its elements; they return re-seeded copies.
type Strategy interface {
	AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error)

	GetName() string
}

// NewStrategy resolves a strategy by its configured name.
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case StrategyRandom, "":
		return &RandomStrategy{}, nil
	case StrategyManual:
		return &ManualStrategy{}, nil
	case StrategyRanked:
		return &RankedStrategy{}, nil
	case StrategyRecentPerformance:
		return &RecentPerformanceStrategy{}, nil
	case StrategySkillBalanced:
		return &SkillBalancedStrategy{}, nil
	case StrategyAIOptimized:
		return &AIOptimizedStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

func validate(participants []*models.Participant) error {
	if len(participants) < 2 {
		return fmt.Errorf("%w: found %d", ErrInsufficientParticipants, len(participants))
	}
	return nil
}

// sequential clones the ordered slice, numbering seeds 1..N.
func sequential(ordered []*models.Participant) []*models.Participant {
	out := make([]*models.Participant, len(ordered))
	for i, p := range ordered {
		out[i] = p.CloneWithSeed(i + 1)
	}
	return out
}

func rngFrom(opts models.SeedingSettings) *rand.Rand {
	seed := time.Now().UnixNano()
	if opts.RngSeed != nil {
		seed = *opts.RngSeed
	}
	return rand.New(rand.NewSource(seed))
}
