package seeding

import (
	"context"
	"math"
	"sort"

	"github.com/Sciphr/tourney-engine/models"
)

// Default blend weights per strategy.
const (
	recentPerformanceRecentWeight = 0.8
	recentPerformanceBaseWeight   = 0.2
	skillBalancedRecentWeight     = 0.7
	skillBalancedBaseWeight       = 0.3

	// Baseline rating above which a participant starts contributing
	// entertainment value to the ai_optimized sort key.
	entertainmentBaseline = 1000.0
)

// EffectiveRating blends a participant's base rating with a recency bonus
// derived from their recent win rate. The bonus is
// (recentWinRate - 0.5) * 200, so a participant on a hot streak rates up
// and one on a cold streak rates down.
func EffectiveRating(p *models.Participant, recentWeight, baseWeight float64) float64 {
	base := p.Rating
	bonus := (recentWinRate(p) - 0.5) * 200
	return recentWeight*(base+bonus) + baseWeight*base
}

func recentWinRate(p *models.Participant) float64 {
	if p.Stats == nil {
		return 0.5
	}
	return p.Stats.RecentWinRate
}

func lifetimeWinRate(p *models.Participant) float64 {
	if p.Stats == nil {
		return 50
	}
	return p.Stats.WinRate
}

// ratingVolatility is the standard deviation of the participant's recent
// per-match ratings.
func ratingVolatility(p *models.Participant) float64 {
	if p.Stats == nil || len(p.Stats.RecentRatings) < 2 {
		return 0
	}
	ratings := p.Stats.RecentRatings
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	mean := sum / float64(len(ratings))
	var variance float64
	for _, r := range ratings {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(ratings))
	return math.Sqrt(variance)
}

// entertainmentValue estimates how watchable a participant's matches are:
// rating above the baseline, KDA-like ratio, and comeback frequency all
// contribute.
func entertainmentValue(p *models.Participant) float64 {
	value := math.Max(0, p.Rating-entertainmentBaseline) / 10
	if p.Stats != nil {
		value += p.Stats.KDARatio * 5
		value += p.Stats.ComebackRate * 25
	}
	return value
}

func blendWeights(opts models.SeedingSettings, defaultRecent, defaultBase float64) (float64, float64) {
	recent, base := defaultRecent, defaultBase
	if opts.RecentWeight != nil {
		recent = *opts.RecentWeight
	}
	if opts.BaseWeight != nil {
		base = *opts.BaseWeight
	}
	return recent, base
}

func sortByKeyDesc(participants []*models.Participant, key func(*models.Participant) float64) []*models.Participant {
	ordered := make([]*models.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return key(ordered[i]) > key(ordered[j])
	})
	return ordered
}

// interleaveHalves reorders a best-first list so that seeds alternate
// between the stronger and the weaker half: seed 1 is the best overall,
// seed 2 the best of the weaker half, and so on. First-round pairings end
// up deliberately more balanced than pure rank order.
func interleaveHalves(ordered []*models.Participant) []*models.Participant {
	split := (len(ordered) + 1) / 2
	top, bottom := ordered[:split], ordered[split:]
	out := make([]*models.Participant, 0, len(ordered))
	for i := 0; i < split; i++ {
		out = append(out, top[i])
		if i < len(bottom) {
			out = append(out, bottom[i])
		}
	}
	return out
}

// RecentPerformanceStrategy seeds by effective rating with a heavy recency
// weighting (0.8 recent-adjusted / 0.2 base by default).
type RecentPerformanceStrategy struct{}

func (s *RecentPerformanceStrategy) GetName() string { return StrategyRecentPerformance }

func (s *RecentPerformanceStrategy) AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error) {
	if err := validate(participants); err != nil {
		return nil, err
	}
	recent, base := blendWeights(opts, recentPerformanceRecentWeight, recentPerformanceBaseWeight)
	ordered := sortByKeyDesc(participants, func(p *models.Participant) float64 {
		return EffectiveRating(p, recent, base)
	})
	return sequential(ordered), nil
}

// SkillBalancedStrategy ranks by effective rating (0.7/0.3 weights plus a
// lifetime win-rate adjustment), then interleaves the top and bottom halves.
type SkillBalancedStrategy struct{}

func (s *SkillBalancedStrategy) GetName() string { return StrategySkillBalanced }

func skillBalancedKey(p *models.Participant, recent, base float64) float64 {
	return EffectiveRating(p, recent, base) + (lifetimeWinRate(p)-50)*2
}

func (s *SkillBalancedStrategy) AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error) {
	if err := validate(participants); err != nil {
		return nil, err
	}
	recent, base := blendWeights(opts, skillBalancedRecentWeight, skillBalancedBaseWeight)
	ordered := sortByKeyDesc(participants, func(p *models.Participant) float64 {
		return skillBalancedKey(p, recent, base)
	})
	return sequential(interleaveHalves(ordered)), nil
}

// AIOptimizedStrategy extends the skill-balanced key with a volatility
// penalty and an entertainment bonus before interleaving. The effective
// rating and the entertainment value are blended 50:25.
type AIOptimizedStrategy struct{}

func (s *AIOptimizedStrategy) GetName() string { return StrategyAIOptimized }

func (s *AIOptimizedStrategy) AssignSeeds(ctx context.Context, participants []*models.Participant, opts models.SeedingSettings) ([]*models.Participant, error) {
	if err := validate(participants); err != nil {
		return nil, err
	}
	recent, base := blendWeights(opts, skillBalancedRecentWeight, skillBalancedBaseWeight)
	ordered := sortByKeyDesc(participants, func(p *models.Participant) float64 {
		key := skillBalancedKey(p, recent, base)*0.50 + entertainmentValue(p)*0.25
		return key - ratingVolatility(p)/100
	})
	return sequential(interleaveHalves(ordered)), nil
}
