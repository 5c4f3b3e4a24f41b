package seeding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sciphr/tourney-engine/models"
)

func participant(id int, rating float64) *models.Participant {
	return &models.Participant{
		ID:     id,
		Name:   "Player",
		Rating: rating,
		Status: models.ParticipantActive,
	}
}

func seedsOf(participants []*models.Participant) []int {
	seeds := make([]int, len(participants))
	for i, p := range participants {
		seeds[i] = p.Seed
	}
	return seeds
}

func idsOf(participants []*models.Participant) []int {
	ids := make([]int, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		wantName string
		wantErr  error
	}{
		{name: "random", strategy: StrategyRandom, wantName: "random"},
		{name: "empty defaults to random", strategy: "", wantName: "random"},
		{name: "manual", strategy: StrategyManual, wantName: "manual"},
		{name: "ranked", strategy: StrategyRanked, wantName: "ranked"},
		{name: "recent performance", strategy: StrategyRecentPerformance, wantName: "recent_performance"},
		{name: "skill balanced", strategy: StrategySkillBalanced, wantName: "skill_balanced"},
		{name: "ai optimized", strategy: StrategyAIOptimized, wantName: "ai_optimized"},
		{name: "unknown", strategy: "bogus", wantErr: ErrUnknownStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStrategy(tt.strategy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.GetName())
		})
	}
}

// Every strategy must hand out seeds 1..N exactly once and leave the
// input slice untouched.
func TestAssignSeedsPermutation(t *testing.T) {
	strategies := []string{
		StrategyRandom, StrategyManual, StrategyRanked,
		StrategyRecentPerformance, StrategySkillBalanced, StrategyAIOptimized,
	}
	seed := int64(42)
	opts := models.SeedingSettings{RngSeed: &seed}

	for _, name := range strategies {
		t.Run(name, func(t *testing.T) {
			input := []*models.Participant{
				participant(1, 1200),
				participant(2, 1500),
				participant(3, 900),
				participant(4, 1100),
				participant(5, 1300),
			}
			s, err := NewStrategy(name)
			require.NoError(t, err)

			seeded, err := s.AssignSeeds(context.Background(), input, opts)
			require.NoError(t, err)
			require.Len(t, seeded, len(input))

			seen := make(map[int]bool)
			for _, p := range seeded {
				assert.False(t, seen[p.Seed], "seed %d assigned twice", p.Seed)
				assert.GreaterOrEqual(t, p.Seed, 1)
				assert.LessOrEqual(t, p.Seed, len(input))
				seen[p.Seed] = true
			}

			for _, p := range input {
				assert.Zero(t, p.Seed, "input participant %d was mutated", p.ID)
			}
		})
	}
}

func TestAssignSeedsInsufficientParticipants(t *testing.T) {
	for _, name := range []string{StrategyRandom, StrategyRanked, StrategySkillBalanced} {
		t.Run(name, func(t *testing.T) {
			s, err := NewStrategy(name)
			require.NoError(t, err)

			_, err = s.AssignSeeds(context.Background(), []*models.Participant{participant(1, 1000)}, models.SeedingSettings{})
			assert.ErrorIs(t, err, ErrInsufficientParticipants)

			_, err = s.AssignSeeds(context.Background(), nil, models.SeedingSettings{})
			assert.ErrorIs(t, err, ErrInsufficientParticipants)
		})
	}
}

func TestRandomStrategyDeterministicWithSeed(t *testing.T) {
	input := []*models.Participant{
		participant(1, 1000), participant(2, 1000), participant(3, 1000),
		participant(4, 1000), participant(5, 1000), participant(6, 1000),
	}
	seed := int64(7)
	opts := models.SeedingSettings{RngSeed: &seed}
	s := &RandomStrategy{}

	first, err := s.AssignSeeds(context.Background(), input, opts)
	require.NoError(t, err)
	second, err := s.AssignSeeds(context.Background(), input, opts)
	require.NoError(t, err)

	assert.Equal(t, idsOf(first), idsOf(second))
}

func TestManualStrategy(t *testing.T) {
	p1 := participant(1, 1000)
	p1.Seed = 3
	p2 := participant(2, 1000)
	p2.Seed = 1
	p3 := participant(3, 1000) // unseeded, sorts last
	p4 := participant(4, 1000)
	p4.Seed = 2

	s := &ManualStrategy{}
	seeded, err := s.AssignSeeds(context.Background(), []*models.Participant{p1, p2, p3, p4}, models.SeedingSettings{})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4, 1, 3}, idsOf(seeded))
	assert.Equal(t, []int{1, 2, 3, 4}, seedsOf(seeded))
}

func TestRankedStrategy(t *testing.T) {
	seeded, err := (&RankedStrategy{}).AssignSeeds(context.Background(), []*models.Participant{
		participant(1, 900),
		participant(2, 1500),
		participant(3, 1200),
	}, models.SeedingSettings{})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 1}, idsOf(seeded))
}

func TestRankedStrategyStableOnTies(t *testing.T) {
	seeded, err := (&RankedStrategy{}).AssignSeeds(context.Background(), []*models.Participant{
		participant(10, 1200),
		participant(20, 1200),
		participant(30, 1200),
	}, models.SeedingSettings{})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20, 30}, idsOf(seeded))
}

func TestEffectiveRating(t *testing.T) {
	hot := participant(1, 1000)
	hot.Stats = &models.PerformanceStats{RecentWinRate: 0.9}
	cold := participant(2, 1000)
	cold.Stats = &models.PerformanceStats{RecentWinRate: 0.1}
	noStats := participant(3, 1000)

	// (0.9-0.5)*200 = +80 bonus, weighted 0.8: 0.8*1080 + 0.2*1000 = 1064
	assert.InDelta(t, 1064, EffectiveRating(hot, 0.8, 0.2), 0.001)
	// (0.1-0.5)*200 = -80: 0.8*920 + 0.2*1000 = 936
	assert.InDelta(t, 936, EffectiveRating(cold, 0.8, 0.2), 0.001)
	// neutral recent win rate means no bonus at all
	assert.InDelta(t, 1000, EffectiveRating(noStats, 0.8, 0.2), 0.001)
}

func TestRecentPerformanceStrategyPrefersHotStreak(t *testing.T) {
	steady := participant(1, 1210)
	hot := participant(2, 1200)
	hot.Stats = &models.PerformanceStats{RecentWinRate: 0.9}

	seeded, err := (&RecentPerformanceStrategy{}).AssignSeeds(context.Background(),
		[]*models.Participant{steady, hot}, models.SeedingSettings{})
	require.NoError(t, err)

	// hot's recency bonus outweighs steady's 10-point rating edge
	assert.Equal(t, 2, seeded[0].ID)
	assert.Equal(t, 1, seeded[0].Seed)
}

func TestRecentPerformanceStrategyWeightOverrides(t *testing.T) {
	steady := participant(1, 1210)
	hot := participant(2, 1200)
	hot.Stats = &models.PerformanceStats{RecentWinRate: 0.9}

	// all weight on the base rating reverses the outcome
	recent, base := 0.0, 1.0
	seeded, err := (&RecentPerformanceStrategy{}).AssignSeeds(context.Background(),
		[]*models.Participant{steady, hot},
		models.SeedingSettings{RecentWeight: &recent, BaseWeight: &base})
	require.NoError(t, err)

	assert.Equal(t, 1, seeded[0].ID)
}

func TestSkillBalancedStrategyInterleaves(t *testing.T) {
	input := []*models.Participant{
		participant(1, 1600),
		participant(2, 1500),
		participant(3, 1400),
		participant(4, 1300),
	}

	seeded, err := (&SkillBalancedStrategy{}).AssignSeeds(context.Background(), input, models.SeedingSettings{})
	require.NoError(t, err)

	// best-first order [1 2 3 4] interleaved across halves: 1, 3, 2, 4
	assert.Equal(t, []int{1, 3, 2, 4}, idsOf(seeded))
	assert.Equal(t, []int{1, 2, 3, 4}, seedsOf(seeded))
}

func TestSkillBalancedStrategyOddCount(t *testing.T) {
	input := []*models.Participant{
		participant(1, 1500),
		participant(2, 1400),
		participant(3, 1300),
		participant(4, 1200),
		participant(5, 1100),
	}

	seeded, err := (&SkillBalancedStrategy{}).AssignSeeds(context.Background(), input, models.SeedingSettings{})
	require.NoError(t, err)

	// top half [1 2 3], bottom half [4 5]: 1, 4, 2, 5, 3
	assert.Equal(t, []int{1, 4, 2, 5, 3}, idsOf(seeded))
}

func TestSkillBalancedKeyUsesLifetimeWinRate(t *testing.T) {
	grinder := participant(1, 1200)
	grinder.Stats = &models.PerformanceStats{WinRate: 70, RecentWinRate: 0.5}
	slumper := participant(2, 1220)
	slumper.Stats = &models.PerformanceStats{WinRate: 40, RecentWinRate: 0.5}

	// 70% lifetime win rate adds +40, 40% subtracts 20: grinder overtakes
	assert.Greater(t, skillBalancedKey(grinder, 0.7, 0.3), skillBalancedKey(slumper, 0.7, 0.3))
}

func TestRatingVolatility(t *testing.T) {
	stable := participant(1, 1200)
	stable.Stats = &models.PerformanceStats{RecentRatings: []float64{1200, 1200, 1200}}
	swingy := participant(2, 1200)
	swingy.Stats = &models.PerformanceStats{RecentRatings: []float64{1100, 1300, 1100, 1300}}

	assert.Zero(t, ratingVolatility(stable))
	assert.InDelta(t, 100, ratingVolatility(swingy), 0.001)
	assert.Zero(t, ratingVolatility(participant(3, 1200)))
}

func TestEntertainmentValue(t *testing.T) {
	flashy := participant(1, 1400)
	flashy.Stats = &models.PerformanceStats{KDARatio: 4, ComebackRate: 0.2}

	// (1400-1000)/10 + 4*5 + 0.2*25 = 40 + 20 + 5
	assert.InDelta(t, 65, entertainmentValue(flashy), 0.001)
	// ratings below the baseline contribute nothing
	assert.Zero(t, entertainmentValue(participant(2, 800)))
}

func TestAIOptimizedStrategyPenalizesVolatility(t *testing.T) {
	steady := participant(1, 1200)
	steady.Stats = &models.PerformanceStats{RecentRatings: []float64{1200, 1200, 1200, 1200}}
	volatile := participant(2, 1200)
	volatile.Stats = &models.PerformanceStats{RecentRatings: []float64{900, 1500, 900, 1500}}

	seeded, err := (&AIOptimizedStrategy{}).AssignSeeds(context.Background(),
		[]*models.Participant{volatile, steady}, models.SeedingSettings{})
	require.NoError(t, err)

	assert.Equal(t, 1, seeded[0].ID)
}
