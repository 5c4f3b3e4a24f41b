package brackets

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Sciphr/tourney-engine/models"
	"github.com/Sciphr/tourney-engine/seeding"
)

// Group creation sorts by effective rating with the skill-balanced blend.
const (
	groupRecentWeight = 0.7
	groupBaseWeight   = 0.3
)

// CreateGroups partitions participants into groupCount groups using the
// requested strategy:
//
//   - skill_balanced: rating order, snake-drafted (0..K-1 then K-1..0) so
//     adjacent skill tiers spread across groups instead of clustering
//   - seeded: rating order, dealt round-robin style (i mod K) so top seeds
//     land in different groups in strict order
//   - random: shuffled, dealt round-robin style
//
// Every group must end up with at least two participants.
func CreateGroups(ctx context.Context, participants []*models.Participant, groupCount int, strategy models.GroupingStrategy, rngSeed *int64) ([]*models.Group, error) {
	n := len(participants)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrInsufficientParticipants, n)
	}
	if groupCount < 2 || n/groupCount < 2 {
		return nil, fmt.Errorf("%w: %d participants cannot fill %d groups of at least 2", ErrInvalidBracketSize, n, groupCount)
	}

	ordered := make([]*models.Participant, n)
	copy(ordered, participants)

	switch strategy {
	case models.GroupingRandom:
		seed := time.Now().UnixNano()
		if rngSeed != nil {
			seed = *rngSeed
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(n, func(i, j int) { ordered[i], ordered[j] = ordered[j], ordered[i] })
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return seeding.EffectiveRating(ordered[i], groupRecentWeight, groupBaseWeight) >
				seeding.EffectiveRating(ordered[j], groupRecentWeight, groupBaseWeight)
		})
	}

	groups := make([]*models.Group, groupCount)
	for i := range groups {
		groups[i] = &models.Group{
			Number: i + 1,
			Name:   fmt.Sprintf("Group %c", rune('A'+i)),
		}
	}

	ratingSums := make([]float64, groupCount)
	for i, p := range ordered {
		var gi int
		if strategy == models.GroupingSkillBalanced {
			gi = snakeIndex(i, groupCount)
		} else {
			gi = i % groupCount
		}
		groups[gi].ParticipantIDs = append(groups[gi].ParticipantIDs, p.ID)
		ratingSums[gi] += p.Rating
	}

	for i, g := range groups {
		g.AverageRating = ratingSums[i] / float64(len(g.ParticipantIDs))
	}
	return groups, nil
}

// snakeIndex maps position i onto group indices running 0..K-1 then
// K-1..0, repeating.
func snakeIndex(i, groupCount int) int {
	cycle := 2 * groupCount
	pos := i % cycle
	if pos < groupCount {
		return pos
	}
	return cycle - 1 - pos
}
