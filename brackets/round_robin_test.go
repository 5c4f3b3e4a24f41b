package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sciphr/tourney-engine/models"
)

func schedule(t *testing.T, n int, settings models.RoundRobinSettings) *models.RoundRobinSchedule {
	t.Helper()
	s, err := NewRoundRobinScheduler().Schedule(context.Background(), ScheduleParams{
		TournamentID: 1,
		Participants: seededField(n),
		Settings:     settings,
	})
	require.NoError(t, err)
	return s
}

// pairKey normalizes an unordered participant pair.
func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func TestRoundRobinValidation(t *testing.T) {
	s := NewRoundRobinScheduler()
	_, err := s.Schedule(context.Background(), ScheduleParams{Participants: seededField(1)})
	assert.ErrorIs(t, err, ErrInsufficientParticipants)
}

func TestRoundRobinSinglePass(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 6, 7, 8, 11} {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			sched := schedule(t, n, models.RoundRobinSettings{Passes: 1})

			wantRounds := n - 1
			if n%2 != 0 {
				wantRounds = n
			}
			assert.Len(t, sched.Rounds, wantRounds)
			assert.Len(t, sched.AllMatches(), n*(n-1)/2)

			// every unordered pair meets exactly once
			pairs := make(map[[2]int]int)
			for _, m := range sched.AllMatches() {
				pairs[pairKey(*m.Participant1ID, *m.Participant2ID)]++
			}
			for pair, count := range pairs {
				assert.Equal(t, 1, count, "pair %v", pair)
			}
			assert.Len(t, pairs, n*(n-1)/2)

			// nobody plays twice within a round
			for _, round := range sched.Rounds {
				seen := make(map[int]bool)
				for _, m := range round.Matches {
					for _, id := range []int{*m.Participant1ID, *m.Participant2ID} {
						assert.False(t, seen[id], "participant %d twice in round %d", id, round.Number)
						seen[id] = true
					}
				}
			}
		})
	}
}

func TestRoundRobinFourParticipants(t *testing.T) {
	sched := schedule(t, 4, models.RoundRobinSettings{Passes: 1})

	require.Len(t, sched.Rounds, 3)
	for _, round := range sched.Rounds {
		assert.Len(t, round.Matches, 2)
		for _, m := range round.Matches {
			assert.Equal(t, models.MatchPending, m.Status)
			assert.Equal(t, models.SideWinner, m.Side)
		}
	}
}

func TestRoundRobinOddFieldSitsOneOutPerRound(t *testing.T) {
	sched := schedule(t, 5, models.RoundRobinSettings{Passes: 1})

	require.Len(t, sched.Rounds, 5)
	for _, round := range sched.Rounds {
		// 2 matches per round, one participant idle
		assert.Len(t, round.Matches, 2)
	}

	// everyone sits out exactly once
	played := make(map[int]int)
	for _, m := range sched.AllMatches() {
		played[*m.Participant1ID]++
		played[*m.Participant2ID]++
	}
	for id := 1; id <= 5; id++ {
		assert.Equal(t, 4, played[id], "participant %d", id)
	}
}

func TestRoundRobinDoublePass(t *testing.T) {
	sched := schedule(t, 4, models.RoundRobinSettings{Passes: 2})

	assert.Equal(t, 2, sched.Passes)
	assert.Len(t, sched.Rounds, 6)
	assert.Len(t, sched.AllMatches(), 12)

	// each pair meets twice, once per orientation
	oriented := make(map[[2]int]int)
	for _, m := range sched.AllMatches() {
		oriented[[2]int{*m.Participant1ID, *m.Participant2ID}]++
	}
	for pair, count := range oriented {
		assert.Equal(t, 1, count, "oriented pair %v", pair)
		assert.Equal(t, 1, oriented[[2]int{pair[1], pair[0]}], "reverse of %v", pair)
	}
}

func TestRoundRobinPassesClamped(t *testing.T) {
	sched := schedule(t, 4, models.RoundRobinSettings{Passes: 9})
	assert.Equal(t, 1, sched.Passes)
	assert.Len(t, sched.AllMatches(), 6)
}

func TestRoundRobinUIDsUnique(t *testing.T) {
	sched := schedule(t, 7, models.RoundRobinSettings{Passes: 2})

	seen := make(map[string]bool)
	for _, m := range sched.AllMatches() {
		assert.False(t, seen[m.UID], "duplicate uid %s", m.UID)
		seen[m.UID] = true
	}
}

func TestRoundRobinGrouped(t *testing.T) {
	ratings := []float64{100, 90, 80, 70, 60, 50}
	participants := make([]*models.Participant, len(ratings))
	for i, r := range ratings {
		participants[i] = &models.Participant{ID: i + 1, Rating: r, Status: models.ParticipantActive}
	}

	sched, err := NewRoundRobinScheduler().Schedule(context.Background(), ScheduleParams{
		TournamentID: 1,
		Participants: participants,
		Settings: models.RoundRobinSettings{
			Passes:           1,
			GroupCount:       2,
			GroupingStrategy: models.GroupingSkillBalanced,
		},
	})
	require.NoError(t, err)

	require.Len(t, sched.Groups, 2)
	assert.Empty(t, sched.Rounds)

	groupA, groupB := sched.Groups[0], sched.Groups[1]
	assert.Equal(t, "Group A", groupA.Group.Name)
	assert.Equal(t, "Group B", groupB.Group.Name)

	// snake order over ratings [100 90 80 70 60 50]: A gets 1st, 4th, 5th
	assert.Equal(t, []int{1, 4, 5}, groupA.Group.ParticipantIDs)
	assert.Equal(t, []int{2, 3, 6}, groupB.Group.ParticipantIDs)

	// each group of 3 plays a full 3-round robin of its own
	for _, gs := range sched.Groups {
		assert.Len(t, gs.Rounds, 3)
		pairs := make(map[[2]int]int)
		for _, round := range gs.Rounds {
			require.Len(t, round.Matches, 1)
			m := round.Matches[0]
			assert.Contains(t, m.UID, fmt.Sprintf("G%d", gs.Group.Number))
			pairs[pairKey(*m.Participant1ID, *m.Participant2ID)]++
		}
		assert.Len(t, pairs, 3)
	}

	assert.Len(t, sched.AllMatches(), 6)
}

func TestRoundRobinGroupedBadGroupCount(t *testing.T) {
	_, err := NewRoundRobinScheduler().Schedule(context.Background(), ScheduleParams{
		TournamentID: 1,
		Participants: seededField(5),
		Settings:     models.RoundRobinSettings{GroupCount: 3},
	})
	assert.ErrorIs(t, err, ErrInvalidBracketSize)
}
