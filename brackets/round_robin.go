package brackets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Sciphr/tourney-engine/models"
)

// byeSentinel marks the synthetic entry added when the participant count
// is odd. Matches involving it are never emitted.
const byeSentinel = -1

type ScheduleParams struct {
	TournamentID int
	Participants []*models.Participant
	Settings     models.RoundRobinSettings
	RngSeed      *int64 // only consulted by random grouping
}

// RoundRobinScheduler produces round-robin fixture plans with the circle
// method: one entry stays fixed while the rest rotate, one rotation per
// round, so every unordered pair meets exactly once per pass and no
// participant plays twice in a round.
type RoundRobinScheduler struct{}

func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

func (s *RoundRobinScheduler) GetName() string { return "RoundRobin" }

func (s *RoundRobinScheduler) Schedule(ctx context.Context, params ScheduleParams) (*models.RoundRobinSchedule, error) {
	if len(params.Participants) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrInsufficientParticipants, len(params.Participants))
	}

	settings := params.Settings
	if settings.Passes < 1 || settings.Passes > 2 {
		settings.Passes = 1
	}

	if settings.GroupCount > 1 {
		return s.scheduleGrouped(ctx, params, settings)
	}

	ids := participantIDs(bySeedOrder(params.Participants))
	schedule := &models.RoundRobinSchedule{
		TournamentID: params.TournamentID,
		Passes:       settings.Passes,
		Rounds:       circleRounds(ids, settings.Passes, ""),
	}
	return schedule, nil
}

// scheduleGrouped partitions the field into groups and runs an
// independent single round robin per group. Group schedules are
// generated concurrently; each one only touches its own slice.
func (s *RoundRobinScheduler) scheduleGrouped(ctx context.Context, params ScheduleParams, settings models.RoundRobinSettings) (*models.RoundRobinSchedule, error) {
	groups, err := CreateGroups(ctx, params.Participants, settings.GroupCount, settings.GroupingStrategy, params.RngSeed)
	if err != nil {
		return nil, err
	}

	groupSchedules := make([]*models.GroupSchedule, len(groups))
	g, _ := errgroup.WithContext(ctx)
	for i, grp := range groups {
		i, grp := i, grp
		g.Go(func() error {
			groupSchedules[i] = &models.GroupSchedule{
				Group:  grp,
				Rounds: circleRounds(grp.ParticipantIDs, 1, fmt.Sprintf("G%d", grp.Number)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.RoundRobinSchedule{
		TournamentID: params.TournamentID,
		Passes:       1,
		Groups:       groupSchedules,
	}, nil
}

// circleRounds runs the circle method over the given ids. A second pass
// repeats the schedule with home and away swapped.
func circleRounds(ids []int, passes int, uidPrefix string) []*models.ScheduleRound {
	entries := make([]int, len(ids))
	copy(entries, ids)
	if len(entries)%2 != 0 {
		entries = append(entries, byeSentinel)
	}

	n := len(entries)
	numRounds := n - 1
	matchesPerRound := n / 2

	rounds := make([]*models.ScheduleRound, 0, passes*numRounds)
	roundNumber := 0
	for pass := 0; pass < passes; pass++ {
		for r := 0; r < numRounds; r++ {
			roundNumber++
			round := &models.ScheduleRound{Number: roundNumber}
			order := 0
			for mi := 0; mi < matchesPerRound; mi++ {
				a := entries[circleIndex(mi, n, r)]
				b := entries[circleIndex(n-1-mi, n, r)]

				// Balance the share of first-named fixtures, and swap
				// home/away wholesale on the second pass.
				if mi == 0 && r%2 != 0 {
					a, b = b, a
				}
				if pass%2 != 0 {
					a, b = b, a
				}

				if a == byeSentinel || b == byeSentinel {
					continue
				}

				order++
				p1, p2 := a, b
				round.Matches = append(round.Matches, &models.Match{
					UID:            fmt.Sprintf("%sRR%dM%d", uidPrefix, roundNumber, order),
					Round:          roundNumber,
					OrderInRound:   order,
					Side:           models.SideWinner,
					Participant1ID: &p1,
					Participant2ID: &p2,
					Status:         models.MatchPending,
				})
			}
			rounds = append(rounds, round)
		}
	}
	return rounds
}

// circleIndex rotates a slot index for the given round, keeping index 0
// fixed. See https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
func circleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index += length - 1
	index %= length - 1
	return index + 1
}

func participantIDs(participants []*models.Participant) []int {
	ids := make([]int, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}
