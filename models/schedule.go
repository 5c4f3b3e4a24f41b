package models

// ScheduleRound holds the matchups active in one round-robin round. No
// participant appears twice within a round.
type ScheduleRound struct {
	Number  int      `json:"number"`
	Matches []*Match `json:"matches"`
}

// Group is one partition of a grouped round robin. Participants are
// referenced by id; AverageRating is computed at creation for display and
// balance verification.
type Group struct {
	Number         int     `json:"number"`
	Name           string  `json:"name"`
	ParticipantIDs []int   `json:"participant_ids"`
	AverageRating  float64 `json:"average_rating"`
}

// GroupSchedule is the independent single round robin of one group.
type GroupSchedule struct {
	Group  *Group           `json:"group"`
	Rounds []*ScheduleRound `json:"rounds"`
}

// RoundRobinSchedule is the fixture plan of a round-robin stage. Plain
// (ungrouped) schedules populate Rounds; grouped schedules populate Groups.
type RoundRobinSchedule struct {
	TournamentID int              `json:"tournament_id"`
	Passes       int              `json:"passes"`
	Rounds       []*ScheduleRound `json:"rounds,omitempty"`
	Groups       []*GroupSchedule `json:"groups,omitempty"`
}

// AllMatches flattens the schedule into match rows for persistence.
func (s *RoundRobinSchedule) AllMatches() []*Match {
	var out []*Match
	for _, r := range s.Rounds {
		out = append(out, r.Matches...)
	}
	for _, g := range s.Groups {
		for _, r := range g.Rounds {
			out = append(out, r.Matches...)
		}
	}
	return out
}
