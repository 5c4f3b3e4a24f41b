package models

// FormSize bounds the recent-form list kept per standing.
const FormSize = 5

type MatchOutcome string

const (
	OutcomeWin  MatchOutcome = "W"
	OutcomeDraw MatchOutcome = "D"
	OutcomeLoss MatchOutcome = "L"
)

// HeadToHead is the sub-record of a participant against one specific opponent.
type HeadToHead struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Points scores the sub-record with the usual win=3/draw=1 weighting.
func (h *HeadToHead) Points() int {
	return h.Wins*3 + h.Draws
}

// Standing is one row of a round-robin table. Standings are recomputed
// from scratch on every request; they are a pure function of match history.
type Standing struct {
	ParticipantID  int `json:"participant_id"`
	Position       int `json:"position"` // 1-based, assigned after sorting
	Played         int `json:"played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	Points         int `json:"points"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`

	Form       []MatchOutcome      `json:"form,omitempty"` // last FormSize results, oldest first
	HeadToHead map[int]*HeadToHead `json:"head_to_head,omitempty"`
}
