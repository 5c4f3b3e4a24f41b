package models

import "time"

type MatchStatus string

const (
	// MatchScheduled is the state of a match whose participant slots are
	// still being fed by earlier rounds.
	MatchScheduled  MatchStatus = "scheduled"
	MatchPending    MatchStatus = "pending"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchForfeit    MatchStatus = "forfeit"
)

// BracketSide partitions matches in a double elimination bracket.
// Single elimination and round robin matches are always on SideWinner.
type BracketSide string

const (
	SideWinner     BracketSide = "winner"
	SideLoser      BracketSide = "loser"
	SideGrandFinal BracketSide = "grand_final"
)

// Score is the structured score payload of a completed match.
type Score struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// Match references participants by id only; display data is resolved by
// lookup against the participant list, never embedded here.
type Match struct {
	UID          string      `json:"uid"`
	Round        int         `json:"round"`
	OrderInRound int         `json:"order_in_round"`
	Side         BracketSide `json:"side"`

	Participant1ID *int `json:"participant1_id,omitempty"`
	Participant2ID *int `json:"participant2_id,omitempty"`
	WinnerID       *int `json:"winner_id,omitempty"`

	Status MatchStatus `json:"status"`
	Score  *Score      `json:"score,omitempty"`

	IsBye       bool       `json:"is_bye,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasParticipant reports whether the given id occupies one of the two slots.
func (m *Match) HasParticipant(id int) bool {
	if m.Participant1ID != nil && *m.Participant1ID == id {
		return true
	}
	if m.Participant2ID != nil && *m.Participant2ID == id {
		return true
	}
	return false
}

// Opponent returns the id of the other slot occupant, if any.
func (m *Match) Opponent(id int) (int, bool) {
	if m.Participant1ID != nil && *m.Participant1ID == id && m.Participant2ID != nil {
		return *m.Participant2ID, true
	}
	if m.Participant2ID != nil && *m.Participant2ID == id && m.Participant1ID != nil {
		return *m.Participant1ID, true
	}
	return 0, false
}

// SlotsFilled reports whether both participant slots are populated.
func (m *Match) SlotsFilled() bool {
	return m.Participant1ID != nil && m.Participant2ID != nil
}

func (m *Match) IsDraw() bool {
	return m.Status == MatchCompleted && m.WinnerID == nil && m.Score != nil && m.Score.P1 == m.Score.P2
}

// IsValidMatchStatusTransition enumerates the allowed status moves.
// Completed and forfeited matches are terminal.
func IsValidMatchStatusTransition(current, next MatchStatus) bool {
	if current == next {
		return true
	}
	allowed := map[MatchStatus][]MatchStatus{
		MatchScheduled:  {MatchPending},
		MatchPending:    {MatchInProgress, MatchCompleted, MatchForfeit},
		MatchInProgress: {MatchCompleted, MatchForfeit},
		MatchCompleted:  {},
		MatchForfeit:    {},
	}
	for _, s := range allowed[current] {
		if next == s {
			return true
		}
	}
	return false
}
