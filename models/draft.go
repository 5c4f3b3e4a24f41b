package models

import (
	"time"

	"github.com/google/uuid"
)

type PhaseType string

const (
	PhasePick PhaseType = "pick"
	PhaseBan  PhaseType = "ban"
)

type DraftSide string

const (
	SideBlue DraftSide = "blue"
	SideRed  DraftSide = "red"
)

// DraftPhase is one step of a pick/ban sequence. The phase list of a match
// is fixed before the draft starts and is never reordered afterwards.
// Order is the phase identity: strictly increasing, 1-based.
type DraftPhase struct {
	Order            int       `json:"order"`
	Type             PhaseType `json:"type"`
	Side             DraftSide `json:"side"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	TurnBased        bool      `json:"turn_based"`
	IsOptional       bool      `json:"is_optional,omitempty"`
}

// TimeLimit returns the phase countdown as a duration.
func (p *DraftPhase) TimeLimit() time.Duration {
	return time.Duration(p.TimeLimitSeconds) * time.Second
}

// Selection records the outcome of a draft phase. A timed-out or skipped
// phase closes with no Selection at all; a phase never has more than one.
type Selection struct {
	ID         uuid.UUID `json:"id"`
	PhaseOrder int       `json:"phase_order"`
	Side       DraftSide `json:"side"`
	Type       PhaseType `json:"type"`
	Value      string    `json:"value"` // opaque item identifier, e.g. a champion name
	At         time.Time `json:"at"`
}

// DraftState is the coarse state of a draft state machine.
type DraftState string

const (
	DraftNotStarted DraftState = "not_started"
	DraftInProgress DraftState = "in_progress"
	DraftComplete   DraftState = "complete"
)
