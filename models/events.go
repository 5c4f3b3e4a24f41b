package models

import "github.com/google/uuid"

// EventType tags engine events. The engine never delivers events itself;
// they are returned to the caller for external dispatch.
type EventType string

const (
	EventMatchCompleted EventType = "MATCH_COMPLETED"
	EventPhaseAdvanced  EventType = "PHASE_ADVANCED"
	EventDraftCompleted EventType = "DRAFT_COMPLETED"
	EventBracketRebuilt EventType = "BRACKET_REBUILT"
)

type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

type MatchCompletedPayload struct {
	MatchUID string `json:"match_uid"`
	WinnerID *int   `json:"winner_id,omitempty"`
}

type PhaseAdvancedPayload struct {
	DraftID    uuid.UUID  `json:"draft_id"`
	MatchUID   string     `json:"match_uid"`
	PhaseOrder int        `json:"phase_order"`
	Selection  *Selection `json:"selection,omitempty"` // nil on timeout or skip
}

type DraftCompletedPayload struct {
	DraftID  uuid.UUID `json:"draft_id"`
	MatchUID string    `json:"match_uid"`
}

type BracketRebuiltPayload struct {
	TournamentID int `json:"tournament_id"`
}

func NewMatchCompletedEvent(matchUID string, winnerID *int) Event {
	return Event{Type: EventMatchCompleted, Payload: MatchCompletedPayload{MatchUID: matchUID, WinnerID: winnerID}}
}

func NewPhaseAdvancedEvent(draftID uuid.UUID, matchUID string, phaseOrder int, sel *Selection) Event {
	return Event{Type: EventPhaseAdvanced, Payload: PhaseAdvancedPayload{
		DraftID:    draftID,
		MatchUID:   matchUID,
		PhaseOrder: phaseOrder,
		Selection:  sel,
	}}
}

func NewDraftCompletedEvent(draftID uuid.UUID, matchUID string) Event {
	return Event{Type: EventDraftCompleted, Payload: DraftCompletedPayload{DraftID: draftID, MatchUID: matchUID}}
}

func NewBracketRebuiltEvent(tournamentID int) Event {
	return Event{Type: EventBracketRebuilt, Payload: BracketRebuiltPayload{TournamentID: tournamentID}}
}
