package brackets

import (
	"context"
	"fmt"
	"time"

	"github.com/Sciphr/tourney-engine/models"
)

// Advancer applies a match result to a bracket and propagates the winner
// into the next round. Calls for the same bracket must be serialized by
// the caller; the advancer itself holds no shared state.
type Advancer struct {
	clock func() time.Time
}

type AdvancerOption func(*Advancer)

// WithClock overrides the completion timestamp source.
func WithClock(clock func() time.Time) AdvancerOption {
	return func(a *Advancer) { a.clock = clock }
}

func NewAdvancer(opts ...AdvancerOption) *Advancer {
	a := &Advancer{clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advance marks the identified match completed with the given winner and
// feeds the winner into its next match. Re-applying the same
// (match, winner) pair is a no-op that still reports success: the bracket
// comes out identical and no second propagation happens.
func (a *Advancer) Advance(ctx context.Context, bracket *models.Bracket, matchUID string, winnerID int) ([]models.Event, error) {
	m := bracket.FindMatch(matchUID)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchUID)
	}

	if m.Status == models.MatchCompleted || m.Status == models.MatchForfeit {
		if m.WinnerID != nil && *m.WinnerID == winnerID {
			return []models.Event{models.NewMatchCompletedEvent(m.UID, m.WinnerID)}, nil
		}
		return nil, fmt.Errorf("%w: match %s already resolved", ErrInvalidWinner, matchUID)
	}

	if !m.SlotsFilled() {
		return nil, fmt.Errorf("%w: match %s", ErrMatchNotReady, matchUID)
	}
	if !m.HasParticipant(winnerID) {
		return nil, fmt.Errorf("%w: participant %d in match %s", ErrInvalidWinner, winnerID, matchUID)
	}

	prog, err := NewProgression(bracket)
	if err != nil {
		return nil, err
	}

	now := a.clock()
	m.Status = models.MatchCompleted
	m.WinnerID = &winnerID
	m.CompletedAt = &now

	events := []models.Event{models.NewMatchCompletedEvent(m.UID, m.WinnerID)}
	a.propagateWinner(bracket, prog, m, winnerID, now, &events)

	if loserID, ok := m.Opponent(winnerID); ok {
		a.dropLoser(bracket, prog, m, loserID)
	}

	return events, nil
}

// Forfeit resolves a match by forfeit: the non-forfeiting slot occupant
// advances exactly as a regular winner would.
func (a *Advancer) Forfeit(ctx context.Context, bracket *models.Bracket, matchUID string, forfeitingID int) ([]models.Event, error) {
	m := bracket.FindMatch(matchUID)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchUID)
	}
	if m.Status == models.MatchCompleted || m.Status == models.MatchForfeit {
		return nil, fmt.Errorf("%w: match %s already resolved", ErrInvalidWinner, matchUID)
	}
	if !m.HasParticipant(forfeitingID) {
		return nil, fmt.Errorf("%w: participant %d in match %s", ErrInvalidWinner, forfeitingID, matchUID)
	}

	prog, err := NewProgression(bracket)
	if err != nil {
		return nil, err
	}

	now := a.clock()
	m.Status = models.MatchForfeit
	m.CompletedAt = &now

	var events []models.Event
	if winnerID, ok := m.Opponent(forfeitingID); ok {
		m.WinnerID = &winnerID
		events = append(events, models.NewMatchCompletedEvent(m.UID, m.WinnerID))
		a.propagateWinner(bracket, prog, m, winnerID, now, &events)
	}
	return events, nil
}

// propagateWinner places the winner into the next match. A target marked
// as a bye (its other feed is a dead slot) completes immediately and the
// winner keeps walking until a real opponent is possible.
func (a *Advancer) propagateWinner(bracket *models.Bracket, prog *Progression, m *models.Match, winnerID int, now time.Time, events *[]models.Event) {
	nextUID, slot, ok := prog.NextMatch(m.UID)
	if !ok {
		return
	}
	next := bracket.FindMatch(nextUID)
	if next == nil || next.Status == models.MatchCompleted {
		return
	}

	setSlot(next, slot, winnerID)

	if next.IsBye {
		next.Status = models.MatchCompleted
		next.WinnerID = &winnerID
		next.CompletedAt = &now
		*events = append(*events, models.NewMatchCompletedEvent(next.UID, next.WinnerID))
		a.propagateWinner(bracket, prog, next, winnerID, now, events)
		return
	}

	if next.SlotsFilled() && next.Status == models.MatchScheduled {
		next.Status = models.MatchPending
	}
}

// dropLoser descends a winner-bracket loser into the loser bracket where
// the progression graph defines a drop edge.
func (a *Advancer) dropLoser(bracket *models.Bracket, prog *Progression, m *models.Match, loserID int) {
	dropUID, slot, ok := prog.DropTarget(m.UID)
	if !ok {
		return
	}
	drop := bracket.FindMatch(dropUID)
	if drop == nil || drop.Status == models.MatchCompleted {
		return
	}
	setSlot(drop, slot, loserID)
	if drop.SlotsFilled() && drop.Status == models.MatchScheduled {
		drop.Status = models.MatchPending
	}
}

func setSlot(m *models.Match, slot int, participantID int) {
	id := participantID
	if slot == 1 {
		m.Participant1ID = &id
	} else {
		m.Participant2ID = &id
	}
}
