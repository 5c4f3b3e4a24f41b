// Package draft drives the timed, turn-based pick/ban sequence a match
// runs before it can be scored. The engine is the authoritative state
// machine: it records when each phase opened and derives "still open"
// from its own clock, never from a caller-supplied countdown.
package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sciphr/tourney-engine/models"
)

// Engine walks a fixed phase list from NotStarted through one
// AwaitingSelection state per phase to Complete. A submitted selection, an
// explicit skip of an optional phase, and timer expiry compete to close
// the current phase; exactly one wins, and late duplicates are rejected.
type Engine struct {
	mu sync.Mutex

	id        uuid.UUID
	matchUID  string
	phases    []models.DraftPhase
	validator SelectionValidator
	clock     func() time.Time

	state      models.DraftState
	current    int // index into phases while in progress
	openedAt   time.Time
	selections []*models.Selection
	excluded   map[string]struct{}
}

type Option func(*Engine)

// WithClock overrides the engine's time source. Tests drive timeouts with it.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithValidator overrides the validator resolved from the game type.
func WithValidator(v SelectionValidator) Option {
	return func(e *Engine) { e.validator = v }
}

// NewEngine validates the phase configuration and builds an engine for
// one match. Phase orders must run 1..P with positive time limits.
func NewEngine(matchUID string, cfg models.DraftSettings, opts ...Option) (*Engine, error) {
	if len(cfg.Phases) == 0 {
		return nil, fmt.Errorf("%w: no phases configured", ErrInvalidPhaseConfig)
	}
	for i, p := range cfg.Phases {
		if p.Order != i+1 {
			return nil, fmt.Errorf("%w: phase %d has order %d", ErrInvalidPhaseConfig, i, p.Order)
		}
		if p.TimeLimitSeconds <= 0 {
			return nil, fmt.Errorf("%w: phase %d has no time limit", ErrInvalidPhaseConfig, p.Order)
		}
		if p.Type != models.PhasePick && p.Type != models.PhaseBan {
			return nil, fmt.Errorf("%w: phase %d has type %q", ErrInvalidPhaseConfig, p.Order, p.Type)
		}
		if p.Side != models.SideBlue && p.Side != models.SideRed {
			return nil, fmt.Errorf("%w: phase %d has side %q", ErrInvalidPhaseConfig, p.Order, p.Side)
		}
	}

	phases := make([]models.DraftPhase, len(cfg.Phases))
	copy(phases, cfg.Phases)

	e := &Engine{
		id:        uuid.New(),
		matchUID:  matchUID,
		phases:    phases,
		validator: ValidatorFor(cfg.GameType),
		clock:     time.Now,
		state:     models.DraftNotStarted,
		excluded:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) ID() uuid.UUID    { return e.id }
func (e *Engine) MatchUID() string { return e.matchUID }

// Start opens the first phase and records its deadline anchor.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.DraftNotStarted {
		return ErrDraftAlreadyStarted
	}
	e.state = models.DraftInProgress
	e.current = 0
	e.openedAt = e.clock()
	return nil
}

// Submit records a selection for the identified phase. The phase order is
// part of the request so a trigger that lost the race to a timeout or an
// earlier submission is rejected instead of silently reapplied. Expired
// phases are auto-advanced first; their events are returned alongside any
// error.
func (e *Engine) Submit(side models.DraftSide, phaseOrder int, value string) (*models.Selection, []models.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == models.DraftNotStarted {
		return nil, nil, ErrDraftNotStarted
	}

	now := e.clock()
	events := e.expireOverdueLocked(now)

	if e.state == models.DraftComplete {
		return nil, events, ErrDraftAlreadyComplete
	}

	phase := e.phases[e.current]
	if phaseOrder != phase.Order {
		return nil, events, fmt.Errorf("%w: got %d, awaiting %d", ErrInvalidPhaseIndex, phaseOrder, phase.Order)
	}
	if phase.TurnBased && side != phase.Side {
		return nil, events, fmt.Errorf("%w: phase %d belongs to %s", ErrNotYourTurn, phase.Order, phase.Side)
	}
	if err := e.validator.Validate(value, e.excluded); err != nil {
		return nil, events, err
	}

	sel := &models.Selection{
		ID:         uuid.New(),
		PhaseOrder: phase.Order,
		Side:       side,
		Type:       phase.Type,
		Value:      value,
		At:         now,
	}
	events = append(events, e.advanceLocked(sel, now)...)
	return sel, events, nil
}

// Skip closes an optional phase early with no selection. It behaves like
// a timeout, except the owning side asked for it.
func (e *Engine) Skip(side models.DraftSide, phaseOrder int) ([]models.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == models.DraftNotStarted {
		return nil, ErrDraftNotStarted
	}

	now := e.clock()
	events := e.expireOverdueLocked(now)

	if e.state == models.DraftComplete {
		return events, ErrDraftAlreadyComplete
	}

	phase := e.phases[e.current]
	if phaseOrder != phase.Order {
		return events, fmt.Errorf("%w: got %d, awaiting %d", ErrInvalidPhaseIndex, phaseOrder, phase.Order)
	}
	if !phase.IsOptional {
		return events, fmt.Errorf("%w: phase %d", ErrPhaseNotOptional, phase.Order)
	}
	if phase.TurnBased && side != phase.Side {
		return events, fmt.Errorf("%w: phase %d belongs to %s", ErrNotYourTurn, phase.Order, phase.Side)
	}

	events = append(events, e.advanceLocked(nil, now)...)
	return events, nil
}

// ExpireOverdue advances past every phase whose deadline has lapsed.
// External timer drivers call this periodically; Submit and Skip also run
// it, so a stalled driver only delays the bookkeeping, never the outcome.
func (e *Engine) ExpireOverdue() []models.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.DraftInProgress {
		return nil
	}
	return e.expireOverdueLocked(e.clock())
}

func (e *Engine) expireOverdueLocked(now time.Time) []models.Event {
	var events []models.Event
	for e.state == models.DraftInProgress {
		deadline := e.openedAt.Add(e.phases[e.current].TimeLimit())
		if now.Before(deadline) {
			break
		}
		// The next phase opens at the lapsed deadline, not at the time we
		// happened to notice it, so cascaded timeouts stay exact.
		events = append(events, e.advanceLocked(nil, deadline)...)
	}
	return events
}

// advanceLocked closes the current phase, recording the selection if one
// was made, and opens the next or completes the draft.
func (e *Engine) advanceLocked(sel *models.Selection, at time.Time) []models.Event {
	phase := e.phases[e.current]
	if sel != nil {
		e.selections = append(e.selections, sel)
		e.excluded[sel.Value] = struct{}{}
	}

	events := []models.Event{models.NewPhaseAdvancedEvent(e.id, e.matchUID, phase.Order, sel)}

	e.current++
	if e.current >= len(e.phases) {
		e.state = models.DraftComplete
		events = append(events, models.NewDraftCompletedEvent(e.id, e.matchUID))
	} else {
		e.openedAt = at
	}
	return events
}

// State reports the coarse machine state.
func (e *Engine) State() models.DraftState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsComplete lets the score-gating layer above check whether the match
// may move on.
func (e *Engine) IsComplete() bool {
	return e.State() == models.DraftComplete
}

// CurrentPhase returns the phase awaiting a selection, if any.
func (e *Engine) CurrentPhase() (models.DraftPhase, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != models.DraftInProgress {
		return models.DraftPhase{}, false
	}
	return e.phases[e.current], true
}

// Deadline returns the authoritative closing time of the current phase.
func (e *Engine) Deadline() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != models.DraftInProgress {
		return time.Time{}, false
	}
	return e.openedAt.Add(e.phases[e.current].TimeLimit()), true
}

// Remaining derives how long the current phase stays open. Display only;
// submissions are judged against the deadline, not this value.
func (e *Engine) Remaining() (time.Duration, bool) {
	deadline, ok := e.Deadline()
	if !ok {
		return 0, false
	}
	remaining := deadline.Sub(e.clock())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Selections returns the recorded selections in phase order.
func (e *Engine) Selections() []*models.Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.Selection, len(e.selections))
	copy(out, e.selections)
	return out
}
