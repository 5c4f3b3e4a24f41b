package draft

import "errors"

var (
	ErrInvalidPhaseConfig   = errors.New("draft phase configuration is invalid")
	ErrDraftNotStarted      = errors.New("draft has not been started")
	ErrDraftAlreadyStarted  = errors.New("draft has already been started")
	ErrDraftAlreadyComplete = errors.New("draft is already complete")
	ErrInvalidPhaseIndex    = errors.New("phase is not the one awaiting a selection")
	ErrNotYourTurn          = errors.New("not this side's turn to act")
	ErrItemAlreadyExcluded  = errors.New("item was already picked or banned earlier in the draft")
	ErrInvalidSelection     = errors.New("selection value is not available in this game")
	ErrPhaseNotOptional     = errors.New("phase is not optional and cannot be skipped")
)
