package brackets

import "errors"

// Error kinds shared across generators, the scheduler, and the advancer.
// Callers match with errors.Is; wrapped messages carry the specifics.
var (
	ErrInsufficientParticipants = errors.New("not enough participants to generate a bracket (minimum 2 required)")
	ErrInvalidBracketSize       = errors.New("participant or group count outside supported bounds")
	ErrMatchNotFound            = errors.New("match not found in bracket")
	ErrInvalidWinner            = errors.New("winner is not a participant of the match")
	ErrMatchNotReady            = errors.New("match slots are not fully populated yet")
)

// MaxParticipants caps bracket generation. Larger fields belong to a
// multi-stage format, not one bracket.
const MaxParticipants = 128
