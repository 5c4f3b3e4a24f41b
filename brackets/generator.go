package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Sciphr/tourney-engine/models"
)

type GenerateBracketParams struct {
	TournamentID int
	Participants []*models.Participant
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error)

	GetName() string
}

func validateParticipants(participants []*models.Participant) error {
	n := len(participants)
	if n < 2 {
		return fmt.Errorf("%w: found %d", ErrInsufficientParticipants, n)
	}
	if n > MaxParticipants {
		return fmt.Errorf("%w: %d participants exceeds the maximum of %d", ErrInvalidBracketSize, n, MaxParticipants)
	}
	return nil
}

// bySeedOrder returns participants sorted by assigned seed. Entries without
// a seed keep their relative input order behind the seeded ones.
func bySeedOrder(participants []*models.Participant) []*models.Participant {
	ordered := make([]*models.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := ordered[i].Seed, ordered[j].Seed
		if si <= 0 {
			return false
		}
		if sj <= 0 {
			return true
		}
		return si < sj
	})
	return ordered
}

func winnerMatchUID(round, order int) string { return fmt.Sprintf("R%dM%d", round, order) }
func loserMatchUID(round, order int) string  { return fmt.Sprintf("LR%dM%d", round, order) }

const grandFinalUID = "GF"
