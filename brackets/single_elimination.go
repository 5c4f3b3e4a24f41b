package brackets

import (
	"context"
	"math"

	"github.com/Sciphr/tourney-engine/models"
)

// node tracks what feeds a bracket slot while rounds are being built:
// a known participant (direct entry or resolved bye), the winner of a
// pending match, or a dead bye hole.
type node struct {
	participantID *int
	fromMatch     bool
}

func (n *node) isHole() bool { return n != nil && n.participantID == nil && !n.fromMatch }

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string { return "SingleElimination" }

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	if err := validateParticipants(params.Participants); err != nil {
		return nil, err
	}

	rounds, size := buildEliminationRounds(params.Participants)

	return &models.Bracket{
		TournamentID: params.TournamentID,
		Format:       models.FormatSingleElimination,
		Size:         size,
		Rounds:       rounds,
	}, nil
}

// buildEliminationRounds constructs the full winner-side round structure.
// The seeded list is padded with byes up to the bracket size; round 1
// pairs slot 2i with 2i+1. Bye matches resolve immediately and their
// winners cascade into later rounds at build time, so a participant whose
// opponents are all byes keeps advancing until a real opponent appears.
func buildEliminationRounds(participants []*models.Participant) ([]*models.Round, int) {
	ordered := bySeedOrder(participants)
	n := len(ordered)

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(numRounds)

	current := make([]*node, size)
	for i, p := range ordered {
		id := p.ID
		current[i] = &node{participantID: &id}
	}
	for i := n; i < size; i++ {
		current[i] = &node{}
	}

	rounds := make([]*models.Round, 0, numRounds)
	for r := 1; r <= numRounds; r++ {
		matchCount := len(current) / 2
		round := &models.Round{
			Number: r,
			Name:   models.WinnerRoundName(numRounds-r, matchCount),
		}
		next := make([]*node, 0, matchCount)

		for i := 0; i < matchCount; i++ {
			n1, n2 := current[2*i], current[2*i+1]
			m := &models.Match{
				UID:          winnerMatchUID(r, i+1),
				Round:        r,
				OrderInRound: i + 1,
				Side:         models.SideWinner,
			}

			switch {
			case n1.participantID != nil && n2.participantID != nil:
				m.Participant1ID = n1.participantID
				m.Participant2ID = n2.participantID
				m.Status = models.MatchPending
				next = append(next, &node{fromMatch: true})

			case n1.participantID != nil && n2.isHole():
				resolveBye(m, n1.participantID)
				next = append(next, &node{participantID: n1.participantID})

			case n2.participantID != nil && n1.isHole():
				resolveBye(m, n2.participantID)
				next = append(next, &node{participantID: n2.participantID})

			case n1.isHole() && n2.isHole():
				// Two byes met; the match exists to keep round shapes
				// uniform but nobody ever plays it.
				m.Status = models.MatchCompleted
				m.IsBye = true
				next = append(next, &node{})

			default:
				// At least one side is the winner of an earlier match.
				if n1.participantID != nil {
					m.Participant1ID = n1.participantID
				}
				if n2.participantID != nil {
					m.Participant2ID = n2.participantID
				}
				m.Status = models.MatchScheduled
				if n1.isHole() || n2.isHole() {
					// A source winner will walk over the dead slot; the
					// advancer completes the match on arrival.
					m.IsBye = true
				}
				next = append(next, &node{fromMatch: true})
			}

			round.Matches = append(round.Matches, m)
		}

		rounds = append(rounds, round)
		current = next
	}

	return rounds, size
}

func resolveBye(m *models.Match, participantID *int) {
	m.Participant1ID = participantID
	m.WinnerID = participantID
	m.Status = models.MatchCompleted
	m.IsBye = true
}
