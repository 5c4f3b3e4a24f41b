package brackets

import (
	"context"

	"github.com/Sciphr/tourney-engine/models"
)

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() BracketGenerator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) GetName() string { return "DoubleElimination" }

func (g *DoubleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	if err := validateParticipants(params.Participants); err != nil {
		return nil, err
	}

	winnerRounds, size := buildEliminationRounds(params.Participants)
	loserRounds := buildLoserRounds(len(params.Participants))

	grandFinal := &models.Match{
		UID:    grandFinalUID,
		Round:  1,
		Side:   models.SideGrandFinal,
		Status: models.MatchScheduled,
	}

	return &models.Bracket{
		TournamentID:  params.TournamentID,
		Format:        models.FormatDoubleElimination,
		Size:          size,
		Rounds:        winnerRounds,
		LoserRounds:   loserRounds,
		GrandFinal:    grandFinal,
		ResetPossible: true,
	}, nil
}

// loserRoundSizes derives the per-round match counts of the loser bracket
// from the participant count: the first round holds N/4 matches, the
// middle rounds shrink geometrically, and the final loser round is always
// a single match. Four participants are the special case of two one-match
// rounds.
func loserRoundSizes(n int) []int {
	if n == 4 {
		return []int{1, 1}
	}
	sizes := make([]int, 0, 4)
	m := n / 4
	for m > 1 {
		sizes = append(sizes, m)
		m /= 2
	}
	sizes = append(sizes, 1)
	return sizes
}

// buildLoserRounds creates the loser-bracket skeleton. Slots start empty;
// they fill as winner-bracket losers drop down and loser-bracket winners
// advance.
func buildLoserRounds(participantCount int) []*models.Round {
	sizes := loserRoundSizes(participantCount)
	rounds := make([]*models.Round, 0, len(sizes))
	for r, count := range sizes {
		round := &models.Round{
			Number: r + 1,
			Name:   models.LoserRoundName(r + 1),
		}
		for i := 0; i < count; i++ {
			round.Matches = append(round.Matches, &models.Match{
				UID:          loserMatchUID(r+1, i+1),
				Round:        r + 1,
				OrderInRound: i + 1,
				Side:         models.SideLoser,
				Status:       models.MatchScheduled,
			})
		}
		rounds = append(rounds, round)
	}
	return rounds
}
