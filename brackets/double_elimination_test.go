package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sciphr/tourney-engine/models"
)

func TestDoubleEliminationValidation(t *testing.T) {
	g := NewDoubleEliminationGenerator()

	_, err := g.GenerateBracket(context.Background(), GenerateBracketParams{Participants: seededField(1)})
	assert.ErrorIs(t, err, ErrInsufficientParticipants)

	_, err = g.GenerateBracket(context.Background(), GenerateBracketParams{Participants: seededField(MaxParticipants + 1)})
	assert.ErrorIs(t, err, ErrInvalidBracketSize)
}

func TestLoserRoundSizes(t *testing.T) {
	tests := []struct {
		participants int
		want         []int
	}{
		{4, []int{1, 1}},
		{8, []int{2, 1}},
		{16, []int{4, 2, 1}},
		{32, []int{8, 4, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d participants", tt.participants), func(t *testing.T) {
			assert.Equal(t, tt.want, loserRoundSizes(tt.participants))
		})
	}
}

func TestDoubleEliminationStructure(t *testing.T) {
	b := generate(t, NewDoubleEliminationGenerator(), 8)

	assert.Equal(t, models.FormatDoubleElimination, b.Format)
	assert.Equal(t, 8, b.Size)
	assert.True(t, b.ResetPossible)

	// winner side mirrors the single elimination layout
	require.Len(t, b.Rounds, 3)
	assert.Len(t, b.Rounds[0].Matches, 4)
	assert.Len(t, b.Rounds[1].Matches, 2)
	assert.Len(t, b.Rounds[2].Matches, 1)

	require.Len(t, b.LoserRounds, 2)
	assert.Len(t, b.LoserRounds[0].Matches, 2)
	assert.Len(t, b.LoserRounds[1].Matches, 1)
	assert.Equal(t, "Losers Round 1", b.LoserRounds[0].Name)

	for _, r := range b.LoserRounds {
		for _, m := range r.Matches {
			assert.Equal(t, models.SideLoser, m.Side)
			assert.Equal(t, models.MatchScheduled, m.Status)
			assert.Nil(t, m.Participant1ID)
			assert.Nil(t, m.Participant2ID)
		}
	}

	gf := b.GrandFinal
	require.NotNil(t, gf)
	assert.Equal(t, "GF", gf.UID)
	assert.Equal(t, models.SideGrandFinal, gf.Side)
	assert.Equal(t, models.MatchScheduled, gf.Status)
}

func TestDoubleEliminationFourParticipants(t *testing.T) {
	b := generate(t, NewDoubleEliminationGenerator(), 4)

	require.Len(t, b.Rounds, 2)
	require.Len(t, b.LoserRounds, 2)
	assert.Len(t, b.LoserRounds[0].Matches, 1)
	assert.Len(t, b.LoserRounds[1].Matches, 1)
	require.NotNil(t, b.GrandFinal)

	// 2 WB rounds + 2 LB matches + grand final
	assert.Len(t, b.AllMatches(), 6)
}

func TestDoubleEliminationProgression(t *testing.T) {
	b := generate(t, NewDoubleEliminationGenerator(), 8)
	prog, err := NewProgression(b)
	require.NoError(t, err)

	// winner final feeds grand final slot 1, loser final slot 2
	next, slot, ok := prog.NextMatch("R3M1")
	require.True(t, ok)
	assert.Equal(t, "GF", next)
	assert.Equal(t, 1, slot)

	next, slot, ok = prog.NextMatch("LR2M1")
	require.True(t, ok)
	assert.Equal(t, "GF", next)
	assert.Equal(t, 2, slot)

	// adjacent opening-round losers drop into the same LB match
	drop, slot, ok := prog.DropTarget("R1M1")
	require.True(t, ok)
	assert.Equal(t, "LR1M1", drop)
	assert.Equal(t, 1, slot)

	drop, slot, ok = prog.DropTarget("R1M2")
	require.True(t, ok)
	assert.Equal(t, "LR1M1", drop)
	assert.Equal(t, 2, slot)

	drop, _, ok = prog.DropTarget("R1M4")
	require.True(t, ok)
	assert.Equal(t, "LR1M2", drop)

	// only opening-round matches define drops
	_, _, ok = prog.DropTarget("R2M1")
	assert.False(t, ok)

	// nothing follows the grand final
	_, _, ok = prog.NextMatch("GF")
	assert.False(t, ok)
}
