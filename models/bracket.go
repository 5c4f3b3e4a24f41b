package models

import "fmt"

type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "SingleElimination"
	FormatDoubleElimination BracketFormat = "DoubleElimination"
	FormatRoundRobin        BracketFormat = "RoundRobin"
)

// Round is an ordered run of matches plus a display name computed from
// the distance to the final.
type Round struct {
	Number  int      `json:"number"`
	Name    string   `json:"name"`
	Matches []*Match `json:"matches"`
}

// Bracket is the full elimination structure of a tournament. Rounds holds
// the winner bracket; LoserRounds and GrandFinal are only populated for
// double elimination.
type Bracket struct {
	TournamentID int           `json:"tournament_id"`
	Format       BracketFormat `json:"format"`
	Size         int           `json:"size"` // smallest power of two >= participant count

	Rounds      []*Round `json:"rounds"`
	LoserRounds []*Round `json:"loser_rounds,omitempty"`
	GrandFinal  *Match   `json:"grand_final,omitempty"`

	// ResetPossible marks that the grand final may need a second, decisive
	// match if the loser-bracket finalist takes game one. The bracket does
	// not auto-expand; interpreting the flag is the caller's business.
	ResetPossible bool `json:"reset_possible,omitempty"`
}

// AllMatches returns every match of the bracket flattened into a single
// slice, winner rounds first, in (round, order) order. Persistence callers
// store this as the match-row representation.
func (b *Bracket) AllMatches() []*Match {
	out := make([]*Match, 0, 2*b.Size)
	for _, r := range b.Rounds {
		out = append(out, r.Matches...)
	}
	for _, r := range b.LoserRounds {
		out = append(out, r.Matches...)
	}
	if b.GrandFinal != nil {
		out = append(out, b.GrandFinal)
	}
	return out
}

// FindMatch locates a match by UID across all rounds. Returns nil when absent.
func (b *Bracket) FindMatch(uid string) *Match {
	for _, m := range b.AllMatches() {
		if m.UID == uid {
			return m
		}
	}
	return nil
}

// WinnerRoundName names a winner-bracket round by its distance from the
// final: "Finals", "Semifinals", "Quarterfinals", else "Round of K" where
// K is the number of slots entering the round.
func WinnerRoundName(roundsFromFinal, matchesInRound int) string {
	switch roundsFromFinal {
	case 0:
		return "Finals"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round of %d", matchesInRound*2)
	}
}

// LoserRoundName names a loser-bracket round.
func LoserRoundName(number int) string {
	return fmt.Sprintf("Losers Round %d", number)
}
