package brackets

import (
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/Sciphr/tourney-engine/models"
)

// slotLink annotates a progression edge with the slot the travelling
// participant lands in and whether the edge carries the loser (a drop into
// the loser bracket) instead of the winner.
type slotLink struct {
	Slot int
	Drop bool
}

// Progression is the directed acyclic graph of a bracket's matches. Winner
// edges encode "winner of A plays in B slot S"; drop edges encode the
// loser-bracket descent in double elimination. The graph never changes
// after construction, so the adjacency map is cached on first use.
type Progression struct {
	g         graph.Graph[string, string]
	adjacency map[string]map[string]graph.Edge[string]
}

// NewProgression builds the progression graph for a bracket. Winner-side
// rounds link match i of round r to match i/2 of round r+1, even indices
// into slot 1 and odd into slot 2. For double elimination the winner final
// feeds the grand final's first slot, the loser final its second, and
// first-round losers drop into the opening loser round.
func NewProgression(b *models.Bracket) (*Progression, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.Acyclic(), graph.PreventCycles())

	for _, m := range b.AllMatches() {
		if err := g.AddVertex(m.UID); err != nil {
			return nil, fmt.Errorf("progression vertex %s: %w", m.UID, err)
		}
	}

	addEdge := func(from, to string, link slotLink) error {
		if err := g.AddEdge(from, to, graph.EdgeData(link)); err != nil {
			return fmt.Errorf("progression edge %s -> %s: %w", from, to, err)
		}
		return nil
	}

	if err := linkHalvingRounds(b.Rounds, addEdge); err != nil {
		return nil, err
	}

	if b.Format == models.FormatDoubleElimination && b.GrandFinal != nil {
		if err := linkHalvingRounds(b.LoserRounds, addEdge); err != nil {
			return nil, err
		}

		finalWB := lastMatch(b.Rounds)
		if finalWB != nil {
			if err := addEdge(finalWB.UID, b.GrandFinal.UID, slotLink{Slot: 1}); err != nil {
				return nil, err
			}
		}
		finalLB := lastMatch(b.LoserRounds)
		if finalLB != nil {
			if err := addEdge(finalLB.UID, b.GrandFinal.UID, slotLink{Slot: 2}); err != nil {
				return nil, err
			}
		}

		if len(b.Rounds) > 0 && len(b.LoserRounds) > 0 {
			firstLB := b.LoserRounds[0].Matches
			for i, m := range b.Rounds[0].Matches {
				target := firstLB[min(i/2, len(firstLB)-1)]
				slot := 1
				if i%2 != 0 {
					slot = 2
				}
				if err := addEdge(m.UID, target.UID, slotLink{Slot: slot, Drop: true}); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Progression{g: g}, nil
}

func linkHalvingRounds(rounds []*models.Round, addEdge func(string, string, slotLink) error) error {
	for r := 0; r < len(rounds)-1; r++ {
		next := rounds[r+1].Matches
		for i, m := range rounds[r].Matches {
			target := next[min(i/2, len(next)-1)]
			slot := 1
			if i%2 != 0 {
				slot = 2
			}
			if err := addEdge(m.UID, target.UID, slotLink{Slot: slot}); err != nil {
				return err
			}
		}
	}
	return nil
}

func lastMatch(rounds []*models.Round) *models.Match {
	if len(rounds) == 0 {
		return nil
	}
	final := rounds[len(rounds)-1].Matches
	if len(final) == 0 {
		return nil
	}
	return final[len(final)-1]
}

func (p *Progression) edges(uid string) map[string]graph.Edge[string] {
	if p.adjacency == nil {
		p.adjacency, _ = p.g.AdjacencyMap()
	}
	return p.adjacency[uid]
}

// NextMatch returns the match and slot the winner of the given match
// advances into, if any.
func (p *Progression) NextMatch(uid string) (string, int, bool) {
	return p.follow(uid, false)
}

// DropTarget returns the loser-bracket match and slot the loser of the
// given match drops into, if any.
func (p *Progression) DropTarget(uid string) (string, int, bool) {
	return p.follow(uid, true)
}

func (p *Progression) follow(uid string, drop bool) (string, int, bool) {
	for target, edge := range p.edges(uid) {
		link, ok := edge.Properties.Data.(slotLink)
		if !ok || link.Drop != drop {
			continue
		}
		return target, link.Slot, true
	}
	return "", 0, false
}
