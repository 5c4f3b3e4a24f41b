// Package standings turns completed round-robin matches into a ranked
// table. The calculation is a pure function of match history: identical
// inputs always produce identical standings and positions.
package standings

import (
	"sort"

	"github.com/Sciphr/tourney-engine/models"
)

// Points awarded per result.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute builds standings from scratch. Matches that are not completed
// are skipped; participants without a single completed match still get a
// row. Sort order: points, goal difference, goals for, head-to-head points
// against the tied opponent, then ascending participant id so equal
// records resolve the same way every time.
func (c *Calculator) Compute(matches []*models.Match, participants []*models.Participant) []*models.Standing {
	rows := make(map[int]*models.Standing, len(participants))
	order := make([]int, 0, len(participants))

	row := func(id int) *models.Standing {
		if s, ok := rows[id]; ok {
			return s
		}
		s := &models.Standing{
			ParticipantID: id,
			HeadToHead:    make(map[int]*models.HeadToHead),
		}
		rows[id] = s
		order = append(order, id)
		return s
	}

	for _, p := range participants {
		row(p.ID)
	}

	for _, m := range matches {
		if m.Status != models.MatchCompleted || !m.SlotsFilled() {
			continue
		}
		p1, p2 := *m.Participant1ID, *m.Participant2ID

		var g1, g2 int
		if m.Score != nil {
			g1, g2 = m.Score.P1, m.Score.P2
		}

		switch {
		case m.WinnerID != nil && *m.WinnerID == p1:
			applyResult(row(p1), row(p2), g1, g2, models.OutcomeWin)
			applyResult(row(p2), row(p1), g2, g1, models.OutcomeLoss)
		case m.WinnerID != nil && *m.WinnerID == p2:
			applyResult(row(p2), row(p1), g2, g1, models.OutcomeWin)
			applyResult(row(p1), row(p2), g1, g2, models.OutcomeLoss)
		case m.WinnerID == nil && g1 == g2:
			applyResult(row(p1), row(p2), g1, g2, models.OutcomeDraw)
			applyResult(row(p2), row(p1), g2, g1, models.OutcomeDraw)
		}
	}

	standings := make([]*models.Standing, 0, len(order))
	for _, id := range order {
		standings = append(standings, rows[id])
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		ah, bh := headToHeadPoints(a, b.ParticipantID), headToHeadPoints(b, a.ParticipantID)
		if ah != bh {
			return ah > bh
		}
		return a.ParticipantID < b.ParticipantID
	})

	for i, s := range standings {
		s.Position = i + 1
	}
	return standings
}

func applyResult(s, opponent *models.Standing, goalsFor, goalsAgainst int, outcome models.MatchOutcome) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst

	h2h, ok := s.HeadToHead[opponent.ParticipantID]
	if !ok {
		h2h = &models.HeadToHead{}
		s.HeadToHead[opponent.ParticipantID] = h2h
	}

	switch outcome {
	case models.OutcomeWin:
		s.Wins++
		s.Points += PointsWin
		h2h.Wins++
	case models.OutcomeDraw:
		s.Draws++
		s.Points += PointsDraw
		h2h.Draws++
	case models.OutcomeLoss:
		s.Losses++
		h2h.Losses++
	}

	s.Form = append(s.Form, outcome)
	if len(s.Form) > models.FormSize {
		s.Form = s.Form[len(s.Form)-models.FormSize:]
	}
}

func headToHeadPoints(s *models.Standing, opponentID int) int {
	if h, ok := s.HeadToHead[opponentID]; ok {
		return h.Points()
	}
	return 0
}
