package models

// ParticipantStatus represents the lifecycle of a tournament entrant.
// Participants are never deleted mid-tournament, only re-statused.
type ParticipantStatus string

const (
	ParticipantActive       ParticipantStatus = "active"
	ParticipantEliminated   ParticipantStatus = "eliminated"
	ParticipantDisqualified ParticipantStatus = "disqualified"
	ParticipantNoShow       ParticipantStatus = "no_show"
)

// PerformanceStats carries the rating history a seeding strategy may
// consult. All of it is supplied by the caller; the engine never
// fetches match history itself.
type PerformanceStats struct {
	WinRate       float64   `json:"win_rate"`        // lifetime win rate, 0..100
	RecentWinRate float64   `json:"recent_win_rate"` // win rate over the recent window, 0..1
	RecentRatings []float64 `json:"recent_ratings,omitempty"`
	KDARatio      float64   `json:"kda_ratio,omitempty"`
	ComebackRate  float64   `json:"comeback_rate,omitempty"` // 0..1
}

type Participant struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Seed   int               `json:"seed,omitempty"` // 1..N once assigned, 0 while unseeded
	Rating float64           `json:"rating"`
	Status ParticipantStatus `json:"status"`

	Stats *PerformanceStats `json:"stats,omitempty"`
}

// CloneWithSeed returns a copy of the participant with the given seed.
// Seeding never mutates caller-owned records.
func (p *Participant) CloneWithSeed(seed int) *Participant {
	c := *p
	if p.Stats != nil {
		stats := *p.Stats
		c.Stats = &stats
	}
	c.Seed = seed
	return &c
}
