package service

import (
	"sort"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
)

// Rankable is a candidate with its representative score, ready to order.
type Rankable struct {
	CandidateID     uint
	CandidateNumber int
	Name            string
	Gender          string
	Level           string
	Score           *float64
}

// Ranked is a Rankable that survived the cut, with its place attached.
type Ranked struct {
	Rankable
	Rank  int
	Title string
}

// Rank drops unscored candidates, orders the rest by score descending, and
// assigns places. Ties keep their input order, so callers control the
// tiebreak by how they load candidates. Only the podium gets a title.
func Rank(in []Rankable) []Ranked {
	scored := make([]Rankable, 0, len(in))
	for _, r := range in {
		if r.Score != nil {
			scored = append(scored, r)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Score > *scored[j].Score
	})

	out := make([]Ranked, len(scored))
	for i, r := range scored {
		out[i] = Ranked{Rankable: r, Rank: i + 1}
		if i < len(constants.RankTitles) {
			out[i].Title = constants.RankTitles[i]
		}
	}
	return out
}
