package service

import (
	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
)

/* =======================================================================
   Aggregation engine

   Turns flat (judge, candidate, criteria, value) rows into weighted
   finals. Every competition flows through this one engine; the only
   thing that varies is the Weighting attached to the competition.

   All derived scores are *float64: nil means "no score yet", which is
   different from a scored zero.
======================================================================= */

// Weighting selects how category scores combine into a final.
type Weighting struct {
	Mode string
	// name → weight, consulted by NAMED_CATEGORY_WEIGHTS. A category absent
	// from the map weighs zero, matching the legacy behavior.
	CategoryWeights map[string]float64
	// consulted by FIXED_CATEGORY_WEIGHT. The applied weights may sum below
	// 100; the remainder is reserved for off-system manual scoring.
	FixedWeight float64
}

// ScoreRow is one live score joined with its criteria and category.
type ScoreRow struct {
	ScoreID      uint
	JudgeID      uint
	JudgeName    string
	CandidateID  uint
	CriteriaID   uint
	CriteriaName string
	CategoryID   uint
	CategoryName string
	Percentage   float64
	Value        float64
}

// CategoryScore is one category's weighted criteria sum before the
// cross-category combine.
type CategoryScore struct {
	CategoryID uint
	Name       string
	Score      float64
}

// JudgeFinal is one judge's aggregate for one candidate.
type JudgeFinal struct {
	JudgeID        uint
	JudgeName      string
	CategoryScores []CategoryScore
	Final          float64
}

// criteriaCell accumulates the raw values one criteria received so
// duplicates (legacy data) average before any weight applies.
type criteriaCell struct {
	categoryID   uint
	categoryName string
	percentage   float64
	sum          float64
	n            int
}

func (c *criteriaCell) mean() float64 { return c.sum / float64(c.n) }

// weightedCategorySums folds criteria cells into per-category weighted sums:
// each criteria contributes mean × percentage/100 to its category. Order
// follows first appearance so output is deterministic.
func weightedCategorySums(cells map[uint]*criteriaCell, order []uint) []CategoryScore {
	catIndex := map[uint]int{}
	var out []CategoryScore
	for _, criteriaID := range order {
		cell := cells[criteriaID]
		idx, ok := catIndex[cell.categoryID]
		if !ok {
			idx = len(out)
			catIndex[cell.categoryID] = idx
			out = append(out, CategoryScore{CategoryID: cell.categoryID, Name: cell.categoryName})
		}
		out[idx].Score += cell.mean() * cell.percentage / 100
	}
	return out
}

// combine applies the weighting mode across category scores. Callers must
// not pass an empty slice; "no scores" is represented upstream as nil.
func combine(categories []CategoryScore, w Weighting) float64 {
	total := 0.0
	switch w.Mode {
	case constants.ModeFlatWeighted:
		// one flat pot: the weighted criteria sums simply add up
		for _, cat := range categories {
			total += cat.Score
		}
	case constants.ModeNamedCategoryWeights:
		for _, cat := range categories {
			total += cat.Score * w.CategoryWeights[cat.Name] / 100
		}
	case constants.ModeFixedCategoryWeight:
		for _, cat := range categories {
			total += cat.Score * w.FixedWeight / 100
		}
	default: // EQUAL_CATEGORY_AVERAGE
		for _, cat := range categories {
			total += cat.Score
		}
		total /= float64(len(categories))
	}
	return total
}

// JudgeFinals computes each judge's per-category scores and final for one
// candidate's rows. Judges appear in first-seen order.
func JudgeFinals(rows []ScoreRow, w Weighting) []JudgeFinal {
	type judgeAcc struct {
		name  string
		cells map[uint]*criteriaCell
		order []uint
	}
	accs := map[uint]*judgeAcc{}
	var judgeOrder []uint

	for _, row := range rows {
		acc, ok := accs[row.JudgeID]
		if !ok {
			acc = &judgeAcc{name: row.JudgeName, cells: map[uint]*criteriaCell{}}
			accs[row.JudgeID] = acc
			judgeOrder = append(judgeOrder, row.JudgeID)
		}
		cell, ok := acc.cells[row.CriteriaID]
		if !ok {
			cell = &criteriaCell{
				categoryID:   row.CategoryID,
				categoryName: row.CategoryName,
				percentage:   row.Percentage,
			}
			acc.cells[row.CriteriaID] = cell
			acc.order = append(acc.order, row.CriteriaID)
		}
		cell.sum += row.Value
		cell.n++
	}

	out := make([]JudgeFinal, 0, len(judgeOrder))
	for _, judgeID := range judgeOrder {
		acc := accs[judgeID]
		cats := weightedCategorySums(acc.cells, acc.order)
		out = append(out, JudgeFinal{
			JudgeID:        judgeID,
			JudgeName:      acc.name,
			CategoryScores: cats,
			Final:          combine(cats, w),
		})
	}
	return out
}

// Representative computes the competition-wide score for one candidate.
// Averaging happens at the criteria grain: each criteria's value is the mean
// of every judge's raw score on it, and only then do weights apply. This is
// deliberately not the mean of the judges' finals.
//
// Returns nil when the candidate has no live rows.
func Representative(rows []ScoreRow, w Weighting) (*float64, []CategoryScore) {
	if len(rows) == 0 {
		return nil, nil
	}

	cells := map[uint]*criteriaCell{}
	var order []uint
	for _, row := range rows {
		cell, ok := cells[row.CriteriaID]
		if !ok {
			cell = &criteriaCell{
				categoryID:   row.CategoryID,
				categoryName: row.CategoryName,
				percentage:   row.Percentage,
			}
			cells[row.CriteriaID] = cell
			order = append(order, row.CriteriaID)
		}
		cell.sum += row.Value
		cell.n++
	}

	cats := weightedCategorySums(cells, order)
	total := combine(cats, w)
	return &total, cats
}

/* =======================================================================
   Completion status
======================================================================= */

// JudgesFullyScored returns the judges whose distinct scored criteria count
// equals totalCriteria, in first-seen order.
func JudgesFullyScored(rows []ScoreRow, totalCriteria int) []uint {
	counts := map[uint]map[uint]struct{}{}
	var order []uint
	for _, row := range rows {
		set, ok := counts[row.JudgeID]
		if !ok {
			set = map[uint]struct{}{}
			counts[row.JudgeID] = set
			order = append(order, row.JudgeID)
		}
		set[row.CriteriaID] = struct{}{}
	}

	out := []uint{}
	for _, judgeID := range order {
		if totalCriteria > 0 && len(counts[judgeID]) == totalCriteria {
			out = append(out, judgeID)
		}
	}
	return out
}

// StatusFor grades a candidate from how many assigned judges fully scored
// them. Zero assigned judges is never GRADED.
func StatusFor(scoredCount, totalJudges int) string {
	switch {
	case totalJudges == 0 || scoredCount == 0:
		return constants.StatusNotGraded
	case scoredCount < totalJudges:
		return constants.StatusPending
	default:
		return constants.StatusGraded
	}
}
