package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
)

func row(judgeID, criteriaID, categoryID uint, categoryName string, pct, value float64) ScoreRow {
	return ScoreRow{
		JudgeID:      judgeID,
		JudgeName:    "judge",
		CandidateID:  1,
		CriteriaID:   criteriaID,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Percentage:   pct,
		Value:        value,
	}
}

func TestJudgeFinalsFlatWeighted(t *testing.T) {
	// criteria 60%/40% scored 90/80 → 90×0.6 + 80×0.4 = 86.00
	rows := []ScoreRow{
		row(1, 10, 100, "Interview", 60, 90),
		row(1, 11, 100, "Interview", 40, 80),
	}
	finals := JudgeFinals(rows, Weighting{Mode: constants.ModeFlatWeighted})
	require.Len(t, finals, 1)
	assert.InDelta(t, 86.00, finals[0].Final, 1e-9)
}

func TestJudgeFinalsEqualCategoryAverage(t *testing.T) {
	// X: 60%/40% scored 90/80 → 86; Y: 100% scored 70 → 70; final (86+70)/2
	rows := []ScoreRow{
		row(1, 10, 100, "X", 60, 90),
		row(1, 11, 100, "X", 40, 80),
		row(1, 20, 200, "Y", 100, 70),
	}
	finals := JudgeFinals(rows, Weighting{Mode: constants.ModeEqualCategoryAverage})
	require.Len(t, finals, 1)
	assert.InDelta(t, 78.00, finals[0].Final, 1e-9)

	require.Len(t, finals[0].CategoryScores, 2)
	assert.InDelta(t, 86.00, finals[0].CategoryScores[0].Score, 1e-9)
	assert.InDelta(t, 70.00, finals[0].CategoryScores[1].Score, 1e-9)
}

func TestJudgeFinalsNamedCategoryWeights(t *testing.T) {
	w := Weighting{
		Mode: constants.ModeNamedCategoryWeights,
		CategoryWeights: map[string]float64{
			"Catwalk":     30,
			"Casual Wear": 20,
		},
	}
	rows := []ScoreRow{
		row(1, 10, 100, "Catwalk", 100, 80),
		row(1, 20, 200, "Casual Wear", 100, 90),
	}
	finals := JudgeFinals(rows, w)
	require.Len(t, finals, 1)
	assert.InDelta(t, 80*0.30+90*0.20, finals[0].Final, 1e-9)
}

func TestNamedCategoryWeightsUnknownNameWeighsZero(t *testing.T) {
	w := Weighting{
		Mode:            constants.ModeNamedCategoryWeights,
		CategoryWeights: map[string]float64{"Catwalk": 30},
	}
	rows := []ScoreRow{
		row(1, 10, 100, "Catwalk", 100, 80),
		row(1, 20, 200, "Renamed Category", 100, 95),
	}
	finals := JudgeFinals(rows, w)
	require.Len(t, finals, 1)
	assert.InDelta(t, 24.00, finals[0].Final, 1e-9)
}

func TestJudgeFinalsFixedCategoryWeight(t *testing.T) {
	w := Weighting{Mode: constants.ModeFixedCategoryWeight, FixedWeight: 30}
	rows := []ScoreRow{
		row(1, 10, 100, "Production Number", 100, 80),
		row(1, 20, 200, "Talent", 100, 90),
	}
	finals := JudgeFinals(rows, w)
	require.Len(t, finals, 1)
	assert.InDelta(t, 80*0.30+90*0.30, finals[0].Final, 1e-9)
}

func TestJudgeFinalsAveragesDuplicateCriteriaRows(t *testing.T) {
	rows := []ScoreRow{
		row(1, 10, 100, "X", 100, 90),
		row(1, 10, 100, "X", 100, 70),
	}
	finals := JudgeFinals(rows, Weighting{Mode: constants.ModeEqualCategoryAverage})
	require.Len(t, finals, 1)
	assert.InDelta(t, 80.00, finals[0].Final, 1e-9)
}

func TestRepresentativeAveragesAtCriteriaGrain(t *testing.T) {
	// Judge 1 scores both criteria, judge 2 scores only the 60% one. The
	// representative averages each criteria across judges first, so it is
	// not the mean of the two judge finals.
	rows := []ScoreRow{
		row(1, 10, 100, "X", 60, 90),
		row(1, 11, 100, "X", 40, 80),
		row(2, 10, 100, "X", 60, 70),
	}
	w := Weighting{Mode: constants.ModeEqualCategoryAverage}

	rep, cats := Representative(rows, w)
	require.NotNil(t, rep)
	// C1 avg 80 × 0.6 + C2 avg 80 × 0.4 = 80
	assert.InDelta(t, 80.00, *rep, 1e-9)
	require.Len(t, cats, 1)

	finals := JudgeFinals(rows, w)
	require.Len(t, finals, 2)
	meanOfFinals := (finals[0].Final + finals[1].Final) / 2
	assert.Greater(t, math.Abs(meanOfFinals-*rep), 1e-9)
}

func TestRepresentativeNilWithoutScores(t *testing.T) {
	for _, mode := range constants.AllWeightingModes {
		rep, cats := Representative(nil, Weighting{Mode: mode})
		assert.Nil(t, rep, mode)
		assert.Nil(t, cats, mode)
	}
}

func TestRepresentativeIsIdempotent(t *testing.T) {
	rows := []ScoreRow{
		row(2, 20, 200, "Y", 100, 70),
		row(1, 10, 100, "X", 60, 90),
		row(1, 11, 100, "X", 40, 80),
	}
	w := Weighting{Mode: constants.ModeEqualCategoryAverage}
	first, _ := Representative(rows, w)
	second, _ := Representative(rows, w)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestJudgesFullyScored(t *testing.T) {
	rows := []ScoreRow{
		row(1, 10, 100, "X", 50, 90),
		row(1, 11, 100, "X", 50, 85),
		row(2, 10, 100, "X", 50, 70),
	}
	scored := JudgesFullyScored(rows, 2)
	assert.Equal(t, []uint{1}, scored)

	assert.Empty(t, JudgesFullyScored(rows, 0))
	assert.Empty(t, JudgesFullyScored(nil, 2))
}

func TestStatusTransitions(t *testing.T) {
	// 2 assigned judges, 3 required criteria
	assert.Equal(t, constants.StatusNotGraded, StatusFor(0, 2)) // nobody, or judge 1 scored 2 of 3
	assert.Equal(t, constants.StatusPending, StatusFor(1, 2))   // judge 1 scored all 3
	assert.Equal(t, constants.StatusGraded, StatusFor(2, 2))    // both complete

	// zero assigned judges can never be GRADED
	assert.Equal(t, constants.StatusNotGraded, StatusFor(0, 0))
}
