package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	scoreDTO "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/dto"
)

// score both fixture criteria with one value so the judge final equals it
func scoreFlat(t *testing.T, f *fixture, judgeID, candidateID uint, value float64) {
	t.Helper()
	svc := NewScoringService(f.DB)
	_, err := svc.SubmitScores(&scoreDTO.SubmitScoresRequest{
		JudgeID:     judgeID,
		CandidateID: candidateID,
		Scores: []scoreDTO.ScoreEntry{
			{CriteriaID: f.C1.ID, Score: value},
			{CriteriaID: f.C2.ID, Score: value},
		},
	})
	require.NoError(t, err)
}

func TestStatusGridTransitions(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	reports := NewReportService(f.DB)
	scoring := NewScoringService(f.DB)

	grid, err := reports.StatusGrid(f.Competition.ID)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, constants.StatusNotGraded, grid[0].Status)
	assert.Equal(t, 2, grid[0].TotalJudges)
	assert.Nil(t, grid[0].AverageScore)
	assert.Nil(t, grid[0].PerCategoryScore["Interview"])
	assert.Empty(t, grid[0].JudgesWhoScored)

	// judge 1 scores only one of two criteria: still NOT_GRADED
	_, err = scoring.SubmitScores(&scoreDTO.SubmitScoresRequest{
		JudgeID:     f.Judge1.ID,
		CandidateID: f.Candidate.ID,
		Scores:      []scoreDTO.ScoreEntry{{CriteriaID: f.C1.ID, Score: 90}},
	})
	require.NoError(t, err)

	grid, err = reports.StatusGrid(f.Competition.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusNotGraded, grid[0].Status)
	assert.Equal(t, 0, grid[0].ScoredCount)

	// complete judge 1's sheet: PENDING
	_, err = scoring.UpdateScores(f.Candidate.ID, &scoreDTO.UpdateScoresRequest{
		JudgeID: f.Judge1.ID,
		Scores: []scoreDTO.ScoreEntry{
			{CriteriaID: f.C1.ID, Score: 90},
			{CriteriaID: f.C2.ID, Score: 80},
		},
	})
	require.NoError(t, err)

	grid, err = reports.StatusGrid(f.Competition.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, grid[0].Status)
	assert.Equal(t, []uint{f.Judge1.ID}, grid[0].JudgesWhoScored)
	require.NotNil(t, grid[0].AverageScore)
	assert.InDelta(t, 86.00, *grid[0].AverageScore, 1e-9)
	require.NotNil(t, grid[0].PerCategoryScore["Interview"])
	assert.InDelta(t, 86.00, *grid[0].PerCategoryScore["Interview"], 1e-9)

	// judge 2 completes: GRADED
	scoreFlat(t, f, f.Judge2.ID, f.Candidate.ID, 80)

	grid, err = reports.StatusGrid(f.Competition.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusGraded, grid[0].Status)
	assert.Equal(t, 2, grid[0].ScoredCount)
}

func TestStatusGridZeroAssignedJudges(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	require.NoError(t, f.DB.Model(&f.Judge1).Update("deleted", true).Error)
	require.NoError(t, f.DB.Model(&f.Judge2).Update("deleted", true).Error)

	grid, err := NewReportService(f.DB).StatusGrid(f.Competition.ID)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, 0, grid[0].TotalJudges)
	assert.Equal(t, constants.StatusNotGraded, grid[0].Status)
}

func TestStatusGridUnknownCompetition(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	_, err := NewReportService(f.DB).StatusGrid(f.Competition.ID + 999)
	requireAppError(t, err, 404, "Competition not found")
}

func TestJudgeView(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	scoreFlat(t, f, f.Judge1.ID, f.Candidate.ID, 90)
	scoreFlat(t, f, f.Judge2.ID, f.Candidate.ID, 80)

	categories, candidates, err := NewReportService(f.DB).JudgeView(f.Competition.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Criteria, 2)

	require.Len(t, candidates, 1)
	view := candidates[0]
	require.Len(t, view.Scores, 4)
	require.NotNil(t, view.AverageScore)
	assert.InDelta(t, 85.00, *view.AverageScore, 1e-9)

	for _, s := range view.Scores {
		require.NotNil(t, s.AverageScore)
		switch s.JudgeID {
		case f.Judge1.ID:
			assert.InDelta(t, 90.00, *s.AverageScore, 1e-9)
		case f.Judge2.ID:
			assert.InDelta(t, 80.00, *s.AverageScore, 1e-9)
		}
	}
}

func TestPrintProjection(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	b := f.addCandidate(t, 2, "Bea Cruz", constants.GenderFemale, constants.LevelCollege)
	c := f.addCandidate(t, 3, "Carlo Diaz", constants.GenderMale, constants.LevelCollege)
	f.addCandidate(t, 4, "Dana Lim", constants.GenderFemale, constants.LevelCollege) // never scored
	sh := f.addCandidate(t, 1, "Eli Tan", constants.GenderMale, constants.LevelSeniorHigh)

	scoreFlat(t, f, f.Judge1.ID, f.Candidate.ID, 92.5)
	scoreFlat(t, f, f.Judge1.ID, b.ID, 88)
	scoreFlat(t, f, f.Judge1.ID, c.ID, 92.5)
	scoreFlat(t, f, f.Judge1.ID, sh.ID, 99)

	ranked, err := NewReportService(f.DB).PrintProjection(f.Competition.ID, constants.LevelCollege)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// stable tie: candidate #1 before candidate #3 at 92.5, then 88
	assert.Equal(t, f.Candidate.ID, ranked[0].ID)
	assert.Equal(t, "Champion", ranked[0].Title)
	assert.Equal(t, c.ID, ranked[1].ID)
	assert.Equal(t, "1st Runner Up", ranked[1].Title)
	assert.Equal(t, b.ID, ranked[2].ID)
	assert.Equal(t, "2nd Runner Up", ranked[2].Title)
	assert.Equal(t, 3, ranked[2].Rank)

	senior, err := NewReportService(f.DB).PrintProjection(f.Competition.ID, constants.LevelSeniorHigh)
	require.NoError(t, err)
	require.Len(t, senior, 1)
	assert.Equal(t, sh.ID, senior[0].ID)
	assert.InDelta(t, 99.00, senior[0].Score, 1e-9)
}

func TestExportRows(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	male := f.addCandidate(t, 2, "Carlo Diaz", constants.GenderMale, constants.LevelCollege)

	scoreFlat(t, f, f.Judge1.ID, f.Candidate.ID, 90)
	scoreFlat(t, f, f.Judge2.ID, f.Candidate.ID, 80)
	scoreFlat(t, f, f.Judge1.ID, male.ID, 85)

	svc := NewReportService(f.DB)

	dataset, err := svc.ExportRows(&scoreDTO.ExportRequest{CompetitionID: f.Competition.ID})
	require.NoError(t, err)
	require.Len(t, dataset.Rows, 3) // candidate1×2 judges + candidate2×1
	require.Len(t, dataset.Categories, 1)

	first := dataset.Rows[0]
	assert.Equal(t, 1, first.CandidateNumber)
	assert.Len(t, first.CriteriaScores, 2)
	require.NotNil(t, first.CategoryScores["Interview"])
	assert.InDelta(t, 90.00, *first.CategoryScores["Interview"], 1e-9)
	require.NotNil(t, first.FinalScore)
	assert.InDelta(t, 90.00, *first.FinalScore, 1e-9)

	// gender filter
	dataset, err = svc.ExportRows(&scoreDTO.ExportRequest{
		CompetitionID: f.Competition.ID,
		Filters:       scoreDTO.ExportFilters{Gender: constants.GenderMale},
	})
	require.NoError(t, err)
	require.Len(t, dataset.Rows, 1)
	assert.Equal(t, "Carlo Diaz", dataset.Rows[0].CandidateName)

	// candidate-number filter
	dataset, err = svc.ExportRows(&scoreDTO.ExportRequest{
		CompetitionID: f.Competition.ID,
		Filters:       scoreDTO.ExportFilters{CandidateNumber: 1},
	})
	require.NoError(t, err)
	require.Len(t, dataset.Rows, 2)
}
