package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	scoreDTO "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/dto"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

func submitReq(f *fixture, judgeID uint, entries ...scoreDTO.ScoreEntry) *scoreDTO.SubmitScoresRequest {
	return &scoreDTO.SubmitScoresRequest{
		JudgeID:     judgeID,
		CandidateID: f.Candidate.ID,
		Scores:      entries,
	}
}

func requireAppError(t *testing.T, err error, wantCode int, wantMessage string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*helper.AppError)
	require.True(t, ok, "expected *helper.AppError, got %T", err)
	assert.Equal(t, wantCode, appErr.Code)
	assert.Equal(t, wantMessage, appErr.Message)
}

func TestSubmitScores(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	rows, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
		scoreDTO.ScoreEntry{CriteriaID: f.C2.ID, Score: 80},
	))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	live := f.liveScores(t, f.Judge1.ID, f.Candidate.ID)
	require.Len(t, live, 2)
	assert.Equal(t, 90.0, live[0].Score)
	assert.Equal(t, 80.0, live[1].Score)
}

func TestSubmitScoresConflictOnResubmission(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	require.NoError(t, err)

	_, err = svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C2.ID, Score: 80},
	))
	requireAppError(t, err, 409, "Scores already exist for this candidate. Use update instead.")

	// the other judge is unaffected
	_, err = svc.SubmitScores(submitReq(f, f.Judge2.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 85},
	))
	require.NoError(t, err)
}

func TestSubmitScoresConcurrentDuplicateReportsConflict(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	// slip a competing submission in after the existence check but before
	// the insert, so the only thing left to stop it is the unique index
	var once sync.Once
	err := f.DB.Callback().Create().Before("gorm:create").Register("test:race", func(tx *gorm.DB) {
		once.Do(func() {
			raw := tx.Session(&gorm.Session{NewDB: true})
			require.NoError(t, raw.Exec(
				`INSERT INTO scores (judge_id, candidate_id, criteria_id, score, deleted, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
				f.Judge1.ID, f.Candidate.ID, f.C1.ID, 77.0, false,
			).Error)
		})
	})
	require.NoError(t, err)

	_, err = svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	requireAppError(t, err, 409, "Scores already exist for this candidate. Use update instead.")

	// the injected row shares the transaction, so the rollback takes
	// everything with it and the sheet stays clean
	assert.Empty(t, f.liveScores(t, f.Judge1.ID, f.Candidate.ID))
}

func TestSubmitScoresUnknownOrUnassignedJudge(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, 9999,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	requireAppError(t, err, 403, "Judge not found or not authorized")

	// assigned elsewhere
	require.NoError(t, f.DB.Model(&f.Judge1).Update("assigned_competition_id", nil).Error)
	_, err = svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	requireAppError(t, err, 403, "Judge not found or not authorized")
}

func TestSubmitScoresCandidateNotFound(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	req := submitReq(f, f.Judge1.ID, scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90})
	req.CandidateID = 9999
	_, err := svc.SubmitScores(req)
	requireAppError(t, err, 404, "Candidate not found")

	// soft-deleted candidate behaves like a missing one
	require.NoError(t, f.DB.Model(&f.Candidate).Update("deleted", true).Error)
	_, err = svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	requireAppError(t, err, 404, "Candidate not found")
}

func TestSubmitScoresRejectsForeignOrDeletedCriteria(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
		scoreDTO.ScoreEntry{CriteriaID: 9999, Score: 80},
	))
	requireAppError(t, err, 400, "Invalid criteria provided")

	// the whole batch is rejected before any write
	assert.Empty(t, f.liveScores(t, f.Judge1.ID, f.Candidate.ID))

	require.NoError(t, f.DB.Model(&f.C2).Update("deleted", true).Error)
	_, err = svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
		scoreDTO.ScoreEntry{CriteriaID: f.C2.ID, Score: 80},
	))
	requireAppError(t, err, 400, "Invalid criteria provided")
	assert.Empty(t, f.liveScores(t, f.Judge1.ID, f.Candidate.ID))
}

func TestSubmitScoresEnforcesCompetitionBounds(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	for _, bad := range []float64{64.99, 100.01, 0, -5} {
		_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
			scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: bad},
		))
		requireAppError(t, err, 400, "Scores must be between 65 and 100")
	}
	assert.Empty(t, f.liveScores(t, f.Judge1.ID, f.Candidate.ID))

	// boundary values pass
	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 65},
		scoreDTO.ScoreEntry{CriteriaID: f.C2.ID, Score: 100},
	))
	require.NoError(t, err)
}

func TestUpdateScoresReconcilesDiff(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
		scoreDTO.ScoreEntry{CriteriaID: f.C2.ID, Score: 80},
	))
	require.NoError(t, err)

	// drop C1, change C2
	rows, err := svc.UpdateScores(f.Candidate.ID, &scoreDTO.UpdateScoresRequest{
		JudgeID: f.Judge1.ID,
		Scores: []scoreDTO.ScoreEntry{
			{CriteriaID: f.C2.ID, Score: 95},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	live := f.liveScores(t, f.Judge1.ID, f.Candidate.ID)
	require.Len(t, live, 1)
	assert.Equal(t, f.C2.ID, live[0].CriteriaID)
	assert.Equal(t, 95.0, live[0].Score)
}

func TestUpdateScoresCreatesMissingRows(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	require.NoError(t, err)

	rows, err := svc.UpdateScores(f.Candidate.ID, &scoreDTO.UpdateScoresRequest{
		JudgeID: f.Judge1.ID,
		Scores: []scoreDTO.ScoreEntry{
			{CriteriaID: f.C1.ID, Score: 88},
			{CriteriaID: f.C2.ID, Score: 77},
		},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Len(t, f.liveScores(t, f.Judge1.ID, f.Candidate.ID), 2)
}

func TestUpdateScoresAtomicOnInvalidCriteria(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
		scoreDTO.ScoreEntry{CriteriaID: f.C2.ID, Score: 80},
	))
	require.NoError(t, err)

	_, err = svc.UpdateScores(f.Candidate.ID, &scoreDTO.UpdateScoresRequest{
		JudgeID: f.Judge1.ID,
		Scores: []scoreDTO.ScoreEntry{
			{CriteriaID: f.C1.ID, Score: 70},
			{CriteriaID: 9999, Score: 75},
		},
	})
	requireAppError(t, err, 400, "Invalid criteria provided")

	// nothing changed
	live := f.liveScores(t, f.Judge1.ID, f.Candidate.ID)
	require.Len(t, live, 2)
	assert.Equal(t, 90.0, live[0].Score)
	assert.Equal(t, 80.0, live[1].Score)
}

func TestLoadScoreSheet(t *testing.T) {
	f := seedFixture(t, newTestDB(t))
	svc := NewScoringService(f.DB)

	_, err := svc.SubmitScores(submitReq(f, f.Judge1.ID,
		scoreDTO.ScoreEntry{CriteriaID: f.C1.ID, Score: 90},
	))
	require.NoError(t, err)

	sheet, err := svc.LoadScoreSheet(f.Judge1.ID, f.Candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Candidate.ID, sheet.Candidate.ID)
	assert.Equal(t, f.Competition.ID, sheet.Competition.ID)
	require.Len(t, sheet.Categories, 1)
	assert.Len(t, sheet.Categories[0].Criteria, 2)
	require.Len(t, sheet.Scores, 1)
	assert.Equal(t, f.C1.ID, sheet.Scores[0].CriteriaID)

	// a judge with no rows yet still gets the layout
	sheet2, err := svc.LoadScoreSheet(f.Judge2.ID, f.Candidate.ID)
	require.NoError(t, err)
	assert.Empty(t, sheet2.Scores)
}
