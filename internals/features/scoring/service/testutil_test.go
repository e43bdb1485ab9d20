package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"

	candidateModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
	categoryModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	scoreModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/model"
	userModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "tabulation.db")),
		&gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&competitionModel.CompetitionModel{},
		&categoryModel.CategoryModel{},
		&categoryModel.CriteriaModel{},
		&candidateModel.CandidateModel{},
		&scoreModel.ScoreModel{},
	))
	// same partial unique index production migration installs
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_scores_live
		 ON scores (judge_id, candidate_id, criteria_id) WHERE NOT deleted`,
	).Error)
	return db
}

// fixture is one competition ready to score: one category with a 60/40
// criteria pair, two assigned judges, one candidate.
type fixture struct {
	DB          *gorm.DB
	Competition competitionModel.CompetitionModel
	Category    categoryModel.CategoryModel
	C1, C2      categoryModel.CriteriaModel
	Judge1      userModel.UserModel
	Judge2      userModel.UserModel
	Candidate   candidateModel.CandidateModel
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{DB: db}

	f.Competition = competitionModel.CompetitionModel{
		Name:          "Mr and Ms LOA",
		Level:         constants.LevelCollege,
		WeightingMode: constants.ModeEqualCategoryAverage,
		ScoreMin:      65,
		ScoreMax:      100,
	}
	require.NoError(t, db.Create(&f.Competition).Error)

	f.Category = categoryModel.CategoryModel{
		CompetitionID: f.Competition.ID,
		Name:          "Interview",
	}
	require.NoError(t, db.Create(&f.Category).Error)

	f.C1 = categoryModel.CriteriaModel{CategoryID: f.Category.ID, Name: "Delivery", Percentage: 60}
	f.C2 = categoryModel.CriteriaModel{CategoryID: f.Category.ID, Name: "Content", Percentage: 40}
	require.NoError(t, db.Create(&f.C1).Error)
	require.NoError(t, db.Create(&f.C2).Error)

	f.Judge1 = userModel.UserModel{
		Username: "judge1", Password: "judge1pass",
		Role: constants.RoleJudge, AssignedCompetitionID: &f.Competition.ID,
	}
	f.Judge2 = userModel.UserModel{
		Username: "judge2", Password: "judge2pass",
		Role: constants.RoleJudge, AssignedCompetitionID: &f.Competition.ID,
	}
	require.NoError(t, db.Create(&f.Judge1).Error)
	require.NoError(t, db.Create(&f.Judge2).Error)

	f.Candidate = candidateModel.CandidateModel{
		CompetitionID:   f.Competition.ID,
		CandidateNumber: 1,
		Name:            "Alice Reyes",
		Course:          "BSIT",
		Gender:          constants.GenderFemale,
		Level:           constants.LevelCollege,
	}
	require.NoError(t, db.Create(&f.Candidate).Error)

	return f
}

// addCandidate seeds one more live candidate on the fixture's competition.
func (f *fixture) addCandidate(t *testing.T, number int, name, gender, level string) candidateModel.CandidateModel {
	t.Helper()
	c := candidateModel.CandidateModel{
		CompetitionID:   f.Competition.ID,
		CandidateNumber: number,
		Name:            name,
		Course:          "BSIT",
		Gender:          gender,
		Level:           level,
	}
	require.NoError(t, f.DB.Create(&c).Error)
	return c
}

func (f *fixture) liveScores(t *testing.T, judgeID, candidateID uint) []scoreModel.ScoreModel {
	t.Helper()
	var rows []scoreModel.ScoreModel
	require.NoError(t, f.DB.
		Where("judge_id = ? AND candidate_id = ? AND deleted = ?", judgeID, candidateID, false).
		Order("criteria_id asc").
		Find(&rows).Error)
	return rows
}
