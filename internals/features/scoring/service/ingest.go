package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"

	candidateModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	scoreDTO "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/dto"
	scoreModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/model"
	userModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

// ScoringService owns score ingestion and the judge's score sheet. All
// multi-row writes run inside one transaction.
type ScoringService struct {
	DB *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{DB: db}
}

// isDuplicateScore recognizes a unique violation on the live-score index.
// The pgconn check matters because PreferSimpleProtocol connections can
// surface the raw SQLSTATE without GORM's error translation.
func isDuplicateScore(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// entryMap flattens score entries to criteria → value. A criteria repeated
// in one request keeps its last value.
func entryMap(entries []scoreDTO.ScoreEntry) map[uint]float64 {
	out := make(map[uint]float64, len(entries))
	for _, e := range entries {
		out[e.CriteriaID] = e.Score
	}
	return out
}

// resolveJudge re-validates the judge on every request: must exist, be
// live, and hold the JUDGE role. No ambient session state is trusted.
func (s *ScoringService) resolveJudge(judgeID uint) (*userModel.UserModel, error) {
	var judge userModel.UserModel
	err := s.DB.
		Where("id = ? AND role = ? AND deleted = ?", judgeID, constants.RoleJudge, false).
		First(&judge).Error
	if err != nil {
		return nil, helper.Unauthorized("Judge not found or not authorized")
	}
	return &judge, nil
}

// resolveCandidate loads a live candidate together with its live competition.
func (s *ScoringService) resolveCandidate(candidateID uint) (*candidateModel.CandidateModel, *competitionModel.CompetitionModel, error) {
	var candidate candidateModel.CandidateModel
	err := s.DB.
		Where("id = ? AND deleted = ?", candidateID, false).
		First(&candidate).Error
	if err != nil {
		return nil, nil, helper.NotFound("Candidate not found")
	}

	var competition competitionModel.CompetitionModel
	err = s.DB.
		Where("id = ? AND deleted = ?", candidate.CompetitionID, false).
		First(&competition).Error
	if err != nil {
		return nil, nil, helper.NotFound("Candidate not found")
	}
	return &candidate, &competition, nil
}

// checkAssignment rejects judges scoring outside their assigned competition.
func checkAssignment(judge *userModel.UserModel, competitionID uint) error {
	if judge.AssignedCompetitionID == nil || *judge.AssignedCompetitionID != competitionID {
		return helper.Unauthorized("Judge not found or not authorized")
	}
	return nil
}

// checkCriteria verifies every submitted criteria resolves live and belongs
// to a live category of the candidate's competition. The batch fails whole
// on the first mismatch, before any write.
func (s *ScoringService) checkCriteria(entries map[uint]float64, competitionID uint) error {
	ids := make([]uint, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}

	var found int64
	err := s.DB.
		Table("criterias").
		Joins("JOIN categories ON categories.id = criterias.category_id").
		Where("criterias.id IN ?", ids).
		Where("criterias.deleted = ? AND categories.deleted = ?", false, false).
		Where("categories.competition_id = ?", competitionID).
		Count(&found).Error
	if err != nil {
		return helper.StoreFailure(err, "Failed to validate criteria")
	}
	if found != int64(len(ids)) {
		return helper.InvalidInput("Invalid criteria provided")
	}
	return nil
}

// checkBounds enforces the competition's score range on every entry.
func checkBounds(entries map[uint]float64, competition *competitionModel.CompetitionModel) error {
	for _, value := range entries {
		if value < float64(competition.ScoreMin) || value > float64(competition.ScoreMax) {
			return helper.InvalidInput(fmt.Sprintf(
				"Scores must be between %d and %d",
				competition.ScoreMin, competition.ScoreMax,
			))
		}
	}
	return nil
}

// SubmitScores is the one-shot initial submission. A judge who already has
// live rows for this candidate gets a conflict and must use the update path.
func (s *ScoringService) SubmitScores(req *scoreDTO.SubmitScoresRequest) ([]scoreModel.ScoreModel, error) {
	judge, err := s.resolveJudge(req.JudgeID)
	if err != nil {
		return nil, err
	}
	candidate, competition, err := s.resolveCandidate(req.CandidateID)
	if err != nil {
		return nil, err
	}
	if err := checkAssignment(judge, competition.ID); err != nil {
		return nil, err
	}

	var existing int64
	err = s.DB.Model(&scoreModel.ScoreModel{}).
		Where("judge_id = ? AND candidate_id = ? AND deleted = ?", judge.ID, candidate.ID, false).
		Count(&existing).Error
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to check existing scores")
	}
	if existing > 0 {
		return nil, helper.Conflict("Scores already exist for this candidate. Use update instead.")
	}

	entries := entryMap(req.Scores)
	if err := s.checkCriteria(entries, competition.ID); err != nil {
		return nil, err
	}
	if err := checkBounds(entries, competition); err != nil {
		return nil, err
	}

	rows := make([]scoreModel.ScoreModel, 0, len(req.Scores))
	for _, e := range req.Scores {
		if _, ok := entries[e.CriteriaID]; !ok {
			continue // earlier duplicate, superseded
		}
		rows = append(rows, scoreModel.ScoreModel{
			JudgeID:     judge.ID,
			CandidateID: candidate.ID,
			CriteriaID:  e.CriteriaID,
			Score:       entries[e.CriteriaID],
		})
		delete(entries, e.CriteriaID)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		// a concurrent submission that slipped past the existence check
		// lands on the live-score unique index, not on the count above
		if isDuplicateScore(err) {
			return nil, helper.Conflict("Scores already exist for this candidate. Use update instead.")
		}
		return nil, helper.StoreFailure(err, "Failed to save scores")
	}

	log.Printf("[SUCCESS] judge %d submitted %d scores for candidate %d", judge.ID, len(rows), candidate.ID)
	return rows, nil
}

// UpdateScores reconciles the judge's sheet for one candidate against the
// submitted set: present criteria are updated or created, criteria missing
// from the request are soft-deleted. One transaction covers the whole diff.
func (s *ScoringService) UpdateScores(candidateID uint, req *scoreDTO.UpdateScoresRequest) ([]scoreModel.ScoreModel, error) {
	judge, err := s.resolveJudge(req.JudgeID)
	if err != nil {
		return nil, err
	}
	candidate, competition, err := s.resolveCandidate(candidateID)
	if err != nil {
		return nil, err
	}
	if err := checkAssignment(judge, competition.ID); err != nil {
		return nil, err
	}

	entries := entryMap(req.Scores)
	if err := s.checkCriteria(entries, competition.ID); err != nil {
		return nil, err
	}
	if err := checkBounds(entries, competition); err != nil {
		return nil, err
	}

	var result []scoreModel.ScoreModel
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var existing []scoreModel.ScoreModel
		err := tx.
			Where("judge_id = ? AND candidate_id = ? AND deleted = ?", judge.ID, candidate.ID, false).
			Find(&existing).Error
		if err != nil {
			return err
		}

		for i := range existing {
			row := &existing[i]
			value, keep := entries[row.CriteriaID]
			if !keep {
				if err := tx.Model(row).Update("deleted", true).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Model(row).Update("score", value).Error; err != nil {
				return err
			}
			row.Score = value
			result = append(result, *row)
			delete(entries, row.CriteriaID)
		}

		for criteriaID, value := range entries {
			row := scoreModel.ScoreModel{
				JudgeID:     judge.ID,
				CandidateID: candidate.ID,
				CriteriaID:  criteriaID,
				Score:       value,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			result = append(result, row)
		}
		return nil
	})
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to update scores")
	}

	log.Printf("[SUCCESS] judge %d updated scores for candidate %d (%d live rows)", judge.ID, candidate.ID, len(result))
	return result, nil
}

// ScoreSheet is what a judge needs to grade one candidate: the candidate,
// the competition's category/criteria layout, and any live scores this judge
// already entered.
type ScoreSheet struct {
	Candidate   *candidateModel.CandidateModel     `json:"candidate"`
	Competition *competitionModel.CompetitionModel `json:"competition"`
	Categories  []scoreDTO.CategoryColumn          `json:"categories"`
	Scores      []scoreModel.ScoreModel            `json:"scores"`
}

func (s *ScoringService) LoadScoreSheet(judgeID, candidateID uint) (*ScoreSheet, error) {
	judge, err := s.resolveJudge(judgeID)
	if err != nil {
		return nil, err
	}
	candidate, competition, err := s.resolveCandidate(candidateID)
	if err != nil {
		return nil, err
	}
	if err := checkAssignment(judge, competition.ID); err != nil {
		return nil, err
	}

	categories, err := LoadCategoryColumns(s.DB, competition.ID)
	if err != nil {
		return nil, err
	}

	var scores []scoreModel.ScoreModel
	err = s.DB.
		Where("judge_id = ? AND candidate_id = ? AND deleted = ?", judge.ID, candidate.ID, false).
		Order("criteria_id asc").
		Find(&scores).Error
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to load scores")
	}

	return &ScoreSheet{
		Candidate:   candidate,
		Competition: competition,
		Categories:  categories,
		Scores:      scores,
	}, nil
}
