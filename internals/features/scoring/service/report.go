package service

import (
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"

	candidateModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
	categoryModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	scoreDTO "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/dto"
	userModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

// ReportService builds the admin projections: status grid, judge-by-judge
// view, print sheet, and the export rows. Everything reads from one flat
// join and feeds the engine; the service itself never writes.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// LoadCategoryColumns returns the live category/criteria layout for one
// competition, ordered by creation.
func LoadCategoryColumns(db *gorm.DB, competitionID uint) ([]scoreDTO.CategoryColumn, error) {
	var categories []categoryModel.CategoryModel
	err := db.
		Where("competition_id = ? AND deleted = ?", competitionID, false).
		Preload("Criteria", "deleted = ?", false).
		Order("id asc").
		Find(&categories).Error
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to load categories")
	}

	out := make([]scoreDTO.CategoryColumn, 0, len(categories))
	for _, cat := range categories {
		col := scoreDTO.CategoryColumn{
			ID:     cat.ID,
			Name:   cat.Name,
			Weight: cat.CategoryWeight,
		}
		for _, cr := range cat.Criteria {
			col.Criteria = append(col.Criteria, scoreDTO.CriteriaColumn{
				ID:         cr.ID,
				Name:       cr.Name,
				Percentage: cr.Percentage,
			})
		}
		out = append(out, col)
	}
	return out, nil
}

// BuildWeighting assembles the competition's weighting from its row and its
// category rows.
func BuildWeighting(competition *competitionModel.CompetitionModel, categories []scoreDTO.CategoryColumn) Weighting {
	w := Weighting{Mode: competition.WeightingMode}
	switch competition.WeightingMode {
	case constants.ModeNamedCategoryWeights:
		w.CategoryWeights = make(map[string]float64, len(categories))
		for _, cat := range categories {
			if cat.Weight != nil {
				w.CategoryWeights[cat.Name] = *cat.Weight
			}
		}
	case constants.ModeFixedCategoryWeight:
		// 30 is the historical default when no override is stored
		w.FixedWeight = 30
		if competition.FixedCategoryWeight != nil {
			w.FixedWeight = *competition.FixedCategoryWeight
		}
	}
	return w
}

// reportContext is everything the projections share for one competition.
type reportContext struct {
	Competition   *competitionModel.CompetitionModel
	Categories    []scoreDTO.CategoryColumn
	Weighting     Weighting
	Candidates    []candidateModel.CandidateModel
	Judges        []userModel.UserModel
	TotalCriteria int
	// live score rows grouped per candidate
	Rows map[uint][]ScoreRow
}

func (s *ReportService) loadContext(competitionID uint) (*reportContext, error) {
	var competition competitionModel.CompetitionModel
	err := s.DB.
		Where("id = ? AND deleted = ?", competitionID, false).
		First(&competition).Error
	if err != nil {
		return nil, helper.NotFound("Competition not found")
	}

	categories, err := LoadCategoryColumns(s.DB, competition.ID)
	if err != nil {
		return nil, err
	}
	totalCriteria := 0
	for _, cat := range categories {
		totalCriteria += len(cat.Criteria)
	}

	var candidates []candidateModel.CandidateModel
	err = s.DB.
		Where("competition_id = ? AND deleted = ?", competition.ID, false).
		Order("candidate_number asc, id asc").
		Find(&candidates).Error
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to load candidates")
	}

	var judges []userModel.UserModel
	err = s.DB.
		Where("role = ? AND assigned_competition_id = ? AND deleted = ?", constants.RoleJudge, competition.ID, false).
		Order("id asc").
		Find(&judges).Error
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to load judges")
	}

	var flat []ScoreRow
	err = s.DB.
		Table("scores").
		Select(`scores.id AS score_id,
			scores.judge_id,
			users.username AS judge_name,
			scores.candidate_id,
			scores.criteria_id,
			criterias.name AS criteria_name,
			categories.id AS category_id,
			categories.name AS category_name,
			criterias.percentage,
			scores.score AS value`).
		Joins("JOIN criterias ON criterias.id = scores.criteria_id").
		Joins("JOIN categories ON categories.id = criterias.category_id").
		Joins("JOIN candidates ON candidates.id = scores.candidate_id").
		Joins("JOIN users ON users.id = scores.judge_id").
		Where("scores.deleted = ? AND criterias.deleted = ? AND categories.deleted = ? AND candidates.deleted = ?",
			false, false, false, false).
		Where("categories.competition_id = ?", competition.ID).
		Order("scores.candidate_id asc, scores.judge_id asc, scores.criteria_id asc").
		Scan(&flat).Error
	if err != nil {
		return nil, helper.StoreFailure(err, "Failed to load scores")
	}

	rows := make(map[uint][]ScoreRow)
	for _, r := range flat {
		rows[r.CandidateID] = append(rows[r.CandidateID], r)
	}

	return &reportContext{
		Competition:   &competition,
		Categories:    categories,
		Weighting:     BuildWeighting(&competition, categories),
		Candidates:    candidates,
		Judges:        judges,
		TotalCriteria: totalCriteria,
		Rows:          rows,
	}, nil
}

// StatusGrid is the admin overview: one row per candidate with who scored
// them, completion status, and the representative score.
func (s *ReportService) StatusGrid(competitionID uint) ([]scoreDTO.CandidateStatusRow, error) {
	ctx, err := s.loadContext(competitionID)
	if err != nil {
		return nil, err
	}

	out := make([]scoreDTO.CandidateStatusRow, 0, len(ctx.Candidates))
	for _, cand := range ctx.Candidates {
		rows := ctx.Rows[cand.ID]
		scored := JudgesFullyScored(rows, ctx.TotalCriteria)
		avg, cats := Representative(rows, ctx.Weighting)

		// every category shows up, unscored ones as null
		perCategory := make(map[string]*float64, len(ctx.Categories))
		for _, col := range ctx.Categories {
			perCategory[col.Name] = nil
		}
		for _, cs := range cats {
			v := cs.Score
			perCategory[cs.Name] = &v
		}

		out = append(out, scoreDTO.CandidateStatusRow{
			ID:               cand.ID,
			CandidateNumber:  cand.CandidateNumber,
			Name:             cand.Name,
			Gender:           cand.Gender,
			Course:           cand.Course,
			Level:            cand.Level,
			JudgesWhoScored:  scored,
			TotalJudges:      len(ctx.Judges),
			ScoredCount:      len(scored),
			Status:           StatusFor(len(scored), len(ctx.Judges)),
			AverageScore:     avg,
			PerCategoryScore: perCategory,
		})
	}
	return out, nil
}

// JudgeView is the judge-by-judge table: every raw score row annotated with
// that judge's final, plus the category layout for the column headers.
func (s *ReportService) JudgeView(competitionID uint) ([]scoreDTO.CategoryColumn, []scoreDTO.ViewCandidateRow, error) {
	ctx, err := s.loadContext(competitionID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]scoreDTO.ViewCandidateRow, 0, len(ctx.Candidates))
	for _, cand := range ctx.Candidates {
		rows := ctx.Rows[cand.ID]
		finals := map[uint]float64{}
		for _, jf := range JudgeFinals(rows, ctx.Weighting) {
			finals[jf.JudgeID] = jf.Final
		}
		avg, _ := Representative(rows, ctx.Weighting)

		view := scoreDTO.ViewCandidateRow{
			ID:              cand.ID,
			CandidateNumber: cand.CandidateNumber,
			Name:            cand.Name,
			Gender:          cand.Gender,
			Course:          cand.Course,
			Level:           cand.Level,
			Scores:          []scoreDTO.JudgeScoreRow{},
			AverageScore:    avg,
		}
		for _, r := range rows {
			final := finals[r.JudgeID]
			view.Scores = append(view.Scores, scoreDTO.JudgeScoreRow{
				ID:           r.ScoreID,
				JudgeID:      r.JudgeID,
				JudgeName:    r.JudgeName,
				CriteriaID:   r.CriteriaID,
				CriteriaName: r.CriteriaName,
				CategoryName: r.CategoryName,
				Score:        r.Value,
				AverageScore: &final,
			})
		}
		out = append(out, view)
	}
	return ctx.Categories, out, nil
}

// PrintProjection ranks one level's candidates for the printed result sheet.
// Unscored candidates drop out; ties keep candidate-number order.
func (s *ReportService) PrintProjection(competitionID uint, level string) ([]scoreDTO.RankedCandidate, error) {
	ctx, err := s.loadContext(competitionID)
	if err != nil {
		return nil, err
	}

	rankables := make([]Rankable, 0, len(ctx.Candidates))
	for _, cand := range ctx.Candidates {
		if level != "" && cand.Level != level {
			continue
		}
		score, _ := Representative(ctx.Rows[cand.ID], ctx.Weighting)
		rankables = append(rankables, Rankable{
			CandidateID:     cand.ID,
			CandidateNumber: cand.CandidateNumber,
			Name:            cand.Name,
			Gender:          cand.Gender,
			Level:           cand.Level,
			Score:           score,
		})
	}

	courses := map[uint]string{}
	for _, cand := range ctx.Candidates {
		courses[cand.ID] = cand.Course
	}

	ranked := Rank(rankables)
	out := make([]scoreDTO.RankedCandidate, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, scoreDTO.RankedCandidate{
			ID:              r.CandidateID,
			CandidateNumber: r.CandidateNumber,
			Name:            r.Name,
			Course:          courses[r.CandidateID],
			Gender:          r.Gender,
			Level:           r.Level,
			Score:           *r.Score,
			Rank:            r.Rank,
			Title:           r.Title,
		})
	}
	return out, nil
}

// ExportDataset is everything the workbook writer needs.
type ExportDataset struct {
	Competition *competitionModel.CompetitionModel
	Categories  []scoreDTO.CategoryColumn
	Rows        []scoreDTO.ExportRow
}

// ExportRows flattens the competition into one row per candidate×judge,
// filtered the way the admin UI filters.
func (s *ReportService) ExportRows(req *scoreDTO.ExportRequest) (*ExportDataset, error) {
	ctx, err := s.loadContext(req.CompetitionID)
	if err != nil {
		return nil, err
	}

	var out []scoreDTO.ExportRow
	for _, cand := range ctx.Candidates {
		if req.Filters.Gender != "" && cand.Gender != req.Filters.Gender {
			continue
		}
		if req.Filters.CandidateNumber != 0 && cand.CandidateNumber != req.Filters.CandidateNumber {
			continue
		}

		rows := ctx.Rows[cand.ID]
		byJudge := map[uint][]ScoreRow{}
		for _, r := range rows {
			byJudge[r.JudgeID] = append(byJudge[r.JudgeID], r)
		}

		for _, jf := range JudgeFinals(rows, ctx.Weighting) {
			row := scoreDTO.ExportRow{
				CandidateNumber: cand.CandidateNumber,
				CandidateName:   cand.Name,
				Course:          cand.Course,
				Gender:          cand.Gender,
				Level:           cand.Level,
				JudgeName:       jf.JudgeName,
				CriteriaScores:  map[uint]float64{},
				CategoryScores:  map[string]*float64{},
			}
			for _, r := range byJudge[jf.JudgeID] {
				row.CriteriaScores[r.CriteriaID] = r.Value
			}
			for _, cs := range jf.CategoryScores {
				v := cs.Score
				row.CategoryScores[cs.Name] = &v
			}
			final := jf.Final
			row.FinalScore = &final
			out = append(out, row)
		}
	}

	return &ExportDataset{
		Competition: ctx.Competition,
		Categories:  ctx.Categories,
		Rows:        out,
	}, nil
}
