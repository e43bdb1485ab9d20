package dto

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// ScoreEntry is one (criteria, value) pair of a submission.
type ScoreEntry struct {
	CriteriaID uint    `json:"criteria_id" validate:"required"`
	Score      float64 `json:"score"`
}

// SubmitScoresRequest is a judge's one-shot initial submission for a
// candidate. Re-submitting is a conflict; edits go through the update path.
type SubmitScoresRequest struct {
	JudgeID     uint         `json:"judge_id" validate:"required"`
	CandidateID uint         `json:"candidate_id" validate:"required"`
	Scores      []ScoreEntry `json:"scores" validate:"required,min=1,dive"`
}

// UpdateScoresRequest replaces a judge's sheet for one candidate: criteria
// present here are upserted, criteria missing here are soft-deleted.
type UpdateScoresRequest struct {
	JudgeID uint         `json:"judge_id" validate:"required"`
	Scores  []ScoreEntry `json:"scores" validate:"required,min=1,dive"`
}

/* =======================================================
   RESPONSE DTOs (reporting shapes consumed by the admin UI)
   ======================================================= */

// CandidateStatusRow is one row of the admin status grid.
type CandidateStatusRow struct {
	ID               uint                `json:"id"`
	CandidateNumber  int                 `json:"candidate_number"`
	Name             string              `json:"name"`
	Gender           string              `json:"gender"`
	Course           string              `json:"course"`
	Level            string              `json:"level"`
	JudgesWhoScored  []uint              `json:"judges_who_scored"`
	TotalJudges      int                 `json:"total_judges"`
	ScoredCount      int                 `json:"scored_count"`
	Status           string              `json:"status"`
	AverageScore     *float64            `json:"average_score"`
	PerCategoryScore map[string]*float64 `json:"per_category_score"`
}

// JudgeScoreRow annotates one raw score with its judge's overall final for
// the judge-by-judge view table.
type JudgeScoreRow struct {
	ID           uint     `json:"id"`
	JudgeID      uint     `json:"judge_id"`
	JudgeName    string   `json:"judge_name"`
	CriteriaID   uint     `json:"criteria_id"`
	CriteriaName string   `json:"criteria_name"`
	CategoryName string   `json:"category_name"`
	Score        float64  `json:"score"`
	AverageScore *float64 `json:"average_score"`
}

// ViewCandidateRow is one candidate of the judge-by-judge view.
type ViewCandidateRow struct {
	ID              uint            `json:"id"`
	CandidateNumber int             `json:"candidate_number"`
	Name            string          `json:"name"`
	Gender          string          `json:"gender"`
	Course          string          `json:"course"`
	Level           string          `json:"level"`
	Scores          []JudgeScoreRow `json:"scores"`
	AverageScore    *float64        `json:"average_score"`
}

// CriteriaColumn / CategoryColumn give the reporting layer its column
// layout.
type CriteriaColumn struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

type CategoryColumn struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Weight   *float64         `json:"weight,omitempty"`
	Criteria []CriteriaColumn `json:"criteria"`
}

// RankedCandidate is one row of the print sheet: candidates with no score
// are filtered out before ranking, so Score is always concrete here.
type RankedCandidate struct {
	ID              uint    `json:"id"`
	CandidateNumber int     `json:"candidate_number"`
	Name            string  `json:"name"`
	Course          string  `json:"course"`
	Gender          string  `json:"gender"`
	Level           string  `json:"level"`
	Score           float64 `json:"score"`
	Rank            int     `json:"rank"`
	Title           string  `json:"title,omitempty"` // Champion / 1st Runner Up / 2nd Runner Up
}

// ExportRow is one candidate×judge row of the workbook export.
type ExportRow struct {
	CandidateNumber int                 `json:"candidate_number"`
	CandidateName   string              `json:"candidate_name"`
	Course          string              `json:"course"`
	Gender          string              `json:"gender"`
	Level           string              `json:"level"`
	JudgeName       string              `json:"judge_name"`
	CriteriaScores  map[uint]float64    `json:"criteria_scores"`
	CategoryScores  map[string]*float64 `json:"category_scores"`
	FinalScore      *float64            `json:"final_score"`
}

// ExportFilters narrows the export the same way the admin UI does.
type ExportFilters struct {
	Gender          string `json:"gender,omitempty"`
	CandidateNumber int    `json:"candidate_number,omitempty"`
}

type ExportRequest struct {
	CompetitionID uint          `json:"competition_id" validate:"required"`
	Filters       ExportFilters `json:"filters"`
}
