package dto

import (
	"strings"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	cModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
)

type CreateCompetitionRequest struct {
	Name                string   `json:"name" validate:"required,min=2,max=100"`
	Level               string   `json:"level" validate:"required,oneof=COLLEGE SENIOR_HIGH BASIC_EDUCATION"`
	WeightingMode       string   `json:"weighting_mode" validate:"omitempty,oneof=FLAT_WEIGHTED EQUAL_CATEGORY_AVERAGE NAMED_CATEGORY_WEIGHTS FIXED_CATEGORY_WEIGHT"`
	FixedCategoryWeight *float64 `json:"fixed_category_weight,omitempty" validate:"omitempty,gte=0,lte=100"`
	ScoreMin            *int     `json:"score_min,omitempty" validate:"omitempty,gte=0,lte=100"`
	ScoreMax            *int     `json:"score_max,omitempty" validate:"omitempty,gte=1,lte=100"`
}

func (r *CreateCompetitionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Level = strings.ToUpper(strings.TrimSpace(r.Level))
	r.WeightingMode = strings.ToUpper(strings.TrimSpace(r.WeightingMode))
}

func (r *CreateCompetitionRequest) ToModel() *cModel.CompetitionModel {
	m := &cModel.CompetitionModel{
		Name:                r.Name,
		Level:               r.Level,
		WeightingMode:       r.WeightingMode,
		FixedCategoryWeight: r.FixedCategoryWeight,
		ScoreMin:            constants.DefaultScoreMin,
		ScoreMax:            constants.DefaultScoreMax,
	}
	if m.WeightingMode == "" {
		m.WeightingMode = constants.ModeEqualCategoryAverage
	}
	if r.ScoreMin != nil {
		m.ScoreMin = *r.ScoreMin
	}
	if r.ScoreMax != nil {
		m.ScoreMax = *r.ScoreMax
	}
	return m
}

type UpdateCompetitionRequest = CreateCompetitionRequest
