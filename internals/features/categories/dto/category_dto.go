package dto

import (
	"strings"

	catModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
)

/* =======================================================
   Category DTOs
   ======================================================= */

type CreateCategoryRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=100"`
	CompetitionID  uint     `json:"competition_id" validate:"required"`
	CategoryWeight *float64 `json:"category_weight,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateCategoryRequest) ToModel() *catModel.CategoryModel {
	return &catModel.CategoryModel{
		Name:           r.Name,
		CompetitionID:  r.CompetitionID,
		CategoryWeight: r.CategoryWeight,
	}
}

type UpdateCategoryRequest = CreateCategoryRequest

// CategoryResponse mirrors the admin table rows: category plus how many
// live criteria it holds.
type CategoryResponse struct {
	ID             uint     `json:"id"`
	CompetitionID  uint     `json:"competition_id"`
	Name           string   `json:"name"`
	CategoryWeight *float64 `json:"category_weight,omitempty"`
	CriteriaCount  int      `json:"criteria_count"`
}

/* =======================================================
   Criteria DTOs
   ======================================================= */

type CreateCriteriaRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Percentage int    `json:"percentage" validate:"required,gte=1,lte=100"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

func (r *CreateCriteriaRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateCriteriaRequest) ToModel() *catModel.CriteriaModel {
	return &catModel.CriteriaModel{
		Name:       r.Name,
		Percentage: r.Percentage,
		CategoryID: r.CategoryID,
	}
}

type UpdateCriteriaRequest = CreateCriteriaRequest
