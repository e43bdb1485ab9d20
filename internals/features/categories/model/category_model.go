package model

import (
	"time"

	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
)

// CategoryModel represents the categories table. CategoryWeight is the
// percentage of the overall final this category contributes under the
// NAMED_CATEGORY_WEIGHTS mode; other modes ignore it. Storing the weight on
// the row keeps renames from silently zeroing a category.
type CategoryModel struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitionID  uint     `gorm:"not null;index" json:"competition_id" validate:"required"`
	Name           string   `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	CategoryWeight *float64 `gorm:"type:decimal(5,2)" json:"category_weight,omitempty" validate:"omitempty,gte=0,lte=100"`

	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Competition *competitionModel.CompetitionModel `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
	Criteria    []CriteriaModel                    `gorm:"foreignKey:CategoryID" json:"criteria,omitempty"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
