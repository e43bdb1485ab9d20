package model

import (
	"time"
)

// CompetitionModel represents the competitions table. The weighting mode and
// the valid score range live here so aggregation and ingestion never reach
// for per-competition constants in code.
type CompetitionModel struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Level string `gorm:"type:varchar(20);not null" json:"level" validate:"required,oneof=COLLEGE SENIOR_HIGH BASIC_EDUCATION"`

	WeightingMode string `gorm:"type:varchar(30);not null;default:'EQUAL_CATEGORY_AVERAGE'" json:"weighting_mode" validate:"required,oneof=FLAT_WEIGHTED EQUAL_CATEGORY_AVERAGE NAMED_CATEGORY_WEIGHTS FIXED_CATEGORY_WEIGHT"`
	// Only consulted when WeightingMode is FIXED_CATEGORY_WEIGHT. The applied
	// weights may deliberately sum below 100; the remainder is scored off-system.
	FixedCategoryWeight *float64 `gorm:"type:decimal(5,2)" json:"fixed_category_weight,omitempty" validate:"omitempty,gte=0,lte=100"`

	ScoreMin int `gorm:"not null;default:65" json:"score_min" validate:"gte=0,lte=100"`
	ScoreMax int `gorm:"not null;default:100" json:"score_max" validate:"gte=1,lte=100"`

	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompetitionModel) TableName() string {
	return "competitions"
}
