package model

import (
	"time"
)

// CriteriaModel represents the criterias table. Percentage is this
// criterion's weight within its category; the set is not forced to sum to
// 100 (convention, deliberately unenforced).
type CriteriaModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"category_id" validate:"required"`
	Name       string `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Percentage int    `gorm:"not null" json:"percentage" validate:"required,gte=1,lte=100"`

	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (CriteriaModel) TableName() string {
	return "criterias"
}
