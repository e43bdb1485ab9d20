package model

import (
	"time"

	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
)

// CandidateModel represents the candidates table. CandidateNumber is unique
// per (competition, level) among live rows, not globally; the same number can
// appear for College and Senior High in one competition.
type CandidateModel struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitionID   uint    `gorm:"not null;index" json:"competition_id" validate:"required"`
	CandidateNumber int     `gorm:"not null" json:"candidate_number" validate:"required,gte=1"`
	Name            string  `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Course          string  `gorm:"size:100;not null" json:"course" validate:"required,max=100"`
	Gender          string  `gorm:"type:varchar(10);not null" json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Level           string  `gorm:"type:varchar(20);not null" json:"level" validate:"required,oneof=COLLEGE SENIOR_HIGH BASIC_EDUCATION"`
	ImageURL        *string `gorm:"size:500" json:"image_url,omitempty"`

	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Competition *competitionModel.CompetitionModel `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
}

func (CandidateModel) TableName() string {
	return "candidates"
}
