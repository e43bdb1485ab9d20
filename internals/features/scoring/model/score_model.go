package model

import (
	"time"

	candidateModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
	categoryModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
	userModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

// ScoreModel represents the scores table: one raw score a judge gave a
// candidate on one criterion. At most one live row may exist per
// (judge, candidate, criteria); removal is always a soft delete so score
// identifiers survive for audit.
type ScoreModel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	JudgeID     uint    `gorm:"not null;index" json:"judge_id"`
	CandidateID uint    `gorm:"not null;index" json:"candidate_id"`
	CriteriaID  uint    `gorm:"not null;index" json:"criteria_id"`
	Score       float64 `gorm:"type:decimal(6,2);not null" json:"score"`

	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Judge     *userModel.UserModel           `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
	Candidate *candidateModel.CandidateModel `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Criteria  *categoryModel.CriteriaModel   `gorm:"foreignKey:CriteriaID" json:"criteria,omitempty"`
}

func (ScoreModel) TableName() string {
	return "scores"
}
