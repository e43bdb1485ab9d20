package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UserModel represents the users table. Judges carry an optional competition
// assignment; a judge may only score within that assignment.
type UserModel struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username              string    `gorm:"size:50;not null" json:"username" validate:"required,min=3,max=50"`
	Password              string    `gorm:"size:255;not null" json:"-" validate:"required,min=4"`
	Role                  string    `gorm:"type:varchar(10);not null;default:'JUDGE'" json:"role" validate:"required,oneof=ADMIN JUDGE"`
	AssignedCompetitionID *uint     `gorm:"index" json:"assigned_competition_id,omitempty"`
	Deleted               bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) Validate() error {
	if u.Role == "" {
		u.Role = "JUDGE"
	}
	return validate.Struct(u)
}
