package dto

import (
	"strings"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	uModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// CreateJudgeRequest creates a judge account, optionally locked to one
// competition.
type CreateJudgeRequest struct {
	Username              string `json:"username" validate:"required,min=3,max=50"`
	Password              string `json:"password" validate:"required,min=4"`
	AssignedCompetitionID *uint  `json:"assigned_competition_id,omitempty"`
}

func (r *CreateJudgeRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

func (r *CreateJudgeRequest) ToModel() *uModel.UserModel {
	return &uModel.UserModel{
		Username:              r.Username,
		Password:              r.Password,
		Role:                  constants.RoleJudge,
		AssignedCompetitionID: r.AssignedCompetitionID,
	}
}

// UpdateJudgeRequest: blank password means "keep the current one".
type UpdateJudgeRequest struct {
	Username              string `json:"username" validate:"required,min=3,max=50"`
	Password              string `json:"password" validate:"omitempty,min=4"`
	AssignedCompetitionID *uint  `json:"assigned_competition_id,omitempty"`
}

func (r *UpdateJudgeRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID                    uint   `json:"id"`
	Username              string `json:"username"`
	Role                  string `json:"role"`
	AssignedCompetitionID *uint  `json:"assigned_competition_id,omitempty"`
}

func ToUserResponse(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:                    u.ID,
		Username:              u.Username,
		Role:                  u.Role,
		AssignedCompetitionID: u.AssignedCompetitionID,
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
