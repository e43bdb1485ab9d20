package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	candModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
)

// CandidateForm carries the multipart fields of the create/update forms.
// The optional photo file rides separately on the request.
type CandidateForm struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Course          string `json:"course" validate:"required,max=100"`
	CandidateNumber int    `json:"candidate_number" validate:"required,gte=1"`
	Gender          string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Level           string `json:"level" validate:"required,oneof=COLLEGE SENIOR_HIGH BASIC_EDUCATION"`
	CompetitionID   uint   `json:"competition_id" validate:"required"`
	RemoveImage     bool   `json:"remove_image"`
}

// ParseCandidateForm reads the multipart form values.
func ParseCandidateForm(c *fiber.Ctx) CandidateForm {
	number, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("candidate_number")))
	compID, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("competition_id")))
	return CandidateForm{
		Name:            strings.TrimSpace(c.FormValue("name")),
		Course:          strings.TrimSpace(c.FormValue("course")),
		CandidateNumber: number,
		Gender:          strings.ToUpper(strings.TrimSpace(c.FormValue("gender"))),
		Level:           strings.ToUpper(strings.TrimSpace(c.FormValue("level"))),
		CompetitionID:   uint(compID),
		RemoveImage:     c.FormValue("remove_image") == "true",
	}
}

func (f *CandidateForm) ToModel() *candModel.CandidateModel {
	return &candModel.CandidateModel{
		Name:            f.Name,
		Course:          f.Course,
		CandidateNumber: f.CandidateNumber,
		Gender:          f.Gender,
		Level:           f.Level,
		CompetitionID:   f.CompetitionID,
	}
}
