package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/service"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

var validate = validator.New()

// ScoringController exposes the judge-facing score endpoints. The heavy
// lifting lives in service.ScoringService; the controller only parses,
// validates, and shapes the envelope.
type ScoringController struct {
	Service *service.ScoringService
}

func NewScoringController(db *gorm.DB) *ScoringController {
	return &ScoringController{Service: service.NewScoringService(db)}
}

// requireSelf rejects any caller whose authenticated user id differs from
// the judge id in the request body.
func requireSelf(c *fiber.Ctx, judgeID uint) error {
	authID, ok := c.Locals("user_id").(uint)
	if !ok || authID != judgeID {
		return helper.Error(c, fiber.StatusForbidden, "Judge not found or not authorized")
	}
	return nil
}

// POST /api/j/scores
func (sc *ScoringController) SubmitScores(c *fiber.Ctx) error {
	var req dto.SubmitScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := requireSelf(c, req.JudgeID); err != nil {
		return err
	}

	rows, err := sc.Service.SubmitScores(&req)
	if err != nil {
		return helper.Respond(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Scores submitted successfully", fiber.Map{
		"total":  len(rows),
		"scores": rows,
	})
}

// PUT /api/j/scores/:candidateId
func (sc *ScoringController) UpdateScores(c *fiber.Ctx) error {
	candidateID, err := c.ParamsInt("candidateId")
	if err != nil || candidateID < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid candidate ID")
	}

	var req dto.UpdateScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := requireSelf(c, req.JudgeID); err != nil {
		return err
	}

	rows, err := sc.Service.UpdateScores(uint(candidateID), &req)
	if err != nil {
		return helper.Respond(c, err)
	}
	return helper.Success(c, "Scores updated successfully", fiber.Map{
		"total":  len(rows),
		"scores": rows,
	})
}

// GET /api/j/scores/:candidateId?judge_id=
func (sc *ScoringController) GetScoreSheet(c *fiber.Ctx) error {
	candidateID, err := c.ParamsInt("candidateId")
	if err != nil || candidateID < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid candidate ID")
	}
	judgeID := c.QueryInt("judge_id")
	if judgeID < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "judge_id is required")
	}
	if err := requireSelf(c, uint(judgeID)); err != nil {
		return err
	}

	sheet, err := sc.Service.LoadScoreSheet(uint(judgeID), uint(candidateID))
	if err != nil {
		return helper.Respond(c, err)
	}
	return helper.Success(c, "Score sheet fetched successfully", sheet)
}
