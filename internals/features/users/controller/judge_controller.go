package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/users/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

type JudgeController struct {
	DB *gorm.DB
}

func NewJudgeController(db *gorm.DB) *JudgeController {
	return &JudgeController{DB: db}
}

// GET /api/a/judges
func (jc *JudgeController) GetJudges(c *fiber.Ctx) error {
	var judges []model.UserModel
	if err := jc.DB.
		Where("role = ? AND deleted = ?", constants.RoleJudge, false).
		Order("id desc").
		Find(&judges).Error; err != nil {
		log.Println("[ERROR] Failed to fetch judges:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch judges")
	}

	out := make([]dto.UserResponse, 0, len(judges))
	for i := range judges {
		out = append(out, dto.ToUserResponse(&judges[i]))
	}
	return helper.Success(c, "Judges fetched successfully", fiber.Map{
		"total":  len(out),
		"judges": out,
	})
}

// POST /api/a/judges
func (jc *JudgeController) CreateJudge(c *fiber.Ctx) error {
	var req dto.CreateJudgeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := jc.DB.Model(&model.UserModel{}).
		Where("username = ? AND deleted = ?", req.Username, false).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] judge uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create judge")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Username already exists")
	}

	judge := req.ToModel()
	if err := jc.DB.Create(judge).Error; err != nil {
		log.Println("[ERROR] Failed to create judge:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create judge")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Judge created successfully", dto.ToUserResponse(judge))
}

// PUT /api/a/judges/:id
func (jc *JudgeController) UpdateJudge(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid judge ID")
	}

	var req dto.UpdateJudgeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var judge model.UserModel
	if err := jc.DB.
		Where("id = ? AND role = ? AND deleted = ?", id, constants.RoleJudge, false).
		First(&judge).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Judge not found")
	}

	var count int64
	if err := jc.DB.Model(&model.UserModel{}).
		Where("username = ? AND deleted = ? AND id <> ?", req.Username, false, judge.ID).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] judge uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update judge")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Username already exists")
	}

	judge.Username = req.Username
	judge.AssignedCompetitionID = req.AssignedCompetitionID
	if req.Password != "" {
		judge.Password = req.Password
	}

	if err := jc.DB.Save(&judge).Error; err != nil {
		log.Println("[ERROR] Failed to update judge:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update judge")
	}

	return helper.Success(c, "Judge updated successfully", dto.ToUserResponse(&judge))
}

// DELETE /api/a/judges/:id (soft delete)
func (jc *JudgeController) DeleteJudge(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid judge ID")
	}

	res := jc.DB.Model(&model.UserModel{}).
		Where("id = ? AND role = ? AND deleted = ?", id, constants.RoleJudge, false).
		Update("deleted", true)
	if res.Error != nil {
		log.Println("[ERROR] Failed to delete judge:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete judge")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Judge not found")
	}

	return helper.Success(c, "Judge deleted successfully", nil)
}
