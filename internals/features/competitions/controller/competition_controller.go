package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

var validate = validator.New()

type CompetitionController struct {
	DB *gorm.DB
}

func NewCompetitionController(db *gorm.DB) *CompetitionController {
	return &CompetitionController{DB: db}
}

// GET /api/a/competitions
func (cc *CompetitionController) GetCompetitions(c *fiber.Ctx) error {
	var competitions []model.CompetitionModel
	if err := cc.DB.
		Where("deleted = ?", false).
		Order("id desc").
		Find(&competitions).Error; err != nil {
		log.Println("[ERROR] Failed to fetch competitions:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch competitions")
	}
	return helper.Success(c, "Competitions fetched successfully", fiber.Map{
		"total":        len(competitions),
		"competitions": competitions,
	})
}

// POST /api/a/competitions
func (cc *CompetitionController) CreateCompetition(c *fiber.Ctx) error {
	var req dto.CreateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if m.ScoreMin >= m.ScoreMax {
		return helper.Error(c, fiber.StatusBadRequest, "score_min must be below score_max")
	}

	var count int64
	if err := cc.DB.Model(&model.CompetitionModel{}).
		Where("name = ? AND deleted = ?", m.Name, false).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] competition uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create competition")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Competition with this name already exists")
	}

	if err := cc.DB.Create(m).Error; err != nil {
		log.Println("[ERROR] Failed to create competition:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create competition")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Competition created successfully", m)
}

// PUT /api/a/competitions/:id
func (cc *CompetitionController) UpdateCompetition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid competition ID")
	}

	var req dto.UpdateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var existing model.CompetitionModel
	if err := cc.DB.Where("id = ? AND deleted = ?", id, false).First(&existing).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Competition not found")
	}

	var count int64
	if err := cc.DB.Model(&model.CompetitionModel{}).
		Where("name = ? AND deleted = ? AND id <> ?", req.Name, false, existing.ID).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] competition uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update competition")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Competition with this name already exists")
	}

	updated := req.ToModel()
	if updated.ScoreMin >= updated.ScoreMax {
		return helper.Error(c, fiber.StatusBadRequest, "score_min must be below score_max")
	}

	existing.Name = updated.Name
	existing.Level = updated.Level
	existing.WeightingMode = updated.WeightingMode
	existing.FixedCategoryWeight = updated.FixedCategoryWeight
	existing.ScoreMin = updated.ScoreMin
	existing.ScoreMax = updated.ScoreMax

	if err := cc.DB.Save(&existing).Error; err != nil {
		log.Println("[ERROR] Failed to update competition:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update competition")
	}
	return helper.Success(c, "Competition updated successfully", existing)
}

// DELETE /api/a/competitions/:id (soft delete)
func (cc *CompetitionController) DeleteCompetition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid competition ID")
	}

	res := cc.DB.Model(&model.CompetitionModel{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		log.Println("[ERROR] Failed to delete competition:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete competition")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Competition not found")
	}
	return helper.Success(c, "Competition deleted successfully", nil)
}
