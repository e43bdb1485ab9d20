package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

type CriteriaController struct {
	DB *gorm.DB
}

func NewCriteriaController(db *gorm.DB) *CriteriaController {
	return &CriteriaController{DB: db}
}

// GET /api/a/criterias?category_id=
func (cc *CriteriaController) GetCriterias(c *fiber.Ctx) error {
	q := cc.DB.Where("deleted = ?", false)
	if catID := c.QueryInt("category_id"); catID > 0 {
		q = q.Where("category_id = ?", catID)
	}

	var criterias []model.CriteriaModel
	if err := q.
		Preload("Category", "deleted = ?", false).
		Preload("Category.Competition", "deleted = ?", false).
		Order("id desc").
		Find(&criterias).Error; err != nil {
		log.Println("[ERROR] Failed to fetch criteria:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch criteria")
	}
	return helper.Success(c, "Criteria fetched successfully", fiber.Map{
		"total":    len(criterias),
		"criteria": criterias,
	})
}

// POST /api/a/criterias
func (cc *CriteriaController) CreateCriteria(c *fiber.Ctx) error {
	var req dto.CreateCriteriaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var category model.CategoryModel
	if err := cc.DB.Where("id = ? AND deleted = ?", req.CategoryID, false).First(&category).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Category not found")
	}

	var count int64
	if err := cc.DB.Model(&model.CriteriaModel{}).
		Where("name = ? AND category_id = ? AND deleted = ?", req.Name, req.CategoryID, false).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] criteria uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create criteria")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Criteria with this name already exists in this category")
	}

	criteria := req.ToModel()
	if err := cc.DB.Create(criteria).Error; err != nil {
		log.Println("[ERROR] Failed to create criteria:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create criteria")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Criteria created successfully", criteria)
}

// PUT /api/a/criterias/:id
func (cc *CriteriaController) UpdateCriteria(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid criteria ID")
	}

	var req dto.UpdateCriteriaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var criteria model.CriteriaModel
	if err := cc.DB.Where("id = ? AND deleted = ?", id, false).First(&criteria).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Criteria not found")
	}

	var count int64
	if err := cc.DB.Model(&model.CriteriaModel{}).
		Where("name = ? AND category_id = ? AND deleted = ? AND id <> ?",
			req.Name, req.CategoryID, false, criteria.ID).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] criteria uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update criteria")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Criteria with this name already exists in this category")
	}

	criteria.Name = req.Name
	criteria.Percentage = req.Percentage
	criteria.CategoryID = req.CategoryID

	if err := cc.DB.Save(&criteria).Error; err != nil {
		log.Println("[ERROR] Failed to update criteria:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update criteria")
	}
	return helper.Success(c, "Criteria updated successfully", criteria)
}

// DELETE /api/a/criterias/:id (soft delete)
func (cc *CriteriaController) DeleteCriteria(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid criteria ID")
	}

	res := cc.DB.Model(&model.CriteriaModel{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		log.Println("[ERROR] Failed to delete criteria:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete criteria")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Criteria not found")
	}
	return helper.Success(c, "Criteria deleted successfully", nil)
}
