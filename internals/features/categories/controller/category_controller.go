package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

var validate = validator.New()

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GET /api/a/categories?competition_id=
func (cc *CategoryController) GetCategories(c *fiber.Ctx) error {
	q := cc.DB.Where("deleted = ?", false)
	if compID := c.QueryInt("competition_id"); compID > 0 {
		q = q.Where("competition_id = ?", compID)
	}

	var categories []model.CategoryModel
	if err := q.
		Preload("Criteria", "deleted = ?", false).
		Order("id desc").
		Find(&categories).Error; err != nil {
		log.Println("[ERROR] Failed to fetch categories:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, dto.CategoryResponse{
			ID:             categories[i].ID,
			CompetitionID:  categories[i].CompetitionID,
			Name:           categories[i].Name,
			CategoryWeight: categories[i].CategoryWeight,
			CriteriaCount:  len(categories[i].Criteria),
		})
	}
	return helper.Success(c, "Categories fetched successfully", fiber.Map{
		"total":      len(out),
		"categories": out,
	})
}

// POST /api/a/categories
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var comp competitionModel.CompetitionModel
	if err := cc.DB.Where("id = ? AND deleted = ?", req.CompetitionID, false).First(&comp).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Competition not found")
	}

	var count int64
	if err := cc.DB.Model(&model.CategoryModel{}).
		Where("name = ? AND competition_id = ? AND deleted = ?", req.Name, req.CompetitionID, false).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] category uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create category")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Category with this name already exists in this competition")
	}

	category := req.ToModel()
	if err := cc.DB.Create(category).Error; err != nil {
		log.Println("[ERROR] Failed to create category:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create category")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Category created successfully", category)
}

// PUT /api/a/categories/:id
func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var category model.CategoryModel
	if err := cc.DB.Where("id = ? AND deleted = ?", id, false).First(&category).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Category not found")
	}

	var count int64
	if err := cc.DB.Model(&model.CategoryModel{}).
		Where("name = ? AND competition_id = ? AND deleted = ? AND id <> ?",
			req.Name, req.CompetitionID, false, category.ID).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] category uniqueness check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Category with this name already exists in this competition")
	}

	category.Name = req.Name
	category.CompetitionID = req.CompetitionID
	category.CategoryWeight = req.CategoryWeight

	if err := cc.DB.Save(&category).Error; err != nil {
		log.Println("[ERROR] Failed to update category:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	return helper.Success(c, "Category updated successfully", category)
}

// DELETE /api/a/categories/:id (soft delete)
func (cc *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	res := cc.DB.Model(&model.CategoryModel{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		log.Println("[ERROR] Failed to delete category:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Category not found")
	}
	return helper.Success(c, "Category deleted successfully", nil)
}
