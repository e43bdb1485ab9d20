package controller

import (
	"log"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
	"github.com/JPAVictoria/LOA-Tabulation/internals/helpers/oss"
)

var validate = validator.New()

type CandidateController struct {
	DB *gorm.DB
}

func NewCandidateController(db *gorm.DB) *CandidateController {
	return &CandidateController{DB: db}
}

// GET /api/a/candidates?competition_id=&page=&per_page=
func (cc *CandidateController) GetCandidates(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 500)

	q := cc.DB.Model(&model.CandidateModel{}).Where("deleted = ?", false)
	if compID := c.QueryInt("competition_id"); compID > 0 {
		q = q.Where("competition_id = ?", compID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] Failed to count candidates:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch candidates")
	}

	var candidates []model.CandidateModel
	if err := q.
		Order("id desc").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&candidates).Error; err != nil {
		log.Println("[ERROR] Failed to fetch candidates:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch candidates")
	}

	return helper.Success(c, "Candidates fetched successfully", fiber.Map{
		"candidates": candidates,
		"pagination": helper.BuildPagination(total, paging, len(candidates)),
	})
}

// POST /api/a/candidates (multipart, optional image)
func (cc *CandidateController) CreateCandidate(c *fiber.Ctx) error {
	form := dto.ParseCandidateForm(c)
	if err := validate.Struct(&form); err != nil {
		return helper.ValidationError(c, err)
	}

	var comp competitionModel.CompetitionModel
	if err := cc.DB.Where("id = ? AND deleted = ?", form.CompetitionID, false).First(&comp).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Competition not found")
	}

	dup, err := cc.numberTaken(form.CompetitionID, form.Level, form.CandidateNumber, 0)
	if err != nil {
		log.Println("[ERROR] candidate number check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create candidate")
	}
	if dup {
		return helper.Error(c, fiber.StatusBadRequest, "Candidate number already exists in this competition")
	}

	candidate := form.ToModel()

	if fh, err := c.FormFile("image"); err == nil && fh != nil && fh.Size > 0 {
		url, err := uploadPhoto(fh)
		if err != nil {
			log.Println("[ERROR] photo upload:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to upload image")
		}
		candidate.ImageURL = &url
	}

	if err := cc.DB.Create(candidate).Error; err != nil {
		log.Println("[ERROR] Failed to create candidate:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create candidate")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Candidate created successfully", candidate)
}

// PUT /api/a/candidates/:id (multipart; image replace / remove_image=true)
func (cc *CandidateController) UpdateCandidate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid candidate ID")
	}

	var candidate model.CandidateModel
	if err := cc.DB.Where("id = ? AND deleted = ?", id, false).First(&candidate).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Candidate not found")
	}

	form := dto.ParseCandidateForm(c)
	if err := validate.Struct(&form); err != nil {
		return helper.ValidationError(c, err)
	}

	dup, err := cc.numberTaken(form.CompetitionID, form.Level, form.CandidateNumber, candidate.ID)
	if err != nil {
		log.Println("[ERROR] candidate number check:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update candidate")
	}
	if dup {
		return helper.Error(c, fiber.StatusBadRequest, "Candidate number already exists in this competition")
	}

	if form.RemoveImage {
		removePhoto(candidate.ImageURL)
		candidate.ImageURL = nil
	} else if fh, err := c.FormFile("image"); err == nil && fh != nil && fh.Size > 0 {
		removePhoto(candidate.ImageURL)
		url, err := uploadPhoto(fh)
		if err != nil {
			log.Println("[ERROR] photo upload:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to upload image")
		}
		candidate.ImageURL = &url
	}

	candidate.Name = form.Name
	candidate.Course = form.Course
	candidate.CandidateNumber = form.CandidateNumber
	candidate.Gender = form.Gender
	candidate.Level = form.Level
	candidate.CompetitionID = form.CompetitionID

	if err := cc.DB.Save(&candidate).Error; err != nil {
		log.Println("[ERROR] Failed to update candidate:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update candidate")
	}
	return helper.Success(c, "Candidate updated successfully", candidate)
}

// DELETE /api/a/candidates/:id (soft delete; photo removed best-effort)
func (cc *CandidateController) DeleteCandidate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid candidate ID")
	}

	var candidate model.CandidateModel
	if err := cc.DB.Where("id = ? AND deleted = ?", id, false).First(&candidate).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Candidate not found")
	}

	if err := cc.DB.Model(&candidate).Update("deleted", true).Error; err != nil {
		log.Println("[ERROR] Failed to delete candidate:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete candidate")
	}

	removePhoto(candidate.ImageURL)
	return helper.Success(c, "Candidate deleted successfully", nil)
}

// numberTaken reports whether another live candidate already holds this
// number within (competition, level).
func (cc *CandidateController) numberTaken(competitionID uint, level string, number int, excludeID uint) (bool, error) {
	q := cc.DB.Model(&model.CandidateModel{}).
		Where("candidate_number = ? AND competition_id = ? AND level = ? AND deleted = ?",
			number, competitionID, level, false)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func uploadPhoto(fh *multipart.FileHeader) (string, error) {
	client, err := oss.Default()
	if err != nil {
		return "", err
	}
	return client.UploadCandidatePhoto(fh)
}

func removePhoto(imageURL *string) {
	if imageURL == nil || *imageURL == "" {
		return
	}
	client, err := oss.Default()
	if err != nil {
		log.Println("[WARN] photo removal skipped:", err)
		return
	}
	if err := client.RemoveByURL(*imageURL); err != nil {
		log.Println("[WARN] failed to delete photo:", err)
	}
}
