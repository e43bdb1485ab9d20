package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/service"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

// ReportController exposes the admin projections over the aggregation
// engine: status grid, judge-by-judge view, print sheet, Excel export.
type ReportController struct {
	Service *service.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Service: service.NewReportService(db)}
}

func competitionIDQuery(c *fiber.Ctx) (uint, error) {
	id := c.QueryInt("competition_id")
	if id < 1 {
		return 0, helper.Error(c, fiber.StatusBadRequest, "competition_id is required")
	}
	return uint(id), nil
}

// GET /api/a/scoring/status?competition_id=
func (rc *ReportController) GetStatus(c *fiber.Ctx) error {
	competitionID, err := competitionIDQuery(c)
	if err != nil {
		return err
	}
	grid, svcErr := rc.Service.StatusGrid(competitionID)
	if svcErr != nil {
		return helper.Respond(c, svcErr)
	}
	return helper.Success(c, "Scoring status fetched successfully", fiber.Map{
		"total":      len(grid),
		"candidates": grid,
	})
}

// GET /api/a/scoring/view?competition_id=
func (rc *ReportController) GetView(c *fiber.Ctx) error {
	competitionID, err := competitionIDQuery(c)
	if err != nil {
		return err
	}
	categories, candidates, svcErr := rc.Service.JudgeView(competitionID)
	if svcErr != nil {
		return helper.Respond(c, svcErr)
	}
	return helper.Success(c, "Score view fetched successfully", fiber.Map{
		"categories": categories,
		"candidates": candidates,
	})
}

// GET /api/a/scoring/print?competition_id=&level=
func (rc *ReportController) GetPrint(c *fiber.Ctx) error {
	competitionID, err := competitionIDQuery(c)
	if err != nil {
		return err
	}
	level := strings.ToUpper(strings.TrimSpace(c.Query("level")))

	ranked, svcErr := rc.Service.PrintProjection(competitionID, level)
	if svcErr != nil {
		return helper.Respond(c, svcErr)
	}
	return helper.Success(c, "Print projection fetched successfully", fiber.Map{
		"total":       len(ranked),
		"level":       level,
		"level_label": constants.LevelLabels[level],
		"candidates":  ranked,
	})
}

// POST /api/a/scoring/export
func (rc *ReportController) ExportScores(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	dataset, err := rc.Service.ExportRows(&req)
	if err != nil {
		return helper.Respond(c, err)
	}

	buf, err := buildWorkbook(dataset)
	if err != nil {
		log.Println("[ERROR] Failed to build workbook:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build export")
	}

	filename := fmt.Sprintf("%s-scores.xlsx", slugify(dataset.Competition.Name))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf)
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	if s == "" {
		s = "competition"
	}
	return s
}

// buildWorkbook lays the export out as a plain grid: candidate columns,
// judge, criteria columns grouped per category with a category total, final.
func buildWorkbook(dataset *service.ExportDataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Scores"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"#", "Candidate", "Course", "Gender", "Level", "Judge"}
	type column struct {
		criteriaID uint // 0 for a category-total column
		category   string
		header     string
	}
	var columns []column
	for _, cat := range dataset.Categories {
		for _, cr := range cat.Criteria {
			columns = append(columns, column{
				criteriaID: cr.ID,
				category:   cat.Name,
				header:     fmt.Sprintf("%s (%d%%)", cr.Name, cr.Percentage),
			})
		}
		columns = append(columns, column{
			category: cat.Name,
			header:   fmt.Sprintf("%s Total", cat.Name),
		})
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(len(headers)+i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return nil, err
		}
	}
	finalCell, err := excelize.CoordinatesToCellName(len(headers)+len(columns)+1, 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, finalCell, "Final"); err != nil {
		return nil, err
	}

	for rowIdx, row := range dataset.Rows {
		rowNum := rowIdx + 2
		values := []interface{}{
			row.CandidateNumber, row.CandidateName, row.Course, row.Gender, row.Level, row.JudgeName,
		}
		for _, col := range columns {
			if col.criteriaID != 0 {
				if v, ok := row.CriteriaScores[col.criteriaID]; ok {
					values = append(values, v)
				} else {
					values = append(values, nil)
				}
				continue
			}
			if v := row.CategoryScores[col.category]; v != nil {
				values = append(values, *v)
			} else {
				values = append(values, nil)
			}
		}
		if row.FinalScore != nil {
			values = append(values, *row.FinalScore)
		} else {
			values = append(values, nil)
		}

		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
