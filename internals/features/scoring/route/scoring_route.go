package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/controller"
)

// ScoringJudgeRoutes: score ingestion and the score sheet, judge only.
func ScoringJudgeRoutes(judge fiber.Router, db *gorm.DB) {
	sc := controller.NewScoringController(db)
	scores := judge.Group("/scores")
	scores.Post("/", sc.SubmitScores)
	scores.Put("/:candidateId", sc.UpdateScores)
	scores.Get("/:candidateId", sc.GetScoreSheet)
}

// ScoringAdminRoutes: aggregation projections, admin only.
func ScoringAdminRoutes(admin fiber.Router, db *gorm.DB) {
	rc := controller.NewReportController(db)
	scoring := admin.Group("/scoring")
	scoring.Get("/status", rc.GetStatus)
	scoring.Get("/view", rc.GetView)
	scoring.Get("/print", rc.GetPrint)
	scoring.Post("/export", rc.ExportScores)
}
