package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/controller"
)

func CompetitionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	cc := controller.NewCompetitionController(db)
	competitions := admin.Group("/competitions")
	competitions.Get("/", cc.GetCompetitions)
	competitions.Post("/", cc.CreateCompetition)
	competitions.Put("/:id", cc.UpdateCompetition)
	competitions.Delete("/:id", cc.DeleteCompetition)
}
