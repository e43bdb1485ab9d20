package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/controller"
)

func CandidateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	cc := controller.NewCandidateController(db)
	candidates := admin.Group("/candidates")
	candidates.Get("/", cc.GetCandidates)
	candidates.Post("/", cc.CreateCandidate)
	candidates.Put("/:id", cc.UpdateCandidate)
	candidates.Delete("/:id", cc.DeleteCandidate)
}
