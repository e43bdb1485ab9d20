package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/users/controller"
	"github.com/JPAVictoria/LOA-Tabulation/internals/middlewares"
)

// AuthRoutes: public login.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ac := controller.NewAuthController(db)
	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ac.Login)
}

// JudgeAdminRoutes: judge account CRUD, admin only.
func JudgeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	jc := controller.NewJudgeController(db)
	judges := admin.Group("/judges")
	judges.Get("/", jc.GetJudges)
	judges.Post("/", jc.CreateJudge)
	judges.Put("/:id", jc.UpdateJudge)
	judges.Delete("/:id", jc.DeleteJudge)
}
