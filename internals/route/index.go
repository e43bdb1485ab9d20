package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/constants"
	"github.com/JPAVictoria/LOA-Tabulation/internals/middlewares/auth"

	candidateRoute "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/route"
	categoryRoute "github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/route"
	competitionRoute "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/route"
	scoringRoute "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/route"
	userRoute "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/route"
)

// SetupRoutes mounts the whole API surface:
//
//	/api/auth  public login
//	/api/a     admin-only management and reporting
//	/api/j     judge-only score ingestion
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	userRoute.AuthRoutes(app, db)

	admin := app.Group("/api/a",
		auth.AuthMiddleware(db),
		auth.OnlyRoles("Admin access required", constants.RoleAdmin),
	)
	competitionRoute.CompetitionAdminRoutes(admin, db)
	categoryRoute.CategoryAdminRoutes(admin, db)
	candidateRoute.CandidateAdminRoutes(admin, db)
	userRoute.JudgeAdminRoutes(admin, db)
	scoringRoute.ScoringAdminRoutes(admin, db)

	judge := app.Group("/api/j",
		auth.AuthMiddleware(db),
		auth.OnlyRoles("Judge access required", constants.RoleJudge),
	)
	scoringRoute.ScoringJudgeRoutes(judge, db)
}
