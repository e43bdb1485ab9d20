package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/controller"
)

func CategoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	cc := controller.NewCategoryController(db)
	categories := admin.Group("/categories")
	categories.Get("/", cc.GetCategories)
	categories.Post("/", cc.CreateCategory)
	categories.Put("/:id", cc.UpdateCategory)
	categories.Delete("/:id", cc.DeleteCategory)

	crc := controller.NewCriteriaController(db)
	criterias := admin.Group("/criterias")
	criterias.Get("/", crc.GetCriterias)
	criterias.Post("/", crc.CreateCriteria)
	criterias.Put("/:id", crc.UpdateCriteria)
	criterias.Delete("/:id", crc.DeleteCriteria)
}
