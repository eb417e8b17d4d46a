package courseRoutes

import (
	controllers "tracker/controllers/course"
	"tracker/middleware"
	"tracker/models"
	validators "tracker/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminCourseRoutes sets up course health routes for admins
func SetupAdminCourseRoutes(app *fiber.App, db *gorm.DB, cc *controllers.CourseController) {
	adminGroup := app.Group("/admin/course")

	adminGroup.Get("/:course_id/ordering-issues",
		middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(db, models.PermissionViewCourseHealth),
		validators.CourseParams(),
		cc.GetOrderingIssues,
	)
}
