package courseRoutes

import (
	controllers "tracker/controllers/course"
	"tracker/middleware"
	validators "tracker/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App, cc *controllers.CourseController) {
	userGroup := app.Group("/course")

	// Course tree and module state
	userGroup.Get("/:course_id/outline", middleware.JWTMiddleware, validators.CourseParams(), cc.GetCourseOutline)
	userGroup.Get("/:course_id/modules", middleware.JWTMiddleware, validators.CourseParams(), cc.GetVisibleModules)
	userGroup.Get("/:course_id/module/:module_id/lock", middleware.JWTMiddleware, validators.ModuleParams(), cc.GetModuleLock)

	// Content viewing and navigation
	contentGroup := userGroup.Group("/content")
	contentGroup.Get("/:content_id", middleware.JWTMiddleware, validators.ContentParams(), cc.GetContentPage)
	contentGroup.Get("/:content_id/navigation", middleware.JWTMiddleware, validators.ContentParams(), cc.GetContentNavigation)

	// Completion and quiz submission
	contentGroup.Post("/:content_id/complete", middleware.JWTMiddleware, validators.ContentParams(), cc.MarkContentComplete)
	contentGroup.Post("/:content_id/quiz/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), cc.SubmitQuiz)
}
