package controllers

import (
	"tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCourseOutline returns the learner's course tree with lock and completion state
func (cc *CourseController) GetCourseOutline(c *fiber.Ctx) error {
	outline, err := cc.Service.Outline(c.UserContext(), currentUser(c), localID(c, "courseID"))
	if err != nil {
		return cc.respondError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course outline fetched successfully!", outline)
}

// GetVisibleModules returns the modules the user's plan can see
func (cc *CourseController) GetVisibleModules(c *fiber.Ctx) error {
	modules, err := cc.Service.VisibleModules(c.UserContext(), currentUser(c), localID(c, "courseID"))
	if err != nil {
		return cc.respondError(c, err)
	}

	type moduleSummary struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
		Order int    `json:"order"`
	}
	summaries := make([]moduleSummary, len(modules))
	for i, m := range modules {
		summaries[i] = moduleSummary{ID: m.ID, Title: m.Title, Order: m.Order}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": summaries,
	})
}

// GetModuleLock reports whether a module is still locked for the user
func (cc *CourseController) GetModuleLock(c *fiber.Ctx) error {
	moduleID := localID(c, "moduleID")
	if err := cc.Service.CheckModuleCourse(c.UserContext(), localID(c, "courseID"), moduleID); err != nil {
		return cc.respondError(c, err)
	}
	locked, err := cc.Service.IsModuleLocked(c.UserContext(), currentUser(c), moduleID)
	if err != nil {
		return cc.respondError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module lock state fetched successfully!", fiber.Map{
		"module_id": moduleID,
		"locked":    locked,
	})
}
