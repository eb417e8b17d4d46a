package controllers

import (
	"tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetOrderingIssues lists siblings sharing an order value in a course, so
// authors can fix the data
func (cc *CourseController) GetOrderingIssues(c *fiber.Ctx) error {
	issues, err := cc.Service.OrderingIssues(c.UserContext(), localID(c, "courseID"))
	if err != nil {
		return cc.respondError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ordering issues fetched successfully!", fiber.Map{
		"issues": issues,
		"count":  len(issues),
	})
}
