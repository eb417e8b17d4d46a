package controllers

import (
	"tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetContentPage returns one content item with its navigation links, after
// the enrollment, plan and module lock checks
func (cc *CourseController) GetContentPage(c *fiber.Ctx) error {
	page, err := cc.Service.ContentPage(c.UserContext(), currentUser(c), localID(c, "contentID"))
	if err != nil {
		return cc.respondError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", page)
}

// GetContentNavigation returns the previous and next items of a content item
func (cc *CourseController) GetContentNavigation(c *fiber.Ctx) error {
	nav, err := cc.Service.ResolveNavigation(c.UserContext(), localID(c, "contentID"))
	if err != nil {
		return cc.respondError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navigation fetched successfully!", nav)
}

// MarkContentComplete marks a video or text item as read
func (cc *CourseController) MarkContentComplete(c *fiber.Ctx) error {
	record, err := cc.Service.MarkCompleted(c.UserContext(), currentUser(c), localID(c, "contentID"))
	if err != nil {
		return cc.respondError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", record)
}
