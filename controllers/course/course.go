package controllers

import (
	"errors"

	"tracker/logger"
	"tracker/middleware"
	"tracker/progression"

	"github.com/gofiber/fiber/v2"
)

// CourseController serves learner and admin course routes from the progression engine
type CourseController struct {
	Service *progression.Service
	Log     *logger.Logger
}

func NewCourseController(service *progression.Service, log *logger.Logger) *CourseController {
	if log == nil {
		log = logger.Nop()
	}
	return &CourseController{Service: service, Log: log}
}

// currentUser returns the user id set by JWTMiddleware, or 0
func currentUser(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userId").(uint)
	return userID
}

func localID(c *fiber.Ctx, key string) uint {
	id, _ := c.Locals(key).(uint)
	return id
}

// respondError maps engine errors onto the JSON envelope
func (cc *CourseController) respondError(c *fiber.Ctx, err error) error {
	var nf *progression.NotFoundError
	switch {
	case errors.As(err, &nf) && nf.Kind == "user":
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	case errors.As(err, &nf):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFoundMessage(nf.Kind), nil)
	case errors.Is(err, progression.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, progression.ErrUnauthorized):
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	case errors.Is(err, progression.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	case errors.Is(err, progression.ErrModuleHidden):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Module not available on your plan!", nil)
	case errors.Is(err, progression.ErrModuleLocked):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous modules to unlock this one!", nil)
	case errors.Is(err, progression.ErrNotQuiz):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a quiz!", nil)
	case errors.Is(err, progression.ErrQuizContent):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz content is completed by submitting the quiz!", nil)
	case errors.Is(err, progression.ErrInvalidScore):
		return middleware.ValidationErrorResponse(c, map[string]string{"score": err.Error()})
	}

	cc.Log.Error("course request failed", "path", c.Path(), "user_id", currentUser(c), "error", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

func notFoundMessage(kind string) string {
	switch kind {
	case "course":
		return "Course not found!"
	case "module":
		return "Module not found!"
	case "day":
		return "Day not found!"
	case "content":
		return "Course content not found!"
	}
	return "Not found!"
}
