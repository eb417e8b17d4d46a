package controllers

import (
	"tracker/middleware"
	courseValidator "tracker/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz records a quiz attempt with the score computed by the client
func (cc *CourseController) SubmitQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuizSubmission").(*courseValidator.QuizSubmission)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := cc.Service.SubmitQuiz(c.UserContext(), currentUser(c), localID(c, "contentID"), *reqData.Score, reqData.TotalQuestions)
	if err != nil {
		return cc.respondError(c, err)
	}

	if result.Exhausted() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Maximum attempts reached!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", result)
}
