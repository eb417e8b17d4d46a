package courseValidator

import (
	"strconv"
	"strings"

	"tracker/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseID reads a positive integer route parameter
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// CourseParams validates the course_id route parameter
func CourseParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// ModuleParams validates course_id and module_id route parameters
func ModuleParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		moduleID, ok := parseID(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// ContentParams validates the content_id route parameter
func ContentParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseID(c, "content_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// QuizSubmission is the body of a quiz submission. Score against total is
// checked by the service, after the attempt cap.
type QuizSubmission struct {
	Score          *int `json:"score" validate:"required,min=0"`
	TotalQuestions int  `json:"total_questions" validate:"required,min=1"`
}

// SubmitQuiz validates a quiz submission request
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseID(c, "content_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		reqData := new(QuizSubmission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range fieldErrs {
					errors[fieldName(fe.Field())] = validationMessage(fe)
				}
			} else {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}

func fieldName(field string) string {
	switch field {
	case "Score":
		return "score"
	case "TotalQuestions":
		return "total_questions"
	}
	return strings.ToLower(field)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fieldName(fe.Field()) + " is required!"
	case "min":
		return fieldName(fe.Field()) + " must be at least " + fe.Param() + "!"
	}
	return fieldName(fe.Field()) + " is invalid!"
}
