package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tracker/logger"
	"tracker/progression"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StatusMapping(t *testing.T) {
	cc := NewCourseController(nil, logger.Nop())

	cases := []struct {
		err    error
		status int
	}{
		{&progression.NotFoundError{Kind: "user", ID: 4}, http.StatusUnauthorized},
		{&progression.NotFoundError{Kind: "module", ID: 4}, http.StatusNotFound},
		{fmt.Errorf("load: %w", &progression.NotFoundError{Kind: "content", ID: 4}), http.StatusNotFound},
		{progression.ErrUnauthorized, http.StatusUnauthorized},
		{progression.ErrNotEnrolled, http.StatusForbidden},
		{progression.ErrModuleHidden, http.StatusForbidden},
		{progression.ErrModuleLocked, http.StatusForbidden},
		{progression.ErrNotQuiz, http.StatusBadRequest},
		{progression.ErrQuizContent, http.StatusBadRequest},
		{fmt.Errorf("%w: score 9 outside 0..4", progression.ErrInvalidScore), http.StatusUnprocessableEntity},
		{progression.ErrInvalidTree, http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return cc.respondError(c, tc.err) })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Course not found!", notFoundMessage("course"))
	assert.Equal(t, "Course content not found!", notFoundMessage("content"))
	assert.Equal(t, "Not found!", notFoundMessage("plan"))
}
