package presenters

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"foodgram-backend/domain"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDomainKinds(t *testing.T) {
	cases := []struct {
		err      error
		fallback int
		status   int
		detail   any
	}{
		{domain.NewValidationError("bad input"), 500, fiber.StatusBadRequest, "bad input"},
		{fmt.Errorf("wrapped: %w", domain.NewNotFoundError("recipe 42 missing")), 500, fiber.StatusNotFound, "not found"},
		{domain.NewForbiddenError("not your recipe"), 500, fiber.StatusForbidden, "forbidden"},
		{domain.NewConflictError("slug taken"), 500, fiber.StatusConflict, "slug taken"},
		{domain.ErrTokenInvalid, 500, fiber.StatusUnauthorized, "token invalid"},
		{errors.New("connection reset"), 500, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest},
		{errors.New("cannot parse"), 400, fiber.StatusBadRequest, "cannot parse"},
	}

	for _, tc := range cases {
		status, detail := Classify(tc.fallback, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.detail, detail, tc.err.Error())
	}
}

func TestClassifyValidatorErrors(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	err := validator.New().Struct(payload{})

	status, detail := Classify(fiber.StatusInternalServerError, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, map[string]string{"Name": "required"}, detail)
}

func TestErrorResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusInternalServerError, "failed", domain.NewNotFoundError("x"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var res Response
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Status)
	assert.Equal(t, "failed", res.Message)
	assert.Equal(t, "not found", res.Error)
}
