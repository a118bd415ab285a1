package presenters

import (
	"errors"

	"foodgram-backend/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err in the error envelope. Domain errors decide their
// own status code; status is used for anything else.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	status, detail := Classify(status, err)
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.OriginalURL(), message, err)
	}
	return c.Status(status).JSON(Response{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}

func Classify(fallback int, err error) (int, any) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case domain.KindValidation:
			return fiber.StatusBadRequest, domainErr.Message
		case domain.KindNotFound:
			return fiber.StatusNotFound, domain.MessageNotFound
		case domain.KindForbidden:
			return fiber.StatusForbidden, domain.MessageForbidden
		case domain.KindConflict:
			return fiber.StatusConflict, domainErr.Message
		case domain.KindUnauthorized:
			return fiber.StatusUnauthorized, domainErr.Message
		default:
			return fiber.StatusInternalServerError, domain.MessageFailedProcessRequest
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fiber.StatusBadRequest, fields
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	if fallback >= fiber.StatusInternalServerError {
		return fallback, domain.MessageFailedProcessRequest
	}
	if err == nil {
		return fallback, nil
	}
	return fallback, err.Error()
}
