package utils

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorBody is the inner error object of the failure envelope.
type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// SendSuccess sends the success envelope with the payload keys inlined at the
// top level next to success and timestamp.
func SendSuccess(c *fiber.Ctx, payload fiber.Map) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, payload)
}

// SendSuccessWithStatus sends a success envelope using the provided HTTP status.
func SendSuccessWithStatus(c *fiber.Ctx, status int, payload fiber.Map) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	body := fiber.Map{
		"success":   true,
		"timestamp": timestamp(),
	}
	for key, value := range payload {
		body[key] = value
	}

	return c.Status(status).JSON(body)
}

// SendError sends the failure envelope for the given error, translating
// unknown errors into the generic internal error.
func SendError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)

	return c.Status(appErr.Status()).JSON(fiber.Map{
		"success": false,
		"error": errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
			Fields:  appErr.Fields,
		},
		"timestamp": timestamp(),
	})
}

// SendValidationError converts validator errors into the 422 envelope with a
// fields array; other errors fall back to SendError.
func SendValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return SendError(c, err)
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fieldErr.Field(),
			Message: validationMessage(fieldErr),
		})
	}

	return SendError(c, ErrValidation(fields))
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "is too small"
	case "max":
		return "is too large"
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "oneof":
		return "must be one of " + fieldErr.Param()
	case "datetime":
		return "must be a valid date"
	default:
		return "is invalid"
	}
}
