package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned inside the failure envelope.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeExamNotFound        = "EXAM_NOT_FOUND"
	CodeExamAlreadyDeclared = "EXAM_ALREADY_DECLARED"
	CodeResultsNotGenerated = "RESULTS_NOT_GENERATED"
	CodeInternal            = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	CodeUnauthorized:        fiber.StatusUnauthorized,
	CodeForbidden:           fiber.StatusForbidden,
	CodeValidation:          fiber.StatusUnprocessableEntity,
	CodeNotFound:            fiber.StatusNotFound,
	CodeConflict:            fiber.StatusConflict,
	CodeExamNotFound:        fiber.StatusNotFound,
	CodeExamAlreadyDeclared: fiber.StatusConflict,
	CodeResultsNotGenerated: fiber.StatusConflict,
	CodeInternal:            fiber.StatusInternalServerError,
}

// FieldError names one offending request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the single error type handlers translate into the failure
// envelope. Code must be one of the Code* constants.
type AppError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Status maps the error code to its HTTP status.
func (e *AppError) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// ErrUnauthorized creates the canonical 401 error.
func ErrUnauthorized() *AppError {
	return &AppError{Code: CodeUnauthorized, Message: "Unauthorized"}
}

// ErrForbidden creates a 403 error with the given message.
func ErrForbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// ErrValidation creates a 422 error carrying per-field messages.
func ErrValidation(fields []FieldError) *AppError {
	return &AppError{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// ErrNotFound creates a 404 error. The message never discloses whether the
// absence is a permission issue or true non-existence.
func ErrNotFound(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return &AppError{Code: CodeNotFound, Message: message}
}

// ErrConflict creates a 409 error with an optional domain-specific code.
func ErrConflict(code, message string) *AppError {
	if code == "" {
		code = CodeConflict
	}
	return &AppError{Code: code, Message: message}
}

// ErrInternal creates a generic 500 error. Upstream detail is for logs only.
func ErrInternal() *AppError {
	return &AppError{Code: CodeInternal, Message: "Something went wrong"}
}

// AsAppError extracts an AppError from an error chain, defaulting to the
// generic internal error so no upstream message leaks to clients.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal()
}
