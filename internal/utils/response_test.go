package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/utils"
)

func TestSendSuccessInlinesPayload(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, fiber.Map{"student": fiber.Map{"id": 7}})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success   bool                   `json:"success"`
		Timestamp string                 `json:"timestamp"`
		Student   map[string]interface{} `json:"student"`
	}
	decode(t, resp, &payload)

	require.True(t, payload.Success)
	require.Equal(t, float64(7), payload.Student["id"])

	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	require.NoError(t, err)
}

func TestSendSuccessWithStatus(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, fiber.Map{"created": true})
	})

	resp := performRequest(t, app, http.MethodPost, "/")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSendErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, utils.ErrNotFound("Exam not found"))
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	payload := decodeError(t, resp)
	require.False(t, payload.Success)
	require.Equal(t, utils.CodeNotFound, payload.Error.Code)
	require.Equal(t, "Exam not found", payload.Error.Message)
	require.Empty(t, payload.Error.Fields)
}

func TestSendErrorHidesUnknownErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.New("pq: connection refused"))
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	payload := decodeError(t, resp)
	require.Equal(t, utils.CodeInternal, payload.Error.Code)
	require.Equal(t, "Something went wrong", payload.Error.Message)
}

func TestSendValidationErrorFields(t *testing.T) {
	validate := validator.New()
	input := struct {
		Title string `validate:"required" json:"title"`
	}{}

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		return utils.SendValidationError(c, validate.Struct(input))
	})

	resp := performRequest(t, app, http.MethodPost, "/")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	payload := decodeError(t, resp)
	require.Equal(t, utils.CodeValidation, payload.Error.Code)
	require.Len(t, payload.Error.Fields, 1)
	require.Equal(t, "Title", payload.Error.Fields[0].Field)
	require.Equal(t, "is required", payload.Error.Fields[0].Message)
}

func TestDomainCodeStatuses(t *testing.T) {
	cases := map[string]int{
		utils.CodeExamNotFound:        fiber.StatusNotFound,
		utils.CodeExamAlreadyDeclared: fiber.StatusConflict,
		utils.CodeResultsNotGenerated: fiber.StatusConflict,
	}
	for code, want := range cases {
		err := &utils.AppError{Code: code, Message: "x"}
		require.Equal(t, want, err.Status(), code)
	}
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string             `json:"code"`
		Message string             `json:"message"`
		Details string             `json:"details"`
		Fields  []utils.FieldError `json:"fields"`
	} `json:"error"`
	Timestamp string `json:"timestamp"`
}

func decodeError(t *testing.T, resp *http.Response) errorEnvelope {
	t.Helper()
	var payload errorEnvelope
	decode(t, resp, &payload)
	return payload
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
