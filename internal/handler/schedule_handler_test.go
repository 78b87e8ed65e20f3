package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/handler"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

type mockScheduleService struct {
	schedule    dto.DailyScheduleResponse
	etag        string
	dailyCalls  int
	terms       []dto.ExamTermResponse
	classroomID uint
}

func (m *mockScheduleService) Daily(_ context.Context, classroomID uint) (dto.DailyScheduleResponse, string, error) {
	m.dailyCalls++
	m.classroomID = classroomID
	return m.schedule, m.etag, nil
}

func (m *mockScheduleService) ExamTerms(_ context.Context, classroomID uint) ([]dto.ExamTermResponse, error) {
	m.classroomID = classroomID
	return m.terms, nil
}

func newScheduleApp(svc *mockScheduleService, principal token.Principal) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if principal.IsValid() {
			c.Locals("principal", principal)
		}
		return c.Next()
	})
	handler.NewScheduleHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/student/schedules"))
	return app
}

func TestScheduleHandler_DailySetsETag(t *testing.T) {
	svc := &mockScheduleService{
		schedule: dto.DailyScheduleResponse{ClassroomID: 3, Version: 2, URL: "https://signed", ExpiresAt: time.Now()},
		etag:     "schedule-3-daily-0-v2",
	}
	app := newScheduleApp(svc, token.Principal{Role: models.RoleStudent, StudentID: 7, ClassroomID: 3})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student/schedules/daily", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "schedule-3-daily-0-v2", resp.Header.Get(fiber.HeaderETag))
	require.Equal(t, "private, max-age=60", resp.Header.Get(fiber.HeaderCacheControl))
	require.Equal(t, uint(3), svc.classroomID)

	var body struct {
		Success  bool                      `json:"success"`
		Schedule dto.DailyScheduleResponse `json:"schedule"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "https://signed", body.Schedule.URL)
}

func TestScheduleHandler_DailyNotModified(t *testing.T) {
	svc := &mockScheduleService{etag: "schedule-3-daily-0-v2"}
	app := newScheduleApp(svc, token.Principal{Role: models.RoleStudent, StudentID: 7, ClassroomID: 3})

	req := httptest.NewRequest(http.MethodGet, "/api/student/schedules/daily", nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, "schedule-3-daily-0-v2")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotModified, resp.StatusCode)
}

func TestScheduleHandler_DailyRequiresClassroom(t *testing.T) {
	app := newScheduleApp(&mockScheduleService{}, token.Principal{Role: models.RoleAdmin, AdminID: 1})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student/schedules/daily", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body := decodeErrorResponse(t, resp)
	require.Equal(t, utils.CodeForbidden, body.Error.Code)
}

func TestScheduleHandler_DailyWithoutPrincipal(t *testing.T) {
	app := newScheduleApp(&mockScheduleService{}, token.Principal{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student/schedules/daily", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestScheduleHandler_ExamTerms(t *testing.T) {
	svc := &mockScheduleService{terms: []dto.ExamTermResponse{{ExamID: 10, ExamName: "Midterm", MaxVersion: 3, HasCurrent: true}}}
	app := newScheduleApp(svc, token.Principal{Role: models.RoleStudent, StudentID: 7, ClassroomID: 3})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/student/schedules/exam/terms", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Terms   []dto.ExamTermResponse `json:"terms"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Terms, 1)
	require.Equal(t, 3, body.Terms[0].MaxVersion)
}
