package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/school-api/internal/config"
	"github.com/campuskit/school-api/internal/handler"
	"github.com/campuskit/school-api/internal/middleware"
	"github.com/campuskit/school-api/internal/observability"
	"github.com/campuskit/school-api/internal/token"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Tokens *token.Service

	AuthHandler         *handler.AuthHandler
	ExamHandler         *handler.ExamHandler
	FeeHandler          *handler.FeeHandler
	ResourceHandler     *handler.ResourceHandler
	ClassroomHandler    *handler.ClassroomHandler
	ResultsHandler      *handler.ResultsHandler
	ScheduleHandler     *handler.ScheduleHandler
	DiaryHandler        *handler.DiaryHandler
	DeviceHandler       *handler.DeviceHandler
	NotificationHandler *handler.NotificationHandler
}

// Register wires the HTTP routes into the fiber application. Gates are
// attached per subgroup so the public admin login stays outside the admin
// gate that covers the rest of /api/admin.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	requireUser := middleware.RequireUser(deps.Tokens)
	requireAdmin := middleware.RequireAdmin(deps.Tokens)

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	admin := api.Group("/admin")

	// Public surface: admin login plus the OTP reset flow.
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterAdminLogin(admin)
		deps.AuthHandler.RegisterPublic(api.Group("/auth"))
		deps.AuthHandler.RegisterUser(api.Group("/users", requireUser))
	}

	// Admin surface.
	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(admin.Group("/exams", requireAdmin))
	}
	if deps.FeeHandler != nil {
		deps.FeeHandler.Register(admin.Group("/fees", requireAdmin))
	}
	if deps.ResourceHandler != nil {
		deps.ResourceHandler.RegisterAdmin(admin.Group("/resources", requireAdmin))
	}
	if deps.ClassroomHandler != nil {
		deps.ClassroomHandler.Register(admin.Group("/classrooms", requireAdmin))
	}

	// Student surface.
	if deps.ResultsHandler != nil {
		deps.ResultsHandler.Register(api.Group("/results", requireUser))
	}
	student := api.Group("/student", requireUser)
	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(student.Group("/schedules"))
	}
	if deps.DiaryHandler != nil {
		deps.DiaryHandler.Register(student.Group("/diary"))
	}
	if deps.ResourceHandler != nil {
		deps.ResourceHandler.RegisterStudent(student.Group("/resources"))
	}

	// Shared authenticated surface.
	if deps.DeviceHandler != nil {
		deps.DeviceHandler.Register(api.Group("/devices", requireUser))
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", requireUser), requireAdmin)
	}
}
