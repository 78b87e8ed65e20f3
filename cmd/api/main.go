package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/config"
	"github.com/campuskit/school-api/internal/database"
	"github.com/campuskit/school-api/internal/handler"
	"github.com/campuskit/school-api/internal/middleware"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/router"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
	"github.com/campuskit/school-api/pkg/storage"
	"github.com/campuskit/school-api/pkg/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Admin{}, &models.Teacher{}, &models.Student{},
		&models.Classroom{}, &models.StudentEnrollment{}, &models.Subject{},
		&models.Exam{}, &models.ExamSummary{}, &models.ExamMark{},
		&models.DailyTest{}, &models.DailyTestMark{},
		&models.FeeTransaction{}, &models.DiaryEntry{},
		&models.StudyResource{}, &models.ScheduleFile{},
		&models.Notification{}, &models.DeviceToken{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	store, err := storage.New(context.Background(), storage.Config{
		Endpoint:        cfg.SupabaseURL,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKeyID,
		SecretAccessKey: cfg.StorageSecretKey,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create object store client: %v", err)
	}

	otpSender, err := whatsapp.New(whatsapp.Config{
		AccessToken:   cfg.WhatsAppAccessToken,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create whatsapp client: %v", err)
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	validate := validator.New(validator.WithRequiredStructEnabled())

	accountRepo := repository.NewAccountRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	examRepo := repository.NewExamRepository(db)
	resultRepo := repository.NewResultRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	driver, natsConn := notificationDriver(cfg, deviceRepo, logger)
	if natsConn != nil {
		defer natsConn.Close()
	}

	authService := service.NewAuthService(accountRepo, tokens, validate, logger)
	otpService := service.NewOTPService(accountRepo, redisClient, otpSender, validate, logger)
	performanceService := service.NewPerformanceService(enrollmentRepo, resultRepo, logger)
	resultService := service.NewResultService(enrollmentRepo, resultRepo, logger)
	examService := service.NewExamService(examRepo, logger)
	feeService := service.NewFeeService(feeRepo, enrollmentRepo, validate, logger)
	resourceService := service.NewResourceService(resourceRepo, store, cfg.ResourcesBucket, cfg.SignedURLTTL, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, store, cfg.SchedulesBucket, cfg.SignedURLTTL, logger)
	diaryService := service.NewDiaryService(diaryRepo)
	deviceService := service.NewDeviceService(deviceRepo, validate)
	classroomService := service.NewClassroomService(classroomRepo)
	notificationService := service.NewNotificationService(notificationRepo, driver, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: envelopeErrorHandler,
	})

	middleware.Register(app, middleware.Config{Logger: logger})
	router.Register(app, cfg, router.Dependencies{
		Tokens:              tokens,
		AuthHandler:         handler.NewAuthHandler(authService, otpService, logger),
		ExamHandler:         handler.NewExamHandler(examService, logger),
		FeeHandler:          handler.NewFeeHandler(feeService, logger),
		ResourceHandler:     handler.NewResourceHandler(resourceService, logger),
		ClassroomHandler:    handler.NewClassroomHandler(classroomService, logger),
		ResultsHandler:      handler.NewResultsHandler(performanceService, resultService, logger),
		ScheduleHandler:     handler.NewScheduleHandler(scheduleService, logger),
		DiaryHandler:        handler.NewDiaryHandler(diaryService, logger),
		DeviceHandler:       handler.NewDeviceHandler(deviceService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// envelopeErrorHandler keeps errors that escape a handler inside the response
// envelope. Router misses stay 404s; everything else is the generic 500.
func envelopeErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return utils.SendError(c, utils.ErrNotFound(""))
		case fiber.StatusMethodNotAllowed:
			return utils.SendError(c, &utils.AppError{Code: utils.CodeNotFound, Message: "Resource not found"})
		}
	}

	return utils.SendError(c, err)
}

// notificationDriver selects the delivery driver at startup. The queue driver
// needs a live NATS connection; the sync driver delivers inline.
func notificationDriver(cfg config.Config, devices repository.DeviceRepository, logger zerolog.Logger) (service.NotificationDriver, *nats.Conn) {
	if cfg.NotificationDriver == config.DriverQueue {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		return service.NewQueueDriver(conn, "", logger), conn
	}

	return service.NewSyncDriver(devices, service.LogPusher{Logger: logger}, logger), nil
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
