package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

// DeviceService manages push device registrations for authenticated callers.
type DeviceService interface {
	Register(ctx context.Context, principal token.Principal, req dto.DeviceRegisterRequest) error
	Unregister(ctx context.Context, tokenValue string) error
}

type deviceService struct {
	devices  repository.DeviceRepository
	validate *validator.Validate
}

// NewDeviceService constructs a device service.
func NewDeviceService(devices repository.DeviceRepository, validate *validator.Validate) DeviceService {
	return &deviceService{devices: devices, validate: validate}
}

// Register upserts the device by token, binding it to the caller so topic and
// direct fan-out can find it.
func (s *deviceService) Register(ctx context.Context, principal token.Principal, req dto.DeviceRegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	device := models.DeviceToken{
		Token:         req.Token,
		Platform:      req.Platform,
		RecipientType: principal.Role,
		RecipientID:   strconv.FormatUint(uint64(principal.ID()), 10),
		IsValid:       true,
	}

	return s.devices.Upsert(ctx, &device)
}

// Unregister removes the device row for the token. Unknown tokens yield
// NOT_FOUND so clients can stop retrying.
func (s *deviceService) Unregister(ctx context.Context, tokenValue string) error {
	if tokenValue == "" {
		return utils.ErrValidation([]utils.FieldError{{Field: "token", Message: "is required"}})
	}

	affected, err := s.devices.DeleteByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if affected == 0 {
		return utils.ErrNotFound("Device not found")
	}

	return nil
}
