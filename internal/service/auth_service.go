package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

// AuthService signs principals in and manages password changes.
type AuthService interface {
	AdminLogin(ctx context.Context, payload dto.AdminLoginRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, principal token.Principal, payload dto.ChangePasswordRequest) error
}

type authService struct {
	accounts  repository.AccountRepository
	tokens    *token.Service
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs an auth service.
func NewAuthService(accounts repository.AccountRepository, tokens *token.Service, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		accounts:  accounts,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) AdminLogin(ctx context.Context, payload dto.AdminLoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	admin, err := s.accounts.FindAdminByMobile(ctx, payload.Mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, utils.ErrUnauthorized()
		}
		return dto.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)) != nil {
		return dto.LoginResponse{}, utils.ErrUnauthorized()
	}

	if !admin.IsActive {
		return dto.LoginResponse{}, utils.ErrForbidden("Account is deactivated")
	}

	signed, err := s.tokens.Sign(token.Principal{
		Role:    models.RoleAdmin,
		Name:    admin.Name,
		AdminID: admin.ID,
	})
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if err := s.accounts.TouchAdminLogin(ctx, admin.ID); err != nil {
		s.logger.Warn().Err(err).Uint("admin_id", admin.ID).Msg("failed to record last login")
	}

	return dto.LoginResponse{
		Token: signed,
		User: dto.AuthUser{
			ID:          admin.ID,
			Name:        admin.Name,
			Role:        models.RoleAdmin,
			LastLoginAt: admin.LastLoginAt,
		},
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, principal token.Principal, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	currentHash, err := s.currentHash(ctx, principal)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(payload.CurrentPassword)) != nil {
		return utils.ErrValidation([]utils.FieldError{{Field: "current_password", Message: "is incorrect"}})
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.accounts.UpdatePassword(ctx, principal.Role, principal.ID(), string(newHash))
}

func (s *authService) currentHash(ctx context.Context, principal token.Principal) (string, error) {
	switch principal.Role {
	case models.RoleAdmin:
		admin, err := s.accounts.FindAdminByID(ctx, principal.AdminID)
		if err != nil {
			return "", err
		}
		return admin.PasswordHash, nil
	case models.RoleTeacher:
		teacher, err := s.accounts.FindTeacherByID(ctx, principal.TeacherID)
		if err != nil {
			return "", err
		}
		return teacher.PasswordHash, nil
	default:
		student, err := s.accounts.FindStudentByID(ctx, principal.StudentID)
		if err != nil {
			return "", err
		}
		return student.PasswordHash, nil
	}
}
