package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

// OTP and reset-token lifetimes.
const (
	otpTTL        = 10 * time.Minute
	resetTokenTTL = 15 * time.Minute
	otpPurpose    = "password_reset"
)

// OTPSender delivers one-time passwords over an out-of-band chat channel.
type OTPSender interface {
	SendOTP(ctx context.Context, mobile, code string) error
}

// OTPService runs the forgot-password flow: issue an OTP, exchange it for a
// one-shot reset token, and consume that token on password reset.
type OTPService interface {
	RequestOTP(ctx context.Context, payload dto.ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, payload dto.VerifyOTPRequest) (string, error)
	ResetPassword(ctx context.Context, payload dto.ResetPasswordRequest) error
}

type otpService struct {
	accounts  repository.AccountRepository
	store     *redis.Client
	sender    OTPSender
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewOTPService constructs an OTP service backed by a TTL store.
func NewOTPService(accounts repository.AccountRepository, store *redis.Client, sender OTPSender, validate *validator.Validate, logger zerolog.Logger) OTPService {
	return &otpService{
		accounts:  accounts,
		store:     store,
		sender:    sender,
		validator: validate,
		logger:    logger.With().Str("component", "otp_service").Logger(),
	}
}

// authID identifies an account across the three role tables.
type authID struct {
	Role string
	ID   uint
}

func (a authID) String() string {
	return fmt.Sprintf("%s:%d", a.Role, a.ID)
}

func otpKey(subject authID) string {
	return fmt.Sprintf("otp:%s:%s", otpPurpose, subject)
}

func resetKey(tokenValue string) string {
	return fmt.Sprintf("reset:%s", tokenValue)
}

func (s *otpService) RequestOTP(ctx context.Context, payload dto.ForgotPasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	subject, err := s.resolveSubject(ctx, payload.Mobile)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, otpKey(subject), string(hash), otpTTL).Err(); err != nil {
		return err
	}

	if err := s.sender.SendOTP(ctx, payload.Mobile, code); err != nil {
		s.logger.Error().Err(err).Str("subject", subject.String()).Msg("failed to deliver otp")
		return utils.ErrInternal()
	}

	return nil
}

// VerifyOTP consumes the stored OTP on a successful match and mints a
// one-shot reset token bound to the subject.
func (s *otpService) VerifyOTP(ctx context.Context, payload dto.VerifyOTPRequest) (string, error) {
	if err := s.validator.Struct(payload); err != nil {
		return "", err
	}

	subject, err := s.resolveSubject(ctx, payload.Mobile)
	if err != nil {
		return "", err
	}

	stored, err := s.store.Get(ctx, otpKey(subject)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", utils.ErrValidation([]utils.FieldError{{Field: "otp", Message: "is invalid or expired"}})
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(payload.OTP)) != nil {
		return "", utils.ErrValidation([]utils.FieldError{{Field: "otp", Message: "is invalid or expired"}})
	}

	if err := s.store.Del(ctx, otpKey(subject)).Err(); err != nil {
		return "", err
	}

	resetToken := uuid.NewString()
	if err := s.store.Set(ctx, resetKey(resetToken), subject.String(), resetTokenTTL).Err(); err != nil {
		return "", err
	}

	return resetToken, nil
}

// ResetPassword exchanges a live reset token for a password change. The token
// is consumed by deletion, so a second use finds nothing.
func (s *otpService) ResetPassword(ctx context.Context, payload dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	subjectValue, err := s.store.GetDel(ctx, resetKey(payload.Token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return utils.ErrNotFound("Reset token is invalid or expired")
		}
		return err
	}

	role, id, err := parseAuthID(subjectValue)
	if err != nil {
		s.logger.Error().Err(err).Str("subject", subjectValue).Msg("malformed reset token subject")
		return utils.ErrInternal()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.accounts.UpdatePassword(ctx, role, id, string(hash))
}

// resolveSubject finds the account owning the mobile number, students first.
func (s *otpService) resolveSubject(ctx context.Context, mobile string) (authID, error) {
	if student, err := s.accounts.FindStudentByMobile(ctx, mobile); err == nil {
		return authID{Role: models.RoleStudent, ID: student.ID}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return authID{}, err
	}

	if teacher, err := s.accounts.FindTeacherByMobile(ctx, mobile); err == nil {
		return authID{Role: models.RoleTeacher, ID: teacher.ID}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return authID{}, err
	}

	if admin, err := s.accounts.FindAdminByMobile(ctx, mobile); err == nil {
		return authID{Role: models.RoleAdmin, ID: admin.ID}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return authID{}, err
	}

	return authID{}, utils.ErrNotFound("Account not found")
}

func parseAuthID(value string) (string, uint, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("expected role:id, got %q", value)
	}

	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", 0, err
	}

	return parts[0], uint(id), nil
}

func generateOTP() (string, error) {
	value, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", value.Int64()), nil
}
