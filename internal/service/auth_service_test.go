package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type accountRepoStub struct {
	admins   map[string]models.Admin
	students map[string]models.Student
	teachers map[string]models.Teacher

	touchedAdmin  uint
	updatedRole   string
	updatedID     uint
	updatedHash   string
	touchLoginErr error
}

func (s *accountRepoStub) FindAdminByMobile(_ context.Context, mobile string) (models.Admin, error) {
	if admin, ok := s.admins[mobile]; ok {
		return admin, nil
	}
	return models.Admin{}, gorm.ErrRecordNotFound
}

func (s *accountRepoStub) FindTeacherByMobile(_ context.Context, mobile string) (models.Teacher, error) {
	if teacher, ok := s.teachers[mobile]; ok {
		return teacher, nil
	}
	return models.Teacher{}, gorm.ErrRecordNotFound
}

func (s *accountRepoStub) FindStudentByMobile(_ context.Context, mobile string) (models.Student, error) {
	if student, ok := s.students[mobile]; ok {
		return student, nil
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (s *accountRepoStub) FindAdminByID(_ context.Context, id uint) (models.Admin, error) {
	for _, admin := range s.admins {
		if admin.ID == id {
			return admin, nil
		}
	}
	return models.Admin{}, gorm.ErrRecordNotFound
}

func (s *accountRepoStub) FindTeacherByID(_ context.Context, id uint) (models.Teacher, error) {
	for _, teacher := range s.teachers {
		if teacher.ID == id {
			return teacher, nil
		}
	}
	return models.Teacher{}, gorm.ErrRecordNotFound
}

func (s *accountRepoStub) FindStudentByID(_ context.Context, id uint) (models.Student, error) {
	for _, student := range s.students {
		if student.ID == id {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (s *accountRepoStub) TouchAdminLogin(_ context.Context, adminID uint) error {
	s.touchedAdmin = adminID
	return s.touchLoginErr
}

func (s *accountRepoStub) UpdatePassword(_ context.Context, role string, id uint, passwordHash string) error {
	s.updatedRole = role
	s.updatedID = id
	s.updatedHash = passwordHash
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceAdminLoginSuccess(t *testing.T) {
	repo := &accountRepoStub{admins: map[string]models.Admin{
		"9999999999": {ID: 1, Name: "Head Admin", Mobile: "9999999999", PasswordHash: mustHash(t, "pw"), IsActive: true},
	}}
	tokens := token.NewService("test-secret", token.DefaultTTL)
	svc := NewAuthService(repo, tokens, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	response, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{Mobile: "9999999999", Password: "pw"})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)
	require.Equal(t, models.RoleAdmin, response.User.Role)
	require.Equal(t, uint(1), repo.touchedAdmin)

	principal, err := tokens.Verify(response.Token)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, principal.Role)
	require.Equal(t, uint(1), principal.AdminID)
}

func TestAuthServiceAdminLoginWrongPassword(t *testing.T) {
	repo := &accountRepoStub{admins: map[string]models.Admin{
		"9999999999": {ID: 1, Mobile: "9999999999", PasswordHash: mustHash(t, "pw"), IsActive: true},
	}}
	svc := NewAuthService(repo, token.NewService("test-secret", token.DefaultTTL), validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{Mobile: "9999999999", Password: "nope"})
	appErr := utils.AsAppError(err)
	require.Equal(t, utils.CodeUnauthorized, appErr.Code)
}

func TestAuthServiceAdminLoginDeactivated(t *testing.T) {
	repo := &accountRepoStub{admins: map[string]models.Admin{
		"9999999999": {ID: 1, Mobile: "9999999999", PasswordHash: mustHash(t, "pw"), IsActive: false},
	}}
	svc := NewAuthService(repo, token.NewService("test-secret", token.DefaultTTL), validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{Mobile: "9999999999", Password: "pw"})
	appErr := utils.AsAppError(err)
	require.Equal(t, utils.CodeForbidden, appErr.Code)
	require.Equal(t, "Account is deactivated", appErr.Message)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := &accountRepoStub{students: map[string]models.Student{
		"8888888888": {ID: 7, Mobile: "8888888888", PasswordHash: mustHash(t, "old-pass")},
	}}
	svc := NewAuthService(repo, token.NewService("test-secret", token.DefaultTTL), validator.New(validator.WithRequiredStructEnabled()), testLogger())

	principal := token.Principal{Role: models.RoleStudent, StudentID: 7}

	err := svc.ChangePassword(context.Background(), principal, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pass"})
	require.Equal(t, utils.CodeValidation, utils.AsAppError(err).Code)

	err = svc.ChangePassword(context.Background(), principal, dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, repo.updatedRole)
	require.Equal(t, uint(7), repo.updatedID)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updatedHash), []byte("new-pass")))
}
