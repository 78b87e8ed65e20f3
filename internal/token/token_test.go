package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/models"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	bearer, err := svc.Sign(Principal{
		Role:         models.RoleStudent,
		Name:         "Asha",
		StudentID:    7,
		EnrollmentID: 12,
		ClassroomID:  3,
	})
	require.NoError(t, err)

	principal, err := svc.Verify(bearer)
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, principal.Role)
	require.Equal(t, "Asha", principal.Name)
	require.Equal(t, uint(7), principal.StudentID)
	require.Equal(t, uint(12), principal.EnrollmentID)
	require.Equal(t, uint(3), principal.ClassroomID)
	require.Equal(t, uint(7), principal.ID())
}

func TestSignRejectsEmptyPrincipal(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.Sign(Principal{Role: models.RoleAdmin})
	require.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	svc.ttl = -time.Minute

	bearer, err := svc.Sign(Principal{Role: models.RoleAdmin, AdminID: 1})
	require.NoError(t, err)

	_, err = svc.Verify(bearer)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTampered(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	bearer, err := svc.Sign(Principal{Role: models.RoleTeacher, TeacherID: 4})
	require.NoError(t, err)

	parts := strings.Split(bearer, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	bearer, err := NewService("secret-a", time.Hour).Sign(Principal{Role: models.RoleAdmin, AdminID: 1})
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Verify(bearer)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultTTLApplied(t *testing.T) {
	svc := NewService("test-secret", 0)
	require.Equal(t, DefaultTTL, svc.ttl)
}
