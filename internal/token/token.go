package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuskit/school-api/internal/models"
)

// Verification failures.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Principal is the authenticated subject of a request. Exactly one of
// StudentID, TeacherID and AdminID is non-zero and matches Role.
type Principal struct {
	Role         string
	Name         string
	StudentID    uint
	TeacherID    uint
	AdminID      uint
	EnrollmentID uint
	ClassroomID  uint
}

// ID returns the role-specific identifier of the principal.
func (p Principal) ID() uint {
	switch p.Role {
	case models.RoleStudent:
		return p.StudentID
	case models.RoleTeacher:
		return p.TeacherID
	case models.RoleAdmin:
		return p.AdminID
	default:
		return 0
	}
}

// IsValid reports whether the principal carries a recognized role and the
// matching role-specific identifier.
func (p Principal) IsValid() bool {
	return p.ID() != 0
}

type claims struct {
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
	StudentID    uint   `json:"student_id,omitempty"`
	TeacherID    uint   `json:"teacher_id,omitempty"`
	AdminID      uint   `json:"admin_id,omitempty"`
	EnrollmentID uint   `json:"enrollment_id,omitempty"`
	ClassroomID  uint   `json:"classroom_id,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies bearer tokens. The secret is immutable for the
// process lifetime; rotation is out of scope.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 90 * 24 * time.Hour

// NewService builds a token service with the given HMAC secret and TTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Sign issues a bearer token for the principal.
func (s *Service) Sign(principal Principal) (string, error) {
	if !principal.IsValid() {
		return "", fmt.Errorf("principal has no role identifier")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:         principal.Role,
		Name:         principal.Name,
		StudentID:    principal.StudentID,
		TeacherID:    principal.TeacherID,
		AdminID:      principal.AdminID,
		EnrollmentID: principal.EnrollmentID,
		ClassroomID:  principal.ClassroomID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%s:%d", principal.Role, principal.ID()),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	return token.SignedString(s.secret)
}

// Verify parses and validates a bearer token, returning its principal.
func (s *Service) Verify(bearer string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(bearer, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpiredToken
		}
		return Principal{}, ErrInvalidToken
	}

	parsedClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	principal := Principal{
		Role:         parsedClaims.Role,
		Name:         parsedClaims.Name,
		StudentID:    parsedClaims.StudentID,
		TeacherID:    parsedClaims.TeacherID,
		AdminID:      parsedClaims.AdminID,
		EnrollmentID: parsedClaims.EnrollmentID,
		ClassroomID:  parsedClaims.ClassroomID,
	}
	if !principal.IsValid() {
		return Principal{}, ErrInvalidToken
	}

	return principal, nil
}
