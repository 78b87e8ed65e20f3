package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

func newAuthFixture(t *testing.T) (*fiber.App, *token.Service) {
	t.Helper()
	tokens := token.NewService("test-secret", time.Hour)

	app := fiber.New()
	app.Get("/user", RequireUser(tokens), func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return utils.SendSuccess(c, fiber.Map{"role": principal.Role})
	})
	app.Get("/admin", RequireAdmin(tokens), func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, nil)
	})
	return app, tokens
}

func signFor(t *testing.T, tokens *token.Service, principal token.Principal) string {
	t.Helper()
	bearer, err := tokens.Sign(principal)
	require.NoError(t, err)
	return bearer
}

func request(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireUserAdmitsValidToken(t *testing.T) {
	app, tokens := newAuthFixture(t)
	bearer := signFor(t, tokens, token.Principal{Role: models.RoleStudent, StudentID: 7})

	resp := request(t, app, "/user", "Bearer "+bearer)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Role string `json:"role"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, models.RoleStudent, payload.Role)
}

func TestRequireUserRejections(t *testing.T) {
	app, _ := newAuthFixture(t)
	otherSecret := token.NewService("other-secret", time.Hour)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"empty bearer":   "Bearer ",
		"garbage token":  "Bearer not-a-jwt",
		"wrong secret":   "Bearer " + signFor(t, otherSecret, token.Principal{Role: models.RoleAdmin, AdminID: 1}),
	}

	for name, authorization := range cases {
		resp := request(t, app, "/user", authorization)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)

		var payload struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload), name)
		resp.Body.Close()
		require.False(t, payload.Success, name)
		require.Equal(t, utils.CodeUnauthorized, payload.Error.Code, name)
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	app, tokens := newAuthFixture(t)
	bearer := signFor(t, tokens, token.Principal{Role: models.RoleStudent, StudentID: 7})

	resp := request(t, app, "/admin", "Bearer "+bearer)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdminAdmitsAdmin(t *testing.T) {
	app, tokens := newAuthFixture(t)
	bearer := signFor(t, tokens, token.Principal{Role: models.RoleAdmin, AdminID: 1})

	resp := request(t, app, "/admin", "Bearer "+bearer)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
