package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	apphttp "github.com/jhoicas/adoptease-api/internal/interfaces/http"
	"github.com/jhoicas/adoptease-api/pkg/jwt"
)

// stubAuthn resuelve tokens fijos a usuarios o errores.
type stubAuthn map[string]struct {
	user *entity.User
	err  error
}

func (s stubAuthn) Authenticate(_ context.Context, token string) (*entity.User, error) {
	r, ok := s[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return r.user, r.err
}

func newStubAuthn() stubAuthn {
	return stubAuthn{
		"admin":    {user: &entity.User{ID: 1, Email: "admin@x.com", Role: entity.RoleAdmin}},
		"expert":   {user: &entity.User{ID: 2, Email: "vet@x.com", Role: entity.RoleExpert}},
		"customer": {user: &entity.User{ID: 3, Email: "ana@x.com", Role: entity.RoleCustomer}},
		"expired":  {err: jwt.ErrExpired},
		"gone":     {err: domain.ErrUserNotFound},
	}
}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware + RequireRole
// y un handler dummy que devuelve 200 si pasa los middlewares.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(newStubAuthn()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "email": apphttp.GetEmail(c)})
		},
	)
	return app
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		token   string
		want    int
	}{
		{"admin en ruta admin", []string{"admin"}, "admin", http.StatusOK},
		{"experto en ruta expert o admin", []string{"expert", "admin"}, "expert", http.StatusOK},
		{"admin en ruta expert o admin", []string{"expert", "admin"}, "admin", http.StatusOK},
		{"cliente bloqueado en ruta admin", []string{"admin"}, "customer", http.StatusForbidden},
		{"admin bloqueado en ruta solo expert", []string{"expert"}, "admin", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doProtected(t, buildTestApp(tt.allowed...), "Bearer "+tt.token)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequireRole_ExponeUsuarioEnLocals(t *testing.T) {
	resp := doProtected(t, buildTestApp("expert"), "Bearer expert")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "expert", body["role"])
	assert.Equal(t, "vet@x.com", body["email"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", "admin", "MISSING_TOKEN"},
		{"Bearer vacío", "Bearer   ", "MISSING_TOKEN"},
		{"token desconocido", "Bearer basura", "INVALID_TOKEN"},
		{"token expirado", "Bearer expired", "TOKEN_EXPIRED"},
		{"usuario eliminado", "Bearer gone", "USER_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doProtected(t, buildTestApp("admin"), tt.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.code)
		})
	}
}

func TestAuthMiddleware_EsquemaInsensibleAMayusculas(t *testing.T) {
	resp := doProtected(t, buildTestApp("admin"), "bearer admin")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
