package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/pkg/jwt"
)

// LocalUser clave de Locals con el usuario autenticado (*entity.User).
const LocalUser = "user"

// authenticator contrato mínimo que necesita el middleware. Lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y carga el usuario actual desde la DB.
// Un token válido de un usuario ya eliminado se rechaza con 401.
func AuthMiddleware(authn authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization: Bearer <token> requerido")
		}
		user, err := authn.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return authError(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return errorJSON(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "el token ha expirado")
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido")
	case errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusUnauthorized, "USER_NOT_FOUND", "el usuario del token no existe")
	}
	return respondError(c, err)
}

// RequireRole permite el paso solo si el rol del usuario (leído de la DB) está en roles.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "usuario no autenticado")
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "no tiene permisos para este recurso",
		})
	}
}

// GetUser devuelve el usuario autenticado (después del middleware de auth).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetRole devuelve el rol del usuario autenticado o "".
func GetRole(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.Role
	}
	return ""
}

// GetEmail devuelve el email del usuario autenticado o "".
func GetEmail(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.Email
	}
	return ""
}
