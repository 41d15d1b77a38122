package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/auth"
	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/domain"
)

// AuthHandler maneja registro, login y verificación de token.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea una cuenta customer o expert. Las cuentas admin no se pueden registrar.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, type"
// @Success      200   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Token de 1 día; 30 días con rememberMe.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, rememberMe"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusUnauthorized, "USER_NOT_FOUND", "usuario no encontrado")
		}
		if errors.Is(err, domain.ErrInvalidPassword) {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_PASSWORD", "contraseña incorrecta")
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyToken godoc
// @Summary      Verificar token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.VerifyTokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/verify-token [get]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	tok, ok := bearerToken(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization: Bearer <token> requerido")
	}
	out, err := h.uc.VerifyToken(c.UserContext(), tok)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}
