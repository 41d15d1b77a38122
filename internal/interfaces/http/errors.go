package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/domain"
)

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo de la petición inválido")
}

// respondError traduce errores de dominio a respuestas HTTP.
// Los errores no reconocidos se registran y se devuelven como 500 sin detalle.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields,
		})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, "EMAIL_EXISTS", domain.ErrEmailAlreadyExists.Error())
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "CONFLICT", domain.ErrConflict.Error())
	case errors.Is(err, domain.ErrSelfDelete):
		return errorJSON(c, fiber.StatusBadRequest, "SELF_DELETE", domain.ErrSelfDelete.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "USER_NOT_FOUND", domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrDogNotFound):
		return errorJSON(c, fiber.StatusNotFound, "DOG_NOT_FOUND", domain.ErrDogNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error())
	}
	requestLog(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}
