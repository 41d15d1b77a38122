package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/application/usecase"
	"github.com/jhoicas/adoptease-api/internal/domain"
)

// ChatHandler asistente conversacional de adopción.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Chat godoc
// @Summary      Preguntar al asistente
// @Description  Cualquier fallo del proveedor se devuelve como 500 genérico.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Reply(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return respondError(c, err)
		}
		requestLog(c).Error().Err(err).Msg("chat")
		return errorJSON(c, fiber.StatusInternalServerError, "CHAT_FAILED", "no se pudo obtener respuesta del asistente")
	}
	return c.JSON(out)
}
