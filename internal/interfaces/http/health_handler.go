package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler liveness del servicio más ping al almacén primario.
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200   {object}  dto.HealthResponse
// @Failure      503   {object}  dto.HealthResponse
// @Router       /health [get]
func HealthHandler(db pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			requestLog(c).Warn().Err(err).Msg("health: ping DB")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Database: "ok"})
	}
}
