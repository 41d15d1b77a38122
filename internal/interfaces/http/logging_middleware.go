package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/adoptease-api/pkg/logger"
)

// LocalLogger clave de Locals con el logger de la petición.
const LocalLogger = "logger"

// RequestLogger registra cada petición (método, ruta, status, latencia) y deja en Locals
// un logger con el request_id para los handlers. Usar después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		zl := log.With().Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).Logger()
		c.Locals(LocalLogger, &zl)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := zl.Info()
		if status >= fiber.StatusInternalServerError {
			ev = zl.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = zl.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}

func requestLog(c *fiber.Ctx) *zerolog.Logger {
	if zl, ok := c.Locals(LocalLogger).(*zerolog.Logger); ok && zl != nil {
		return zl
	}
	nop := zerolog.Nop()
	return &nop
}
