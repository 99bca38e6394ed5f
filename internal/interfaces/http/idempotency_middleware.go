package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/application/ports"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

// HeaderIdempotencyKey cabecera opcional en los POST de movimientos.
const HeaderIdempotencyKey = "Idempotency-Key"

// RequireIdempotency reserva la Idempotency-Key antes de ejecutar el handler.
// Debe usarse DESPUÉS de AuthMiddleware: la clave se asocia al usuario y a la ruta.
//
// Comportamiento:
//   - Sin cabecera → pasa sin control.
//   - Clave ya usada → 409 DUPLICATE_REQUEST.
//   - Fallo del almacén → 503 IDEMPOTENCY_CHECK_FAILED.
//   - Si el handler responde con error (>= 400) la clave se libera para permitir el reintento.
func RequireIdempotency(store ports.IdempotencyStore, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" {
			return c.Next()
		}
		scoped := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key

		ok, err := store.Claim(c.Context(), scoped)
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("no se pudo verificar la idempotency key")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "IDEMPOTENCY_CHECK_FAILED",
				Message: "no se pudo verificar la solicitud, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "DUPLICATE_REQUEST",
				Message: "la solicitud con esta Idempotency-Key ya fue procesada",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if relErr := store.Release(c.Context(), scoped); relErr != nil {
				log.Warn().Err(relErr).Str("path", c.Path()).Msg("no se pudo liberar la idempotency key")
			}
		}
		return err
	}
}
