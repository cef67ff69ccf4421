package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/utils/response"
	"github.com/rs/zerolog/log"
)

// HandleCheckHealth handles GET /api/v1/ping
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(c.UserContext()); err != nil {
		log.Warn().Err(err).Msg("health check failed")
		return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return response.Success(c, fiber.Map{"status": "ok"})
}
