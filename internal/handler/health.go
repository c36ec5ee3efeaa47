package handler

import (
	"quizset/internal/domain"
	"quizset/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Health reports whether the optional cache is reachable.
func Health(cache domain.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "cache": "disabled"}
		if cache != nil {
			if err := cache.Ping(c.UserContext()); err != nil {
				logger.Get().Warn("Cache health check failed", zap.Error(err))
				status["status"] = "degraded"
				status["cache"] = "unreachable"
				return c.Status(fiber.StatusServiceUnavailable).JSON(status)
			}
			status["cache"] = "ok"
		}
		return c.JSON(status)
	}
}
