package middleware

import (
	"time"

	"quizset/internal/logger"
	"quizset/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with a ULID and logs it once handled.
// An incoming X-Request-ID is kept only when it is itself a ULID.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(RequestIDHeader)
		if !util.IsULID(requestID) {
			requestID = util.NewULID()
		}
		c.Set(RequestIDHeader, requestID)

		err := c.Next()
		if err != nil {
			// Let the error handler write the status before it is logged.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return nil
	}
}
