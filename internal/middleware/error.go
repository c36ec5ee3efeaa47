package middleware

import (
	"errors"
	"net/http"

	"quizset/internal/domain"
	"quizset/internal/loader"
	"quizset/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Violation is one broken invariant in a validation response.
type Violation struct {
	Kind     string `json:"kind"`
	SetID    string `json:"set_id"`
	Position string `json:"position"`
	Message  string `json:"message"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Status     int         `json:"status"`
	Violations []Violation `json:"violations"`
}

// ShapeErrorResponse lists why a request body is not a complete question set.
type ShapeErrorResponse struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Status   int      `json:"status"`
	Problems []string `json:"problems"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		if violations, ok := asViolations(err); ok {
			log.Warn("Question set failed validation",
				zap.String("path", c.Path()),
				zap.Int("violation_count", len(violations)),
			)
			return c.Status(http.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
				Code:       string(domain.CodeValidation),
				Message:    "Question set validation failed",
				Status:     http.StatusUnprocessableEntity,
				Violations: violations,
			})
		}

		var shapeErr *loader.ShapeError
		if errors.As(err, &shapeErr) {
			log.Warn("Malformed question set",
				zap.String("path", c.Path()),
				zap.Strings("problems", shapeErr.Problems),
			)
			return c.Status(http.StatusBadRequest).JSON(ShapeErrorResponse{
				Code:     string(domain.CodeInvalidInput),
				Message:  "Request body is not a complete question set",
				Status:   http.StatusBadRequest,
				Problems: shapeErr.Problems,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
			}
			if domainErr.Cause != nil {
				fields = append(fields, zap.Error(domainErr.Cause))
			}
			if statusCode >= http.StatusInternalServerError {
				log.Error("Domain error occurred", fields...)
			} else {
				log.Info("Domain error occurred", fields...)
			}

			response := ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  statusCode,
			}
			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}
			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func asViolations(err error) ([]Violation, bool) {
	var all domain.ValidationErrors
	if errors.As(err, &all) {
		out := make([]Violation, len(all))
		for i, v := range all {
			out[i] = toViolation(v)
		}
		return out, true
	}
	var single *domain.ValidationError
	if errors.As(err, &single) {
		return []Violation{toViolation(single)}, true
	}
	return nil, false
}

func toViolation(v *domain.ValidationError) Violation {
	return Violation{
		Kind:     string(v.Kind),
		SetID:    v.Locator.SetID,
		Position: v.Locator.Position(),
		Message:  v.Error(),
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeQuestionSetNotFound, domain.CodeQuestionNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput:
		return http.StatusBadRequest
	case domain.CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
