// Package server contains HTTP and WebSocket handlers for the photo API.
package server

import (
	"context"
	"errors"
	"log/slog"

	"photoshare/internal/middleware"
	"photoshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError picks the HTTP status for an error returned by a service.
func mapServiceError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	switch models.ErrorCode(err) {
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes client errors as plain text and server errors as
// JSON {"error": failure, "details": ...}.
func respondServiceError(c *fiber.Ctx, err error, failure string) error {
	status := mapServiceError(err)
	if status < fiber.StatusInternalServerError {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return models.RespondWithText(c, status, appErr.Message)
		}
		return models.RespondWithText(c, status, err.Error())
	}

	middleware.Logger.ErrorContext(c.UserContext(), failure,
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.Status(status).JSON(models.ErrorResponse{
		Error:   failure,
		Details: err.Error(),
	})
}

// currentUserID returns the caller set by SessionRequired.
func currentUserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}

// errorHandler is the app-wide fallback for errors handlers did not answer.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return models.RespondWithText(c, fe.Code, fe.Message)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// notFound answers every route nothing else matched.
func notFound(c *fiber.Ctx) error {
	middleware.Logger.InfoContext(c.UserContext(), "Route not found", slog.String("url", c.OriginalURL()))
	return models.RespondWithText(c, fiber.StatusNotFound, "Route not found")
}
