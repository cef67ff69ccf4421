package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/ojst60/DevBootcamp/utils/response"
	"github.com/rs/zerolog/log"
)

// ServerErrorMessage is sent for every failure that has no client-facing message
const ServerErrorMessage = "Server Error"

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindBadInput, apperror.KindInvalidID:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindUpstreamBadInput:
		return fiber.StatusUnprocessableEntity
	case apperror.KindUpstreamUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber.Config ErrorHandler. Handlers return errors and
// this is the only place failure bodies are written.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := ServerErrorMessage
	var fields map[string]string

	var appErr *apperror.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &appErr):
		status = StatusFor(appErr.Kind)
		if status != fiber.StatusInternalServerError {
			message = appErr.Message
			fields = appErr.Fields
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	event := log.Warn()
	if status >= fiber.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Int("status", status).
		Msg("request failed")

	return response.Failure(c, status, message, fields)
}

// NotFound answers requests that matched no route
func NotFound(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, "Route not found")
}
