package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pluserman/pluserman/internal/membership"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status maps an engine error to the HTTP status code reported to the caller.
func Status(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, membership.ErrUserExists), errors.Is(err, membership.ErrGroupExists):
		return fiber.StatusConflict
	case errors.Is(err, membership.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, membership.ErrUserNotFound), errors.Is(err, membership.ErrGroupNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Error converts err into a fiber error with the given status.
// Server side failures are logged and reported without details.
func Error(status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")

		return fiber.NewError(status, fiber.ErrInternalServerError.Message)
	}

	return fiber.NewError(status, err.Error())
}

// ErrorHandler writes fiber errors as json.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := fiber.ErrInternalServerError.Message

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(ErrorResponse{Error: message})
}
