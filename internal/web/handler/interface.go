package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluserman/pluserman/internal/membership"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, engine *membership.Service) error
}
