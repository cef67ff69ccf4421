package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/ojst60/DevBootcamp/database"
)

// MakeHTTPHandleFunc binds a store-aware handler to a store.
// Errors are passed through so the app's ErrorHandler shapes the response.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		return handler(c, store)
	}
}
