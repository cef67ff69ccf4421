package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response represents a standardized API response
type Response struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// PageLink points at a neighbouring page
type PageLink struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Pagination contains pagination metadata; Next and Prev are omitted at the edges
type Pagination struct {
	Next *PageLink `json:"next,omitempty"`
	Prev *PageLink `json:"prev,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Deleted returns a 200 response with an empty data object
func Deleted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    fiber.Map{},
	})
}

// List returns a sequence with its count
func List(c *fiber.Ctx, data interface{}, count int) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// Paginated returns a paginated response
func Paginated(c *fiber.Ctx, data interface{}, count int, pagination Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success:    true,
		Count:      &count,
		Pagination: &pagination,
		Data:       data,
	})
}

// Failure returns an error response; only the error handler should call it
func Failure(c *fiber.Ctx, statusCode int, message string, fields map[string]string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
		Fields:  fields,
	})
}

// CalculatePagination calculates pagination metadata.
// Next is set when page*limit < total, Prev when (page-1)*limit > 0.
func CalculatePagination(page, limit int, total int64) Pagination {
	var p Pagination

	if page < 1 || limit < 1 {
		return p
	}

	// page*limit < total, without forming the product
	if total > 0 && int64(page) <= (total-1)/int64(limit) {
		p.Next = &PageLink{Page: page + 1, Limit: limit, Total: total}
	}
	// (page-1)*limit > 0
	if page > 1 {
		p.Prev = &PageLink{Page: page - 1, Limit: limit, Total: total}
	}

	return p
}
