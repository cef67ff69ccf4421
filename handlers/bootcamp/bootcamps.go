package bootcamp

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ojst60/DevBootcamp/services"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"github.com/ojst60/DevBootcamp/utils/response"
	"github.com/ojst60/DevBootcamp/utils/validation"
)

// BootcampHandler handles bootcamp-related requests
type BootcampHandler struct {
	service *services.BootcampService
}

// NewBootcampHandler creates a new bootcamp handler
func NewBootcampHandler(service *services.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

// ListBootcamps handles GET /api/v1/bootcamps
func (h *BootcampHandler) ListBootcamps(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), c.Queries())
	if err != nil {
		return err
	}

	data, err := queryHelper.Project(result.Items, result.Query.Fields)
	if err != nil {
		return apperror.Internal("projecting bootcamps", err)
	}

	pagination := response.CalculatePagination(result.Query.Page, result.Query.Limit, result.Total)
	return response.Paginated(c, data, len(result.Items), pagination)
}

// GetBootcamp handles GET /api/v1/bootcamps/:id
func (h *BootcampHandler) GetBootcamp(c *fiber.Ctx) error {
	b, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, b)
}

// CreateBootcamp handles POST /api/v1/bootcamps
func (h *BootcampHandler) CreateBootcamp(c *fiber.Ctx) error {
	var req services.CreateBootcampRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadInput("Invalid request body")
	}

	b, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return response.Created(c, b)
}

// UpdateBootcamp handles PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) UpdateBootcamp(c *fiber.Ctx) error {
	var req services.UpdateBootcampRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadInput("Invalid request body")
	}

	b, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return response.Success(c, b)
}

// DeleteBootcamp handles DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) DeleteBootcamp(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Deleted(c)
}

// GetBootcampsInRadius handles GET /api/v1/bootcamps/radius/:postcode/:distance
func (h *BootcampHandler) GetBootcampsInRadius(c *fiber.Ctx) error {
	postcode := validation.SanitizeString(c.Params("postcode"))

	bootcamps, err := h.service.WithinRadius(c.UserContext(), postcode, c.Params("distance"))
	if err != nil {
		return err
	}
	return response.List(c, bootcamps, len(bootcamps))
}
