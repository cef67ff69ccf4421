package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ojst60/DevBootcamp/services"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"github.com/ojst60/DevBootcamp/utils/response"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	service *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// ListCourses handles GET /api/v1/courses and GET /api/v1/bootcamps/:bootcampId/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), c.Params("bootcampId"), c.Queries())
	if err != nil {
		return err
	}

	data, err := queryHelper.Project(result.Items, result.Query.Fields)
	if err != nil {
		return apperror.Internal("projecting courses", err)
	}

	pagination := response.CalculatePagination(result.Query.Page, result.Query.Limit, result.Total)
	return response.Paginated(c, data, len(result.Items), pagination)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/bootcamps/:bootcampId/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req services.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadInput("Invalid request body")
	}

	course, err := h.service.Create(c.UserContext(), c.Params("bootcampId"), req)
	if err != nil {
		return err
	}
	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	var req services.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadInput("Invalid request body")
	}

	course, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Deleted(c)
}
