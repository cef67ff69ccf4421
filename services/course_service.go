package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/model"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"github.com/ojst60/DevBootcamp/utils/validation"
	"github.com/rs/zerolog/log"
)

// CourseService handles courses; every course belongs to an existing bootcamp
type CourseService struct {
	courses   database.CourseRepository
	bootcamps database.BootcampRepository
	validator *validation.Validator
}

// NewCourseService creates a new course service
func NewCourseService(courses database.CourseRepository, bootcamps database.BootcampRepository, v *validation.Validator) *CourseService {
	return &CourseService{
		courses:   courses,
		bootcamps: bootcamps,
		validator: v,
	}
}

// CreateCourseRequest represents the request to create a course under a bootcamp
type CreateCourseRequest struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Weeks                string   `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         string   `json:"minimumSkill"`
	ScholarshipAvailable bool     `json:"scholarshipAvailable"`
}

// UpdateCourseRequest holds the fields to change; a course cannot move to another bootcamp
type UpdateCourseRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *string  `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         *string  `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

func (r UpdateCourseRequest) apply(c *model.Course) {
	if r.Title != nil {
		c.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Weeks != nil {
		c.Weeks = strings.TrimSpace(*r.Weeks)
	}
	if r.Tuition != nil {
		c.Tuition = r.Tuition
	}
	if r.MinimumSkill != nil {
		c.MinimumSkill = strings.TrimSpace(*r.MinimumSkill)
	}
	if r.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *r.ScholarshipAvailable
	}
}

// List pages courses. An empty rawBootcampID lists every course; otherwise the bootcamp must exist.
func (s *CourseService) List(ctx context.Context, rawBootcampID string, params map[string]string) (*ListResult[model.Course], error) {
	var bootcampID *uuid.UUID
	if rawBootcampID != "" {
		id, err := parseID("bootcamp", rawBootcampID)
		if err != nil {
			return nil, err
		}
		if _, err := s.bootcamps.FindByID(ctx, id); err != nil {
			return nil, err
		}
		bootcampID = &id
	}

	q, err := queryHelper.Parse(params, database.CourseSchema, database.DefaultSort)
	if err != nil {
		return nil, err
	}

	items, total, err := s.courses.List(ctx, bootcampID, q)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Course]{Items: items, Total: total, Query: q}, nil
}

// Get returns one course by id
func (s *CourseService) Get(ctx context.Context, rawID string) (*model.Course, error) {
	id, err := parseID("course", rawID)
	if err != nil {
		return nil, err
	}
	return s.courses.FindByID(ctx, id)
}

// Create adds a course to an existing bootcamp
func (s *CourseService) Create(ctx context.Context, rawBootcampID string, req CreateCourseRequest) (*model.Course, error) {
	bootcampID, err := parseID("bootcamp", rawBootcampID)
	if err != nil {
		return nil, err
	}

	if _, err := s.bootcamps.FindByID(ctx, bootcampID); err != nil {
		return nil, err
	}

	c := &model.Course{
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		Weeks:                strings.TrimSpace(req.Weeks),
		Tuition:              req.Tuition,
		MinimumSkill:         strings.TrimSpace(req.MinimumSkill),
		ScholarshipAvailable: req.ScholarshipAvailable,
		BootcampID:           bootcampID,
	}

	if err := s.validator.ValidateStruct(c); err != nil {
		return nil, err
	}

	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().Str("course_id", c.ID.String()).Str("bootcamp_id", bootcampID.String()).Msg("course created")
	return c, nil
}

// Update applies the given fields to a course and re-validates it
func (s *CourseService) Update(ctx context.Context, rawID string, req UpdateCourseRequest) (*model.Course, error) {
	id, err := parseID("course", rawID)
	if err != nil {
		return nil, err
	}

	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.apply(c)

	if err := s.validator.ValidateStruct(c); err != nil {
		return nil, err
	}

	if err := s.courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes one course
func (s *CourseService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID("course", rawID)
	if err != nil {
		return err
	}
	return s.courses.Delete(ctx, id)
}
