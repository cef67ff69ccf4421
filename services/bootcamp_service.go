package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/model"
	"github.com/ojst60/DevBootcamp/services/geocoder"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/ojst60/DevBootcamp/utils/geo"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"github.com/ojst60/DevBootcamp/utils/slug"
	"github.com/ojst60/DevBootcamp/utils/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// ListResult is one page of a listing plus what the caller needs to describe it
type ListResult[T any] struct {
	Items []T
	// Total counts every record matching the filters, not just this page
	Total int64
	Query *queryHelper.ListQuery
}

// BootcampService owns bootcamp creation, derivation of slug and location, and lookups
type BootcampService struct {
	bootcamps database.BootcampRepository
	geocoder  geocoder.Geocoder
	validator *validation.Validator
}

// NewBootcampService creates a new bootcamp service
func NewBootcampService(bootcamps database.BootcampRepository, g geocoder.Geocoder, v *validation.Validator) *BootcampService {
	return &BootcampService{
		bootcamps: bootcamps,
		geocoder:  g,
		validator: v,
	}
}

// CreateBootcampRequest is the client-supplied part of a bootcamp.
// Slug, location, id and createdAt are derived and cannot be sent.
type CreateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	AverageRating *float64 `json:"averageRating"`
	AverageCost   *float64 `json:"averageCost"`
	Photo         string   `json:"photo"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// UpdateBootcampRequest holds the fields to change; nil means unchanged
type UpdateBootcampRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	AverageRating *float64  `json:"averageRating"`
	AverageCost   *float64  `json:"averageCost"`
	Photo         *string   `json:"photo"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

func (r CreateBootcampRequest) toModel() *model.Bootcamp {
	photo := strings.TrimSpace(r.Photo)
	if photo == "" {
		photo = model.DefaultPhoto
	}

	return &model.Bootcamp{
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Website:       strings.TrimSpace(r.Website),
		Email:         strings.TrimSpace(r.Email),
		Phone:         strings.TrimSpace(r.Phone),
		Address:       strings.TrimSpace(r.Address),
		Careers:       r.Careers,
		AverageRating: r.AverageRating,
		AverageCost:   r.AverageCost,
		Photo:         photo,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGi:      r.AcceptGi,
	}
}

// apply merges the request onto b and reports which derived fields went stale
func (r UpdateBootcampRequest) apply(b *model.Bootcamp) (nameChanged, addressChanged bool) {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		nameChanged = name != b.Name
		b.Name = name
	}
	if r.Address != nil {
		address := strings.TrimSpace(*r.Address)
		addressChanged = address != b.Address
		b.Address = address
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.Website != nil {
		b.Website = strings.TrimSpace(*r.Website)
	}
	if r.Email != nil {
		b.Email = strings.TrimSpace(*r.Email)
	}
	if r.Phone != nil {
		b.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Careers != nil {
		b.Careers = *r.Careers
	}
	if r.AverageRating != nil {
		b.AverageRating = r.AverageRating
	}
	if r.AverageCost != nil {
		b.AverageCost = r.AverageCost
	}
	if r.Photo != nil {
		b.Photo = strings.TrimSpace(*r.Photo)
		if b.Photo == "" {
			b.Photo = model.DefaultPhoto
		}
	}
	if r.Housing != nil {
		b.Housing = *r.Housing
	}
	if r.JobAssistance != nil {
		b.JobAssistance = *r.JobAssistance
	}
	if r.JobGuarantee != nil {
		b.JobGuarantee = *r.JobGuarantee
	}
	if r.AcceptGi != nil {
		b.AcceptGi = *r.AcceptGi
	}
	return nameChanged, addressChanged
}

// Create validates the input, derives slug and location, then inserts.
// Nothing is stored when validation or geocoding fails.
func (s *BootcampService) Create(ctx context.Context, req CreateBootcampRequest) (*model.Bootcamp, error) {
	b := req.toModel()

	if err := s.validator.ValidateStruct(b); err != nil {
		return nil, err
	}

	b.NameSlug = slug.Make(b.Name)

	if err := s.locate(ctx, b); err != nil {
		return nil, err
	}

	if err := s.bootcamps.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().Str("bootcamp_id", b.ID.String()).Str("name", b.Name).Msg("bootcamp created")
	return b, nil
}

// Get loads one bootcamp by its id
func (s *BootcampService) Get(ctx context.Context, rawID string) (*model.Bootcamp, error) {
	id, err := parseID("bootcamp", rawID)
	if err != nil {
		return nil, err
	}
	return s.bootcamps.FindByID(ctx, id)
}

// List filters, sorts and pages bootcamps according to query-string parameters
func (s *BootcampService) List(ctx context.Context, params map[string]string) (*ListResult[model.Bootcamp], error) {
	q, err := queryHelper.Parse(params, database.BootcampSchema, database.DefaultSort)
	if err != nil {
		return nil, err
	}

	items, total, err := s.bootcamps.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Bootcamp]{Items: items, Total: total, Query: q}, nil
}

// Update applies a partial change. A changed name gets a new slug and a changed address is geocoded again.
func (s *BootcampService) Update(ctx context.Context, rawID string, req UpdateBootcampRequest) (*model.Bootcamp, error) {
	id, err := parseID("bootcamp", rawID)
	if err != nil {
		return nil, err
	}

	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nameChanged, addressChanged := req.apply(b)

	if err := s.validator.ValidateStruct(b); err != nil {
		return nil, err
	}

	if nameChanged {
		b.NameSlug = slug.Make(b.Name)
	}
	if addressChanged {
		if err := s.locate(ctx, b); err != nil {
			return nil, err
		}
	}

	if err := s.bootcamps.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a bootcamp together with its courses
func (s *BootcampService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID("bootcamp", rawID)
	if err != nil {
		return err
	}

	if err := s.bootcamps.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("bootcamp_id", id.String()).Msg("bootcamp deleted")
	return nil
}

// WithinRadius returns every bootcamp within distance miles of the geocoded postcode.
// The boundary is inclusive.
func (s *BootcampService) WithinRadius(ctx context.Context, postcode, rawDistance string) ([]model.Bootcamp, error) {
	postcode = strings.TrimSpace(postcode)
	if postcode == "" {
		return nil, apperror.BadInput("postcode is required")
	}

	distance, err := strconv.ParseFloat(strings.TrimSpace(rawDistance), 64)
	if err != nil || distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, apperror.BadInput("invalid distance %q: must be a non-negative number of miles", rawDistance)
	}

	res, err := geocoder.First(ctx, s.geocoder, postcode)
	if err != nil {
		return nil, err
	}

	center := geo.Point{Latitude: res.Latitude, Longitude: res.Longitude}
	return s.bootcamps.WithinRadius(ctx, center, geo.MilesToRadians(distance))
}

// locate geocodes b.Address into b.Location; the address itself is kept
func (s *BootcampService) locate(ctx context.Context, b *model.Bootcamp) error {
	res, err := geocoder.First(ctx, s.geocoder, b.Address)
	if err != nil {
		return err
	}

	loc := model.NewPoint(res.Latitude, res.Longitude)
	loc.FormattedAddress = res.FormattedAddress
	loc.Street = res.StreetName
	loc.City = res.City
	loc.State = res.StateCode
	loc.Postcode = res.Zipcode
	loc.Country = res.CountryCode

	b.Location = datatypes.NewJSONType(loc)
	return nil
}

// parseID rejects identifiers that are not UUIDs before they reach the store
func parseID(resource, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.InvalidID(resource, raw)
	}
	return id, nil
}
