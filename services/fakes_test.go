package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/model"
	"github.com/ojst60/DevBootcamp/services/geocoder"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/ojst60/DevBootcamp/utils/geo"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	results map[string][]geocoder.Result
	err     error
	calls   []string
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: map[string][]geocoder.Result{}}
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) ([]geocoder.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, address)
	if g.err != nil {
		return nil, g.err
	}
	return g.results[address], nil
}

func (g *fakeGeocoder) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fakeBootcampStore struct {
	mu        sync.Mutex
	bootcamps map[uuid.UUID]model.Bootcamp
	courses   *fakeCourseStore
}

func newFakeBootcampStore() *fakeBootcampStore {
	return &fakeBootcampStore{bootcamps: map[uuid.UUID]model.Bootcamp{}}
}

func (s *fakeBootcampStore) Create(_ context.Context, b *model.Bootcamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bootcamps {
		if existing.Name == b.Name {
			return apperror.Conflict(database.DuplicateMessage, nil)
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.bootcamps[b.ID] = *b
	return nil
}

func (s *fakeBootcampStore) FindByID(_ context.Context, id uuid.UUID) (*model.Bootcamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bootcamps[id]
	if !ok {
		return nil, apperror.NotFound("Bootcamp", id.String())
	}
	return &b, nil
}

func (s *fakeBootcampStore) Update(_ context.Context, b *model.Bootcamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bootcamps[b.ID]; !ok {
		return apperror.NotFound("Bootcamp", b.ID.String())
	}
	s.bootcamps[b.ID] = *b
	return nil
}

func (s *fakeBootcampStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bootcamps[id]; !ok {
		return apperror.NotFound("Bootcamp", id.String())
	}
	delete(s.bootcamps, id)
	if s.courses != nil {
		s.courses.deleteForBootcamp(id)
	}
	return nil
}

func (s *fakeBootcampStore) List(_ context.Context, _ *queryHelper.ListQuery) ([]model.Bootcamp, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Bootcamp, 0, len(s.bootcamps))
	for _, b := range s.bootcamps {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (s *fakeBootcampStore) WithinRadius(_ context.Context, center geo.Point, radians float64) ([]model.Bootcamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Bootcamp{}
	for _, b := range s.bootcamps {
		lat, lng, ok := b.Coordinates()
		if ok && geo.WithinRadius(center, geo.Point{Latitude: lat, Longitude: lng}, radians) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBootcampStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bootcamps)
}

type fakeCourseStore struct {
	mu      sync.Mutex
	courses map[uuid.UUID]model.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: map[uuid.UUID]model.Course{}}
}

func (s *fakeCourseStore) Create(_ context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *fakeCourseStore) FindByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, apperror.NotFound("Course", id.String())
	}
	return &c, nil
}

func (s *fakeCourseStore) Update(_ context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[c.ID]; !ok {
		return apperror.NotFound("Course", c.ID.String())
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *fakeCourseStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return apperror.NotFound("Course", id.String())
	}
	delete(s.courses, id)
	return nil
}

func (s *fakeCourseStore) List(_ context.Context, bootcampID *uuid.UUID, _ *queryHelper.ListQuery) ([]model.Course, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Course{}
	for _, c := range s.courses {
		if bootcampID == nil || c.BootcampID == *bootcampID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeCourseStore) deleteForBootcamp(bootcampID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.courses {
		if c.BootcampID == bootcampID {
			delete(s.courses, id)
		}
	}
}

func (s *fakeBootcampStore) DeleteAll(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.bootcamps))
	s.bootcamps = map[uuid.UUID]model.Bootcamp{}
	return n, nil
}

func (s *fakeCourseStore) DeleteAll(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.courses))
	s.courses = map[uuid.UUID]model.Course{}
	return n, nil
}
