package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/model"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const courseResource = "Course"

// CourseStore persists courses
type CourseStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewCourseStore creates a store over an open connection
func NewCourseStore(db *gorm.DB, timeout time.Duration) *CourseStore {
	return &CourseStore{db: db, timeout: timeout}
}

func (s *CourseStore) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

func (s *CourseStore) Create(ctx context.Context, c *model.Course) error {
	db, cancel := s.session(ctx)
	defer cancel()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	return classifyError(courseResource, c.ID.String(), db.Omit(clause.Associations).Create(c).Error)
}

func (s *CourseStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	var c model.Course
	if err := db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, classifyError(courseResource, id.String(), err)
	}
	return &c, nil
}

// Update writes every column except id and created_at
func (s *CourseStore) Update(ctx context.Context, c *model.Course) error {
	db, cancel := s.session(ctx)
	defer cancel()

	result := db.Model(c).Select("*").Omit("id", "created_at", clause.Associations).Updates(c)
	if result.Error != nil {
		return classifyError(courseResource, c.ID.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return classifyError(courseResource, c.ID.String(), gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *CourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, cancel := s.session(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&model.Course{})
	if result.Error != nil {
		return classifyError(courseResource, id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return classifyError(courseResource, id.String(), gorm.ErrRecordNotFound)
	}
	return nil
}

// List returns one page of courses and the filtered total.
// A non-nil bootcampID restricts the listing to that bootcamp's courses.
func (s *CourseStore) List(ctx context.Context, bootcampID *uuid.UUID, q *queryHelper.ListQuery) ([]model.Course, int64, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	base := db.Model(&model.Course{})
	if bootcampID != nil {
		base = base.Where("bootcamp_id = ?", *bootcampID)
	}
	filtered := applyFilters(base, q.Filters).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, classifyError(courseResource, "", err)
	}

	courses := []model.Course{}
	if err := applyPage(filtered, q).Find(&courses).Error; err != nil {
		return nil, 0, classifyError(courseResource, "", err)
	}
	return courses, total, nil
}

func (s *CourseStore) DeleteAll(ctx context.Context) (int64, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Course{})
	return result.RowsAffected, classifyError(courseResource, "", result.Error)
}
