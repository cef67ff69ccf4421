package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/model"
	"github.com/ojst60/DevBootcamp/utils/geo"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"gorm.io/gorm"
)

const bootcampResource = "Bootcamp"

// BootcampStore persists bootcamps
type BootcampStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewBootcampStore creates a store over an open connection
func NewBootcampStore(db *gorm.DB, timeout time.Duration) *BootcampStore {
	return &BootcampStore{db: db, timeout: timeout}
}

func (s *BootcampStore) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// Create inserts a fully derived bootcamp; a duplicate name is a Conflict
func (s *BootcampStore) Create(ctx context.Context, b *model.Bootcamp) error {
	db, cancel := s.session(ctx)
	defer cancel()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	return classifyError(bootcampResource, b.ID.String(), db.Create(b).Error)
}

// FindByID loads one bootcamp
func (s *BootcampStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Bootcamp, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	var b model.Bootcamp
	if err := db.Where("id = ?", id).First(&b).Error; err != nil {
		return nil, classifyError(bootcampResource, id.String(), err)
	}
	return &b, nil
}

// Update writes every column except id and created_at
func (s *BootcampStore) Update(ctx context.Context, b *model.Bootcamp) error {
	db, cancel := s.session(ctx)
	defer cancel()

	result := db.Model(b).Select("*").Omit("id", "created_at").Updates(b)
	if result.Error != nil {
		return classifyError(bootcampResource, b.ID.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return classifyError(bootcampResource, b.ID.String(), gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a bootcamp; its courses go with it through the foreign key
func (s *BootcampStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, cancel := s.session(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&model.Bootcamp{})
	if result.Error != nil {
		return classifyError(bootcampResource, id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return classifyError(bootcampResource, id.String(), gorm.ErrRecordNotFound)
	}
	return nil
}

// List returns one page of bootcamps and the number of bootcamps matching the filters
func (s *BootcampStore) List(ctx context.Context, q *queryHelper.ListQuery) ([]model.Bootcamp, int64, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	filtered := applyFilters(db.Model(&model.Bootcamp{}), q.Filters).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, classifyError(bootcampResource, "", err)
	}

	bootcamps := []model.Bootcamp{}
	if err := applyPage(filtered, q).Find(&bootcamps).Error; err != nil {
		return nil, 0, classifyError(bootcampResource, "", err)
	}
	return bootcamps, total, nil
}

// WithinRadius returns the bootcamps whose location lies inside the spherical cap
// of the given angular radius (radians) around the centre. The bounding box narrows
// the scan through the location index; the haversine test decides membership.
func (s *BootcampStore) WithinRadius(ctx context.Context, center geo.Point, radians float64) ([]model.Bootcamp, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	box := geo.BoundingBox(center, radians)
	db = db.Where(geo.LatitudeSQL+" BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if !box.AllLongitudes {
		db = db.Where(geo.LongitudeSQL+" BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	bootcamps := []model.Bootcamp{}
	err := db.
		Where(geo.HaversineSQL+" <= ?", center.Latitude, center.Latitude, center.Longitude, radians+geo.Epsilon).
		Order("created_at DESC").
		Order("id").
		Find(&bootcamps).Error
	if err != nil {
		return nil, classifyError(bootcampResource, "", err)
	}
	return bootcamps, nil
}

// DeleteAll removes every bootcamp and, through the foreign key, every course
func (s *BootcampStore) DeleteAll(ctx context.Context) (int64, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Bootcamp{})
	return result.RowsAffected, classifyError(bootcampResource, "", result.Error)
}
