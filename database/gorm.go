package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/config"
	"github.com/ojst60/DevBootcamp/model"
	"github.com/ojst60/DevBootcamp/utils/geo"
	queryHelper "github.com/ojst60/DevBootcamp/utils/query"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck(ctx context.Context) error

	// Repositories
	Bootcamps() BootcampRepository
	Courses() CourseRepository
}

// BootcampRepository persists bootcamps
type BootcampRepository interface {
	Create(ctx context.Context, b *model.Bootcamp) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bootcamp, error)
	Update(ctx context.Context, b *model.Bootcamp) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q *queryHelper.ListQuery) ([]model.Bootcamp, int64, error)
	WithinRadius(ctx context.Context, center geo.Point, radians float64) ([]model.Bootcamp, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// CourseRepository persists courses
type CourseRepository interface {
	Create(ctx context.Context, c *model.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, bootcampID *uuid.UUID, q *queryHelper.ListQuery) ([]model.Course, int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// locationIndex stands in for a geospatial index over the stored point
// and serves the bounding-box prefilter of radius searches
const locationIndex = `CREATE INDEX IF NOT EXISTS idx_bootcamps_location ON bootcamps ((` +
	geo.LatitudeSQL + `), (` + geo.LongitudeSQL + `))`

type GORMStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if env.IsDevelopment() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(env.DATABASE_URL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Error().Err(err).Msg("unable to connect to PostgreSQL with GORM")
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Msg("connected to PostgreSQL with GORM")

	return NewGORMStore(db, env.DB_TIMEOUT), nil
}

// NewGORMStore wraps an open connection; timeout bounds every store call
func NewGORMStore(db *gorm.DB, timeout time.Duration) *GORMStore {
	if timeout <= 0 {
		timeout = config.DefaultDBTimeout
	}
	return &GORMStore{db: db, timeout: timeout}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Info().Msg("running GORM AutoMigrate")

	// bootcamps first: courses reference them
	if err := s.db.AutoMigrate(&model.Bootcamp{}, &model.Course{}); err != nil {
		log.Error().Err(err).Msg("AutoMigrate failed")
		return err
	}

	if err := s.db.Exec(locationIndex).Error; err != nil {
		log.Error().Err(err).Msg("creating location index failed")
		return err
	}

	log.Info().Msg("GORM AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Info().Msg("closing GORM PostgreSQL connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// GetDB returns the GORM DB instance
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

func (s *GORMStore) Bootcamps() BootcampRepository {
	return &BootcampStore{db: s.db, timeout: s.timeout}
}

func (s *GORMStore) Courses() CourseRepository {
	return &CourseStore{db: s.db, timeout: s.timeout}
}
