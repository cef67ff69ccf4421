package services

import (
	"context"
	"fmt"

	"github.com/ojst60/DevBootcamp/database"
	"github.com/rs/zerolog/log"
)

// SeedBootcamp is one record of the bootcamps seed file; ID only links courses to it
type SeedBootcamp struct {
	ID string `json:"id"`
	CreateBootcampRequest
}

// SeedCourse is one record of the courses seed file; Bootcamp is a SeedBootcamp ID
type SeedCourse struct {
	Bootcamp string `json:"bootcamp"`
	CreateCourseRequest
}

// Destroyer wipes all seeded data
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// Seeder handles database seeding operations. Records go through the services
// so bootcamps are validated and geocoded exactly like API-created ones.
type Seeder struct {
	bootcamps *BootcampService
	courses   *CourseService
	destroyer Destroyer
}

// NewSeeder creates a new seeder instance
func NewSeeder(bootcamps *BootcampService, courses *CourseService, destroyer Destroyer) *Seeder {
	return &Seeder{bootcamps: bootcamps, courses: courses, destroyer: destroyer}
}

// Import creates every bootcamp from bootcampsPath, then every course from coursesPath
func (s *Seeder) Import(ctx context.Context, bootcampsPath, coursesPath string) error {
	var bootcamps []SeedBootcamp
	if err := database.ReadSeedFile(bootcampsPath, &bootcamps); err != nil {
		return err
	}

	var courses []SeedCourse
	if err := database.ReadSeedFile(coursesPath, &courses); err != nil {
		return err
	}

	return s.ImportRecords(ctx, bootcamps, courses)
}

// ImportRecords creates the given records in order, stopping at the first failure
func (s *Seeder) ImportRecords(ctx context.Context, bootcamps []SeedBootcamp, courses []SeedCourse) error {
	ids := make(map[string]string, len(bootcamps))

	for _, seed := range bootcamps {
		b, err := s.bootcamps.Create(ctx, seed.CreateBootcampRequest)
		if err != nil {
			return fmt.Errorf("failed to seed bootcamp %q: %w", seed.Name, err)
		}
		if seed.ID != "" {
			ids[seed.ID] = b.ID.String()
		}
	}

	for _, seed := range courses {
		bootcampID, ok := ids[seed.Bootcamp]
		if !ok {
			return fmt.Errorf("failed to seed course %q: unknown bootcamp %q", seed.Title, seed.Bootcamp)
		}
		if _, err := s.courses.Create(ctx, bootcampID, seed.CreateCourseRequest); err != nil {
			return fmt.Errorf("failed to seed course %q: %w", seed.Title, err)
		}
	}

	log.Info().Int("bootcamps", len(bootcamps)).Int("courses", len(courses)).Msg("data imported")
	return nil
}

// Destroy removes all courses and bootcamps
func (s *Seeder) Destroy(ctx context.Context) error {
	return s.destroyer.Destroy(ctx)
}
