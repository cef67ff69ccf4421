package database

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// ReadSeedFile decodes a JSON array of seed records from path into out
func ReadSeedFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return nil
}

// Destroy deletes all courses, then all bootcamps
func (s *GORMStore) Destroy(ctx context.Context) error {
	courses, err := s.Courses().DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete courses: %w", err)
	}

	bootcamps, err := s.Bootcamps().DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete bootcamps: %w", err)
	}

	log.Info().Int64("courses", courses).Int64("bootcamps", bootcamps).Msg("data destroyed")
	return nil
}
