// migrate_gorm.go - creates the bootcamps and courses tables plus the location index
// Usage: go run migrate_gorm.go

//go:build ignore

package main

import (
	"context"
	"time"

	"github.com/ojst60/DevBootcamp/config"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/model"
	"github.com/ojst60/DevBootcamp/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatal().Err(err).Msg("failed to load environment variables")
	}

	env, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	utils.ConfigureLogger(utils.LoggerConfig{Level: env.LOG_LEVEL, Pretty: true})

	store, err := database.StartGORM(env)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		log.Fatal().Err(err).Msg("database health check failed")
	}

	db := store.GetDB().WithContext(ctx)
	tables := []struct {
		name  string
		model any
	}{
		{"bootcamps", &model.Bootcamp{}},
		{"courses", &model.Course{}},
	}
	for _, t := range tables {
		var count int64
		if err := db.Model(t.model).Count(&count).Error; err != nil {
			log.Fatal().Err(err).Str("table", t.name).Msg("counting rows")
		}
		log.Info().Str("table", t.name).Int64("rows", count).Msg("table ready")
	}

	log.Info().Msg("all migrations completed")
}
