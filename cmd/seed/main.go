package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ojst60/DevBootcamp/app"
	"github.com/ojst60/DevBootcamp/config"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/services"
	"github.com/ojst60/DevBootcamp/utils"
	"github.com/ojst60/DevBootcamp/utils/validation"
	"github.com/rs/zerolog/log"
)

// seedRunner is the part of services.Seeder the command drives
type seedRunner interface {
	Import(ctx context.Context, bootcampsPath, coursesPath string) error
	Destroy(ctx context.Context) error
}

func main() {
	var (
		importData  = flag.Bool("i", false, "Import bootcamps and courses from the data directory")
		destroyData = flag.Bool("d", false, "Delete all bootcamps and courses")
		dataDir     = flag.String("data", "data", "Directory holding bootcamps.json and courses.json")
		timeout     = flag.Duration("timeout", 2*time.Minute, "Overall time limit for the run")
	)
	flag.Parse()

	if *importData == *destroyData {
		fmt.Println(`Please add "-i" to import bootcamps or "-d" to remove them`)
		os.Exit(2)
	}

	// run returns before exiting so the store is closed on failure too
	if err := run(*destroyData, *dataDir, *timeout); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func run(destroy bool, dataDir string, timeout time.Duration) error {
	if err := config.LoadENV(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	env, err := config.Get()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	utils.ConfigureLogger(utils.LoggerConfig{
		Level:  env.LOG_LEVEL,
		Pretty: true,
	})

	store, err := database.StartGORM(env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to initialize database tables: %w", err)
	}

	g, err := app.NewGeocoder(env)
	if err != nil {
		return err
	}

	validator := validation.NewValidator()
	seeder := services.NewSeeder(
		services.NewBootcampService(store.Bootcamps(), g, validator),
		services.NewCourseService(store.Courses(), store.Bootcamps(), validator),
		store,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("DevBootcamp - Database Seeding")
	fmt.Println(separator)

	return execute(ctx, seeder, destroy, dataDir)
}

// execute imports from dataDir, or wipes everything when destroy is set
func execute(ctx context.Context, seeder seedRunner, destroy bool, dataDir string) error {
	if destroy {
		if err := seeder.Destroy(ctx); err != nil {
			return fmt.Errorf("destroy failed: %w", err)
		}
		fmt.Println("Data destroyed")
		return nil
	}

	err := seeder.Import(ctx,
		filepath.Join(dataDir, "bootcamps.json"),
		filepath.Join(dataDir, "courses.json"),
	)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Println("Data imported")
	return nil
}
