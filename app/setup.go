package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ojst60/DevBootcamp/api"
	"github.com/ojst60/DevBootcamp/config"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/router"
	"github.com/ojst60/DevBootcamp/services/geocoder"
	"github.com/ojst60/DevBootcamp/utils"
	"github.com/ojst60/DevBootcamp/utils/middleware"
	"github.com/rs/zerolog/log"
)

// ErrUnsupportedGeocoder is returned for a GEOCODER_PROVIDER other than mapquest
var ErrUnsupportedGeocoder = errors.New("unsupported geocoder provider")

// NewGeocoder builds the geocoding client selected by the environment
func NewGeocoder(env *config.EnvironmentVariable) (geocoder.Geocoder, error) {
	switch env.GEOCODER_PROVIDER {
	case "", "mapquest":
		if env.GEOCODER_API_KEY == "" {
			log.Warn().Msg("GEOCODER_API_KEY is not set; geocoding requests will be rejected by the provider")
		}
		return geocoder.NewMapQuest(geocoder.Config{
			APIKey:  env.GEOCODER_API_KEY,
			BaseURL: env.GEOCODER_BASE_URL,
			Timeout: env.GEOCODER_TIMEOUT,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGeocoder, env.GEOCODER_PROVIDER)
	}
}

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	utils.ConfigureLogger(utils.LoggerConfig{
		Level:  getEnv.LOG_LEVEL,
		Pretty: getEnv.IsDevelopment(),
	})

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		log.Error().Msg("check whether Postgres is running and DATABASE_URL is correct")
		return err
	}

	// Defer Closing DB
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("closing database")
		}
	}()

	if err := store.Init(); err != nil {
		log.Error().Msg("failed to initialize database tables")
		return err
	}

	g, err := NewGeocoder(getEnv)
	if err != nil {
		return err
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store, g, middleware.SecurityConfig{
		AllowedOrigins: getEnv.ALLOWED_ORIGINS,
		RequestLogging: getEnv.IsDevelopment(),
	})

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run()
	}()

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown requested")
		return server.Shutdown()
	}
}
