package api

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/ojst60/DevBootcamp/utils/middleware"
	"github.com/rs/zerolog/log"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewFiberApp builds the fiber app with the JSON codec and the error handler every route relies on
func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "DevBootcamp API",
		ErrorHandler:          middleware.ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		IdleTimeout:           idleTimeout,
		DisableStartupMessage: true,
	})
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app:           NewFiberApp(),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run blocks until the listener stops
func (s *APIServer) Run() error {
	log.Info().Str("address", s.listenAddress).Msg("starting API server")

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	log.Info().Msg("shutting down API server")
	return s.app.ShutdownWithTimeout(shutdownTimeout)
}
