package main

import (
	"github.com/ojst60/DevBootcamp/app"
	"github.com/rs/zerolog/log"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
