package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tolva-app/backend/internal/auth"
	v1 "github.com/tolva-app/backend/internal/controllers/v1"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/parse"
	"github.com/tolva-app/backend/internal/router"
)

func main() {
	// Local development configuration comes from a .env file, a missing
	// file is fine
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		// Create data directory for the default database location
		dataDir := filepath.Join(".", "data")
		err := os.MkdirAll(dataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn = filepath.Join(dataDir, "tolva.db")
	}

	// Connect to the database and migrate the schema
	err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	verifier, err := auth.NewVerifierFromEnv()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Bill extraction is optional, the parse endpoint responds with 503
	// when it is not configured
	if os.Getenv("OPENAI_API_KEY") != "" {
		parser, err := parse.NewParserFromEnv(context.Background())
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		v1.SetBillParser(parser)
	} else {
		log.Info().Msg("OPENAI_API_KEY is not set, bill parsing is disabled")
	}

	err = router.RegisterPrometheusMetrics()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Router(verifier)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin reads the PORT environment variable, default is 8080
	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
