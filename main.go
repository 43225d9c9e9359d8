package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"guitartab-transcriber/handlers"
	"guitartab-transcriber/internal/config"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()
	svc := handlers.NewService(cfg, log)

	r := gin.Default()

	// CORS — origins configurable via CORS_ORIGINS env var (comma-separated).
	// Defaults to * for local development; set a specific origin in production.
	originsEnv := os.Getenv("CORS_ORIGINS")
	if originsEnv == "" {
		originsEnv = "*"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(originsEnv, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		api.POST("/transcribe", svc.Transcribe)
		api.POST("/transcribe-midi", svc.TranscribeMidi)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
