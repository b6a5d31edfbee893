package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/api"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/config"
	"github.com/skawahara/kotoba-sns-be/internal/database"
	"github.com/skawahara/kotoba-sns-be/internal/logger"
	"github.com/skawahara/kotoba-sns-be/internal/monitoring"
	"github.com/skawahara/kotoba-sns-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	auth.Init(cfg.SessionSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userService := services.NewUserService(db)
	postService := services.NewPostService(db)
	wordService := services.NewWordService(db)
	likeService := services.NewLikeService(db)
	followService := services.NewFollowService(db)
	eventService := services.NewEventService(db)

	// Set up and run the background activity janitor
	janitor, err := monitoring.NewJanitor(eventService, cfg.EventRetentionDays, cfg.JanitorSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize janitor")
	}
	go janitor.Run()

	// Set up router
	router := api.NewRouter(cfg.FrontendOrigin, userService, postService, wordService, likeService, followService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
