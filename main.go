package main

import (
	"log"

	"parking-facility/cmd"
	"parking-facility/internal/data/repository"
	"parking-facility/internal/usecase"
	"parking-facility/internal/wire"
	"parking-facility/pkg/database"
	"parking-facility/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Expired reservations return to the pool on a schedule
	sweeper := usecase.NewReservationSweeper(repos.Space, logger)
	if err := sweeper.Start(config.Parking.SweepSchedule); err != nil {
		logger.Fatal("Failed to start reservation sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
