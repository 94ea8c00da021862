package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"expo-webapp/config"
	"expo-webapp/database"
	"expo-webapp/handlers"
	"expo-webapp/notification"
	"expo-webapp/router"
	"expo-webapp/service"
)

func main() {
	connString, err := config.GetSecret("MONGODB_CONNSTRING")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot find connection string for DB in the environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, connString, config.DB_NAME)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	notifier := notification.NewLogDispatcher()
	registration := service.NewRegistrationService(db, db, notifier)
	handler := handlers.NewHandler(registration, db, notifier)

	app := fiber.New()

	router.SetupRoutes(app, handler)

	log.Info().Msg("expo service listening on :80")
	if err := app.Listen(":80"); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
