package main

import (
	"log"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	_ "github.com/yagnamodi22/book-by-truf-backend/docs"
	"github.com/yagnamodi22/book-by-truf-backend/internal/booking"
	"github.com/yagnamodi22/book-by-truf-backend/internal/payment"
	"github.com/yagnamodi22/book-by-truf-backend/internal/sitesetting"
	"github.com/yagnamodi22/book-by-truf-backend/internal/turf"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
	"github.com/yagnamodi22/book-by-truf-backend/routes"
)

// @title Turf Booking REST API
// @version 1.0
// @description Backend for the turf booking platform.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&turf.Turf{},
		&booking.Booking{},
		&payment.Payment{},
		&sitesetting.SiteSetting{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := user.SeedDefaultUsers(config.DB); err != nil {
		log.Fatalf("Seeding default users failed: %v", err)
	}

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
