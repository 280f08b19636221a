package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"finoffice/constants"
	"finoffice/database"
	"finoffice/logger"
	"finoffice/routes"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		BodyLimit:    10 * 1024 * 1024,
	})

	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	if err := database.SeedData(db); err != nil {
		logger.Error("Failed to seed database", err)
		return
	}

	// The capability table is injected once at startup; guards consult it
	// through constants.HasPermission.
	constants.SetRolePermissions(constants.DefaultRolePermissions())

	allowOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length, Content-Disposition",
		AllowCredentials: true,
	}))

	asyncLogger := routes.SetupRoutes(app, db)
	defer asyncLogger.Close()

	host := os.Getenv("APP_HOST")
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Success("Server is running on " + host + ":" + port)

	if err := app.Listen(fmt.Sprintf("%s:%s", host, port)); err != nil {
		logger.Error("Server stopped", err)
	}
}
