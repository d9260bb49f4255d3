package main

import (
	"log"
	"studyplanner/backend/ai"
	"studyplanner/backend/config"
	"studyplanner/backend/middleware"
	"studyplanner/backend/routes"
	"studyplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// AI backends (either key may be absent; plan generation needs one)
	aiClient := ai.NewClient(cfg)
	if aiClient.Primary == nil && aiClient.Secondary == nil {
		logger.Println("Warning: no AI backend configured, plan generation will fail")
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, aiClient, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
