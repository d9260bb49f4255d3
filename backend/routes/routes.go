package routes

import (
	"log"

	"studyplanner/backend/ai"
	"studyplanner/backend/config"
	"studyplanner/backend/controllers"
	"studyplanner/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, aiClient *ai.Client, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/settings", authMiddleware, userController.UpdateSettings)

	// Plan routes
	planController := controllers.NewPlanController(db, cfg, aiClient, logger)
	plans := app.Group("/api/plans")
	plans.Get("/", authMiddleware, planController.GetMyPlans)
	plans.Post("/", authMiddleware, planController.CreatePlan)
	plans.Get("/public", planController.GetPublicPlans)
	plans.Get("/:id", planController.GetPlanDetails)
	plans.Post("/:id/tasks/toggle", authMiddleware, planController.ToggleTask)
	plans.Post("/:id/progress", authMiddleware, planController.UpdateProgress)
	plans.Post("/:id/reschedule", authMiddleware, planController.Reschedule)
	plans.Post("/:id/quiz", authMiddleware, planController.GenerateQuiz)
	plans.Post("/:id/resources", authMiddleware, planController.SuggestResources)

	// Social routes
	socialController := controllers.NewSocialController(db, cfg)
	plans.Post("/:id/like", authMiddleware, socialController.LikePlan)
	plans.Post("/:id/comments", authMiddleware, socialController.AddComment)
	plans.Post("/:id/fork", authMiddleware, socialController.ForkPlan)
}
