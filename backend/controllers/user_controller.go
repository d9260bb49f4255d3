package controllers

import (
	"studyplanner/backend/config"
	"studyplanner/backend/models"
	"studyplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile and gamification state
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"username":        user.Username,
		"email":           user.Email,
		"xp":              user.XP,
		"streak":          user.Streak,
		"last_active":     user.LastActive,
		"preferred_model": user.PreferredModel,
	})
}

// UpdateSettings godoc
// @Summary Update user settings
// @Description Updates the user's preferred AI model
// @Tags user
// @Accept json
// @Produce json
// @Param input body map[string]string true "Settings"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/settings [put]
func (uc *UserController) UpdateSettings(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		PreferredModel string `json:"preferred_model"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.PreferredModel != "" {
		err := uc.DB.Model(&models.User{}).
			Where("id = ?", userID).
			Update("preferred_model", input.PreferredModel).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update settings",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
