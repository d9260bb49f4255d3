package controllers

import (
	"strconv"

	"studyplanner/backend/config"
	"studyplanner/backend/models"
	"studyplanner/backend/services"
	"studyplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SocialController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Plans  *services.PlanService
	Social *services.SocialService
}

func NewSocialController(db *gorm.DB, cfg *config.Config) *SocialController {
	return &SocialController{
		DB:     db,
		Cfg:    cfg,
		Plans:  services.NewPlanService(db),
		Social: services.NewSocialService(db),
	}
}

// LikePlan godoc
// @Summary Toggle a like
// @Description Likes the plan, or removes the caller's existing like
// @Tags social
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/like [post]
func (sc *SocialController) LikePlan(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	liked, err := sc.Social.ToggleLike(userID, uint(planID))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "liked": liked})
}

// AddComment godoc
// @Summary Comment on a plan
// @Description Appends an immutable comment to the plan
// @Tags social
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param input body map[string]string true "content"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/comments [post]
func (sc *SocialController) AddComment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	comment, err := sc.Social.AddComment(userID, uint(planID), input.Content)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return utils.ServiceError(c, services.ErrNotFound)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"username": user.Username,
		"content":  comment.Content,
	})
}

// ForkPlan godoc
// @Summary Fork a plan
// @Description Creates a private copy of the plan owned by the caller
// @Tags social
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/fork [post]
func (sc *SocialController) ForkPlan(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	fork, err := sc.Plans.Fork(userID, uint(planID))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "new_plan_id": fork.ID})
}
