package controllers

import (
	"log"
	"strconv"

	"studyplanner/backend/ai"
	"studyplanner/backend/config"
	"studyplanner/backend/models"
	"studyplanner/backend/services"
	"studyplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PlanController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	AI     *ai.Client
	Plans  *services.PlanService
	Social *services.SocialService
	Logger *log.Logger
}

func NewPlanController(db *gorm.DB, cfg *config.Config, aiClient *ai.Client, logger *log.Logger) *PlanController {
	return &PlanController{
		DB:     db,
		Cfg:    cfg,
		AI:     aiClient,
		Plans:  services.NewPlanService(db),
		Social: services.NewSocialService(db),
		Logger: logger,
	}
}

// CreatePlanInput defines the request body for plan generation.
type CreatePlanInput struct {
	Goal                string `json:"goal" validate:"required"`
	Timeframe           string `json:"timeframe" validate:"required"`
	ProjectType         string `json:"project_type" validate:"required"`
	ReferencePreference string `json:"reference_preference"`
	IsPublic            bool   `json:"is_public"`
	Model               string `json:"model"`
}

// CreatePlan godoc
// @Summary Generate a study plan
// @Description Composes a prompt, dispatches it to the configured AI backend and stores the generated plan
// @Tags plans
// @Accept json
// @Produce json
// @Param input body CreatePlanInput true "Plan parameters"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans [post]
func (pc *PlanController) CreatePlan(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input CreatePlanInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	model := input.Model
	if model == "" {
		var user models.User
		if err := pc.DB.First(&user, userID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		model = user.PreferredModel
	}

	system, user := ai.ComposePlan(input.ProjectType, input.Goal, input.Timeframe, input.ReferencePreference)
	content, err := pc.AI.Complete(c.Context(), ai.Request{
		Model:       model,
		System:      system,
		User:        user,
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		// Dispatch failed: nothing gets persisted.
		pc.Logger.Printf("Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	plan, err := pc.Plans.Create(userID, services.CreatePlanInput{
		Goal:        input.Goal,
		Timeframe:   input.Timeframe,
		ProjectType: input.ProjectType,
		Content:     content,
		IsPublic:    input.IsPublic,
	})
	if err != nil {
		return utils.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"response": content,
		"plan_id":  plan.ID,
	})
}

// GetMyPlans godoc
// @Summary List own plans
// @Description Returns the authenticated user's plans, newest first
// @Tags plans
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans [get]
func (pc *PlanController) GetMyPlans(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	plans, err := pc.Plans.ListByUser(userID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, plans)
}

// GetPublicPlans godoc
// @Summary List public plans
// @Description Returns public plans, newest first, paginated
// @Tags plans
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /plans/public [get]
func (pc *PlanController) GetPublicPlans(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)

	plans, total, err := pc.Plans.ListPublic(page, pageSize)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.Paginate(c, plans, total, page, pageSize)
}

// GetPlanDetails godoc
// @Summary Get plan details
// @Description Returns a plan with its social aggregate; anonymous viewers are allowed
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} services.PlanDetails
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /plans/{id} [get]
func (pc *PlanController) GetPlanDetails(c *fiber.Ctx) error {
	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	// Like state only resolves for authenticated viewers.
	var viewerID *uint
	if id, err := utils.ExtractUserIDFromToken(c, pc.Cfg); err == nil {
		viewerID = &id
	}

	details, err := pc.Social.PlanDetails(uint(planID), viewerID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return c.JSON(details)
}

// ToggleTask godoc
// @Summary Toggle a task's completion
// @Description Flips one task index and recomputes the plan's progress
// @Tags plans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param input body map[string]int true "task_idx and total_tasks"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/tasks/toggle [post]
func (pc *PlanController) ToggleTask(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
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
		TaskIdx    int `json:"task_idx"`
		TotalTasks int `json:"total_tasks"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	plan, err := pc.Plans.ToggleTask(userID, uint(planID), input.TaskIdx, input.TotalTasks)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"progress":  plan.Progress,
		"completed": []int(plan.CompletedTasks),
	})
}

// UpdateProgress godoc
// @Summary Set plan progress
// @Description Overwrites the plan's progress percentage (clamped to 0-100)
// @Tags plans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param input body map[string]int true "progress"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/progress [post]
func (pc *PlanController) UpdateProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
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
		Progress int `json:"progress"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if _, err := pc.Plans.SetProgress(userID, uint(planID), input.Progress); err != nil {
		return utils.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Reschedule godoc
// @Summary Reschedule a plan
// @Description Asks the AI to rewrite the remaining steps and stores the new content
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/reschedule [post]
func (pc *PlanController) Reschedule(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
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

	plan, user, err := pc.loadPlanAndUser(uint(planID), userID)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	if plan.UserID != userID {
		return utils.ServiceError(c, services.ErrUnauthorized)
	}

	system, prompt := ai.ComposeReschedule(plan.Progress, plan.Content)
	newContent, err := pc.AI.Complete(c.Context(), ai.Request{
		Model:  user.PreferredModel,
		System: system,
		User:   prompt,
	})
	if err != nil {
		pc.Logger.Printf("Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if _, err := pc.Plans.RewriteContent(userID, uint(planID), newContent); err != nil {
		return utils.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"new_content": newContent})
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Builds a five-question quiz from the plan content
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/quiz [post]
func (pc *PlanController) GenerateQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
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

	plan, user, err := pc.loadPlanAndUser(uint(planID), userID)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	system, prompt := ai.ComposeQuiz(plan.Content)
	quiz, err := pc.AI.Complete(c.Context(), ai.Request{
		Model:     user.PreferredModel,
		System:    system,
		User:      prompt,
		MaxTokens: 1000,
	})
	if err != nil {
		pc.Logger.Printf("Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := services.AwardXP(pc.DB, userID, services.XPGenerateQuiz); err != nil {
		return utils.ServiceError(c, err)
	}
	return c.JSON(fiber.Map{"quiz": quiz})
}

// SuggestResources godoc
// @Summary Suggest resources
// @Description Suggests resources to get past a roadblock at the current progress
// @Tags plans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param input body map[string]string false "roadblock"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /plans/{id}/resources [post]
func (pc *PlanController) SuggestResources(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
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
		Roadblock string `json:"roadblock"`
	}
	_ = c.BodyParser(&input)

	plan, user, err := pc.loadPlanAndUser(uint(planID), userID)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	system, prompt := ai.ComposeResources(plan.Title, plan.Progress, input.Roadblock)
	suggestions, err := pc.AI.Complete(c.Context(), ai.Request{
		Model:  user.PreferredModel,
		System: system,
		User:   prompt,
	})
	if err != nil {
		pc.Logger.Printf("Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"suggestions": suggestions})
}

func (pc *PlanController) loadPlanAndUser(planID, userID uint) (*models.StudyPlan, *models.User, error) {
	plan, err := pc.Plans.Get(planID)
	if err != nil {
		return nil, nil, err
	}
	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return nil, nil, services.ErrNotFound
	}
	return plan, &user, nil
}
