package services

import (
	"errors"
	"fmt"
	"time"

	"studyplanner/backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlanService struct {
	DB *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{DB: db}
}

type CreatePlanInput struct {
	Goal        string
	Timeframe   string
	ProjectType string
	Content     string
	IsPublic    bool
}

// Create stores a freshly generated plan and grants the creation XP in one
// transaction. Callers must only invoke this after AI dispatch succeeded.
func (s *PlanService) Create(userID uint, in CreatePlanInput) (*models.StudyPlan, error) {
	plan := models.StudyPlan{
		Title:          fmt.Sprintf("Plan for %s...", truncate(in.Goal, 50)),
		Goal:           in.Goal,
		Timeframe:      in.Timeframe,
		ProjectType:    in.ProjectType,
		Content:        in.Content,
		CompletedTasks: datatypes.JSONSlice[int]{},
		IsPublic:       in.IsPublic,
		UserID:         userID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		return RecordActivity(tx, userID, XPCreatePlan, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ToggleTask flips the completion state of one task index and recomputes
// progress as floor(100 * completed / total). A zero total leaves the stored
// progress untouched.
func (s *PlanService) ToggleTask(userID, planID uint, taskIdx, totalTasks int) (*models.StudyPlan, error) {
	var plan models.StudyPlan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := findPlan(tx, planID, &plan); err != nil {
			return err
		}
		if plan.UserID != userID {
			return ErrUnauthorized
		}

		completed := []int(plan.CompletedTasks)
		if i := indexOf(completed, taskIdx); i >= 0 {
			completed = append(completed[:i], completed[i+1:]...)
		} else {
			completed = append(completed, taskIdx)
		}
		plan.CompletedTasks = datatypes.JSONSlice[int](completed)

		if totalTasks > 0 {
			plan.Progress = len(completed) * 100 / totalTasks
		}

		if err := tx.Save(&plan).Error; err != nil {
			return err
		}
		return RecordActivity(tx, userID, XPToggleTask, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// SetProgress overwrites the progress percentage, clamped to [0, 100].
func (s *PlanService) SetProgress(userID, planID uint, progress int) (*models.StudyPlan, error) {
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	var plan models.StudyPlan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := findPlan(tx, planID, &plan); err != nil {
			return err
		}
		if plan.UserID != userID {
			return ErrUnauthorized
		}
		plan.Progress = progress
		if err := tx.Save(&plan).Error; err != nil {
			return err
		}
		return RecordActivity(tx, userID, XPUpdateProgress, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// RewriteContent replaces the plan body wholesale, used after a reschedule
// call. Ownership is enforced here the same as for every other mutation.
func (s *PlanService) RewriteContent(userID, planID uint, content string) (*models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := findPlan(s.DB, planID, &plan); err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrUnauthorized
	}
	plan.Content = content
	if err := s.DB.Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// Fork copies a plan for the caller. The copy is always private, records its
// origin, starts with empty task state, and the source's fork count goes up
// by one in the same transaction.
func (s *PlanService) Fork(userID, planID uint) (*models.StudyPlan, error) {
	var fork models.StudyPlan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var source models.StudyPlan
		if err := findPlan(tx, planID, &source); err != nil {
			return err
		}

		originalID := source.ID
		fork = models.StudyPlan{
			Title:          "Fork of " + source.Title,
			Goal:           source.Goal,
			Timeframe:      source.Timeframe,
			ProjectType:    source.ProjectType,
			Content:        source.Content,
			CompletedTasks: datatypes.JSONSlice[int]{},
			IsPublic:       false,
			OriginalPlanID: &originalID,
			UserID:         userID,
		}
		if err := tx.Create(&fork).Error; err != nil {
			return err
		}

		source.ForkCount++
		if err := tx.Save(&source).Error; err != nil {
			return err
		}
		return RecordActivity(tx, userID, XPForkPlan, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &fork, nil
}

func (s *PlanService) Get(planID uint) (*models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := findPlan(s.DB, planID, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListByUser returns the user's plans, newest first.
func (s *PlanService) ListByUser(userID uint) ([]models.StudyPlan, error) {
	var plans []models.StudyPlan
	err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error
	return plans, err
}

// ListPublic returns one page of public plans, newest first, with the total
// public plan count for pagination.
func (s *PlanService) ListPublic(page, pageSize int) ([]models.StudyPlan, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.DB.Model(&models.StudyPlan{}).Where("is_public = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []models.StudyPlan
	err := s.DB.Where("is_public = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&plans).Error
	return plans, total, err
}

func findPlan(db *gorm.DB, planID uint, plan *models.StudyPlan) error {
	if err := db.First(plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
