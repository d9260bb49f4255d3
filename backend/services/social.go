package services

import (
	"errors"
	"strings"
	"time"

	"studyplanner/backend/models"

	"gorm.io/gorm"
)

type SocialService struct {
	DB *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{DB: db}
}

// ToggleLike inserts or removes the caller's like on a plan and reports the
// resulting state. Only a fresh like grants XP; removing one does not claw
// any back.
func (s *SocialService) ToggleLike(userID, planID uint) (liked bool, err error) {
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var plan models.StudyPlan
		if err := findPlan(tx, planID, &plan); err != nil {
			return err
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND plan_id = ?", userID, planID).First(&existing).Error
		if err == nil {
			liked = false
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		liked = true
		if err := tx.Create(&models.Like{UserID: userID, PlanID: planID}).Error; err != nil {
			return err
		}
		return RecordActivity(tx, userID, XPLikePlan, time.Now().UTC())
	})
	return liked, err
}

// AddComment appends an immutable comment to a plan.
func (s *SocialService) AddComment(userID, planID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}

	comment := models.Comment{
		Content: content,
		UserID:  userID,
		PlanID:  planID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var plan models.StudyPlan
		if err := findPlan(tx, planID, &plan); err != nil {
			return err
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return RecordActivity(tx, userID, XPAddComment, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

type CommentView struct {
	Username string `json:"username"`
	Content  string `json:"content"`
	Date     string `json:"date"`
}

type PlanDetails struct {
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Author         string        `json:"author"`
	Forks          int           `json:"forks"`
	Likes          int64         `json:"likes"`
	IsLiked        bool          `json:"is_liked"`
	Progress       int           `json:"progress"`
	CompletedTasks []int         `json:"completed_tasks"`
	Comments       []CommentView `json:"comments"`
}

// PlanDetails returns the plan body together with its social aggregate:
// like count, whether the viewer liked it (always false for anonymous
// viewers), comments newest first, and the fork count.
func (s *SocialService) PlanDetails(planID uint, viewerID *uint) (*PlanDetails, error) {
	var plan models.StudyPlan
	if err := findPlan(s.DB.Preload("User"), planID, &plan); err != nil {
		return nil, err
	}

	var likes int64
	if err := s.DB.Model(&models.Like{}).Where("plan_id = ?", planID).Count(&likes).Error; err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != nil {
		var n int64
		err := s.DB.Model(&models.Like{}).
			Where("user_id = ? AND plan_id = ?", *viewerID, planID).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		isLiked = n > 0
	}

	var comments []models.Comment
	err := s.DB.Preload("User").
		Where("plan_id = ?", planID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			Username: c.User.Username,
			Content:  c.Content,
			Date:     c.CreatedAt.Format("2006-01-02"),
		})
	}

	return &PlanDetails{
		Title:          plan.Title,
		Content:        plan.Content,
		Author:         plan.User.Username,
		Forks:          plan.ForkCount,
		Likes:          likes,
		IsLiked:        isLiked,
		Progress:       plan.Progress,
		CompletedTasks: []int(plan.CompletedTasks),
		Comments:       views,
	}, nil
}
