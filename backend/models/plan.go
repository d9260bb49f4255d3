package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudyPlan struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Goal        string `gorm:"type:text;not null" json:"goal"`
	Timeframe   string `json:"timeframe"`
	ProjectType string `json:"project_type"`
	Content     string `gorm:"type:text" json:"content"`

	// Indices of tasks the user has checked off. The total task count is not
	// stored; callers supply it when progress needs recomputing.
	CompletedTasks datatypes.JSONSlice[int] `json:"completed_tasks"`
	Progress       int                      `gorm:"default:0" json:"progress"`

	IsPublic       bool  `gorm:"default:false" json:"is_public"`
	ForkCount      int   `gorm:"default:0" json:"fork_count"`
	OriginalPlanID *uint `json:"original_plan_id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
}

// Like rows encode "user liked plan" by existence alone. The unique index
// keeps toggling race-safe at the database level.
type Like struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_like_user_plan" json:"user_id"`
	PlanID uint `gorm:"not null;uniqueIndex:idx_like_user_plan" json:"plan_id"`
}

type Comment struct {
	gorm.Model
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	PlanID  uint   `gorm:"index;not null" json:"plan_id"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
}
