package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultModel = "google/gemini-2.0-flash-001"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `json:"-"` // empty for externally-authenticated accounts

	// Gamification state. XP only ever grows; Streak counts consecutive
	// active calendar days and resets to 1 after a gap.
	XP         int        `gorm:"default:0" json:"xp"`
	Streak     int        `gorm:"default:0" json:"streak"`
	LastActive *time.Time `json:"last_active"`

	PreferredModel string `gorm:"default:'google/gemini-2.0-flash-001'" json:"preferred_model"`
}
