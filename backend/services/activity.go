package services

import (
	"errors"
	"time"

	"studyplanner/backend/models"

	"gorm.io/gorm"
)

// XP awarded per action kind. Callers pick the constant matching the action.
const (
	XPToggleTask     = 5
	XPLikePlan       = 5
	XPAddComment     = 10
	XPUpdateProgress = 15
	XPGenerateQuiz   = 15
	XPForkPlan       = 20
	XPCreatePlan     = 50
)

// ApplyActivity updates a user's streak, XP and last-active date in memory.
// Same-day activity never double-counts the streak; activity on the day after
// the last active date extends it; any longer gap resets it to 1.
func ApplyActivity(user *models.User, xpGain int, today time.Time) {
	today = dateOnly(today)
	switch {
	case user.LastActive != nil && sameDay(*user.LastActive, today):
		// already counted today
	case user.LastActive != nil && sameDay(*user.LastActive, today.AddDate(0, 0, -1)):
		user.Streak++
	default:
		user.Streak = 1
	}
	user.LastActive = &today
	user.XP += xpGain
}

// RecordActivity loads the user on tx, applies the activity update and saves
// it. It must run on the same transaction as the action granting the XP so
// the two commit or roll back together.
func RecordActivity(tx *gorm.DB, userID uint, xpGain int, today time.Time) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	ApplyActivity(&user, xpGain, today)
	return tx.Save(&user).Error
}

// AwardXP records an activity as its own transaction, for actions with no
// accompanying plan mutation (e.g. quiz generation).
func AwardXP(db *gorm.DB, userID uint, xpGain int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return RecordActivity(tx, userID, xpGain, time.Now().UTC())
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
