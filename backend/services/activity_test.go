package services

import (
	"testing"
	"time"

	"studyplanner/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyActivityFirstEver(t *testing.T) {
	user := &models.User{}
	today := date(2026, time.March, 10)

	ApplyActivity(user, 5, today)

	assert.Equal(t, 5, user.XP)
	assert.Equal(t, 1, user.Streak)
	require.NotNil(t, user.LastActive)
	assert.True(t, user.LastActive.Equal(today))
}

func TestApplyActivitySameDay(t *testing.T) {
	today := date(2026, time.March, 10)
	user := &models.User{XP: 100, Streak: 4, LastActive: &today}

	ApplyActivity(user, 10, today)

	assert.Equal(t, 110, user.XP)
	assert.Equal(t, 4, user.Streak, "same-day activity must not double-count")
}

func TestApplyActivityConsecutiveDay(t *testing.T) {
	yesterday := date(2026, time.March, 9)
	user := &models.User{XP: 100, Streak: 4, LastActive: &yesterday}

	ApplyActivity(user, 10, date(2026, time.March, 10))

	assert.Equal(t, 5, user.Streak)
	assert.True(t, user.LastActive.Equal(date(2026, time.March, 10)))
}

func TestApplyActivityGapResets(t *testing.T) {
	lastWeek := date(2026, time.March, 3)
	user := &models.User{XP: 100, Streak: 9, LastActive: &lastWeek}

	ApplyActivity(user, 10, date(2026, time.March, 10))

	assert.Equal(t, 1, user.Streak)
}

func TestApplyActivityTwoDayGapResets(t *testing.T) {
	lastActive := date(2026, time.March, 8)
	user := &models.User{Streak: 3, LastActive: &lastActive}

	ApplyActivity(user, 5, date(2026, time.March, 10))

	assert.Equal(t, 1, user.Streak)
}

func TestApplyActivityStripsClockTime(t *testing.T) {
	user := &models.User{}
	ApplyActivity(user, 5, time.Date(2026, time.March, 10, 23, 59, 12, 0, time.UTC))
	assert.True(t, user.LastActive.Equal(date(2026, time.March, 10)))
}

func TestApplyActivityXPMonotonic(t *testing.T) {
	user := &models.User{}
	today := date(2026, time.March, 10)

	prev := 0
	for _, gain := range []int{5, 10, 15, 20, 50, 5} {
		ApplyActivity(user, gain, today)
		assert.GreaterOrEqual(t, user.XP, prev)
		prev = user.XP
	}
	assert.Equal(t, 105, user.XP)
}

func TestRecordActivityFreshUserScenario(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	require.NoError(t, AwardXP(db, user.ID, XPToggleTask))

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 5, fresh.XP)
	assert.Equal(t, 1, fresh.Streak)
	require.NotNil(t, fresh.LastActive)
	assert.True(t, sameDay(*fresh.LastActive, time.Now().UTC()))
}

func TestRecordActivityUnknownUser(t *testing.T) {
	db := newTestDB(t)
	err := AwardXP(db, 12345, XPToggleTask)
	assert.ErrorIs(t, err, ErrNotFound)
}
