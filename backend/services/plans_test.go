package services

import (
	"fmt"
	"strings"
	"testing"

	"studyplanner/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.StudyPlan{},
		&models.Like{},
		&models.Comment{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:       username,
		Email:          username + "@example.com",
		PreferredModel: models.DefaultModel,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestPlan(t *testing.T, db *gorm.DB, svc *PlanService, userID uint) *models.StudyPlan {
	t.Helper()
	plan, err := svc.Create(userID, CreatePlanInput{
		Goal:        "learn Rust",
		Timeframe:   "4 weeks",
		ProjectType: "coding",
		Content:     "1. Read the book\n2. Do rustlings\n3. Build a CLI",
	})
	require.NoError(t, err)
	return plan
}

func TestCreatePlan(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")

	plan := createTestPlan(t, db, svc, user.ID)

	assert.Equal(t, "Plan for learn Rust...", plan.Title)
	assert.Equal(t, 0, plan.Progress)
	assert.Equal(t, 0, plan.ForkCount)
	assert.Empty(t, []int(plan.CompletedTasks))
	assert.False(t, plan.IsPublic)

	// Plan creation grants 50 XP and starts a streak.
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, XPCreatePlan, fresh.XP)
	assert.Equal(t, 1, fresh.Streak)
	require.NotNil(t, fresh.LastActive)
}

func TestCreatePlanTruncatesLongGoal(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")

	long := strings.Repeat("x", 80)
	plan, err := svc.Create(user.ID, CreatePlanInput{Goal: long, Timeframe: "1 week", ProjectType: "coding"})
	require.NoError(t, err)
	assert.Equal(t, "Plan for "+strings.Repeat("x", 50)+"...", plan.Title)
}

func TestToggleTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")
	plan := createTestPlan(t, db, svc, user.ID)

	got, err := svc.ToggleTask(user.ID, plan.ID, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, []int(got.CompletedTasks))
	assert.Equal(t, 12, got.Progress) // floor(100*1/8)

	got, err = svc.ToggleTask(user.ID, plan.ID, 5, 8)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 5}, []int(got.CompletedTasks))
	assert.Equal(t, 25, got.Progress)
}

func TestToggleTaskTwiceRestoresState(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")
	plan := createTestPlan(t, db, svc, user.ID)

	_, err := svc.ToggleTask(user.ID, plan.ID, 0, 4)
	require.NoError(t, err)
	got, err := svc.ToggleTask(user.ID, plan.ID, 0, 4)
	require.NoError(t, err)

	assert.Empty(t, []int(got.CompletedTasks))
	assert.Equal(t, 0, got.Progress)
}

func TestToggleTaskZeroTotalLeavesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")
	plan := createTestPlan(t, db, svc, user.ID)

	_, err := svc.SetProgress(user.ID, plan.ID, 40)
	require.NoError(t, err)

	got, err := svc.ToggleTask(user.ID, plan.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, []int(got.CompletedTasks))
	assert.Equal(t, 40, got.Progress)
}

func TestToggleTaskNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	owner := createTestUser(t, db, "alice")
	stranger := createTestUser(t, db, "bob")
	plan := createTestPlan(t, db, svc, owner.ID)

	_, err := svc.ToggleTask(stranger.ID, plan.ID, 0, 4)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Nothing committed, including the stranger's XP.
	var fresh models.User
	require.NoError(t, db.First(&fresh, stranger.ID).Error)
	assert.Equal(t, 0, fresh.XP)
}

func TestToggleTaskPlanMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")

	_, err := svc.ToggleTask(user.ID, 999, 0, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetProgressClamps(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")
	plan := createTestPlan(t, db, svc, user.ID)

	got, err := svc.SetProgress(user.ID, plan.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	got, err = svc.SetProgress(user.ID, plan.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestSetProgressNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	owner := createTestUser(t, db, "alice")
	stranger := createTestUser(t, db, "bob")
	plan := createTestPlan(t, db, svc, owner.ID)

	_, err := svc.SetProgress(stranger.ID, plan.ID, 50)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRewriteContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")
	plan := createTestPlan(t, db, svc, user.ID)

	got, err := svc.RewriteContent(user.ID, plan.ID, "rebalanced plan")
	require.NoError(t, err)
	assert.Equal(t, "rebalanced plan", got.Content)

	stranger := createTestUser(t, db, "bob")
	_, err = svc.RewriteContent(stranger.ID, plan.ID, "hijacked")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFork(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	owner := createTestUser(t, db, "alice")
	forker := createTestUser(t, db, "bob")

	source, err := svc.Create(owner.ID, CreatePlanInput{
		Goal:        "learn piano",
		Timeframe:   "6 months",
		ProjectType: "music",
		Content:     "scales, then chords",
		IsPublic:    true,
	})
	require.NoError(t, err)

	fork, err := svc.Fork(forker.ID, source.ID)
	require.NoError(t, err)

	assert.Equal(t, "Fork of "+source.Title, fork.Title)
	assert.Equal(t, source.Goal, fork.Goal)
	assert.Equal(t, source.Content, fork.Content)
	assert.False(t, fork.IsPublic, "forks are private regardless of source visibility")
	require.NotNil(t, fork.OriginalPlanID)
	assert.Equal(t, source.ID, *fork.OriginalPlanID)
	assert.Equal(t, forker.ID, fork.UserID)
	assert.Empty(t, []int(fork.CompletedTasks))

	var fresh models.StudyPlan
	require.NoError(t, db.First(&fresh, source.ID).Error)
	assert.Equal(t, 1, fresh.ForkCount)

	var user models.User
	require.NoError(t, db.First(&user, forker.ID).Error)
	assert.Equal(t, XPForkPlan, user.XP)
}

func TestListPublic(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	user := createTestUser(t, db, "alice")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(user.ID, CreatePlanInput{
			Goal:        fmt.Sprintf("goal %d", i),
			Timeframe:   "1 week",
			ProjectType: "coding",
			IsPublic:    i < 2,
		})
		require.NoError(t, err)
	}

	plans, total, err := svc.ListPublic(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, plans, 2)
	for _, p := range plans {
		assert.True(t, p.IsPublic)
	}
}

func TestListByUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlanService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestPlan(t, db, svc, alice.ID)
	createTestPlan(t, db, svc, bob.ID)

	plans, err := svc.ListByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, alice.ID, plans[0].UserID)
}
