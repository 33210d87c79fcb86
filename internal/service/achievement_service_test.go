package service

import (
	"context"
	"testing"
	"time"

	"fitstride/fitness-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestListAchievements(t *testing.T) {
	sessionRepo := new(mockSessionRepo)
	userProgramRepo := new(mockUserProgramRepo)
	svc := NewAchievementService(sessionRepo, userProgramRepo, zap.NewNop()).(*achievementService)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	userID := primitive.NewObjectID()
	// 12 completed workouts, a 3-day streak, one finished program.
	dates := []time.Time{
		now, now.AddDate(0, 0, -1), now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -10),
	}
	sessionRepo.On("CountCompletedByUserID", mock.Anything, userID).Return(int64(12), nil)
	sessionRepo.On("CompletionDates", mock.Anything, userID).Return(dates, nil)
	userProgramRepo.On("GetByUserID", mock.Anything, userID).Return([]domain.UserProgram{
		{Status: domain.ProgramCompleted},
		{Status: domain.ProgramActive},
	}, nil)

	achievements, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, achievements, 6)

	byCode := map[string]domain.Achievement{}
	for _, a := range achievements {
		byCode[a.Code] = a
	}

	assert.True(t, byCode["first-workout"].Earned)
	assert.True(t, byCode["ten-workouts"].Earned)
	assert.False(t, byCode["fifty-workouts"].Earned)
	assert.Equal(t, 12, byCode["fifty-workouts"].Progress)
	assert.Equal(t, 50, byCode["fifty-workouts"].Target)

	streak := byCode["week-streak"]
	assert.False(t, streak.Earned)
	assert.Equal(t, 3, streak.Progress)

	graduate := byCode["program-graduate"]
	assert.True(t, graduate.Earned)
	assert.Equal(t, 1, graduate.Progress, "progress caps at the target")
}

func TestListAchievementsFreshUser(t *testing.T) {
	sessionRepo := new(mockSessionRepo)
	userProgramRepo := new(mockUserProgramRepo)
	svc := NewAchievementService(sessionRepo, userProgramRepo, zap.NewNop())

	userID := primitive.NewObjectID()
	sessionRepo.On("CountCompletedByUserID", mock.Anything, userID).Return(int64(0), nil)
	sessionRepo.On("CompletionDates", mock.Anything, userID).Return([]time.Time{}, nil)
	userProgramRepo.On("GetByUserID", mock.Anything, userID).Return([]domain.UserProgram{}, nil)

	achievements, err := svc.List(context.Background(), userID)
	require.NoError(t, err)

	for _, a := range achievements {
		assert.False(t, a.Earned, "badge %s", a.Code)
		assert.Zero(t, a.Progress, "badge %s", a.Code)
	}
}
