package service

import (
	"context"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/program"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AchievementService derives badges from activity counts. Achievements are
// never stored: they are recomputed on every read, so they can never drift
// from the underlying records.
type AchievementService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Achievement, error)
}

type achievementService struct {
	sessionRepo     repository.SessionRepository
	userProgramRepo repository.UserProgramRepository
	logger          *zap.Logger
	now             func() time.Time
}

// NewAchievementService creates a new instance of achievementService.
func NewAchievementService(sessionRepo repository.SessionRepository, userProgramRepo repository.UserProgramRepository, logger *zap.Logger) AchievementService {
	return &achievementService{
		sessionRepo:     sessionRepo,
		userProgramRepo: userProgramRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// List evaluates the full badge table for the user.
func (s *achievementService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Achievement, error) {
	completed, err := s.sessionRepo.CountCompletedByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates, err := s.sessionRepo.CompletionDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak := program.StreakDays(dates, s.now())

	programs, err := s.userProgramRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	finishedPrograms := 0
	for _, p := range programs {
		if p.Status == domain.ProgramCompleted {
			finishedPrograms++
		}
	}

	n := int(completed)
	return []domain.Achievement{
		countBadge("first-workout", "First Steps", "Complete your first workout", n, 1),
		countBadge("ten-workouts", "Regular", "Complete 10 workouts", n, 10),
		countBadge("fifty-workouts", "Committed", "Complete 50 workouts", n, 50),
		countBadge("hundred-workouts", "Iron Habit", "Complete 100 workouts", n, 100),
		countBadge("week-streak", "On a Roll", "Train 7 days in a row", streak, 7),
		countBadge("program-graduate", "Graduate", "Finish a full program", finishedPrograms, 1),
	}, nil
}

func countBadge(code, title, description string, progress, target int) domain.Achievement {
	capped := progress
	if capped > target {
		capped = target
	}
	return domain.Achievement{
		Code:        code,
		Title:       title,
		Description: description,
		Earned:      progress >= target,
		Progress:    capped,
		Target:      target,
	}
}
