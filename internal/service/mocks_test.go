package service

import (
	"context"
	"time"

	"fitstride/fitness-app/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock repositories backing the service tests.

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockExerciseRepo struct{ mock.Mock }

func (m *mockExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	args := m.Called(ctx, exercise)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	args := m.Called(ctx, id)
	if exercise, ok := args.Get(0).(*domain.Exercise); ok {
		return exercise, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	args := m.Called(ctx, name)
	if exercise, ok := args.Get(0).(*domain.Exercise); ok {
		return exercise, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	args := m.Called(ctx)
	if exercises, ok := args.Get(0).([]domain.Exercise); ok {
		return exercises, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	return m.Called(ctx, exercise).Error(0)
}

func (m *mockExerciseRepo) SetFavorite(ctx context.Context, id primitive.ObjectID, favorite bool) error {
	return m.Called(ctx, id, favorite).Error(0)
}

func (m *mockExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockTemplateRepo struct{ mock.Mock }

func (m *mockTemplateRepo) Create(ctx context.Context, template *domain.ProgramTemplate) (primitive.ObjectID, error) {
	args := m.Called(ctx, template)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockTemplateRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	args := m.Called(ctx, id)
	if template, ok := args.Get(0).(*domain.ProgramTemplate); ok {
		return template, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplateRepo) List(ctx context.Context) ([]domain.ProgramTemplate, error) {
	args := m.Called(ctx)
	if templates, ok := args.Get(0).([]domain.ProgramTemplate); ok {
		return templates, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserProgramRepo struct{ mock.Mock }

func (m *mockUserProgramRepo) Create(ctx context.Context, program *domain.UserProgram) (primitive.ObjectID, error) {
	args := m.Called(ctx, program)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProgram, error) {
	args := m.Called(ctx, id)
	if program, ok := args.Get(0).(*domain.UserProgram); ok {
		return program, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserProgramRepo) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error) {
	args := m.Called(ctx, userID)
	if program, ok := args.Get(0).(*domain.UserProgram); ok {
		return program, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserProgramRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.UserProgram, error) {
	args := m.Called(ctx, userID)
	if programs, ok := args.Get(0).([]domain.UserProgram); ok {
		return programs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserProgramRepo) Update(ctx context.Context, program *domain.UserProgram) error {
	return m.Called(ctx, program).Error(0)
}

type mockWorkoutRepo struct{ mock.Mock }

func (m *mockWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockWorkoutRepo) CreateMany(ctx context.Context, workouts []domain.Workout) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, workouts)
	if ids, ok := args.Get(0).([]primitive.ObjectID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	if workout, ok := args.Get(0).(*domain.Workout); ok {
		return workout, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkoutRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, userID)
	if workouts, ok := args.Get(0).([]domain.Workout); ok {
		return workouts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkoutRepo) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, programID)
	if workouts, ok := args.Get(0).([]domain.Workout); ok {
		return workouts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkoutRepo) Update(ctx context.Context, workout *domain.Workout) error {
	return m.Called(ctx, workout).Error(0)
}

func (m *mockWorkoutRepo) ClearActive(ctx context.Context, userID primitive.ObjectID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockWorkoutRepo) SetActive(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(*domain.WorkoutSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) GetInProgressByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, userID)
	if session, ok := args.Get(0).(*domain.WorkoutSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID)
	if sessions, ok := args.Get(0).([]domain.WorkoutSession); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) Update(ctx context.Context, session *domain.WorkoutSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) CountCompletedByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) CompletionDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if dates, ok := args.Get(0).([]time.Time); ok {
		return dates, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCheckInRepo struct{ mock.Mock }

func (m *mockCheckInRepo) Upsert(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	args := m.Called(ctx, checkIn)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockCheckInRepo) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.CheckIn, error) {
	args := m.Called(ctx, userID, date)
	if checkIn, ok := args.Get(0).(*domain.CheckIn); ok {
		return checkIn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCheckInRepo) GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.CheckIn, error) {
	args := m.Called(ctx, userID, since)
	if checkIns, ok := args.Get(0).([]domain.CheckIn); ok {
		return checkIns, args.Error(1)
	}
	return nil, args.Error(1)
}
