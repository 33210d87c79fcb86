package service

import (
	"context"
	"errors"
	"fmt"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/repository"
	"fitstride/fitness-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrNoDemoMedia      = errors.New("exercise has no demo media")
)

// ExerciseService manages the shared exercise catalog and its demo media.
type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exercise *domain.Exercise) error
	SetFavorite(ctx context.Context, id primitive.ObjectID, favorite bool) error
	DeleteExercise(ctx context.Context, id primitive.ObjectID) error

	// RequestDemoUpload reserves an object key for the exercise's demo
	// video and returns a presigned PUT URL for direct client upload.
	RequestDemoUpload(ctx context.Context, id primitive.ObjectID, contentType string) (uploadURL string, err error)
	// DemoDownloadURL returns a presigned GET URL for the demo video.
	DemoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
	logger       *zap.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage, logger *zap.Logger) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

// CreateExercise adds a catalog entry. Names are the catalog identity
// (case-insensitive), so a case-variant duplicate resolves to the existing
// entry instead of creating a twin.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}

	existing, err := s.exerciseRepo.GetByName(ctx, exercise.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, exercise *domain.Exercise) error {
	err := s.exerciseRepo.Update(ctx, exercise)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

func (s *exerciseService) SetFavorite(ctx context.Context, id primitive.ObjectID, favorite bool) error {
	err := s.exerciseRepo.SetFavorite(ctx, id, favorite)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

func (s *exerciseService) DeleteExercise(ctx context.Context, id primitive.ObjectID) error {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return err
	}

	// Drop the media first; a dangling catalog row beats an orphaned blob.
	if exercise.DemoObjectKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, exercise.DemoObjectKey); err != nil {
			return err
		}
	}
	return s.exerciseRepo.Delete(ctx, id)
}

// RequestDemoUpload reserves a fresh object key, stores it on the exercise,
// and hands back a presigned PUT URL. Video bytes go straight to object
// storage, never through this server.
func (s *exerciseService) RequestDemoUpload(ctx context.Context, id primitive.ObjectID, contentType string) (string, error) {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("exercise-demos/%s/%s", exercise.ID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	exercise.DemoObjectKey = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return "", err
	}

	return uploadURL, nil
}

func (s *exerciseService) DemoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return "", err
	}
	if exercise.DemoObjectKey == "" {
		return "", ErrNoDemoMedia
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.DemoObjectKey, storage.DefaultPresignedURLExpiry)
}
