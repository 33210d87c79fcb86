package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}

func newExerciseServiceFixture() (*mockExerciseRepo, *mockFileStorage, ExerciseService) {
	repo := new(mockExerciseRepo)
	fs := new(mockFileStorage)
	return repo, fs, NewExerciseService(repo, fs, zap.NewNop())
}

func TestCreateExerciseDeduplicatesByName(t *testing.T) {
	repo, _, svc := newExerciseServiceFixture()

	existing := catalogExercise("Bench Press")
	repo.On("GetByName", mock.Anything, "bench press").Return(existing, nil)

	created, err := svc.CreateExercise(context.Background(), &domain.Exercise{Name: "bench press"})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, created.ID, "case-variant resolves to the existing entry")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateExerciseNewEntry(t *testing.T) {
	repo, _, svc := newExerciseServiceFixture()

	repo.On("GetByName", mock.Anything, "Face Pull").Return(nil, repository.ErrNotFound)
	id := primitive.NewObjectID()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Exercise")).Return(id, nil)

	created, err := svc.CreateExercise(context.Background(), &domain.Exercise{Name: "Face Pull", MuscleGroup: "Shoulders"})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
}

func TestDeleteExerciseRemovesDemoMedia(t *testing.T) {
	repo, fs, svc := newExerciseServiceFixture()
	id := primitive.NewObjectID()

	stored := &domain.Exercise{ID: id, Name: "Squat", DemoObjectKey: "exercise-demos/abc/video"}
	repo.On("GetByID", mock.Anything, id).Return(stored, nil)
	fs.On("DeleteObject", mock.Anything, "exercise-demos/abc/video").Return(nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.DeleteExercise(context.Background(), id))
	fs.AssertCalled(t, "DeleteObject", mock.Anything, "exercise-demos/abc/video")
}

func TestDeleteExerciseWithoutMedia(t *testing.T) {
	repo, fs, svc := newExerciseServiceFixture()
	id := primitive.NewObjectID()

	repo.On("GetByID", mock.Anything, id).Return(&domain.Exercise{ID: id, Name: "Plank"}, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.DeleteExercise(context.Background(), id))
	fs.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestRequestDemoUpload(t *testing.T) {
	repo, fs, svc := newExerciseServiceFixture()
	id := primitive.NewObjectID()

	stored := &domain.Exercise{ID: id, Name: "Deadlift"}
	repo.On("GetByID", mock.Anything, id).Return(stored, nil)

	var reservedKey string
	fs.On("GeneratePresignedUploadURL", mock.Anything, mock.AnythingOfType("string"), "video/mp4", mock.Anything).
		Run(func(args mock.Arguments) { reservedKey = args.String(1) }).
		Return("https://bucket.example/put", nil)
	repo.On("Update", mock.Anything, stored).Return(nil)

	uploadURL, err := svc.RequestDemoUpload(context.Background(), id, "video/mp4")
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.example/put", uploadURL)
	assert.True(t, strings.HasPrefix(reservedKey, "exercise-demos/"+id.Hex()+"/"))
	assert.Equal(t, reservedKey, stored.DemoObjectKey, "key persists on the exercise")
}

func TestDemoDownloadURL(t *testing.T) {
	repo, fs, svc := newExerciseServiceFixture()
	id := primitive.NewObjectID()

	t.Run("with media", func(t *testing.T) {
		stored := &domain.Exercise{ID: id, Name: "Row", DemoObjectKey: "exercise-demos/xyz/clip"}
		repo.On("GetByID", mock.Anything, id).Return(stored, nil).Once()
		fs.On("GeneratePresignedDownloadURL", mock.Anything, "exercise-demos/xyz/clip", mock.Anything).
			Return("https://bucket.example/get", nil)

		url, err := svc.DemoDownloadURL(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example/get", url)
	})

	t.Run("without media", func(t *testing.T) {
		repo.On("GetByID", mock.Anything, id).Return(&domain.Exercise{ID: id, Name: "Row"}, nil).Once()

		_, err := svc.DemoDownloadURL(context.Background(), id)
		assert.ErrorIs(t, err, ErrNoDemoMedia)
	})
}

func TestSetFavoriteUnknownExercise(t *testing.T) {
	repo, _, svc := newExerciseServiceFixture()
	id := primitive.NewObjectID()
	repo.On("SetFavorite", mock.Anything, id, true).Return(repository.ErrNotFound)

	assert.ErrorIs(t, svc.SetFavorite(context.Background(), id, true), ErrExerciseNotFound)
}
