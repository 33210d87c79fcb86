package service

import (
	"context"
	"testing"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "unit-test-secret"

func newAuthServiceFixture() (*mockUserRepo, AuthService) {
	repo := new(mockUserRepo)
	return repo, NewAuthService(repo, testJWTSecret, time.Hour, zap.NewNop())
}

func TestRegister(t *testing.T) {
	repo, svc := newAuthServiceFixture()
	userID := primitive.NewObjectID()

	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*domain.User)
			assert.NotEqual(t, "hunter2secret", created.PasswordHash, "password must be hashed")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2secret")))
		}).
		Return(userID, nil)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2secret")
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo, svc := newAuthServiceFixture()
	repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{}, nil)

	_, err := svc.Register(context.Background(), "Someone", "taken@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterDuplicateRace(t *testing.T) {
	repo, svc := newAuthServiceFixture()
	repo.On("GetByEmail", mock.Anything, "race@example.com").Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(primitive.NilObjectID, repository.ErrDuplicate)

	_, err := svc.Register(context.Background(), "Racer", "race@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo, svc := newAuthServiceFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{
		ID:           primitive.NewObjectID(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	token, user, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	// The token must verify with the same secret and carry the user's ID.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, stored.ID.Hex(), claims["uid"])
	assert.Equal(t, "fitstride", claims["iss"])
}

func TestLoginWrongPassword(t *testing.T) {
	repo, svc := newAuthServiceFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{PasswordHash: string(hash)}, nil)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "battery staple")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo, svc := newAuthServiceFixture()
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
