package service

import (
	"context"
	"errors"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/metrics"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrInvalidRating   = errors.New("ratings must be between 1 and 5")
)

// CheckInSummary aggregates the last N days of wellness entries.
type CheckInSummary struct {
	Days            int     `json:"days"`
	CheckInCount    int     `json:"checkInCount"`
	AverageMood     float64 `json:"averageMood"`
	AverageEnergy   float64 `json:"averageEnergy"`
	AverageSoreness float64 `json:"averageSoreness"`
}

// CheckInService records daily mood/energy/soreness entries, one per user
// per calendar day.
type CheckInService interface {
	Record(ctx context.Context, userID primitive.ObjectID, date time.Time, mood, energy, soreness int, notes string) (*domain.CheckIn, error)
	Today(ctx context.Context, userID primitive.ObjectID) (*domain.CheckIn, error)
	Summary(ctx context.Context, userID primitive.ObjectID, days int) (*CheckInSummary, error)
}

type checkInService struct {
	checkInRepo repository.CheckInRepository
	metrics     *metrics.Manager
	logger      *zap.Logger
}

// NewCheckInService creates a new instance of checkInService.
func NewCheckInService(checkInRepo repository.CheckInRepository, m *metrics.Manager, logger *zap.Logger) CheckInService {
	return &checkInService{checkInRepo: checkInRepo, metrics: m, logger: logger}
}

// Record upserts the check-in for the given calendar day. A second entry on
// the same day replaces the first.
func (s *checkInService) Record(ctx context.Context, userID primitive.ObjectID, date time.Time, mood, energy, soreness int, notes string) (*domain.CheckIn, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	for _, rating := range []int{mood, energy, soreness} {
		if rating < 1 || rating > 5 {
			return nil, ErrInvalidRating
		}
	}

	checkIn := &domain.CheckIn{
		UserID:   userID,
		Date:     date,
		Mood:     mood,
		Energy:   energy,
		Soreness: soreness,
		Notes:    notes,
	}
	id, err := s.checkInRepo.Upsert(ctx, checkIn)
	if err != nil {
		return nil, err
	}
	checkIn.ID = id

	s.metrics.CounterCheckIns.Inc()
	return checkIn, nil
}

func (s *checkInService) Today(ctx context.Context, userID primitive.ObjectID) (*domain.CheckIn, error) {
	checkIn, err := s.checkInRepo.GetByUserAndDate(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	return checkIn, nil
}

// Summary averages the last N days of entries. Days without a check-in
// simply do not count toward the averages.
func (s *checkInService) Summary(ctx context.Context, userID primitive.ObjectID, days int) (*CheckInSummary, error) {
	if days < 1 {
		days = 7
	}

	since := time.Now().UTC().AddDate(0, 0, -(days - 1))
	checkIns, err := s.checkInRepo.GetRecentByUserID(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	summary := &CheckInSummary{Days: days, CheckInCount: len(checkIns)}
	if len(checkIns) == 0 {
		return summary, nil
	}

	var mood, energy, soreness int
	for _, c := range checkIns {
		mood += c.Mood
		energy += c.Energy
		soreness += c.Soreness
	}
	n := float64(len(checkIns))
	summary.AverageMood = float64(mood) / n
	summary.AverageEnergy = float64(energy) / n
	summary.AverageSoreness = float64(soreness) / n
	return summary, nil
}
