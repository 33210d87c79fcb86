package service

import (
	"context"
	"errors"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/metrics"
	"fitstride/fitness-app/internal/relay"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound      = errors.New("workout session not found")
	ErrSessionAccessDenied  = errors.New("access denied to this session")
	ErrSessionAlreadyActive = errors.New("another session is already in progress")
	ErrSessionNotInProgress = errors.New("session is not in progress")
	ErrSessionNotPaused     = errors.New("session is not paused")
)

// Flat estimate used when a completing client supplies no calorie figure.
const caloriesPerMinute = 7

// CompletedSetInput is the payload for logging one executed set.
type CompletedSetInput struct {
	ExerciseName string
	SetNumber    int
	Reps         int
	Weight       *float64
}

// CompleteSessionInput carries optional client-measured figures; zero values
// fall back to server-side derivation.
type CompleteSessionInput struct {
	DurationSeconds int
	CaloriesBurned  int
	Notes           string
}

// SessionService manages workout attempts and mirrors their lifecycle onto
// the watch relay. A Workout is the plan; a session is one execution of it.
type SessionService interface {
	Start(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.WorkoutSession, error)
	Current(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Pause(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	Resume(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	LogSet(ctx context.Context, userID, sessionID primitive.ObjectID, set CompletedSetInput) (*domain.WorkoutSession, error)
	StartRest(ctx context.Context, userID, sessionID primitive.ObjectID, durationSeconds int) error
	EndRest(ctx context.Context, userID, sessionID primitive.ObjectID) error
	Complete(ctx context.Context, userID, sessionID primitive.ObjectID, input CompleteSessionInput) (*domain.WorkoutSession, error)
	Cancel(ctx context.Context, userID, sessionID primitive.ObjectID) error
	// StartOver deletes the session and re-invokes the start flow on the
	// same workout.
	StartOver(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
}

type sessionService struct {
	sessionRepo    repository.SessionRepository
	workoutRepo    repository.WorkoutRepository
	workoutService WorkoutService
	programService ProgramService
	hub            *relay.Hub
	metrics        *metrics.Manager
	logger         *zap.Logger
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	workoutRepo repository.WorkoutRepository,
	workoutService WorkoutService,
	programService ProgramService,
	hub *relay.Hub,
	m *metrics.Manager,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		workoutRepo:    workoutRepo,
		workoutService: workoutService,
		programService: programService,
		hub:            hub,
		metrics:        m,
		logger:         logger,
	}
}

// Start begins a new attempt at a workout. The workout becomes the single
// active one; a watch mirror hears about it immediately.
func (s *sessionService) Start(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.WorkoutSession, error) {
	// One attempt at a time.
	existing, err := s.sessionRepo.GetInProgressByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSessionAlreadyActive
	}

	workout, err := s.workoutService.SetActiveWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	session := &domain.WorkoutSession{
		WorkoutID: workout.ID,
		UserID:    userID,
		Status:    domain.SessionInProgress,
		StartedAt: time.Now().UTC(),
	}
	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	firstExercise, firstSets := "", 0
	if len(workout.Exercises) > 0 {
		firstExercise = workout.Exercises[0].ExerciseName
		firstSets = workout.Exercises[0].TargetSets
	}
	s.publish(relay.TypeWorkoutStarted, relay.WorkoutStartedPayload{
		WorkoutName:  workout.Name,
		ExerciseName: firstExercise,
		TotalSets:    firstSets,
	})

	s.logger.Info("session started",
		zap.String("user_id", userID.Hex()),
		zap.String("workout_id", workout.ID.Hex()))
	return session, nil
}

func (s *sessionService) Current(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetInProgressByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.GetByUserID(ctx, userID)
}

func (s *sessionService) Pause(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionInProgress {
		return nil, ErrSessionNotInProgress
	}

	session.Status = domain.SessionPaused
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Resume(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionPaused {
		return nil, ErrSessionNotPaused
	}

	session.Status = domain.SessionInProgress
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// LogSet appends one executed set and mirrors the position to the watch.
func (s *sessionService) LogSet(ctx context.Context, userID, sessionID primitive.ObjectID, set CompletedSetInput) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionInProgress {
		return nil, ErrSessionNotInProgress
	}

	session.CompletedSets = append(session.CompletedSets, domain.CompletedSet{
		ExerciseName: set.ExerciseName,
		SetNumber:    set.SetNumber,
		Reps:         set.Reps,
		Weight:       set.Weight,
		CompletedAt:  time.Now().UTC(),
	})
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	totalSets := 0
	if workout, err := s.workoutRepo.GetByID(ctx, session.WorkoutID); err == nil {
		for _, we := range workout.Exercises {
			if we.ExerciseName == set.ExerciseName {
				totalSets = we.TargetSets
				break
			}
		}
	}
	s.publish(relay.TypeExerciseChanged, relay.ExerciseChangedPayload{
		Exercise:  set.ExerciseName,
		SetNumber: set.SetNumber,
		TotalSets: totalSets,
		Weight:    set.Weight,
		Reps:      set.Reps,
	})
	return session, nil
}

func (s *sessionService) StartRest(ctx context.Context, userID, sessionID primitive.ObjectID, durationSeconds int) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	s.publish(relay.TypeRestTimerStarted, relay.RestTimerStartedPayload{DurationSeconds: durationSeconds})
	return nil
}

func (s *sessionService) EndRest(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	s.publish(relay.TypeRestTimerEnded, struct{}{})
	return nil
}

// Complete finishes the attempt: stamps the session, completes and
// deactivates the workout, and feeds program progress.
func (s *sessionService) Complete(ctx context.Context, userID, sessionID primitive.ObjectID, input CompleteSessionInput) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionInProgress && session.Status != domain.SessionPaused {
		return nil, ErrSessionNotInProgress
	}

	now := time.Now().UTC()
	session.Status = domain.SessionCompleted
	session.CompletedAt = &now
	session.Notes = input.Notes

	session.TotalDurationSeconds = input.DurationSeconds
	if session.TotalDurationSeconds <= 0 {
		session.TotalDurationSeconds = int(now.Sub(session.StartedAt).Seconds())
	}
	session.CaloriesBurned = input.CaloriesBurned
	if session.CaloriesBurned <= 0 {
		session.CaloriesBurned = session.TotalDurationSeconds / 60 * caloriesPerMinute
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	workout, err := s.workoutRepo.GetByID(ctx, session.WorkoutID)
	if err != nil {
		return nil, err
	}
	workout.Status = domain.WorkoutCompleted
	workout.IsActive = false
	workout.CompletedAt = &now
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}

	if err := s.programService.RecordWorkoutCompletion(ctx, workout); err != nil {
		return nil, err
	}

	s.publish(relay.TypeWorkoutEnded, relay.WorkoutEndedPayload{
		WorkoutName:     workout.Name,
		DurationSeconds: session.TotalDurationSeconds,
		CompletedSets:   len(session.CompletedSets),
	})
	s.metrics.CounterSessionsCompleted.Inc()

	s.logger.Info("session completed",
		zap.String("user_id", userID.Hex()),
		zap.String("session_id", session.ID.Hex()),
		zap.Int("duration_s", session.TotalDurationSeconds))
	return session, nil
}

// Cancel abandons the attempt. The workout returns to its scheduled state.
func (s *sessionService) Cancel(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status != domain.SessionInProgress && session.Status != domain.SessionPaused {
		return ErrSessionNotInProgress
	}

	session.Status = domain.SessionCancelled
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return err
	}

	if err := s.workoutService.DeactivateAll(ctx, userID); err != nil {
		return err
	}

	workout, err := s.workoutRepo.GetByID(ctx, session.WorkoutID)
	if err == nil {
		s.publish(relay.TypeWorkoutEnded, relay.WorkoutEndedPayload{
			WorkoutName:     workout.Name,
			DurationSeconds: int(time.Now().UTC().Sub(session.StartedAt).Seconds()),
			CompletedSets:   len(session.CompletedSets),
		})
	}
	return nil
}

// StartOver wipes the attempt and begins a fresh one on the same workout.
func (s *sessionService) StartOver(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	workoutID := session.WorkoutID
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	if err := s.workoutService.DeactivateAll(ctx, userID); err != nil {
		return nil, err
	}
	return s.Start(ctx, userID, workoutID)
}

func (s *sessionService) ownedSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionAccessDenied
	}
	return session, nil
}

func (s *sessionService) publish(msgType relay.MessageType, payload interface{}) {
	s.hub.Publish(msgType, payload)
	s.metrics.CounterRelayMessages.Inc()
}
