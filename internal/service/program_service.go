package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitstride/fitness-app/internal/domain"
	"fitstride/fitness-app/internal/events"
	"fitstride/fitness-app/internal/metrics"
	"fitstride/fitness-app/internal/program"
	"fitstride/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound = errors.New("program template not found")
	ErrInvalidTemplate  = errors.New("program template failed validation")
	ErrNoActiveProgram  = errors.New("no active program")
)

// ProgramService coordinates enrollments: it materializes the full workout
// calendar from a template, keeps the single-active-enrollment invariant,
// and derives progress.
type ProgramService interface {
	CreateTemplate(ctx context.Context, template *domain.ProgramTemplate) (*domain.ProgramTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.ProgramTemplate, error)
	GetTemplate(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error)

	// Enroll creates a new active enrollment for the user, completing and
	// freezing any previously active one.
	Enroll(ctx context.Context, userID, templateID primitive.ObjectID, startDate time.Time) (*domain.UserProgram, error)
	ActiveProgram(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error)
	ListPrograms(ctx context.Context, userID primitive.ObjectID) ([]domain.UserProgram, error)
	// AbandonProgram ends the active enrollment without a replacement.
	AbandonProgram(ctx context.Context, userID primitive.ObjectID) error

	// Progress recomputes the derived read-model for the active enrollment.
	Progress(ctx context.Context, userID primitive.ObjectID) (*program.Progress, error)

	// RecordWorkoutCompletion feeds a completed program workout back into
	// its enrollment's counters. No-op for standalone workouts.
	RecordWorkoutCompletion(ctx context.Context, workout *domain.Workout) error
}

type programService struct {
	templateRepo    repository.TemplateRepository
	userProgramRepo repository.UserProgramRepository
	workoutRepo     repository.WorkoutRepository
	factory         *workoutFactory
	bus             *events.Bus
	metrics         *metrics.Manager
	logger          *zap.Logger
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	templateRepo repository.TemplateRepository,
	userProgramRepo repository.UserProgramRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	bus *events.Bus,
	m *metrics.Manager,
	logger *zap.Logger,
) ProgramService {
	return &programService{
		templateRepo:    templateRepo,
		userProgramRepo: userProgramRepo,
		workoutRepo:     workoutRepo,
		factory:         newWorkoutFactory(exerciseRepo, logger),
		bus:             bus,
		metrics:         m,
		logger:          logger,
	}
}

// CreateTemplate validates and stores a new program template. Validation is
// loud here: an unresolved schedule reference is an authoring error, not
// something to silently drop at enrollment time.
func (s *programService) CreateTemplate(ctx context.Context, template *domain.ProgramTemplate) (*domain.ProgramTemplate, error) {
	if err := program.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if template.Goal == "" {
		template.Goal = program.GoalForCategory(template.Category)
	}

	id, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	template.ID = id
	return template, nil
}

func (s *programService) ListTemplates(ctx context.Context) ([]domain.ProgramTemplate, error) {
	return s.templateRepo.List(ctx)
}

func (s *programService) GetTemplate(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// Enroll runs the full coordination sequence:
//  1. complete and end-date-stamp any currently active enrollment (its
//     accumulated progress freezes),
//  2. create the new active enrollment,
//  3. clear every isActive workout flag (nothing is auto-started),
//  4. expand the schedule and build one workout per trained day, numbering
//     sessions in calendar order,
//  5. persist the generated calendar,
//  6. notify subscribers.
//
// Every persistence failure propagates to the caller.
func (s *programService) Enroll(ctx context.Context, userID, templateID primitive.ObjectID, startDate time.Time) (*domain.UserProgram, error) {
	if userID == primitive.NilObjectID || templateID == primitive.NilObjectID {
		return nil, errors.New("user ID and template ID are required")
	}

	template, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	// Revalidate stored templates: ones authored before a validation rule
	// tightened must not enroll with silent gaps.
	if err := program.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	// 1. Close out the previous enrollment, if any.
	previous, err := s.userProgramRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if previous != nil {
		now := time.Now().UTC()
		previous.Status = domain.ProgramCompleted
		previous.EndDate = &now
		if err := s.userProgramRepo.Update(ctx, previous); err != nil {
			return nil, err
		}
		s.logger.Info("replaced active program",
			zap.String("user_id", userID.Hex()),
			zap.String("previous_program_id", previous.ID.Hex()))
	}

	// 2. Create the new enrollment.
	enrollment := &domain.UserProgram{
		UserID:        userID,
		TemplateID:    template.ID,
		TemplateName:  template.Name,
		Status:        domain.ProgramActive,
		StartDate:     startDate,
		CurrentWeek:   1,
		CompletedDays: map[string][]int{},
	}
	enrollmentID, err := s.userProgramRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	enrollment.ID = enrollmentID

	// 3. Nothing may stay active across an enrollment switch.
	if err := s.workoutRepo.ClearActive(ctx, userID); err != nil {
		return nil, err
	}

	// 4. Materialize the calendar.
	entries := program.Expand(template, startDate)
	pc := programContext{
		ProgramID:     enrollmentID,
		ProgramName:   template.Name,
		Category:      template.Category,
		Difficulty:    template.Difficulty,
		Goal:          template.Goal,
		TotalWeeks:    template.DurationWeeks,
		TotalDays:     template.TrainedDaysPerWeek(),
		TotalSessions: len(entries),
	}
	if pc.Goal == "" {
		pc.Goal = program.GoalForCategory(template.Category)
	}

	workouts := make([]domain.Workout, 0, len(entries))
	sessionNumber := 0
	for _, entry := range entries {
		def := template.Definition(entry.WorkoutName)
		if def == nil {
			continue // unreachable after validation; Expand already filters
		}
		sessionNumber++
		workout, err := s.factory.Build(ctx, def, pc, entry.WeekNumber, entry.DayOfWeek, sessionNumber, entry.Date)
		if err != nil {
			return nil, err
		}
		workout.UserID = userID
		workouts = append(workouts, *workout)
	}

	// 5. Persist the generated calendar.
	if _, err := s.workoutRepo.CreateMany(ctx, workouts); err != nil {
		return nil, err
	}

	// 6. Dependent views refresh off this signal.
	s.bus.Publish(events.TopicProgramChanged)
	s.metrics.CounterEnrollments.Inc()
	s.metrics.CounterWorkoutsGenerated.Add(float64(len(workouts)))

	s.logger.Info("enrolled into program",
		zap.String("user_id", userID.Hex()),
		zap.String("program_id", enrollmentID.Hex()),
		zap.String("template", template.Name),
		zap.Int("workouts_generated", len(workouts)))

	return enrollment, nil
}

func (s *programService) ActiveProgram(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error) {
	enrollment, err := s.userProgramRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveProgram
		}
		return nil, err
	}
	return enrollment, nil
}

func (s *programService) ListPrograms(ctx context.Context, userID primitive.ObjectID) ([]domain.UserProgram, error) {
	return s.userProgramRepo.GetByUserID(ctx, userID)
}

// AbandonProgram ends the active enrollment. Progress freezes as-is.
func (s *programService) AbandonProgram(ctx context.Context, userID primitive.ObjectID) error {
	enrollment, err := s.ActiveProgram(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	enrollment.Status = domain.ProgramCompleted
	enrollment.EndDate = &now
	if err := s.userProgramRepo.Update(ctx, enrollment); err != nil {
		return err
	}

	if err := s.workoutRepo.ClearActive(ctx, userID); err != nil {
		return err
	}

	s.bus.Publish(events.TopicProgramChanged)
	return nil
}

// Progress derives the read-model for the active enrollment against its
// template. Always recomputed, never cached.
func (s *programService) Progress(ctx context.Context, userID primitive.ObjectID) (*program.Progress, error) {
	enrollment, err := s.ActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}
	template, err := s.GetTemplate(ctx, enrollment.TemplateID)
	if err != nil {
		return nil, err
	}
	p := program.ComputeProgress(enrollment, template)
	return &p, nil
}

// RecordWorkoutCompletion updates the enrollment owning the workout: bumps
// the completed counter, marks the day done under its week key, and advances
// currentWeek monotonically. Completed enrollments are frozen and ignore
// late completions.
func (s *programService) RecordWorkoutCompletion(ctx context.Context, workout *domain.Workout) error {
	if workout.SourceProgramID == nil {
		return nil // standalone workout, no enrollment to update
	}

	enrollment, err := s.userProgramRepo.GetByID(ctx, *workout.SourceProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil // enrollment deleted out from under the workout
		}
		return err
	}
	if enrollment.Status != domain.ProgramActive {
		return nil
	}

	enrollment.CompletedWorkouts++

	week := workout.ProgramWeekNumber
	day := workout.ProgramDayNumber
	if week > 0 && day > 0 && !enrollment.DayCompleted(week, day) {
		key := domain.WeekKey(week)
		enrollment.CompletedDays[key] = append(enrollment.CompletedDays[key], day)
	}
	if week > enrollment.CurrentWeek {
		enrollment.CurrentWeek = week
	}

	// Every session done ends the program.
	if workout.TotalSessions > 0 && enrollment.CompletedWorkouts >= workout.TotalSessions {
		now := time.Now().UTC()
		enrollment.Status = domain.ProgramCompleted
		enrollment.EndDate = &now
		s.logger.Info("program completed",
			zap.String("user_id", enrollment.UserID.Hex()),
			zap.String("program_id", enrollment.ID.Hex()))
	}

	if err := s.userProgramRepo.Update(ctx, enrollment); err != nil {
		return err
	}

	s.bus.Publish(events.TopicProgramChanged)
	return nil
}
