package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/generator"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=suggestions_mocks_test.go -package=suggestions
//go:generate mockgen -destination=generator_mocks_test.go -package=suggestions github.com/2beens/workoutlog/internal/generator Generator

const (
	OperationSuggestWorkout  = "suggest_workout"
	OperationReplaceExercise = "replace_exercise"
	OperationRestTime        = "rest_time"
	OperationExerciseTips    = "exercise_tips"
)

type workoutsStore interface {
	ListAll(ctx context.Context) ([]workouts.Workout, error)
	Get(ctx context.Context, id int) (*workouts.Workout, error)
	GetByDay(ctx context.Context, day string) (*workouts.Workout, error)
	GetExercise(ctx context.Context, id int) (*workouts.Exercise, error)
	ReplaceDay(ctx context.Context, workout workouts.Workout) (int, error)
	UpdateExerciseDetails(ctx context.Context, id int, details workouts.ExerciseDetails) error
}

type dayLocker interface {
	Acquire(ctx context.Context, day string) (string, error)
	Release(ctx context.Context, day, token string) error
}

type Service struct {
	store          workoutsStore
	generator      generator.Generator
	locker         dayLocker
	tipsCache      *TipsCache
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	store workoutsStore,
	gen generator.Generator,
	locker dayLocker,
	tipsCache *TipsCache,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:          store,
		generator:      gen,
		locker:         locker,
		tipsCache:      tipsCache,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today is the day label the service currently treats as today.
func (s *Service) Today() string {
	return workouts.DayLabel(s.now())
}

// SuggestWorkout generates today's workout from the stored history, replaces
// whatever was stored for today with it and returns the stored workout
// rendered as text.
func (s *Service) SuggestWorkout(ctx context.Context, additionalInput string) (_ string, _ *workouts.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.suggestions.suggestWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := s.Today()
	span.SetAttributes(attribute.String("day", today))

	release, err := s.lockDay(ctx, today)
	if err != nil {
		return "", nil, err
	}
	defer release()

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("load workout history: %w", err)
	}
	history := make([]workouts.Workout, 0, len(all))
	for _, w := range all {
		if w.Day != today {
			history = append(history, w)
		}
	}
	span.SetAttributes(attribute.Int("history.count", len(history)))

	resp, err := s.generate(ctx, OperationSuggestWorkout, SuggestionPrompt(history, additionalInput))
	if err != nil {
		return "", nil, err
	}

	var suggested workouts.Workout
	if err := generator.ExtractJSON(resp, &suggested); err != nil {
		s.recordOutcome(OperationSuggestWorkout, err)
		log.Errorf("parse suggested workout: %s, raw response: %s", err, resp.Text)
		return "", nil, err
	}
	if strings.TrimSpace(suggested.Title) == "" {
		err := fmt.Errorf("%w: suggested workout has no title", generator.ErrGenerationFormat)
		s.recordOutcome(OperationSuggestWorkout, err)
		return "", nil, err
	}
	s.recordOutcome(OperationSuggestWorkout, nil)

	suggested.Day = today
	id, err := s.store.ReplaceDay(ctx, suggested)
	if err != nil {
		return "", nil, fmt.Errorf("store suggested workout: %w", err)
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsCreated.WithLabelValues("suggestion").Inc()
	}
	log.Debugf("stored suggested workout %d for [%s]", id, today)

	stored, err := s.store.Get(ctx, id)
	if err != nil {
		log.Warnf("reload suggested workout %d: %s", id, err)
		stored = zeroedCopy(suggested, id)
	}

	return FormatWorkoutAsText(stored), stored, nil
}

// ReplaceExercise swaps the descriptive fields of one exercise for a generated
// alternative. The exercise keeps its id and its sets.
func (s *Service) ReplaceExercise(ctx context.Context, exerciseID int, userInput string) (_ *workouts.ExerciseDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.suggestions.replaceExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	exercise, workout, err := s.loadExerciseWithWorkout(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	siblings := make([]workouts.Exercise, 0, len(workout.Exercises))
	for _, e := range workout.Exercises {
		if e.ID != exercise.ID {
			siblings = append(siblings, e)
		}
	}

	resp, err := s.generate(ctx, OperationReplaceExercise, ReplacementPrompt(*exercise, siblings, userInput))
	if err != nil {
		return nil, err
	}

	var details workouts.ExerciseDetails
	if err := generator.ExtractJSON(resp, &details); err != nil {
		s.recordOutcome(OperationReplaceExercise, err)
		log.Errorf("parse replacement exercise: %s, raw response: %s", err, resp.Text)
		return nil, err
	}
	if strings.TrimSpace(details.Name) == "" {
		err := fmt.Errorf("%w: replacement exercise has no name", generator.ErrGenerationFormat)
		s.recordOutcome(OperationReplaceExercise, err)
		return nil, err
	}
	s.recordOutcome(OperationReplaceExercise, nil)

	if err := s.store.UpdateExerciseDetails(ctx, exercise.ID, details); err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", exercise.ID, err)
	}

	return &details, nil
}

// SuggestRestTime returns the suggested rest between sets for today's workout.
func (s *Service) SuggestRestTime(ctx context.Context, userInput string) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.suggestions.restTime")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := s.Today()
	workout, err := s.store.GetByDay(ctx, today)
	if err != nil {
		return 0, err
	}

	resp, err := s.generate(ctx, OperationRestTime, RestTimePrompt(*workout, userInput))
	if err != nil {
		return 0, err
	}

	var parsed map[string]any
	if err := generator.ExtractJSON(resp, &parsed); err != nil {
		s.recordOutcome(OperationRestTime, err)
		log.Errorf("parse rest time: %s, raw response: %s", err, resp.Text)
		return 0, err
	}
	seconds, ok := parsed["rest_time_seconds"].(float64)
	if !ok {
		err := fmt.Errorf("%w: rest_time_seconds is missing or not a number", generator.ErrGenerationFormat)
		s.recordOutcome(OperationRestTime, err)
		return 0, err
	}
	s.recordOutcome(OperationRestTime, nil)

	span.SetAttributes(attribute.Float64("rest.seconds", seconds))
	return seconds, nil
}

// ExerciseTips returns free text advice for one exercise.
func (s *Service) ExerciseTips(ctx context.Context, exerciseID int, additionalInput string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.suggestions.exerciseTips")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	exercise, workout, err := s.loadExerciseWithWorkout(ctx, exerciseID)
	if err != nil {
		return "", err
	}

	if tips, ok := s.tipsCache.Get(*exercise, additionalInput); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return tips, nil
	}

	resp, err := s.generate(ctx, OperationExerciseTips, TipsPrompt(*exercise, *workout, additionalInput))
	if err != nil {
		return "", err
	}
	s.recordOutcome(OperationExerciseTips, nil)

	tips := generator.ExtractText(resp)
	s.tipsCache.Set(*exercise, additionalInput, tips)
	return tips, nil
}

func (s *Service) loadExerciseWithWorkout(ctx context.Context, exerciseID int) (*workouts.Exercise, *workouts.Workout, error) {
	exercise, err := s.store.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	workout, err := s.store.Get(ctx, exercise.WorkoutID)
	if err != nil {
		return nil, nil, err
	}
	return exercise, workout, nil
}

// lockDay fails only when another suggestion holds the lock. Redis being
// unavailable is logged and the suggestion goes ahead unlocked.
func (s *Service) lockDay(ctx context.Context, day string) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}

	token, err := s.locker.Acquire(ctx, day)
	if errors.Is(err, ErrSuggestionInProgress) {
		return nil, err
	}
	if err != nil {
		log.Warnf("suggest workout without day lock: %s", err)
		return noop, nil
	}

	return func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), day, token); err != nil {
			log.Warnf("%s", err)
		}
	}, nil
}

func (s *Service) generate(ctx context.Context, operation, prompt string) (*generator.Response, error) {
	begin := time.Now()
	resp, err := s.generator.Generate(ctx, prompt)
	if s.metricsManager != nil {
		s.metricsManager.HistogramGenerationDuration.
			WithLabelValues(s.generator.Provider()).
			Observe(time.Since(begin).Seconds())
	}
	if err != nil {
		s.recordOutcome(operation, err)
		log.Errorf("%s: generate: %s", operation, err)
		return nil, err
	}
	return resp, nil
}

func (s *Service) recordOutcome(operation string, err error) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterGenerations.
		WithLabelValues(s.generator.Provider(), operation, outcomeOf(err)).
		Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.GenerationOutcomeOK
	case errors.Is(err, generator.ErrParse):
		return metrics.GenerationOutcomeParseError
	case errors.Is(err, generator.ErrGenerationFormat):
		return metrics.GenerationOutcomeFormatError
	default:
		return metrics.GenerationOutcomeError
	}
}

// zeroedCopy mirrors what ReplaceDay stores, for when the stored row cannot be read back.
func zeroedCopy(w workouts.Workout, id int) *workouts.Workout {
	w.ID = id
	exercises := make([]workouts.Exercise, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		e.WorkoutID = id
		sets := make([]workouts.Set, 0, len(e.Sets))
		for _, set := range e.Sets {
			if set.ValidateUnit() != nil {
				continue
			}
			set.Reps = 0
			set.Weight = 0
			sets = append(sets, set)
		}
		e.Sets = sets
		exercises = append(exercises, e)
	}
	w.Exercises = exercises
	return &w
}
