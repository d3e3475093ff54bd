package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// setMode decides how sets are checked and stored on write.
type setMode int

const (
	// human-authored: reps, weight and unit must all be valid
	setModeStrict setMode = iota
	// generated: only the unit is checked, reps and weight are stored as 0
	setModeGenerated
)

type Repo struct {
	db             *pgxpool.Pool
	metricsManager *metrics.Manager
}

func NewRepo(db *pgxpool.Pool, metricsManager *metrics.Manager) *Repo {
	return &Repo{
		db:             db,
		metricsManager: metricsManager,
	}
}

func (r *Repo) ListAll(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := r.queryWorkouts(ctx, r.db,
		`SELECT id, day, title, subtitle, ai_tips FROM workouts ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}

	for i := range workouts {
		if err := r.loadExercises(ctx, r.db, &workouts[i]); err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getOne(ctx,
		`SELECT id, day, title, subtitle, ai_tips FROM workouts WHERE id = $1;`,
		id,
	)
}

// GetByDay returns the first workout stored for the given day label.
func (r *Repo) GetByDay(ctx context.Context, day string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getByDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day))

	return r.getOne(ctx,
		`SELECT id, day, title, subtitle, ai_tips FROM workouts WHERE day = $1 ORDER BY id LIMIT 1;`,
		day,
	)
}

func (r *Repo) getOne(ctx context.Context, sql string, arg any) (*Workout, error) {
	workouts, err := r.queryWorkouts(ctx, r.db, sql, arg)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrWorkoutNotFound
	}

	workout := workouts[0]
	if err := r.loadExercises(ctx, r.db, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// GetExercise returns a single exercise with its sets.
func (r *Repo) GetExercise(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))

	exercises, err := r.queryExercises(ctx, r.db,
		`SELECT id, workout_id, name, target_muscles, machine, attachments FROM exercises WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrExerciseNotFound
	}

	exercise := exercises[0]
	exercise.Sets, err = r.querySets(ctx, r.db, exercise.ID)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *Repo) Create(ctx context.Context, workout Workout) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := workout.Validate(); err != nil {
		return -1, err
	}

	var id int
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		var txErr error
		id, txErr = r.insertWorkout(ctx, tx, workout, setModeStrict)
		return txErr
	})
	if err != nil {
		return -1, mapConstraintError(err)
	}

	span.SetAttributes(attribute.Int("id", id))
	return id, nil
}

// Replace overwrites the workout scalars and its whole exercise tree.
// Child rows get new ids.
func (r *Repo) Replace(ctx context.Context, id int, workout Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if err := workout.Validate(); err != nil {
		return err
	}

	err = r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`UPDATE workouts SET day = $1, title = $2, subtitle = $3, ai_tips = $4 WHERE id = $5;`,
			workout.Day, workout.Title, nullIfEmpty(workout.Subtitle), nullIfEmpty(workout.AITips), id,
		)
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrWorkoutNotFound
		}

		if _, err := tx.Exec(
			ctx,
			`DELETE FROM sets WHERE exercise_id IN (SELECT id FROM exercises WHERE workout_id = $1);`,
			id,
		); err != nil {
			return fmt.Errorf("delete sets: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE workout_id = $1;`, id); err != nil {
			return fmt.Errorf("delete exercises: %w", err)
		}

		return r.insertExercises(ctx, tx, id, workout.Exercises, setModeStrict)
	})

	return mapConstraintError(err)
}

// ReplaceDay deletes every workout stored for workout.Day and inserts the
// given one, all or nothing. Sets are stored with zero reps and weight.
func (r *Repo) ReplaceDay(ctx context.Context, workout Workout) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.replaceDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", workout.Day))

	if err := workout.Validate(); err != nil {
		return -1, err
	}

	var id int
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM workouts WHERE day = $1;`, workout.Day)
		if err != nil {
			return fmt.Errorf("delete day workouts: %w", err)
		}
		if tag.RowsAffected() > 0 {
			log.Debugf("deleted %d existing workout(s) for day [%s]", tag.RowsAffected(), workout.Day)
		}

		id, err = r.insertWorkout(ctx, tx, workout, setModeGenerated)
		return err
	})
	if err != nil {
		return -1, mapConstraintError(err)
	}

	span.SetAttributes(attribute.Int("id", id))
	return id, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// DeleteByDay reports whether anything was removed.
func (r *Repo) DeleteByDay(ctx context.Context, day string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteByDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day))

	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE day = $1;`, day)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateExerciseDetails changes the descriptive fields only, sets are kept.
func (r *Repo) UpdateExerciseDetails(ctx context.Context, id int, details ExerciseDetails) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.updateExerciseDetails")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercises SET name = $1, target_muscles = $2, machine = $3, attachments = $4 WHERE id = $5;`,
		details.Name,
		nullIfEmpty(details.TargetMuscles),
		nullIfEmpty(details.Machine),
		nullIfEmpty(details.Attachments),
		id,
	)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

func (r *Repo) insertWorkout(ctx context.Context, q querier, workout Workout, mode setMode) (int, error) {
	var id int
	if err := q.QueryRow(
		ctx,
		`INSERT INTO workouts (day, title, subtitle, ai_tips) VALUES ($1, $2, $3, $4) RETURNING id;`,
		workout.Day, workout.Title, nullIfEmpty(workout.Subtitle), nullIfEmpty(workout.AITips),
	).Scan(&id); err != nil {
		return -1, fmt.Errorf("insert workout: %w", err)
	}

	if err := r.insertExercises(ctx, q, id, workout.Exercises, mode); err != nil {
		return -1, err
	}
	return id, nil
}

func (r *Repo) insertExercises(ctx context.Context, q querier, workoutID int, exercises []Exercise, mode setMode) error {
	for _, exercise := range exercises {
		if exercise.Name == "" {
			log.Debugf("skipping exercise without a name for workout %d", workoutID)
			continue
		}

		var exerciseID int
		if err := q.QueryRow(
			ctx,
			`INSERT INTO exercises (workout_id, name, target_muscles, machine, attachments)
				VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
			workoutID,
			exercise.Name,
			nullIfEmpty(exercise.TargetMuscles),
			nullIfEmpty(exercise.Machine),
			nullIfEmpty(exercise.Attachments),
		).Scan(&exerciseID); err != nil {
			return fmt.Errorf("insert exercise [%s]: %w", exercise.Name, err)
		}

		for _, set := range exercise.Sets {
			reps, weight := set.Reps, set.Weight
			var validationErr error
			if mode == setModeGenerated {
				reps, weight = 0, 0
				validationErr = set.ValidateUnit()
			} else {
				validationErr = set.Validate()
			}
			if validationErr != nil {
				log.Warnf("skipping invalid set for exercise %s: %s", exercise.Name, validationErr)
				if r.metricsManager != nil {
					r.metricsManager.CounterSkippedSets.Inc()
				}
				continue
			}

			if _, err := q.Exec(
				ctx,
				`INSERT INTO sets (exercise_id, reps, weight, unit, ai_tips) VALUES ($1, $2, $3, $4, $5);`,
				exerciseID, reps, weight, set.Unit, nullIfEmpty(set.AITips),
			); err != nil {
				return fmt.Errorf("insert set for exercise [%s]: %w", exercise.Name, err)
			}
		}
	}
	return nil
}

func (r *Repo) loadExercises(ctx context.Context, q querier, workout *Workout) error {
	exercises, err := r.queryExercises(ctx, q,
		`SELECT id, workout_id, name, target_muscles, machine, attachments
			FROM exercises WHERE workout_id = $1 ORDER BY id;`,
		workout.ID,
	)
	if err != nil {
		return err
	}

	for i := range exercises {
		exercises[i].Sets, err = r.querySets(ctx, q, exercises[i].ID)
		if err != nil {
			return err
		}
	}

	workout.Exercises = exercises
	return nil
}

func (r *Repo) queryWorkouts(ctx context.Context, q querier, sql string, args ...any) ([]Workout, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.Day, &w.Title, &w.Subtitle, &w.AITips); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Exercises = []Exercise{}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *Repo) queryExercises(ctx context.Context, q querier, sql string, args ...any) ([]Exercise, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.TargetMuscles, &e.Machine, &e.Attachments); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		e.Sets = []Set{}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *Repo) querySets(ctx context.Context, q querier, exerciseID int) ([]Set, error) {
	rows, err := q.Query(
		ctx,
		`SELECT id, exercise_id, reps, weight::numeric::float8, unit, ai_tips
			FROM sets WHERE exercise_id = $1 ORDER BY id;`,
		exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make([]Set, 0)
	for rows.Next() {
		var s Set
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.Reps, &s.Weight, &s.Unit, &s.AITips); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// mapConstraintError turns NOT NULL and CHECK violations, which only bad
// input can cause, into validation errors.
func mapConstraintError(err error) error {
	if err == nil || errors.Is(err, ErrWorkoutNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	if pkg.IsNotNullViolationError(err) || pkg.IsCheckViolationError(err) {
		return &ValidationError{Message: err.Error()}
	}
	return err
}
