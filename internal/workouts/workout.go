package workouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DayLayout renders a day label like "Thu Oct 15 2026". Existing rows use
// this form, so it is the key for "today's workout".
const DayLayout = "Mon Jan 02 2006"

const (
	UnitKg  = "kg"
	UnitLbs = "lbs"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidSet       = errors.New("invalid set")
)

// ValidationError carries a message safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func DayLabel(t time.Time) string {
	return t.Format(DayLayout)
}

type Workout struct {
	ID        int        `json:"id" yaml:"id,omitempty"`
	Day       string     `json:"day" yaml:"day"`
	Title     string     `json:"title" yaml:"title"`
	Subtitle  *string    `json:"subtitle" yaml:"subtitle,omitempty"`
	AITips    *string    `json:"ai_tips" yaml:"ai_tips,omitempty"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Day) == "" || strings.TrimSpace(w.Title) == "" {
		return &ValidationError{Message: "Day and title are required for a workout."}
	}
	return nil
}

type Exercise struct {
	ID            int     `json:"id" yaml:"id,omitempty"`
	WorkoutID     int     `json:"workout_id" yaml:"workout_id,omitempty"`
	Name          string  `json:"name" yaml:"name"`
	TargetMuscles *string `json:"target_muscles" yaml:"target_muscles,omitempty"`
	Machine       *string `json:"machine" yaml:"machine,omitempty"`
	Attachments   *string `json:"attachments" yaml:"attachments,omitempty"`
	Sets          []Set   `json:"sets" yaml:"sets"`
}

// ExerciseDetails are the descriptive fields of an exercise, without sets.
type ExerciseDetails struct {
	Name          string  `json:"name" yaml:"name"`
	TargetMuscles *string `json:"target_muscles" yaml:"target_muscles,omitempty"`
	Machine       *string `json:"machine" yaml:"machine,omitempty"`
	Attachments   *string `json:"attachments" yaml:"attachments,omitempty"`
}

func (e *Exercise) Details() ExerciseDetails {
	return ExerciseDetails{
		Name:          e.Name,
		TargetMuscles: e.TargetMuscles,
		Machine:       e.Machine,
		Attachments:   e.Attachments,
	}
}

type Set struct {
	ID         int     `json:"id" yaml:"id,omitempty"`
	ExerciseID int     `json:"exercise_id" yaml:"exercise_id,omitempty"`
	Reps       int     `json:"reps" yaml:"reps"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Unit       string  `json:"unit" yaml:"unit"`
	AITips     *string `json:"ai_tips" yaml:"ai_tips,omitempty"`

	// set when reps or weight arrived as something other than a JSON number
	decodeProblem string
}

// UnmarshalJSON accepts any value for reps and weight. A non-numeric value
// does not fail the whole document, it only marks this set invalid.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         int             `json:"id"`
		ExerciseID int             `json:"exercise_id"`
		Reps       json.RawMessage `json:"reps"`
		Weight     json.RawMessage `json:"weight"`
		Unit       string          `json:"unit"`
		AITips     *string         `json:"ai_tips"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Set{
		ID:         raw.ID,
		ExerciseID: raw.ExerciseID,
		Unit:       raw.Unit,
		AITips:     raw.AITips,
	}

	var problems []string
	reps, err := jsonNumber(raw.Reps)
	switch {
	case err != nil:
		problems = append(problems, "reps "+err.Error())
	case reps != math.Trunc(reps):
		problems = append(problems, "reps not a whole number")
	default:
		s.Reps = int(reps)
	}

	weight, err := jsonNumber(raw.Weight)
	if err != nil {
		problems = append(problems, "weight "+err.Error())
	} else {
		s.Weight = weight
	}

	s.decodeProblem = strings.Join(problems, ", ")
	return nil
}

func jsonNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, errors.New("missing")
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	return strconv.ParseFloat(string(raw), 64)
}

// Validate checks a human-authored set.
func (s *Set) Validate() error {
	if s.decodeProblem != "" {
		return fmt.Errorf("%w: %s", ErrInvalidSet, s.decodeProblem)
	}
	return s.ValidateUnit()
}

// ValidateUnit is the only check applied to generated sets, whose reps and
// weight get zeroed anyway.
func (s *Set) ValidateUnit() error {
	if s.Unit != UnitKg && s.Unit != UnitLbs {
		return fmt.Errorf("%w: unit must be %s or %s, got [%s]", ErrInvalidSet, UnitKg, UnitLbs, s.Unit)
	}
	return nil
}

// nullIfEmpty maps empty optional text to NULL.
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
