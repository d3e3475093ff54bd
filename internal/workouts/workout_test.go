package workouts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Thu Oct 15 2026", DayLabel(time.Date(2026, time.October, 15, 23, 59, 0, 0, time.Local)))
	assert.Equal(t, "Sun Feb 01 2026", DayLabel(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)))
}

func TestWorkout_Validate(t *testing.T) {
	w := Workout{Day: "Thu Oct 15 2026", Title: "Legs"}
	require.NoError(t, w.Validate())

	w.Title = "  "
	err := w.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Day and title are required for a workout.", err.Error())

	w = Workout{Title: "Legs"}
	assert.ErrorIs(t, w.Validate(), ErrValidation)
}

func TestSet_UnmarshalAndValidate(t *testing.T) {
	testCases := []struct {
		name      string
		json      string
		valid     bool
		unitValid bool
		reps      int
		weight    float64
	}{
		{name: "valid kg", json: `{"reps": 10, "weight": 62.5, "unit": "kg"}`, valid: true, unitValid: true, reps: 10, weight: 62.5},
		{name: "valid lbs", json: `{"reps": 8, "weight": 0, "unit": "lbs", "ai_tips": "slow"}`, valid: true, unitValid: true, reps: 8},
		{name: "stone unit", json: `{"reps": 10, "weight": 60, "unit": "stone"}`, reps: 10, weight: 60},
		{name: "reps as string", json: `{"reps": "10", "weight": 60, "unit": "kg"}`, unitValid: true, weight: 60},
		{name: "weight missing", json: `{"reps": 10, "unit": "kg"}`, unitValid: true, reps: 10},
		{name: "weight null", json: `{"reps": 10, "weight": null, "unit": "kg"}`, unitValid: true, reps: 10},
		{name: "fractional reps", json: `{"reps": 8.5, "weight": 10, "unit": "kg"}`, unitValid: true, weight: 10},
		{name: "whole float reps", json: `{"reps": 8.0, "weight": 10, "unit": "kg"}`, valid: true, unitValid: true, reps: 8, weight: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s Set
			require.NoError(t, json.Unmarshal([]byte(tc.json), &s))
			assert.Equal(t, tc.reps, s.Reps)
			assert.Equal(t, tc.weight, s.Weight)
			if tc.valid {
				assert.NoError(t, s.Validate())
			} else {
				assert.ErrorIs(t, s.Validate(), ErrInvalidSet)
			}
			if tc.unitValid {
				assert.NoError(t, s.ValidateUnit())
			} else {
				assert.ErrorIs(t, s.ValidateUnit(), ErrInvalidSet)
			}
		})
	}
}

func TestSet_UnmarshalInsideWorkout(t *testing.T) {
	var w Workout
	err := json.Unmarshal([]byte(`{
		"day": "Thu Oct 15 2026",
		"title": "Legs",
		"exercises": [{"name": "Squat", "sets": [{"reps": "x", "weight": 1, "unit": "kg"}, {"reps": 1, "weight": 1, "unit": "kg"}]}]
	}`), &w)
	require.NoError(t, err)
	require.Len(t, w.Exercises[0].Sets, 2)
	assert.Error(t, w.Exercises[0].Sets[0].Validate())
	assert.NoError(t, w.Exercises[0].Sets[1].Validate())

	// unexported decode state does not leak into the wire format
	out, err := json.Marshal(w.Exercises[0].Sets[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":0,"exercise_id":0,"reps":0,"weight":1,"unit":"kg","ai_tips":null}`, string(out))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(nil))
	empty := ""
	assert.Nil(t, nullIfEmpty(&empty))
	val := "x"
	assert.Equal(t, &val, nullIfEmpty(&val))
}

func TestMapConstraintError(t *testing.T) {
	assert.NoError(t, mapConstraintError(nil))
	assert.ErrorIs(t, mapConstraintError(ErrWorkoutNotFound), ErrWorkoutNotFound)
}

func TestFakeHistory(t *testing.T) {
	faker := gofakeit.New(42)
	until := time.Date(2025, time.June, 17, 10, 0, 0, 0, time.Local)

	history := FakeHistory(faker, 3, until)
	require.Len(t, history, 3)
	assert.Equal(t, "Sat Jun 14 2025", history[0].Day)
	assert.Equal(t, "Mon Jun 16 2025", history[2].Day)

	for _, w := range history {
		require.NoError(t, w.Validate())
		require.NotEmpty(t, w.Exercises)
		for _, e := range w.Exercises {
			assert.NotEmpty(t, e.Name)
			for _, s := range e.Sets {
				assert.NoError(t, s.Validate())
			}
		}
	}
}
