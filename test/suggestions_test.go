//go:build integration_test || all_tests

package test

import (
	"context"
	"strings"

	"github.com/2beens/workoutlog/internal/apiclient"
)

func (s *IntegrationTestSuite) TestSuggestWorkout_ReplacesToday() {
	ctx := context.Background()

	_, err := s.client.CreateWorkout(ctx, testWorkout("Mon Jun 16 2025"))
	s.Require().NoError(err)

	text, err := s.client.SuggestWorkout(ctx, "no squats please")
	s.Require().NoError(err)
	s.Contains(text, "--- Suggested Workout for Tue Jun 17 2025 ---")
	s.Contains(text, "Exercise 1: Barbell Squats")
	s.Contains(text, "Set 1: 0 reps @ 0 kg")

	prompts := s.gemini.Prompts()
	s.Require().Len(prompts, 1)
	s.Contains(prompts[0], "Push Day")
	s.Contains(prompts[0], "Additional instructions from user: no squats please")

	// a second suggestion replaces the first one
	_, err = s.client.SuggestWorkout(ctx, "")
	s.Require().NoError(err)
	s.Equal(1, s.countRows(`SELECT COUNT(*) FROM workouts WHERE day = $1`, "Tue Jun 17 2025"))
	s.Equal(2, s.countRows(`SELECT COUNT(*) FROM workouts`))

	// the earlier suggestion is not part of the history sent to the model
	prompts = s.gemini.Prompts()
	s.Require().Len(prompts, 2)
	s.False(strings.Contains(prompts[1], "Suggested Leg Day"))

	today, err := s.client.TodayWorkout(ctx)
	s.Require().NoError(err)
	s.Equal("Suggested Leg Day", today.Title)
	s.Require().Len(today.Exercises, 2)
	squats := today.Exercises[0]
	// the "stone" set is dropped, reps and weight are zeroed
	s.Require().Len(squats.Sets, 2)
	for _, set := range squats.Sets {
		s.Zero(set.Reps)
		s.Zero(set.Weight)
	}
	s.Equal("lbs", today.Exercises[1].Sets[0].Unit)
}

func (s *IntegrationTestSuite) TestSuggestRestTime() {
	ctx := context.Background()

	_, err := s.client.SuggestRestTime(ctx, "")
	s.True(apiclient.IsNotFound(err))

	_, err = s.client.CreateWorkout(ctx, testWorkout("Tue Jun 17 2025"))
	s.Require().NoError(err)

	seconds, err := s.client.SuggestRestTime(ctx, "feeling tired")
	s.Require().NoError(err)
	s.Equal(75.0, seconds)
}

func (s *IntegrationTestSuite) TestExerciseTipsAndReplace() {
	ctx := context.Background()

	id, err := s.client.CreateWorkout(ctx, testWorkout("Tue Jun 17 2025"))
	s.Require().NoError(err)
	w, err := s.client.GetWorkout(ctx, id)
	s.Require().NoError(err)
	exerciseID := w.Exercises[0].ID

	tips, err := s.client.ExerciseTips(ctx, exerciseID, "")
	s.Require().NoError(err)
	s.Equal("Keep your chest up and brace your core.", tips)

	// second call is served from the tips cache
	tips, err = s.client.ExerciseTips(ctx, exerciseID, "")
	s.Require().NoError(err)
	s.Equal("Keep your chest up and brace your core.", tips)
	s.Len(s.gemini.Prompts(), 1)

	_, err = s.client.ExerciseTips(ctx, 99999, "")
	s.True(apiclient.IsNotFound(err))

	replacement, err := s.client.ReplaceExercise(ctx, exerciseID, "shoulder hurts")
	s.Require().NoError(err)
	s.Equal("Leg Press", replacement.Name)

	w, err = s.client.GetWorkout(ctx, id)
	s.Require().NoError(err)
	s.Equal(exerciseID, w.Exercises[0].ID)
	s.Equal("Leg Press", w.Exercises[0].Name)
	s.Require().NotNil(w.Exercises[0].Machine)
	s.Equal("Leg Press Machine", *w.Exercises[0].Machine)
	// sets are left untouched
	s.Len(w.Exercises[0].Sets, 2)
}
