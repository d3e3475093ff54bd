//go:build integration_test || all_tests

package test

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/workoutlog/internal/apiclient"
	"github.com/2beens/workoutlog/internal/workouts"
)

func strPtr(s string) *string {
	return &s
}

func testWorkout(day string) workouts.Workout {
	return workouts.Workout{
		Day:      day,
		Title:    "Push Day",
		Subtitle: strPtr("Chest and shoulders"),
		Exercises: []workouts.Exercise{
			{
				Name:          "Bench Press",
				TargetMuscles: strPtr("Chest"),
				Machine:       strPtr(""),
				Sets: []workouts.Set{
					{Reps: 10, Weight: 60, Unit: workouts.UnitKg},
					{Reps: 8, Weight: 65, Unit: workouts.UnitKg, AITips: strPtr("slow negatives")},
					{Reps: 8, Weight: 10, Unit: "stone"},
				},
			},
			{
				Name: "Lateral Raises",
				Sets: []workouts.Set{
					{Reps: 15, Weight: 20, Unit: workouts.UnitLbs},
				},
			},
		},
	}
}

func (s *IntegrationTestSuite) TestWorkouts_CreateGetDelete() {
	ctx := context.Background()

	list, err := s.client.ListWorkouts(ctx)
	s.Require().NoError(err)
	s.Empty(list)

	id, err := s.client.CreateWorkout(ctx, testWorkout("Mon Jun 16 2025"))
	s.Require().NoError(err)
	s.Positive(id)

	w, err := s.client.GetWorkout(ctx, id)
	s.Require().NoError(err)
	s.Equal(id, w.ID)
	s.Equal("Mon Jun 16 2025", w.Day)
	s.Equal("Push Day", w.Title)
	s.Require().NotNil(w.Subtitle)
	s.Equal("Chest and shoulders", *w.Subtitle)
	s.Nil(w.AITips)

	s.Require().Len(w.Exercises, 2)
	bench := w.Exercises[0]
	s.Equal("Bench Press", bench.Name)
	s.Equal(id, bench.WorkoutID)
	// empty optional text is stored as NULL
	s.Nil(bench.Machine)
	// the "stone" set is dropped, the rest of the workout is kept
	s.Require().Len(bench.Sets, 2)
	s.Equal(10, bench.Sets[0].Reps)
	s.Equal(60.0, bench.Sets[0].Weight)
	s.Equal(workouts.UnitKg, bench.Sets[0].Unit)
	s.Require().NotNil(bench.Sets[1].AITips)
	s.Equal("slow negatives", *bench.Sets[1].AITips)

	s.Equal("Lateral Raises", w.Exercises[1].Name)
	s.Require().Len(w.Exercises[1].Sets, 1)
	s.Equal(workouts.UnitLbs, w.Exercises[1].Sets[0].Unit)

	s.Equal(2, s.countRows(`SELECT COUNT(*) FROM exercises WHERE workout_id = $1`, id))
	s.Equal(3, s.countRows(`SELECT COUNT(*) FROM sets`))

	list, err = s.client.ListWorkouts(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(id, list[0].ID)

	s.Require().NoError(s.client.DeleteWorkout(ctx, id))

	_, err = s.client.GetWorkout(ctx, id)
	s.True(apiclient.IsNotFound(err))
	s.Zero(s.countRows(`SELECT COUNT(*) FROM exercises`))
	s.Zero(s.countRows(`SELECT COUNT(*) FROM sets`))

	err = s.client.DeleteWorkout(ctx, id)
	s.True(apiclient.IsNotFound(err))
}

func (s *IntegrationTestSuite) TestWorkouts_Today() {
	ctx := context.Background()

	_, err := s.client.TodayWorkout(ctx)
	var apiErr *apiclient.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusNotFound, apiErr.StatusCode)
	s.Equal("No workout found for today (Tue Jun 17 2025).", apiErr.Message)

	_, err = s.client.CreateWorkout(ctx, testWorkout("Mon Jun 16 2025"))
	s.Require().NoError(err)
	todayID, err := s.client.CreateWorkout(ctx, testWorkout("Tue Jun 17 2025"))
	s.Require().NoError(err)

	w, err := s.client.TodayWorkout(ctx)
	s.Require().NoError(err)
	s.Equal(todayID, w.ID)
	s.Len(w.Exercises, 2)
}

func (s *IntegrationTestSuite) TestWorkouts_CreateValidation() {
	ctx := context.Background()

	w := testWorkout("")
	_, err := s.client.CreateWorkout(ctx, w)
	var apiErr *apiclient.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal("Day and title are required for a workout.", apiErr.Message)
	s.Zero(s.countRows(`SELECT COUNT(*) FROM workouts`))
}

func (s *IntegrationTestSuite) TestUnknownPath() {
	resp, err := s.httpClient.Get(serverEndpoint + "/no/such/path")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
