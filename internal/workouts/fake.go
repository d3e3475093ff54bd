package workouts

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

type fakeExercise struct {
	name    string
	muscles string
	machine string
}

var fakeExercises = []fakeExercise{
	{"Barbell Squats", "Quadriceps, Glutes", "Squat Rack"},
	{"Bench Press", "Chest, Triceps", "Flat Bench"},
	{"Deadlift", "Hamstrings, Lower Back", "Barbell"},
	{"Lat Pulldown", "Lats, Biceps", "Cable Machine"},
	{"Leg Press", "Quadriceps", "Leg Press Machine"},
	{"Overhead Press", "Shoulders, Triceps", "Barbell"},
	{"Seated Row", "Upper Back", "Cable Machine"},
	{"Bicep Curls", "Biceps", "Dumbbells"},
}

var fakeTitles = []string{"Leg Day", "Push Day", "Pull Day", "Upper Body", "Full Body", "Lower Body"}

// FakeWorkout returns a random workout for the given day that passes
// validation, for seeding and tests.
func FakeWorkout(faker *gofakeit.Faker, day time.Time) Workout {
	w := Workout{
		Day:   DayLabel(day),
		Title: faker.RandomString(fakeTitles),
	}
	if faker.Bool() {
		subtitle := faker.Sentence(4)
		w.Subtitle = &subtitle
	}

	exerciseCount := faker.Number(1, 5)
	for i := 0; i < exerciseCount; i++ {
		fe := fakeExercises[faker.Number(0, len(fakeExercises)-1)]
		muscles, machine := fe.muscles, fe.machine
		e := Exercise{
			Name:          fe.name,
			TargetMuscles: &muscles,
			Machine:       &machine,
		}

		unit := faker.RandomString([]string{UnitKg, UnitLbs})
		setCount := faker.Number(1, 4)
		for j := 0; j < setCount; j++ {
			e.Sets = append(e.Sets, Set{
				Reps: faker.Number(5, 15),
				// quarter steps, like real plates
				Weight: math.Round(faker.Float64Range(10, 120)*4) / 4,
				Unit:   unit,
			})
		}
		w.Exercises = append(w.Exercises, e)
	}

	return w
}

// FakeHistory returns count workouts on consecutive days ending the day before until.
func FakeHistory(faker *gofakeit.Faker, count int, until time.Time) []Workout {
	history := make([]Workout, 0, count)
	for i := count; i > 0; i-- {
		history = append(history, FakeWorkout(faker, until.AddDate(0, 0, -i)))
	}
	return history
}
