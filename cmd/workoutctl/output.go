package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/2beens/workoutlog/internal/workouts"

	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

// writeStructured handles json and yaml. It reports false for text, which
// every command renders itself.
func writeStructured(w io.Writer, format string, data any) (bool, error) {
	switch outputFormat(format) {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(data)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return true, err
		}
		return true, encoder.Close()
	default:
		return false, nil
	}
}

func printWorkout(w io.Writer, workout *workouts.Workout) {
	fmt.Fprintf(w, "\n--- Workout ID: %d (%s) ---\n", workout.ID, workout.Day)
	fmt.Fprintf(w, "  Title: %s\n", workout.Title)
	if workout.Subtitle != nil && *workout.Subtitle != "" {
		fmt.Fprintf(w, "  Subtitle: %s\n", *workout.Subtitle)
	}
	if workout.AITips != nil && *workout.AITips != "" {
		fmt.Fprintf(w, "  AI Tips: %s\n", *workout.AITips)
	}

	if len(workout.Exercises) == 0 {
		fmt.Fprintln(w, "  No exercises logged for this workout.")
		return
	}

	fmt.Fprintln(w, "  Exercises:")
	for i, e := range workout.Exercises {
		fmt.Fprintf(w, "    %d. Name: %s (exercise id %d)\n", i+1, e.Name, e.ID)
		printOptional(w, "       Target Muscles", e.TargetMuscles)
		printOptional(w, "       Machine", e.Machine)
		printOptional(w, "       Attachments", e.Attachments)

		if len(e.Sets) == 0 {
			fmt.Fprintln(w, "       No sets logged for this exercise.")
			continue
		}
		fmt.Fprintln(w, "       Sets:")
		for j, s := range e.Sets {
			fmt.Fprintf(w, "         Set %d: %d reps @ %s %s\n",
				j+1, s.Reps, strconv.FormatFloat(s.Weight, 'f', -1, 64), s.Unit)
		}
	}
}

func printOptional(w io.Writer, label string, value *string) {
	if value != nil && *value != "" {
		fmt.Fprintf(w, "%s: %s\n", label, *value)
	}
}
