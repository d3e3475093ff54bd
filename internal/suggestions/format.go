package suggestions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/workoutlog/internal/workouts"
)

const separatorLine = "------------------------------------\n"

// FormatWorkoutAsText renders a workout for terminal output.
func FormatWorkoutAsText(w *workouts.Workout) string {
	day := w.Day
	if day == "" {
		day = "Today"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n--- Suggested Workout for %s ---\n", day)
	fmt.Fprintf(&sb, "Title: %s\n", w.Title)
	if s := deref(w.Subtitle); s != "" {
		fmt.Fprintf(&sb, "Subtitle: %s\n", s)
	}
	if tips := deref(w.AITips); tips != "" {
		fmt.Fprintf(&sb, "AI Tips (Workout): %s\n", tips)
	}
	sb.WriteString(separatorLine)

	if len(w.Exercises) == 0 {
		sb.WriteString("No exercises suggested for this workout.\n")
	}
	for i, e := range w.Exercises {
		fmt.Fprintf(&sb, "\nExercise %d: %s\n", i+1, e.Name)
		fmt.Fprintf(&sb, "  Target Muscles: %s\n", orNA(e.TargetMuscles))
		fmt.Fprintf(&sb, "  Machine: %s\n", orNA(e.Machine))
		if a := deref(e.Attachments); a != "" {
			fmt.Fprintf(&sb, "  Attachments: %s\n", a)
		}

		if len(e.Sets) == 0 {
			sb.WriteString("  No sets logged for this exercise.\n")
			continue
		}
		sb.WriteString("  Sets:\n")
		for j, s := range e.Sets {
			fmt.Fprintf(&sb, "    Set %d: %d reps @ %s %s", j+1, s.Reps, strconv.FormatFloat(s.Weight, 'f', -1, 64), s.Unit)
			if tips := deref(s.AITips); tips != "" {
				fmt.Fprintf(&sb, " - Tips: %s\n", tips)
			} else {
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString(separatorLine)
	return sb.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s *string) string {
	if v := deref(s); v != "" {
		return v
	}
	return "N/A"
}
