package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/workoutlog/internal/apiclient"
	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/spf13/cobra"
)

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, arg)
	}
	return id, nil
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all workouts with their exercises and sets",
		Example: `  workoutctl list
  workoutctl list --id 12 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			out := cmd.OutOrStdout()

			var list []workouts.Workout
			if id > 0 {
				w, err := client.GetWorkout(cmd.Context(), id)
				if err != nil {
					return err
				}
				list = []workouts.Workout{*w}
			} else {
				all, err := client.ListWorkouts(cmd.Context())
				if err != nil {
					return err
				}
				list = all
			}

			if done, err := writeStructured(out, opts.output, list); done {
				return err
			}

			if len(list) == 0 {
				fmt.Fprintln(out, "No workouts found in the database.")
				return nil
			}
			fmt.Fprintf(out, "Found %d workout(s).\n", len(list))
			for i := range list {
				printWorkout(out, &list[i])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "show only the workout with this id")
	return cmd
}

func newTodayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.client().TodayWorkout(cmd.Context())
			var apiErr *apiclient.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				fmt.Fprintln(cmd.OutOrStdout(), apiErr.Message)
				return nil
			}
			if err != nil {
				return err
			}

			if done, err := writeStructured(cmd.OutOrStdout(), opts.output, w); done {
				return err
			}
			printWorkout(cmd.OutOrStdout(), w)
			return nil
		},
	}
}

func newSuggestCommand(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask for a workout suggestion for today (replaces today's workout)",
		Example: `  workoutctl suggest
  workoutctl suggest -i "Focus on chest and triceps, low intensity."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(cmd.ErrOrStderr(), "Requesting workout suggestions from the AI...")

			text, err := opts.client().SuggestWorkout(cmd.Context(), input)
			if err != nil {
				return err
			}

			if done, err := writeStructured(out, opts.output, map[string]string{"suggestion": text}); done {
				return err
			}
			if text == "" {
				fmt.Fprintln(out, "No specific workout suggestion was returned by the AI.")
				return nil
			}
			fmt.Fprintln(out, "\n--- AI Suggested Workout for Today ---")
			fmt.Fprintln(out, text)
			fmt.Fprintln(out, "------------------------------------")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "additional instructions for the AI")
	return cmd
}

func newRestCommand(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Ask for the rest time between sets for today's workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := opts.client().SuggestRestTime(cmd.Context(), input)
			if err != nil {
				return err
			}

			if done, err := writeStructured(cmd.OutOrStdout(), opts.output, map[string]float64{"rest_time_seconds": seconds}); done {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Suggested rest time: %s seconds\n", strconv.FormatFloat(seconds, 'f', -1, 64))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "additional input for the AI")
	return cmd
}

func newTipsCommand(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "tips <exerciseId>",
		Short: "Ask for tips on one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "exercise")
			if err != nil {
				return err
			}

			tips, err := opts.client().ExerciseTips(cmd.Context(), id, input)
			if err != nil {
				return err
			}

			if done, err := writeStructured(cmd.OutOrStdout(), opts.output, map[string]string{"tips": tips}); done {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tips)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "additional instructions for the AI")
	return cmd
}

func newReplaceCommand(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "replace <exerciseId>",
		Short: "Replace an exercise with an AI picked alternative, keeping its sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "exercise")
			if err != nil {
				return err
			}

			details, err := opts.client().ReplaceExercise(cmd.Context(), id, input)
			if err != nil {
				return err
			}

			if done, err := writeStructured(cmd.OutOrStdout(), opts.output, details); done {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exercise %d replaced with: %s\n", id, details.Name)
			printOptional(out, "  Target Muscles", details.TargetMuscles)
			printOptional(out, "  Machine", details.Machine)
			printOptional(out, "  Attachments", details.Attachments)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "additional instructions for the AI")
	return cmd
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workout with all its exercises and sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "workout")
			if err != nil {
				return err
			}
			if err := opts.client().DeleteWorkout(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workout %d deleted.\n", id)
			return nil
		},
	}
}
