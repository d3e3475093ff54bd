package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPopulateCommand(opts *rootOptions) *cobra.Command {
	var (
		file      string
		fakeCount int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Seed the service with workouts from a JSON/YAML file or random ones",
		Example: `  workoutctl populate -f workouts_data.json
  workoutctl populate -f workouts.yaml
  workoutctl populate --fake 14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && fakeCount <= 0 {
				return fmt.Errorf("either --file or --fake must be set")
			}

			var toAdd []workouts.Workout
			if file != "" {
				loaded, err := loadWorkoutsFile(file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Read %d workouts from %s\n", len(loaded), file)
				toAdd = append(toAdd, loaded...)
			}
			if fakeCount > 0 {
				toAdd = append(toAdd, workouts.FakeHistory(gofakeit.New(seed), fakeCount, time.Now())...)
			}

			client := opts.client()
			out := cmd.OutOrStdout()
			failed := 0
			for _, w := range toAdd {
				id, err := client.CreateWorkout(cmd.Context(), w)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "Failed to add workout %s - %s: %s\n", w.Day, w.Title, err)
					continue
				}
				fmt.Fprintf(out, "Added workout %d: %s - %s\n", id, w.Day, w.Title)
			}

			fmt.Fprintf(out, "\nDatabase population completed: %d added, %d failed.\n", len(toAdd)-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d workout(s) could not be added", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML file holding an array of workouts")
	cmd.Flags().IntVar(&fakeCount, "fake", 0, "add this many random workouts on the days before today")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for --fake (0 picks a random one)")
	return cmd
}

func loadWorkoutsFile(path string) ([]workouts.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workouts file: %w", err)
	}

	var list []workouts.Workout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("parse workouts file %s: %w", path, err)
	}
	return list, nil
}
