package main

import (
	"fmt"
	"os"

	"github.com/2beens/workoutlog/internal/apiclient"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	server string
	output string
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(o.server, nil)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "workoutctl",
		Short: "Command line client for the workoutlog service",
		Long: `workoutctl lists logged workouts, asks the service for workout
suggestions, rest times and exercise tips, and seeds the database.

The server address can also be set with the WORKOUTLOG_SERVER env var
(a .env file in the current directory is loaded when present).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat(opts.output) {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unsupported output format: %s", opts.output)
			}
			if !cmd.Flags().Changed("server") {
				if server := os.Getenv("WORKOUTLOG_SERVER"); server != "" {
					opts.server = server
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", apiclient.DefaultBaseURL, "workoutlog service address")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", string(formatText), "output format (text|json|yaml)")

	cmd.AddCommand(
		newListCommand(opts),
		newTodayCommand(opts),
		newSuggestCommand(opts),
		newRestCommand(opts),
		newTipsCommand(opts),
		newReplaceCommand(opts),
		newDeleteCommand(opts),
		newPopulateCommand(opts),
	)

	return cmd
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
