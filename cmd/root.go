package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the classwatch application
var rootCmd = &cobra.Command{
	Use:   "classwatch",
	Short: "Monitors attendance of Google Meet class sessions",
	Long: `classwatch watches the Google Calendar of a tutoring account, keeps a
live view of who is present in each class's Google Meet, and serves the
result over HTTP for a monitoring dashboard.

Participants are matched against student and tutor rosters loaded from
CSV files.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "classwatch version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
