package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitctl",
	Short: "Operational tooling for the fitsocial backend",
	Long: `fitctl manages the fitsocial database and helps debug feed ordering.

Commands:
  migrate  - Apply, roll back or create schema migrations
  seed     - Load demo users, exercises, routines and posts
  rank     - Score comments, posts or routines from a JSON file`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
