package cmd

import (
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage background tasks",
	Long:  `List, trigger and inspect background tasks (like the policy sync task) on a running server.`,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}
