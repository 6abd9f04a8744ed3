package cmd

import (
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Interact with policy documents",
	Long:  `Utilities for validating policy documents locally and pushing them to a running server.`,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}
