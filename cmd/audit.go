package cmd

import (
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Administrative audit commands",
	Long:  `View decision audit records on the server. Requires admin authentication (SECURECLAW_TOKEN).`,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
