package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// policyReloadCmd represents the policy reload command
var policyReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Push a policy document to a running server",
	Long: `Validates the given policy document on the server and atomically swaps
	it in. The previous document stays active if validation fails.

Note: This command requires a SecureClaw server to be running and reachable.`,
	Example: `  secureclaw policy reload -f policy.yaml --server http://127.0.0.1:8443`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.PolicyPath == "" {
			return fmt.Errorf("policy file not specified (use --policy)")
		}
		raw, err := os.ReadFile(f.PolicyPath)
		if err != nil {
			return fmt.Errorf("reading policy file: %w", err)
		}

		contentType := "application/json"
		switch strings.ToLower(filepath.Ext(f.PolicyPath)) {
		case ".yaml", ".yml":
			contentType = "application/yaml"
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		resp, correlation, err := cli.ReloadPolicy(cmd.Context(), raw, contentType)
		if err != nil {
			return logError(err, correlation, "server rejected the policy document")
		}

		log.Info().Msgf("%s Policy reloaded: version '%s', %d rules.",
			greenCheck, resp.Version, resp.Rules)
		return nil
	},
}

func init() {
	policyCmd.AddCommand(policyReloadCmd)

	f.bindPolicyFlag(policyReloadCmd.Flags())
	_ = policyReloadCmd.MarkFlagRequired("policy")
}
