package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PredicateSystems/secureclaw/internal/cliconfig"
	"github.com/PredicateSystems/secureclaw/pkg/client"
)

var loginCmd = &cobra.Command{
	Use:   "login TOKEN",
	Short: "Save an admin token for a SecureClaw server",
	Long: `Verifies the given admin token against the server and saves it locally,
	so future authenticated requests (like audit logs) pick it up
	automatically. Mint a token with 'secureclaw token admin'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loginToken := args[0]
		if loginToken == "" {
			return fmt.Errorf("token cannot be empty")
		}

		server := f.RemoteAddr
		if server == "" {
			server = viper.GetString(ServerAddrKey)
		}
		if server == "" {
			return fmt.Errorf("server address not configured, provide via --server or env")
		}

		// verify the token against an authenticated route before saving
		cli := client.New(server, client.WithAuthToken(loginToken))
		if _, err := cli.ListTasks(cmd.Context()); err != nil {
			log.Error().Msgf("%s token was rejected by %s", redCross, server)
			return err
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		cfg.SetCredential(server, loginToken)
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "login succeeded but could not save credentials")
		}

		log.Info().Msgf("%s saved credentials for %s", greenCheck, bold(server))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
