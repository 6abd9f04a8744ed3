package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	tokenAdminKey string
	tokenAdminTTL time.Duration
)

// tokenAdminCmd represents the token admin command
var tokenAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Mint an admin token for the server's admin routes",
	Long: `Mints a signed bearer token carrying the admin role, using the same
	signing key the server is configured with (admin.signing_key).
	Export the result as SECURECLAW_TOKEN for the audit, tasks and
	policy reload commands.`,
	Example: `  export SECURECLAW_TOKEN=$(secureclaw token admin --key "$SIGNING_KEY")`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenAdminKey == "" {
			return fmt.Errorf("signing key cannot be empty")
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"roles": []string{"admin"},
			"iat":   now.Unix(),
			"exp":   now.Add(tokenAdminTTL).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(tokenAdminKey))
		if err != nil {
			return fmt.Errorf("signing token: %w", err)
		}

		log.Debug().Msgf("Minted admin token valid for %s", tokenAdminTTL)
		fmt.Println(signed)
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenAdminCmd)

	tokenAdminCmd.Flags().StringVarP(&tokenAdminKey, "key", "k", "", "The server's admin signing key")
	tokenAdminCmd.Flags().DurationVar(&tokenAdminTTL, "ttl", time.Hour, "Token lifetime")

	_ = tokenAdminCmd.MarkFlagRequired("key")
}
