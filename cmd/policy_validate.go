package cmd

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PredicateSystems/secureclaw/internal/policy"
)

var policyValidatePrint bool

// policyValidateCmd represents the policy validate command
var policyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a policy document",
	Example: `  # Validate a policy file
  secureclaw policy validate -f policy.yaml

  # Validate and dump the parsed document
  secureclaw policy validate -f policy.yaml --print`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := f.LoadPolicyDocument()
		if err != nil {
			var verr *policy.ValidationError
			if errors.As(err, &verr) {
				log.Error().
					Str("kind", string(verr.Kind)).
					Str("rule", verr.Rule).
					Msg("Policy document is invalid.")
			}
			return err
		}

		log.Info().Msgf("Policy document is valid: version '%s', %d rules.",
			doc.Version, len(doc.Rules))

		if policyValidatePrint {
			spew.Dump(doc)
		}
		return nil
	},
}

func init() {
	policyCmd.AddCommand(policyValidateCmd)

	f.bindPolicyFlag(policyValidateCmd.Flags())
	policyValidateCmd.Flags().BoolVar(&policyValidatePrint, "print", false, "Dump the parsed document")

	_ = policyValidateCmd.MarkFlagRequired("policy")
}
