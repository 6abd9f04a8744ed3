package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

var (
	checkPrincipal  string
	checkAction     string
	checkResource   string
	checkLabels     []string
	checkRuleFilter string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Explain why a request is allowed or denied",
	Long: `Evaluates a request against the policy document and prints a detailed
	trace of every rule visited, in evaluation order (deny rules first).
	Useful for debugging why a request is being denied or matching the
	wrong rule.

With --policy the evaluation runs locally against the given document.
With --server the request is sent to the explain endpoint of a running
server, which requires admin authentication.`,
	Example: `  # Why is this request denied?
  secureclaw check -f policy.yaml --principal agent:main --action fs.read --resource /home/u/.aws/credentials

  # Why is it not matching the 'allow-read' rule?
  secureclaw check -f policy.yaml --principal agent:main --action fs.read --resource /src/a.ts --rule allow-read

  # Ask a running server instead
  secureclaw check --server http://127.0.0.1:8443 --principal agent:main --action fs.read --resource /src/a.ts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &core.AuthorizationRequest{
			Principal: checkPrincipal,
			Action:    checkAction,
			Resource:  checkResource,
			Labels:    checkLabels,
		}

		var trace *core.EvaluationTrace
		if f.PolicyPath != "" {
			eng, err := f.GetLocalEngine()
			if err != nil {
				return err
			}
			t := eng.Trace(req)
			trace = &t
		} else {
			cli, err := f.GetClient()
			if err != nil {
				return fmt.Errorf("neither --policy nor a server address given: %w", err)
			}
			t, correlation, err := cli.Explain(cmd.Context(), req)
			if err != nil {
				return logError(err, correlation, "explain request failed")
			}
			trace = t
		}

		printTrace(trace)
		return nil
	},
}

func printTrace(trace *core.EvaluationTrace) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("\n%s for %s %s %s\n",
		bold("Evaluation Trace"),
		bold(trace.Request.Principal),
		trace.Request.Action,
		trace.Request.Resource)

	fmt.Println(faint("---------------------------------------------------"))

	for _, res := range trace.RuleResults {
		if checkRuleFilter != "" && res.RuleName != checkRuleFilter {
			continue
		}

		icon := red("✖")
		if res.Matched {
			icon = green("✔")
		}

		effect := cyan(string(res.Effect))
		fmt.Printf("%s Rule: %s (%s)\n", icon, bold(res.RuleName), effect)

		for _, field := range res.FieldResults {
			fieldIcon := red("✖")
			if field.Matched {
				fieldIcon = green("✔")
			}
			fmt.Printf("    %s %s\n", fieldIcon, field.Field)

			if field.Reason != "" {
				reason := field.Reason
				if field.Matched {
					reason = faint(reason)
				} else {
					reason = yellow(reason)
				}
				fmt.Printf("      ↳ %s\n", reason)
			}
		}

		fmt.Println()
	}

	fmt.Println(faint("---------------------------------------------------"))
	if trace.Decision.Allow {
		fmt.Printf("Decision: %s via rule '%s'\n", bold(green("allowed")), bold(trace.Decision.MatchedRule))
	} else if trace.Decision.MatchedRule != "" {
		fmt.Printf("Decision: %s via rule '%s'\n", bold(red("denied")), bold(trace.Decision.MatchedRule))
	} else {
		fmt.Printf("Decision: %s (no matching allow rule)\n", bold(red("denied")))
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(checkCmd)

	f.bindPolicyFlag(checkCmd.Flags())
	checkCmd.Flags().StringVarP(&checkPrincipal, "principal", "p", "", "Principal making the request")
	checkCmd.Flags().StringVarP(&checkAction, "action", "a", "", "Action being performed")
	checkCmd.Flags().StringVarP(&checkResource, "resource", "R", "", "Resource being accessed")
	checkCmd.Flags().StringSliceVarP(&checkLabels, "label", "l", nil, "Request labels (repeatable)")
	checkCmd.Flags().StringVarP(&checkRuleFilter, "rule", "r", "", "Filter output to specific rule name (optional)")

	_ = checkCmd.MarkFlagRequired("principal")
	_ = checkCmd.MarkFlagRequired("action")
	_ = checkCmd.MarkFlagRequired("resource")
}
