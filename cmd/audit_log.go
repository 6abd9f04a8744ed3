package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PredicateSystems/secureclaw/pkg/client"
)

var auditLogOpts client.ListAuditsOpts

// auditLogCmd represents the audit log command
var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Retrieve and display decision audit records",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		log.Debug().Msg("Fetching audit records...")
		audits, correlation, err := cli.ListAudits(cmd.Context(), auditLogOpts)
		if err != nil {
			return logError(err, correlation, "failed to fetch audit records")
		}

		log.Info().Msgf("Retrieved %d audit records", len(audits))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "Principal", "Action", "Resource", "Allowed", "Rule", "Reason",
		})

		for _, rec := range audits {
			status := redCross
			if rec.Allow {
				status = greenCheck
			}

			t.AppendRow(table.Row{
				rec.Time.Format(time.RFC3339),
				truncate(rec.Principal, 35),
				rec.Action,
				truncate(rec.Resource, 45),
				status,
				rec.MatchedRule,
				truncate(rec.Reason, 40),
			})
		}

		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)

	auditLogCmd.Flags().UintVarP(&auditLogOpts.Limit, "limit", "n", 25, "Number of audit records to retrieve")
	auditLogCmd.Flags().StringVar(&auditLogOpts.CorrelationID, "correlation-id", "", "Filter by correlation ID")
	auditLogCmd.Flags().StringVar(&auditLogOpts.Principal, "principal", "", "Filter by principal")
	auditLogCmd.Flags().StringVar(&auditLogOpts.Rule, "rule", "", "Filter by matched rule name")
}
