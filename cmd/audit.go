package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/toldyou-button/internal/audit"
	"github.com/ziadkadry99/toldyou-button/internal/db"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent submissions, email outcomes and Shopify compliance requests",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().String("action", "", "only show this action (config_created, email_sent, email_failed, compliance_request)")
	auditCmd.Flags().String("actor", "", "only show entries for this email or shop domain")
	auditCmd.Flags().Duration("since", 0, "only show entries newer than this (e.g. 24h)")
	auditCmd.Flags().Int("limit", 50, "maximum number of entries")
	auditCmd.Flags().Duration("prune", 0, "delete entries older than this instead of listing")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	trail := audit.NewStore(database)

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		n, err := trail.DeleteBefore(cmd.Context(), time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries older than %s\n", n, prune)
		return nil
	}

	filter := audit.QueryFilter{}
	action, _ := cmd.Flags().GetString("action")
	filter.Action = audit.Action(action)
	filter.ActorID, _ = cmd.Flags().GetString("actor")
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
		t := time.Now().Add(-since)
		filter.Since = &t
	}

	entries, err := trail.Query(cmd.Context(), filter)
	if err != nil {
		return err
	}
	return printAudit(cmd.OutOrStdout(), entries)
}

func printAudit(w io.Writer, entries []audit.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No audit entries.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tACTOR\tSUBJECT\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.UTC().Format(time.DateTime), e.Action, e.ActorID, e.Subject, e.Detail)
	}
	return tw.Flush()
}
