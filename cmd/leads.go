package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/audit-api/internal/lead"
	"github.com/sells-group/audit-api/internal/model"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List persisted audit leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString("status")

		store := lead.NewFileStore(cfg.Leads.Path)
		leads, err := store.List(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "leads")
		}

		if status != "" {
			filtered := leads[:0]
			for _, l := range leads {
				if l.Status == model.LeadStatus(status) {
					filtered = append(filtered, l)
				}
			}
			leads = filtered
		}

		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		formatLeads(os.Stdout, leads)
		return nil
	},
}

func init() {
	leadsCmd.Flags().String("status", "", "filter by status (success, error, timeout)")
	rootCmd.AddCommand(leadsCmd)
}

// formatLeads writes a tabular list of leads to w.
func formatLeads(out io.Writer, leads []model.Lead) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tBUSINESS\tCITY\tSTATUS\tSCORE\tSCRAPED\tWHEN\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t--------\t----\t------\t-----\t-------\t----\t--------")

	for _, l := range leads {
		score := "-"
		if l.OverallScore != nil {
			score = fmt.Sprintf("%d", *l.OverallScore)
		}

		name := l.BusinessName
		if len(name) > 30 {
			name = name[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%s\t%dms\n",
			truncateID(l.ID),
			name,
			l.City,
			l.Status,
			score,
			l.ScrapedDataAvailable,
			l.Timestamp.Format("2006-01-02 15:04"),
			l.DurationMs,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
