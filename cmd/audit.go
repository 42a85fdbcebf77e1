package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/audit-api/internal/audit"
	"github.com/sells-group/audit-api/internal/model"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run one audit from the command line",
	Long:  "Runs the full audit pipeline once without the HTTP server and prints the report JSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		city, _ := cmd.Flags().GetString("city")
		btype, _ := cmd.Flags().GetString("type")
		website, _ := cmd.Flags().GetString("website")
		context_, _ := cmd.Flags().GetString("context")

		req := model.AuditRequest{
			BusinessName:      name,
			City:              city,
			BusinessType:      btype,
			WebsiteURL:        website,
			AdditionalContext: context_,
		}
		if err := req.Validate(); err != nil {
			return eris.Wrap(err, "audit")
		}

		svc := newAuditService(cfg)
		report, err := svc.Run(cmd.Context(), audit.Input{Request: req, IP: "cli"})
		if err != nil {
			return eris.Wrap(err, "audit")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	auditCmd.Flags().String("name", "", "business name (required)")
	auditCmd.Flags().String("city", "", "city (required)")
	auditCmd.Flags().String("type", "", "business type (required)")
	auditCmd.Flags().String("website", "", "website URL")
	auditCmd.Flags().String("context", "", "additional context")
	_ = auditCmd.MarkFlagRequired("name")
	_ = auditCmd.MarkFlagRequired("city")
	_ = auditCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(auditCmd)
}
