package main

import (
	"os"

	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/exitcode"
	"github.com/ougirez/hcdash/internal/pkg/store"
	"github.com/ougirez/hcdash/internal/report"
	"github.com/ougirez/hcdash/internal/service/narrative"
	"github.com/spf13/cobra"
)

var (
	reportHospital string
	noColor        bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a hospital dashboard to the terminal",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportHospital, "hospital", "", "Hospital id: emory-main or emory-midtown (required)")
	reportCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")
	_ = reportCmd.MarkFlagRequired("hospital")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	id, err := domain.ParseHospitalID(reportHospital)
	if err != nil {
		fail(ctx, exitcode.UsageError, "%s", err.Error())
	}

	d, err := narrative.NewNarrativeService(store.NewStore()).DashboardFor(ctx, id)
	if err != nil {
		fail(ctx, exitcode.UsageError, "narrative.DashboardFor: %s", err.Error())
	}

	return report.Render(os.Stdout, d, !noColor)
}
