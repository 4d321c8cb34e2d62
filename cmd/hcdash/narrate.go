package main

import (
	"context"
	"os"
	"time"

	"github.com/ougirez/hcdash/internal/client"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/exitcode"
	"github.com/ougirez/hcdash/internal/report"
	"github.com/spf13/cobra"
)

var (
	narrateServer   string
	narrateHospital string
	narrateTimeout  time.Duration
)

var narrateCmd = &cobra.Command{
	Use:   "narrate FILE...",
	Short: "Run the upload, select and analyze flow against a running server",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNarrate,
}

func init() {
	f := narrateCmd.Flags()
	f.StringVar(&narrateServer, "server", "http://localhost:8080", "Base URL of the dashboard service")
	f.StringVar(&narrateHospital, "hospital", "", "Hospital id: emory-main or emory-midtown (required)")
	f.DurationVar(&narrateTimeout, "timeout", 2*time.Minute, "Give up after this long")
	f.BoolVar(&noColor, "no-color", false, "Disable colors")
	_ = narrateCmd.MarkFlagRequired("hospital")
	rootCmd.AddCommand(narrateCmd)
}

func runNarrate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), narrateTimeout)
	defer cancel()

	id, err := domain.ParseHospitalID(narrateHospital)
	if err != nil {
		fail(ctx, exitcode.UsageError, "%s", err.Error())
	}

	c, err := client.New(narrateServer)
	if err != nil {
		fail(ctx, exitcode.RemoteError, "client.New: %s", err.Error())
	}

	d, err := c.Narrate(ctx, id, args)
	if err != nil {
		fail(ctx, exitcode.RemoteError, "narrate: %s", err.Error())
	}

	return report.Render(os.Stdout, d, !noColor)
}
