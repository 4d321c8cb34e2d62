package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/hcdash/internal/api"
	"github.com/ougirez/hcdash/internal/exitcode"
	"github.com/ougirez/hcdash/internal/pkg/logger"
	"github.com/ougirez/hcdash/internal/pkg/store"
	"github.com/ougirez/hcdash/internal/service/narrative"
	"github.com/ougirez/hcdash/internal/service/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()

	if cfg.GeneratedSecret {
		logger.Warnf(ctx, "session.secret is not set, using a random one: sessions will not survive a restart")
	}

	st := store.NewStore()
	sessions := session.NewSessionService(
		narrative.NewNarrativeService(st),
		session.WithDelay(cfg.AnalysisDelay),
		session.WithTTL(cfg.SessionTTL),
	)

	svc, err := api.NewAPIService(st, sessions, cfg)
	if err != nil {
		fail(ctx, exitcode.ServerError, "api.NewAPIService: %s", err.Error())
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Infof(egCtx, "listening on %s", cfg.HTTPAddr)
		return svc.Serve(cfg.HTTPAddr)
	})
	eg.Go(func() error {
		return sessions.RunJanitor(egCtx, cfg.SessionSweepInterval)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Infof(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return svc.Shutdown(shutdownCtx)
	})

	err = eg.Wait()
	sessions.Wait()
	if err != nil {
		fail(ctx, exitcode.ServerError, "serve: %s", err.Error())
	}

	return nil
}
