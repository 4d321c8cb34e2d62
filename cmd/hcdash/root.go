package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ougirez/hcdash/internal/exitcode"
	"github.com/ougirez/hcdash/internal/pkg/config"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "hcdash",
	Short:             "Hospital cost report dashboard",
	Long:              "Serves and prints narrative dashboards built from CMS HCRIS cost report figures.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a YAML config file")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "console", "Log format: console or json")

	_ = viper.BindPFlag(constants.ViperLogLevelKey, pf.Lookup("log-level"))
	_ = viper.BindPFlag(constants.ViperLogFormatKey, pf.Lookup("log-format"))
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Init(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %s\n", err)
		os.Exit(exitcode.ConfigError)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %s\n", err)
		os.Exit(exitcode.ConfigError)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %s\n", err)
		os.Exit(exitcode.ConfigError)
	}

	return nil
}

// fail logs and exits with code.
func fail(ctx context.Context, code int, format string, args ...interface{}) {
	logger.Errorf(ctx, format, args...)
	logger.Sync()
	os.Exit(code)
}
