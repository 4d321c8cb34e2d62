package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the dashboard service.
type Config struct {
	HTTPAddr             string
	AllowOrigins         []string
	AnalysisDelay        time.Duration
	SessionSecret        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	LogLevel             string
	LogFormat            string // "console" or "json"

	// GeneratedSecret is set when no secret was configured and a random one was made up.
	GeneratedSecret bool
}

func setDefaults() {
	viper.SetDefault(constants.ViperHTTPAddrKey, ":8080")
	viper.SetDefault(constants.ViperHTTPAllowOriginsKey, []string{"http://localhost:3000"})
	viper.SetDefault(constants.ViperAnalysisDelayKey, 2*time.Second)
	viper.SetDefault(constants.ViperSessionSecretKey, "")
	viper.SetDefault(constants.ViperSessionTTLKey, 30*time.Minute)
	viper.SetDefault(constants.ViperSessionSweepIntervalKey, time.Minute)
	viper.SetDefault(constants.ViperLogLevelKey, "info")
	viper.SetDefault(constants.ViperLogFormatKey, "console")
}

// Init prepares the global viper instance: defaults, HCDASH_ env overrides and
// an optional config file.
func Init(path string) error {
	setDefaults()

	viper.SetEnvPrefix("hcdash")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("viper.ReadInConfig: %w", err)
	}

	return nil
}

// Load reads the current viper state into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:             viper.GetString(constants.ViperHTTPAddrKey),
		AllowOrigins:         viper.GetStringSlice(constants.ViperHTTPAllowOriginsKey),
		AnalysisDelay:        viper.GetDuration(constants.ViperAnalysisDelayKey),
		SessionSecret:        viper.GetString(constants.ViperSessionSecretKey),
		SessionTTL:           viper.GetDuration(constants.ViperSessionTTLKey),
		SessionSweepInterval: viper.GetDuration(constants.ViperSessionSweepIntervalKey),
		LogLevel:             viper.GetString(constants.ViperLogLevelKey),
		LogFormat:            viper.GetString(constants.ViperLogFormatKey),
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		cfg.GeneratedSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http.addr is required")
	}
	if c.AnalysisDelay < 0 {
		return fmt.Errorf("analysis.delay must not be negative, got %s", c.AnalysisDelay)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.SessionTTL)
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive, got %s", c.SessionSweepInterval)
	}
	if c.SessionSecret == "" {
		return errors.New("session.secret is required")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
