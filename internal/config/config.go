// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	DataDir        string // Base directory for the databases, always absolute
	LogLevel       string
	LogPretty      bool
	Port           int
	DevMode        bool
	ReportSchedule string // cron spec with seconds; empty disables the scheduled run
	Risk           RiskConfig
	Export         ExportConfig
}

// RiskConfig holds analysis parameters
type RiskConfig struct {
	RiskFreeRate  float64
	VaRConfidence float64
	Benchmark     string
	TradingDays   int
	Workers       int
	LookbackDays  int // price points loaded per symbol; 0 loads all
}

// ExportConfig holds S3 report export settings
type ExportConfig struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // optional, for S3-compatible stores
	Format    string // json or msgpack
	AccessKey string // optional; the default AWS credential chain is used when empty
	SecretKey string
}

// Enabled reports whether a bucket is configured.
func (e ExportConfig) Enabled() bool {
	return e.Bucket != ""
}

// ToAnalysisConfig converts to the explicit configuration the assessor takes.
func (c RiskConfig) ToAnalysisConfig() risk.Config {
	return risk.Config{
		RiskFreeRate:  c.RiskFreeRate,
		VaRConfidence: c.VaRConfidence,
		Benchmark:     strings.ToUpper(strings.TrimSpace(c.Benchmark)),
		TradingDays:   c.TradingDays,
		Workers:       c.Workers,
	}
}

// Load reads configuration from .env and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("RISK_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	defaults := risk.DefaultConfig()
	cfg := &Config{
		DataDir:        absDataDir,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", false),
		Port:           getEnvAsInt("RISK_PORT", 8010),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		ReportSchedule: getEnv("RISK_REPORT_SCHEDULE", ""),
		Risk: RiskConfig{
			RiskFreeRate:  getEnvAsFloat("RISK_FREE_RATE", defaults.RiskFreeRate),
			VaRConfidence: getEnvAsFloat("RISK_VAR_CONFIDENCE", defaults.VaRConfidence),
			Benchmark:     getEnv("RISK_BENCHMARK", defaults.Benchmark),
			TradingDays:   getEnvAsInt("RISK_TRADING_DAYS", defaults.TradingDays),
			Workers:       getEnvAsInt("RISK_WORKERS", 0),
			LookbackDays:  getEnvAsInt("RISK_LOOKBACK_DAYS", 252),
		},
		Export: ExportConfig{
			Bucket:    getEnv("RISK_EXPORT_BUCKET", ""),
			Prefix:    getEnv("RISK_EXPORT_PREFIX", "risk-reports"),
			Region:    getEnv("RISK_EXPORT_REGION", "us-east-1"),
			Endpoint:  getEnv("RISK_EXPORT_ENDPOINT", ""),
			Format:    getEnv("RISK_EXPORT_FORMAT", "json"),
			AccessKey: getEnv("RISK_EXPORT_ACCESS_KEY", ""),
			SecretKey: getEnv("RISK_EXPORT_SECRET_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	var errs []error

	if err := c.Risk.ToAnalysisConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Risk.LookbackDays < 0 {
		errs = append(errs, fmt.Errorf("RISK_LOOKBACK_DAYS must not be negative, got %d", c.Risk.LookbackDays))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("RISK_PORT out of range: %d", c.Port))
	}
	if _, err := risk.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, err)
	}
	if (c.Export.AccessKey == "") != (c.Export.SecretKey == "") {
		errs = append(errs, errors.New("RISK_EXPORT_ACCESS_KEY and RISK_EXPORT_SECRET_KEY must be set together"))
	}
	if c.ReportSchedule != "" {
		if _, err := ScheduleParser.Parse(c.ReportSchedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid RISK_REPORT_SCHEDULE %q: %w", c.ReportSchedule, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ScheduleParser parses cron specs with a leading seconds field and descriptors.
var ScheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
