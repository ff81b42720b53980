// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Host        string `mapstructure:"host" yaml:"host"`
		Port        int    `mapstructure:"port" yaml:"port"`
		MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	} `mapstructure:"server" yaml:"server"`

	Output struct {
		Directory        string `mapstructure:"directory" yaml:"directory"`
		RetentionMinutes int    `mapstructure:"retention_minutes" yaml:"retention_minutes"`
		SweepMinutes     int    `mapstructure:"sweep_minutes" yaml:"sweep_minutes"`
	} `mapstructure:"output" yaml:"output"`

	Rules struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	OCR struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		TesseractBin   string `mapstructure:"tesseract_bin" yaml:"tesseract_bin"`
		PdftoppmBin    string `mapstructure:"pdftoppm_bin" yaml:"pdftoppm_bin"`
		DPI            int    `mapstructure:"dpi" yaml:"dpi"`
		PSM            int    `mapstructure:"psm" yaml:"psm"`
		OEM            int    `mapstructure:"oem" yaml:"oem"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"ocr" yaml:"ocr"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled          bool   `mapstructure:"enabled" yaml:"enabled"`
		Model            string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
		APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.stmt-sorter")
	v.AddConfigPath(".stmt-sorter")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SORTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Unprefixed environment overrides. PORT is the deployment contract
	// for the HTTP server and GEMINI_API_KEY never goes through the prefix.
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		fmt.Printf("Warning: failed to bind PORT environment variable: %v\n", err)
	}
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 100)

	// Output defaults: empty directory means the system temp dir
	v.SetDefault("output.directory", "")
	v.SetDefault("output.retention_minutes", 60)
	v.SetDefault("output.sweep_minutes", 10)

	// Rules defaults: empty file means the embedded rule table
	v.SetDefault("rules.file", "")

	// OCR defaults
	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.tesseract_bin", "tesseract")
	v.SetDefault("ocr.pdftoppm_bin", "pdftoppm")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.psm", 6)
	v.SetDefault("ocr.oem", 3)
	v.SetDefault("ocr.timeout_seconds", 120)

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.fallback_category", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate server settings
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}
	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be at least 1, got: %d", config.Server.MaxUploadMB)
	}

	// Validate output settings
	if config.Output.RetentionMinutes < 1 {
		return fmt.Errorf("output.retention_minutes must be at least 1, got: %d", config.Output.RetentionMinutes)
	}
	if config.Output.SweepMinutes < 1 {
		return fmt.Errorf("output.sweep_minutes must be at least 1, got: %d", config.Output.SweepMinutes)
	}

	// Validate OCR settings
	if config.OCR.Enabled {
		if config.OCR.DPI < 72 || config.OCR.DPI > 1200 {
			return fmt.Errorf("ocr.dpi must be between 72 and 1200, got: %d", config.OCR.DPI)
		}
		if config.OCR.PSM < 0 || config.OCR.PSM > 13 {
			return fmt.Errorf("ocr.psm must be between 0 and 13, got: %d", config.OCR.PSM)
		}
		if config.OCR.TimeoutSeconds < 1 {
			return fmt.Errorf("ocr.timeout_seconds must be at least 1, got: %d", config.OCR.TimeoutSeconds)
		}
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// OutputDir returns the directory generated workbooks are written to,
// falling back to the system temp directory when unset.
func (c *Config) OutputDir() string {
	if c.Output.Directory != "" {
		return c.Output.Directory
	}
	return os.TempDir()
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
