package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"csvchart/internal/infra/log"
)

// Config is the resolved runtime configuration.
type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// ChartConfig controls rendering. Titles, labels and colors are fixed.
type ChartConfig struct {
	DPI int `mapstructure:"dpi"` // pixels per inch for the 8x4 chart
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TelegramConfig enables delivery of the rendered image when both token and chat are set.
type TelegramConfig struct {
	BotToken       string `mapstructure:"bot_token"`
	ChatID         string `mapstructure:"chat_id"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
	MaxRetries     int    `mapstructure:"max_retries"`
}

// Enabled reports whether delivery is configured.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

const (
	EnvPrefix      = "CSVCHART"
	DefaultDPI     = 300
	minDPI         = 36
	maxDPI         = 1200
	configFileName = "csvchart"
)

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"dpi":              "chart.dpi",
	"log-level":        "log.level",
	"log-file":         "log.file",
	"telegram-token":   "telegram.bot_token",
	"telegram-chat-id": "telegram.chat_id",
}

// LoadConfig resolves configuration from, highest first:
// 1. flags
// 2. environment (CSVCHART_*), including values loaded from .env
// 3. config file (csvchart.yaml in the working directory, or configFile)
// 4. defaults
func LoadConfig(flags *pflag.FlagSet, configFile string) (*Config, error) {
	// .env never overrides variables already set in the environment.
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setupEnvAliases(v)

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chart.dpi", DefaultDPI)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.request_timeout", 30)
	v.SetDefault("telegram.max_retries", 3)
}

// setupEnvAliases accepts the conventional unprefixed Telegram variable names too.
func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("telegram.bot_token", EnvPrefix+"_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", EnvPrefix+"_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")
}

// RegisterFlags declares the flags LoadConfig knows how to bind.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int("dpi", DefaultDPI, "Chart resolution in pixels per inch (env: CSVCHART_CHART_DPI)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error (env: CSVCHART_LOG_LEVEL)")
	flags.String("log-file", "", "Write a log file at this path (env: CSVCHART_LOG_FILE)")
	flags.String("telegram-token", "", "Telegram bot token for delivery (env: TELEGRAM_BOT_TOKEN)")
	flags.String("telegram-chat-id", "", "Telegram chat to deliver the image to (env: TELEGRAM_CHAT_ID)")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Chart.DPI < minDPI || cfg.Chart.DPI > maxDPI {
		return fmt.Errorf("chart.dpi must be between %d and %d, got %d", minDPI, maxDPI, cfg.Chart.DPI)
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if (cfg.Telegram.BotToken == "") != (cfg.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if cfg.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative")
	}
	return nil
}
