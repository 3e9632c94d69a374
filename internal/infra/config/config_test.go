package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(newFlags(t), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Chart.DPI != DefaultDPI {
		t.Fatalf("dpi = %d, want %d", cfg.Chart.DPI, DefaultDPI)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != "" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Telegram.Enabled() {
		t.Fatalf("telegram should be disabled by default")
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := "chart:\n  dpi: 100\nlog:\n  level: warn\n  file: from-file.log\n"
	if err := os.WriteFile(filepath.Join(dir, "csvchart.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CSVCHART_LOG_LEVEL", "error")

	cfg, err := LoadConfig(newFlags(t, "--dpi", "72"), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Chart.DPI != 72 {
		t.Fatalf("flag should win: dpi = %d", cfg.Chart.DPI)
	}
	if cfg.Log.Level != "error" {
		t.Fatalf("env should beat file: level = %q", cfg.Log.Level)
	}
	if cfg.Log.File != "from-file.log" {
		t.Fatalf("file should beat default: file = %q", cfg.Log.File)
	}
}

func TestLoadConfig_TelegramAliases(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")

	cfg, err := LoadConfig(newFlags(t), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Telegram.Enabled() {
		t.Fatalf("expected telegram enabled, got %+v", cfg.Telegram)
	}
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := LoadConfig(newFlags(t), "nope.yaml"); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidateConfig(t *testing.T) {
	base := Config{Chart: ChartConfig{DPI: 300}, Log: LogConfig{Level: "info"}}

	bad := base
	bad.Chart.DPI = 10
	if err := validateConfig(&bad); err == nil {
		t.Fatalf("expected dpi error")
	}

	bad = base
	bad.Log.Level = "chatty"
	if err := validateConfig(&bad); err == nil {
		t.Fatalf("expected level error")
	}

	bad = base
	bad.Telegram.BotToken = "x"
	if err := validateConfig(&bad); err == nil {
		t.Fatalf("expected telegram pairing error")
	}

	if err := validateConfig(&base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
