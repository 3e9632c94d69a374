package commands

// Root command for the Cobra CLI
// Renders <input_file> to <output_image> and optionally delivers it to Telegram
// Registers the analyze subcommand and the shared config/log flags

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"csvchart/internal/infra/config"
	"csvchart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// UsageError is returned when the positional arguments are missing.
type UsageError struct {
	Program string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: %s <input_file> <output_image>", e.Program)
}

func programName() string {
	if len(os.Args) == 0 {
		return "csvchart"
	}
	return filepath.Base(os.Args[0])
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csvchart <input_file> <output_image>",
		Short: "Render a CSV file as a bar chart image",
		Long: `csvchart reads a table (CSV, XLSX or JSON) and writes one image.
Tables with "category" and "value" columns become a bar chart; anything else
produces a placeholder plot. The image format follows the output extension.`,
		Version:       "1.0.0",
		Args:          requireRenderArgs,
		RunE:          runRender,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	config.RegisterFlags(flags)
	flags.String("config", "", "Config file (default ./csvchart.yaml if present)")

	rootCmd.AddCommand(newAnalyzeCmd())
	return rootCmd
}

func requireRenderArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &UsageError{Program: programName()}
	}
	return nil
}

// Execute runs the CLI with a context canceled on SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer log.Sync()

	return newRootCmd().ExecuteContext(ctx)
}

// setup resolves configuration and initializes logging for a command run.
func setup(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(cmd.Flags(), configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := log.Init(log.Options{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log.LogDebug("Config loaded",
		zap.Int("dpi", cfg.Chart.DPI),
		zap.String("log_file", cfg.Log.File),
		zap.Bool("telegram", cfg.Telegram.Enabled()))
	return cfg, nil
}
