package commands

// Render flow: load table, draw chart or placeholder, write the image
// Delivers the image to Telegram when a bot token and chat are configured

import (
	"context"
	"fmt"
	"time"

	"csvchart/internal/chart"
	"csvchart/internal/delivery"
	"csvchart/internal/infra/config"
	"csvchart/internal/infra/log"
	"csvchart/internal/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	runID := log.GenerateRunID()
	inputPath, outputPath := args[0], args[1]
	if len(args) > 2 {
		log.LogWarn("Ignoring extra arguments", zap.Strings("extra", args[2:]))
	}

	log.LogInfo("Render started",
		zap.String("run_id", runID),
		zap.String("input", inputPath),
		zap.String("output", outputPath))

	tbl, err := table.Load(inputPath)
	if err != nil {
		log.LogError("Failed to load input", zap.String("run_id", runID), zap.Error(err))
		return err
	}
	log.LogDebug("Table loaded",
		zap.String("run_id", runID),
		zap.Int("rows", tbl.NumRows()),
		zap.Int("columns", tbl.NumColumns()),
		zap.Strings("names", tbl.Columns()))

	res, err := chart.Render(tbl, outputPath, chart.Options{DPI: cfg.Chart.DPI})
	if err != nil {
		log.LogError("Failed to render image", zap.String("run_id", runID), zap.Error(err))
		return err
	}
	if res.Branch == chart.BranchFallback {
		log.LogWarn(fmt.Sprintf("Columns %q and %q not found, wrote placeholder plot", chart.XField, chart.YField),
			zap.String("run_id", runID))
	}

	log.LogSuccess(fmt.Sprintf("Wrote %s", outputPath),
		zap.String("run_id", runID),
		zap.String("branch", string(res.Branch)),
		zap.String("format", string(res.Format)),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int64("bytes", res.Bytes),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	if cfg.Telegram.Enabled() {
		caption := chart.DefaultBarChart.Title
		if res.Branch == chart.BranchFallback {
			caption = chart.DefaultPlaceholder.Title
		}
		if err := deliver(cmd.Context(), cfg.Telegram, outputPath, caption, runID); err != nil {
			return err
		}
	}
	return nil
}

func deliver(ctx context.Context, tg config.TelegramConfig, outputPath, caption, runID string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	sender, err := delivery.NewTelegram(tg.BotToken, delivery.Options{
		ChatID:         tg.ChatID,
		RequestTimeout: time.Duration(tg.RequestTimeout) * time.Second,
		MaxRetries:     tg.MaxRetries,
	})
	if err != nil {
		log.LogError("Failed to initialize Telegram delivery", zap.String("run_id", runID), zap.Error(err))
		return err
	}

	if err := sender.SendImage(ctx, outputPath, caption); err != nil {
		log.LogError("Failed to deliver image", zap.String("run_id", runID), zap.Error(err))
		return err
	}

	log.LogSuccess("Image delivered to Telegram",
		zap.String("run_id", runID),
		zap.String("chat_id", tg.ChatID),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
