package commands

// Command to print a descriptive summary of an input table
// Shows a data preview, row/column counts, inferred types, missing values and numeric statistics
// Optionally exports the summary as a PDF report

import (
	"fmt"
	"time"

	"csvchart/internal/analysis"
	"csvchart/internal/infra/fs"
	"csvchart/internal/infra/log"
	"csvchart/internal/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultPreviewRows = 5

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <input_file>",
		Short: "Print a summary of the input table",
		Long: `Load the input table and print a preview of its first rows, its shape,
column types, missing values and numeric summary.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
	cmd.Flags().Int("head", defaultPreviewRows, "Rows to show in the data preview (0 disables it)")
	cmd.Flags().String("report", "", "Also write the summary as a PDF report to this path")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	head, _ := cmd.Flags().GetInt("head")
	reportPath, _ := cmd.Flags().GetString("report")

	tbl, err := table.Load(args[0])
	if err != nil {
		log.LogError("Failed to load input", zap.Error(err))
		return err
	}

	summary := analysis.Analyze(tbl)
	summary.Preview = analysis.Head(tbl, head)
	log.LogInfo("Table analyzed",
		zap.String("input", args[0]),
		zap.Int("rows", summary.TotalRows),
		zap.Int("columns", summary.TotalColumns),
		zap.Int("numeric_columns", len(summary.Numeric)))

	if err := summary.Write(cmd.OutOrStdout()); err != nil {
		return err
	}

	if reportPath != "" {
		return writeReport(summary, reportPath)
	}
	return nil
}

func writeReport(summary analysis.Summary, path string) error {
	start := time.Now()

	out, err := fs.CreateAtomic(path)
	if err != nil {
		log.LogError("Failed to create report", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	defer out.Close()

	if err := summary.WriteReport(out); err != nil {
		log.LogError("Failed to render report", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	size, err := out.Commit()
	if err != nil {
		log.LogError("Failed to save report", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	log.LogSuccess(fmt.Sprintf("Wrote report %s", path),
		zap.Int64("bytes", size),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
