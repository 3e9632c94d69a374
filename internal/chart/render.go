package chart

import (
	"fmt"
	"time"

	"csvchart/internal/infra/fs"
	logging "csvchart/internal/infra/log"
	"csvchart/internal/table"

	"go.uber.org/zap"
)

type Branch string

const (
	BranchChart    Branch = "chart"
	BranchFallback Branch = "fallback"
)

type Options struct {
	DPI int
}

// Result describes the file Render wrote.
type Result struct {
	Branch Branch
	Format Format
	Width  int
	Height int
	Bytes  int64
}

// SelectBranch returns BranchChart when tbl has both the x and y fields.
func SelectBranch(tbl *table.Table) Branch {
	if tbl.HasColumns(DefaultBarChart.XField, DefaultBarChart.YField) {
		return BranchChart
	}
	return BranchFallback
}

// Render draws tbl and writes exactly one image to outputPath, or nothing
// on failure. Errors are *RenderError or *WriteError.
func Render(tbl *table.Table, outputPath string, opts Options) (Result, error) {
	start := time.Now()

	format, err := FormatFromPath(outputPath)
	if err != nil {
		return Result{}, &RenderError{Err: err}
	}
	if opts.DPI <= 0 {
		return Result{}, &RenderError{Err: fmt.Errorf("dpi must be positive, got %d", opts.DPI)}
	}

	res := Result{Branch: SelectBranch(tbl), Format: format}

	var draw func(Device) error
	switch res.Branch {
	case BranchChart:
		spec := DefaultBarChart
		layout, err := barLayout(tbl, spec)
		if err != nil {
			return Result{}, &RenderError{Err: err}
		}
		if format.Vector() {
			res.Width, res.Height = spec.PixelSize(int(vectorDPI))
		} else {
			res.Width, res.Height = spec.PixelSize(opts.DPI)
		}
		draw = func(d Device) error { return d.DrawBarChart(spec, layout) }
	default:
		spec := DefaultPlaceholder
		res.Width, res.Height = spec.WidthPx, spec.HeightPx
		draw = func(d Device) error { return d.DrawPlaceholder(spec) }
	}

	scale := 1.0
	if res.Branch == BranchChart && !format.Vector() {
		scale = float64(opts.DPI) / 72
	}
	dev := NewDevice(DeviceConfig{Format: format, Width: res.Width, Height: res.Height, Scale: scale})
	defer dev.Close()

	if err := draw(dev); err != nil {
		return Result{}, &RenderError{Err: err}
	}

	out, err := fs.CreateAtomic(outputPath)
	if err != nil {
		return Result{}, &WriteError{Path: outputPath, Err: err}
	}
	defer out.Close()

	if err := dev.Encode(out); err != nil {
		return Result{}, &WriteError{Path: outputPath, Err: err}
	}
	if res.Bytes, err = out.Commit(); err != nil {
		return Result{}, &WriteError{Path: outputPath, Err: err}
	}

	logging.LogDebug("Image written",
		zap.String("path", outputPath),
		zap.String("branch", string(res.Branch)),
		zap.String("format", string(res.Format)),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int64("bytes", res.Bytes),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return res, nil
}

func barLayout(tbl *table.Table, spec BarChartSpec) (BarLayout, error) {
	categories, err := tbl.Column(spec.XField)
	if err != nil {
		return BarLayout{}, err
	}
	values, err := tbl.Floats(spec.YField)
	if err != nil {
		return BarLayout{}, err
	}
	return BuildBarLayout(categories, values)
}
