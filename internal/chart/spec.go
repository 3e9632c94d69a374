// Package chart renders a loaded table to an image file: a bar chart when
// the table has category and value columns, a placeholder plot otherwise.
package chart

import "image/color"

const (
	XField = "category"
	YField = "value"
)

// BarChartSpec describes the chart branch. Size is in inches; the pixel
// size depends on the render DPI.
type BarChartSpec struct {
	XField   string
	YField   string
	Title    string
	XLabel   string
	YLabel   string
	Fill     color.RGBA
	WidthIn  float64
	HeightIn float64
}

// PlaceholderSpec describes the fallback plot of 1..N against its index.
// Size is in pixels regardless of DPI.
type PlaceholderSpec struct {
	Title    string
	XLabel   string
	YLabel   string
	N        int
	WidthPx  int
	HeightPx int
}

// SteelBlue is #4682B4.
var SteelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}

var DefaultBarChart = BarChartSpec{
	XField:   XField,
	YField:   YField,
	Title:    "R Generated Chart",
	XLabel:   "Category",
	YLabel:   "Value",
	Fill:     SteelBlue,
	WidthIn:  8,
	HeightIn: 4,
}

var DefaultPlaceholder = PlaceholderSpec{
	Title:    "Data structure not recognized",
	XLabel:   "Index",
	YLabel:   "Value",
	N:        10,
	WidthPx:  800,
	HeightPx: 400,
}

// PixelSize returns the chart size at dpi.
func (s BarChartSpec) PixelSize(dpi int) (int, int) {
	return int(s.WidthIn * float64(dpi)), int(s.HeightIn * float64(dpi))
}

// placeholderAxis spans 1..n with 4% padding and ticks on even numbers.
func placeholderAxis(n int) Axis {
	lo, hi := 1.0, float64(n)
	if hi <= lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.04
	a := Axis{Min: lo - pad, Max: hi + pad}
	step := 2
	if n > 20 {
		step = int(NiceAxis(lo, hi, 6).Step)
	}
	a.Step = float64(step)
	for v := step; v <= n; v += step {
		a.Ticks = append(a.Ticks, float64(v))
	}
	return a
}
