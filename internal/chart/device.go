package chart

import "io"

// Device is the drawing context for one render. It is created fresh per
// call, drawn on once, encoded, and closed on every path.
type Device interface {
	DrawBarChart(spec BarChartSpec, layout BarLayout) error
	DrawPlaceholder(spec PlaceholderSpec) error
	Encode(w io.Writer) error
	Close() error
}

// DeviceConfig sizes a device. Scale is pixels per typographic point.
type DeviceConfig struct {
	Format Format
	Width  int
	Height int
	Scale  float64
}

// NewDevice returns the backend for cfg.Format: go-chart for vector
// output, gg for everything else.
func NewDevice(cfg DeviceConfig) Device {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Format.Vector() {
		return newVectorDevice(cfg)
	}
	return newRasterDevice(cfg)
}
