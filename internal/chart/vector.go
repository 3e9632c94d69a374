package chart

import (
	"bytes"
	"errors"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// vectorDPI is the CSS pixel density used for SVG sizes.
const vectorDPI = 96.0

// vectorDevice draws SVG through go-chart. go-chart bar charts do not stack,
// so rows sharing a category are drawn as one bar of their sum.
type vectorDevice struct {
	cfg DeviceConfig
	svg *bytes.Buffer
}

func newVectorDevice(cfg DeviceConfig) *vectorDevice {
	return &vectorDevice{cfg: cfg}
}

func toDrawingColor(c interface{ RGBA() (r, g, b, a uint32) }) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (d *vectorDevice) DrawBarChart(spec BarChartSpec, layout BarLayout) error {
	if len(layout.Categories) == 0 {
		return errors.New("svg bar chart needs at least one row")
	}

	fill := toDrawingColor(spec.Fill)
	bars := make([]gochart.Value, len(layout.Categories))
	for i, cat := range layout.Categories {
		bars[i] = gochart.Value{
			Label: cat,
			Value: layout.Totals[i],
			Style: gochart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
	}

	slot := float64(d.cfg.Width-120) / float64(len(bars))
	barWidth := int(math.Max(1, slot*barWidthFraction))
	spacing := int(math.Max(1, slot-float64(barWidth)))

	graph := gochart.BarChart{
		Title:  spec.Title,
		Width:  d.cfg.Width,
		Height: d.cfg.Height,
		DPI:    vectorDPI,
		Background: gochart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 30},
		},
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: layout.Axis.Min, Max: layout.Axis.Max},
		},
		Bars:     bars,
		Elements: []gochart.Renderable{d.xAxisTitle(spec.XLabel)},
	}
	return d.draw(graph.Render)
}

// xAxisTitle centers text along the bottom edge; BarChart has no x axis name.
func (d *vectorDevice) xAxisTitle(text string) gochart.Renderable {
	width, height := d.cfg.Width, d.cfg.Height
	return func(r gochart.Renderer, _ gochart.Box, defaults gochart.Style) {
		style := gochart.Style{
			Font:      defaults.Font,
			FontSize:  axisTitleFontSize,
			FontColor: toDrawingColor(textColor),
		}
		if style.Font == nil {
			f, err := gochart.GetDefaultFont()
			if err != nil {
				return
			}
			style.Font = f
		}
		r.SetFont(style.Font)
		r.SetFontSize(style.FontSize)
		box := r.MeasureText(text)
		gochart.Draw.Text(r, text, (width-box.Width())/2, height-8, style)
	}
}

func (d *vectorDevice) DrawPlaceholder(spec PlaceholderSpec) error {
	xs := make([]float64, spec.N)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	axis := placeholderAxis(spec.N)
	dark := toDrawingColor(frameColor)

	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  d.cfg.Width,
		Height: d.cfg.Height,
		DPI:    vectorDPI,
		Background: gochart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  spec.XLabel,
			Range: &gochart.ContinuousRange{Min: axis.Min, Max: axis.Max},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: axis.Min, Max: axis.Max},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Style: gochart.Style{
					StrokeColor: drawing.ColorTransparent,
					DotColor:    dark,
					DotWidth:    pointRadius,
				},
				XValues: xs,
				YValues: xs,
			},
		},
	}
	return d.draw(graph.Render)
}

// draw renders into memory so backend failures surface at draw time, not encode time.
func (d *vectorDevice) draw(render func(gochart.RendererProvider, io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(gochart.SVG, &buf); err != nil {
		return err
	}
	d.svg = &buf
	return nil
}

func (d *vectorDevice) Encode(w io.Writer) error {
	if d.svg == nil {
		return errors.New("nothing drawn")
	}
	_, err := w.Write(d.svg.Bytes())
	return err
}

func (d *vectorDevice) Close() error {
	d.svg = nil
	return nil
}
