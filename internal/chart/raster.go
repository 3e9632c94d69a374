package chart

import (
	"fmt"
	"image/color"
	"image/gif"
	"image/jpeg"
	"io"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/tiff"
)

// Sizes are in points and multiplied by the device scale.
const (
	titleFontSize     = 13.2
	axisTitleFontSize = 11.0
	tickFontSize      = 8.8

	outerMargin = 5.5
	textGap     = 2.75
	tickLength  = 2.75
	gridWidth   = 0.5
	pointRadius = 3.0

	barWidthFraction = 0.9
	discreteExpand   = 0.6
)

var (
	textColor  = color.Black
	tickColor  = color.RGBA{R: 77, G: 77, B: 77, A: 255}
	gridColor  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	frameColor = color.Black
)

type rasterDevice struct {
	dc     *gg.Context
	format Format
	scale  float64
	faces  map[float64]font.Face
}

func newRasterDevice(cfg DeviceConfig) *rasterDevice {
	dc := gg.NewContext(cfg.Width, cfg.Height)
	dc.SetColor(color.White)
	dc.Clear()
	return &rasterDevice{
		dc:     dc,
		format: cfg.Format,
		scale:  cfg.Scale,
		faces:  map[float64]font.Face{},
	}
}

func (d *rasterDevice) pt(v float64) float64 { return v * d.scale }

func (d *rasterDevice) setFont(sizePt float64) error {
	face, ok := d.faces[sizePt]
	if !ok {
		var err error
		face, err = newFace(d.pt(sizePt))
		if err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		d.faces[sizePt] = face
	}
	d.dc.SetFontFace(face)
	return nil
}

// panel is the plotting rectangle inside the titles and tick labels.
type panel struct {
	left, top, right, bottom float64
}

func (p panel) x(frac float64) float64 { return p.left + frac*(p.right-p.left) }
func (p panel) y(frac float64) float64 { return p.bottom - frac*(p.bottom-p.top) }

func (d *rasterDevice) measurePanel(yLabels []string) (panel, error) {
	w, h := float64(d.dc.Width()), float64(d.dc.Height())

	if err := d.setFont(tickFontSize); err != nil {
		return panel{}, err
	}
	tickW := 0.0
	for _, s := range yLabels {
		if tw, _ := d.dc.MeasureString(s); tw > tickW {
			tickW = tw
		}
	}
	tickH := d.dc.FontHeight()

	if err := d.setFont(axisTitleFontSize); err != nil {
		return panel{}, err
	}
	axisH := d.dc.FontHeight()

	if err := d.setFont(titleFontSize); err != nil {
		return panel{}, err
	}
	titleH := d.dc.FontHeight()

	margin, gap, tick := d.pt(outerMargin), d.pt(textGap), d.pt(tickLength)
	p := panel{
		left:   margin + axisH + 2*gap + tickW + tick,
		top:    margin + titleH + 2*gap,
		right:  w - margin,
		bottom: h - margin - axisH - 2*gap - tickH - tick,
	}
	if p.right-p.left < 1 || p.bottom-p.top < 1 {
		return panel{}, fmt.Errorf("image %dx%d is too small to hold the plot", d.dc.Width(), d.dc.Height())
	}
	return p, nil
}

// drawTitles places the title above the panel and the axis titles beside it.
func (d *rasterDevice) drawTitles(p panel, title, xLabel, yLabel string, centerTitle bool) error {
	margin := d.pt(outerMargin)
	d.dc.SetColor(textColor)

	if err := d.setFont(titleFontSize); err != nil {
		return err
	}
	if centerTitle {
		d.dc.DrawStringAnchored(title, float64(d.dc.Width())/2, margin, 0.5, 1)
	} else {
		d.dc.DrawStringAnchored(title, p.left, margin, 0, 1)
	}

	if err := d.setFont(axisTitleFontSize); err != nil {
		return err
	}
	axisH := d.dc.FontHeight()
	d.dc.DrawStringAnchored(xLabel, (p.left+p.right)/2, float64(d.dc.Height())-margin, 0.5, 0)

	cx, cy := margin+axisH/2, (p.top+p.bottom)/2
	d.dc.Push()
	d.dc.RotateAbout(-math.Pi/2, cx, cy)
	d.dc.DrawStringAnchored(yLabel, cx, cy, 0.5, 0.5)
	d.dc.Pop()
	return nil
}

// drawYAxis writes tick labels left of the panel and, with grid set, a faint
// line across the panel at every tick.
func (d *rasterDevice) drawYAxis(p panel, axis Axis, grid bool) error {
	labels := axis.Labels()
	if grid {
		d.dc.SetColor(gridColor)
		d.dc.SetLineWidth(d.pt(gridWidth))
		for _, t := range axis.Ticks {
			y := p.y(axis.Scale(t))
			d.dc.DrawLine(p.left, y, p.right, y)
			d.dc.Stroke()
		}
	}

	if err := d.setFont(tickFontSize); err != nil {
		return err
	}
	d.dc.SetColor(tickColor)
	for i, t := range axis.Ticks {
		y := p.y(axis.Scale(t))
		d.dc.DrawStringAnchored(labels[i], p.left-d.pt(tickLength+textGap), y, 1, 0.35)
	}
	return nil
}

func (d *rasterDevice) DrawBarChart(spec BarChartSpec, layout BarLayout) error {
	p, err := d.measurePanel(layout.Axis.Labels())
	if err != nil {
		return err
	}
	if err := d.drawYAxis(p, layout.Axis, true); err != nil {
		return err
	}

	n := float64(len(layout.Categories))
	lo, hi := 1-discreteExpand, n+discreteExpand
	xFrac := func(x float64) float64 { return (x - lo) / (hi - lo) }

	d.dc.SetColor(spec.Fill)
	for _, seg := range layout.Segments {
		center := float64(seg.Slot + 1)
		x0 := p.x(xFrac(center - barWidthFraction/2))
		x1 := p.x(xFrac(center + barWidthFraction/2))
		yTop := p.y(layout.Axis.Scale(seg.Top))
		yBottom := p.y(layout.Axis.Scale(seg.Bottom))
		d.dc.DrawRectangle(x0, yTop, x1-x0, yBottom-yTop)
		d.dc.Fill()
	}

	if err := d.setFont(tickFontSize); err != nil {
		return err
	}
	d.dc.SetColor(tickColor)
	for i, cat := range layout.Categories {
		x := p.x(xFrac(float64(i + 1)))
		d.dc.DrawStringAnchored(cat, x, p.bottom+d.pt(tickLength), 0.5, 1)
	}

	return d.drawTitles(p, spec.Title, spec.XLabel, spec.YLabel, false)
}

func (d *rasterDevice) DrawPlaceholder(spec PlaceholderSpec) error {
	axis := placeholderAxis(spec.N)
	p, err := d.measurePanel(axis.Labels())
	if err != nil {
		return err
	}

	d.dc.SetColor(frameColor)
	d.dc.SetLineWidth(d.pt(1))
	d.dc.DrawRectangle(p.left, p.top, p.right-p.left, p.bottom-p.top)
	d.dc.Stroke()

	tick := d.pt(tickLength)
	for _, t := range axis.Ticks {
		x, y := p.x(axis.Scale(t)), p.y(axis.Scale(t))
		d.dc.DrawLine(x, p.bottom, x, p.bottom+tick)
		d.dc.DrawLine(p.left-tick, y, p.left, y)
	}
	d.dc.Stroke()

	if err := d.drawYAxis(p, axis, false); err != nil {
		return err
	}
	d.dc.SetColor(tickColor)
	for _, t := range axis.Ticks {
		d.dc.DrawStringAnchored(strconv.Itoa(int(t)), p.x(axis.Scale(t)), p.bottom+tick+d.pt(textGap), 0.5, 1)
	}

	d.dc.SetColor(frameColor)
	d.dc.SetLineWidth(d.pt(1))
	for i := 1; i <= spec.N; i++ {
		v := axis.Scale(float64(i))
		d.dc.DrawCircle(p.x(v), p.y(v), d.pt(pointRadius))
		d.dc.Stroke()
	}

	return d.drawTitles(p, spec.Title, spec.XLabel, spec.YLabel, true)
}

func (d *rasterDevice) Encode(w io.Writer) error {
	img := d.dc.Image()
	switch d.format {
	case FormatPNG:
		return d.dc.EncodePNG(w)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return &UnsupportedFormatError{Ext: "." + string(d.format)}
	}
}

func (d *rasterDevice) Close() error {
	for _, face := range d.faces {
		face.Close()
	}
	d.faces = nil
	d.dc = nil
	return nil
}
