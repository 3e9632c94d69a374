package chart

import (
	"fmt"
	"math"
	"strconv"
)

// Segment is one row's bar. Rows sharing a category stack on the same slot:
// positives upward from zero, negatives downward.
type Segment struct {
	Slot   int
	Bottom float64
	Top    float64
}

// Axis is a numeric range with evenly spaced ticks, both ends on a tick.
type Axis struct {
	Min   float64
	Max   float64
	Step  float64
	Ticks []float64
}

// BarLayout places rows onto category slots in first-appearance order.
type BarLayout struct {
	Categories []string
	Segments   []Segment
	Totals     []float64 // per-category sum
	Axis       Axis
}

// BuildBarLayout stacks values by category. Non-finite values are rejected.
func BuildBarLayout(categories []string, values []float64) (BarLayout, error) {
	if len(categories) != len(values) {
		return BarLayout{}, fmt.Errorf("got %d categories for %d values", len(categories), len(values))
	}

	var (
		l      BarLayout
		slots  = map[string]int{}
		posTop []float64
		negBot []float64
	)
	for i, cat := range categories {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return BarLayout{}, fmt.Errorf("row %d: value %v is not finite", i+1, v)
		}
		slot, ok := slots[cat]
		if !ok {
			slot = len(l.Categories)
			slots[cat] = slot
			l.Categories = append(l.Categories, cat)
			l.Totals = append(l.Totals, 0)
			posTop = append(posTop, 0)
			negBot = append(negBot, 0)
		}

		seg := Segment{Slot: slot}
		if v >= 0 {
			seg.Bottom = posTop[slot]
			seg.Top = seg.Bottom + v
			posTop[slot] = seg.Top
		} else {
			seg.Top = negBot[slot]
			seg.Bottom = seg.Top + v
			negBot[slot] = seg.Bottom
		}
		l.Segments = append(l.Segments, seg)
		l.Totals[slot] += v
	}

	lo, hi := 0.0, 0.0
	for i := range posTop {
		hi = math.Max(hi, posTop[i])
		lo = math.Min(lo, negBot[i])
	}
	if math.IsInf(hi-lo, 0) {
		return BarLayout{}, fmt.Errorf("value range [%g, %g] is too wide to plot", lo, hi)
	}
	l.Axis = NiceAxis(lo, hi, 5)
	if !l.Axis.finite() {
		return BarLayout{}, fmt.Errorf("value range [%g, %g] has no finite axis", lo, hi)
	}
	return l, nil
}

func (a Axis) finite() bool {
	for _, v := range []float64{a.Min, a.Max, a.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return a.Step > 0 && len(a.Ticks) > 0
}

// NiceAxis widens [lo, hi] to round tick boundaries of 1, 2 or 5 times a
// power of ten, aiming for about target ticks. An empty range becomes [lo, lo+1].
func NiceAxis(lo, hi float64, target int) Axis {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		hi = lo + 1
	}
	if target < 2 {
		target = 2
	}
	span := niceNum(hi-lo, false)
	step := niceNum(span/float64(target-1), true)

	a := Axis{
		Min:  math.Floor(lo/step+1e-9) * step,
		Max:  math.Ceil(hi/step-1e-9) * step,
		Step: step,
	}
	n := int(math.Round((a.Max - a.Min) / step))
	for i := 0; i <= n; i++ {
		a.Ticks = append(a.Ticks, a.Min+float64(i)*step)
	}
	return a
}

func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

// Labels formats ticks with just enough decimals for the step.
func (a Axis) Labels() []string {
	decimals := 0
	if a.Step > 0 {
		decimals = int(math.Max(0, -math.Floor(math.Log10(a.Step))))
	}
	out := make([]string, len(a.Ticks))
	for i, t := range a.Ticks {
		if math.Abs(t) < a.Step/1e6 {
			t = 0
		}
		out[i] = strconv.FormatFloat(t, 'f', decimals, 64)
	}
	return out
}

// Scale maps v within the axis onto [0, 1].
func (a Axis) Scale(v float64) float64 {
	return (v - a.Min) / (a.Max - a.Min)
}
