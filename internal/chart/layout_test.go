package chart

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestBuildBarLayout_StacksByCategory(t *testing.T) {
	l, err := BuildBarLayout(
		[]string{"B", "A", "B", "A"},
		[]float64{2, 5, 3, -1},
	)
	if err != nil {
		t.Fatalf("BuildBarLayout failed: %v", err)
	}
	if !reflect.DeepEqual(l.Categories, []string{"B", "A"}) {
		t.Fatalf("categories = %v", l.Categories)
	}
	want := []Segment{
		{Slot: 0, Bottom: 0, Top: 2},
		{Slot: 1, Bottom: 0, Top: 5},
		{Slot: 0, Bottom: 2, Top: 5},
		{Slot: 1, Bottom: -1, Top: 0},
	}
	if !reflect.DeepEqual(l.Segments, want) {
		t.Fatalf("segments = %+v", l.Segments)
	}
	if !reflect.DeepEqual(l.Totals, []float64{5, 4}) {
		t.Fatalf("totals = %v", l.Totals)
	}
	if l.Axis.Min > -1 || l.Axis.Max < 5 {
		t.Fatalf("axis %v..%v does not cover data", l.Axis.Min, l.Axis.Max)
	}
}

func TestBuildBarLayout_RejectsNonFinite(t *testing.T) {
	if _, err := BuildBarLayout([]string{"A"}, []float64{math.NaN()}); err == nil {
		t.Fatalf("expected error for NaN")
	}
	if _, err := BuildBarLayout([]string{"A", "B"}, []float64{1}); err == nil {
		t.Fatalf("expected error for length mismatch")
	}
}

func TestBuildBarLayout_RejectsOverflowingRange(t *testing.T) {
	cases := []struct {
		name   string
		cats   []string
		values []float64
	}{
		{"span overflows", []string{"A", "B"}, []float64{1e308, -1e308}},
		{"stack overflows", []string{"A", "A"}, []float64{1e308, 1e308}},
		{"nice max overflows", []string{"A"}, []float64{1.7e308}},
	}
	for _, tc := range cases {
		if _, err := BuildBarLayout(tc.cats, tc.values); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	l, err := BuildBarLayout([]string{"A"}, []float64{1e300})
	if err != nil {
		t.Fatalf("large finite range rejected: %v", err)
	}
	if len(l.Axis.Ticks) == 0 {
		t.Fatalf("no ticks for 1e300")
	}
}

func TestNiceAxis(t *testing.T) {
	a := NiceAxis(0, 20, 5)
	if !reflect.DeepEqual(a.Ticks, []float64{0, 5, 10, 15, 20}) {
		t.Fatalf("ticks = %v", a.Ticks)
	}
	if !reflect.DeepEqual(a.Labels(), []string{"0", "5", "10", "15", "20"}) {
		t.Fatalf("labels = %v", a.Labels())
	}

	a = NiceAxis(0, 0, 5)
	if a.Min != 0 || a.Max != 1 {
		t.Fatalf("empty range axis = %v..%v", a.Min, a.Max)
	}
	if got := a.Labels(); got[1] != "0.2" {
		t.Fatalf("labels = %v", got)
	}

	a = NiceAxis(-7, 3, 5)
	if a.Min > -7 || a.Max < 3 {
		t.Fatalf("axis %v..%v does not cover -7..3", a.Min, a.Max)
	}
	if a.Scale(a.Min) != 0 || a.Scale(a.Max) != 1 {
		t.Fatalf("scale endpoints wrong")
	}
}

func TestPlaceholderAxis(t *testing.T) {
	a := placeholderAxis(10)
	if !reflect.DeepEqual(a.Ticks, []float64{2, 4, 6, 8, 10}) {
		t.Fatalf("ticks = %v", a.Ticks)
	}
	if a.Min >= 1 || a.Max <= 10 {
		t.Fatalf("range %v..%v must pad 1..10", a.Min, a.Max)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.png":       FormatPNG,
		"dir/b.JPG":   FormatJPEG,
		"c.tif":       FormatTIFF,
		"d.final.svg": FormatSVG,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Fatalf("%s: got %q, %v", path, got, err)
		}
	}

	_, err := FormatFromPath("noext")
	var ue *UnsupportedFormatError
	if !errors.As(err, &ue) || ue.Ext != "" {
		t.Fatalf("expected UnsupportedFormatError with empty ext, got %v", err)
	}
}
