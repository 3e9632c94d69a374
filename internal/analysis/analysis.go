// Package analysis computes a descriptive summary of a loaded table.
package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"csvchart/internal/table"
)

// Column kinds, named after the dtypes a dataframe would infer.
const (
	KindInt    = "int64"
	KindFloat  = "float64"
	KindBool   = "bool"
	KindObject = "object"
)

type ColumnInfo struct {
	Name       string
	Kind       string
	Missing    int
	MissingPct float64
}

// NumericStats describes one numeric column. Std is the sample standard
// deviation and is NaN with fewer than two values. All but Mode are rounded
// to two decimals.
type NumericStats struct {
	Name   string
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
	Mode   float64
}

type Summary struct {
	TotalRows    int
	TotalColumns int
	Columns      []ColumnInfo
	Numeric      []NumericStats
	Preview      Preview
}

// Preview is the first rows of the table, printed ahead of the summary.
type Preview struct {
	Columns []string
	Rows    [][]string
}

// Head takes a preview of the first n rows. n <= 0 gives an empty preview.
func Head(tbl *table.Table, n int) Preview {
	if n <= 0 {
		return Preview{}
	}
	return Preview{Columns: tbl.Columns(), Rows: tbl.Head(n)}
}

// Analyze summarizes tbl. Missing cells are excluded from kind inference and statistics.
func Analyze(tbl *table.Table) Summary {
	s := Summary{
		TotalRows:    tbl.NumRows(),
		TotalColumns: tbl.NumColumns(),
	}
	for _, name := range tbl.Columns() {
		cells, _ := tbl.Column(name)

		present := make([]string, 0, len(cells))
		for _, c := range cells {
			if !table.IsMissing(c) {
				present = append(present, strings.TrimSpace(c))
			}
		}
		missing := len(cells) - len(present)

		info := ColumnInfo{
			Name:    name,
			Kind:    inferKind(present, missing > 0),
			Missing: missing,
		}
		if len(cells) > 0 {
			info.MissingPct = round2(float64(missing) / float64(len(cells)) * 100)
		}
		s.Columns = append(s.Columns, info)

		if info.Kind == KindInt || info.Kind == KindFloat {
			s.Numeric = append(s.Numeric, numericStats(name, present))
		}
	}
	return s
}

// inferKind follows dataframe rules: integers with gaps widen to float,
// booleans with gaps become object, an all-missing column is float.
func inferKind(present []string, hasMissing bool) string {
	if len(present) == 0 {
		if hasMissing {
			return KindFloat
		}
		return KindObject
	}
	isInt, isFloat, isBool := true, true, true
	for _, v := range present {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if v != "True" && v != "False" && v != "true" && v != "false" && v != "TRUE" && v != "FALSE" {
			isBool = false
		}
	}
	switch {
	case isInt && !hasMissing:
		return KindInt
	case isInt || isFloat:
		return KindFloat
	case isBool && !hasMissing:
		return KindBool
	default:
		return KindObject
	}
}

func numericStats(name string, present []string) NumericStats {
	values := make([]float64, 0, len(present))
	for _, v := range present {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			values = append(values, f)
		}
	}
	sort.Float64s(values)

	st := NumericStats{Name: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		st.Mean, st.Median, st.Std, st.Min, st.Max, st.Mode = nan, nan, nan, nan, nan, nan
		return st
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	st.Mean = round2(mean)
	st.Median = round2(median(values))
	st.Min = round2(values[0])
	st.Max = round2(values[len(values)-1])
	st.Mode = mode(values)
	st.Std = math.NaN()
	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			sq += (v - mean) * (v - mean)
		}
		st.Std = round2(math.Sqrt(sq / float64(len(values)-1)))
	}
	return st
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mode returns the smallest of the most frequent values.
func mode(sorted []float64) float64 {
	best, bestCount := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = sorted[i], j-i
		}
		i = j
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Write prints the summary as aligned text tables.
func (s Summary) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(s.Preview.Columns) > 0 {
		fmt.Fprintln(tw, "Data Preview")
		fmt.Fprintln(tw, strings.Join(s.Preview.Columns, "\t"))
		for _, row := range s.Preview.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "Total Rows:\t%d\n", s.TotalRows)
	fmt.Fprintf(tw, "Total Columns:\t%d\n\n", s.TotalColumns)

	fmt.Fprintln(tw, "Column\tData Type\tMissing Values\tMissing %")
	for _, c := range s.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Name, c.Kind, c.Missing, formatNum(c.MissingPct))
	}

	if len(s.Numeric) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Column\tcount\tmean\tmedian\tstd\tmin\tmax\tmode")
		for _, n := range s.Numeric {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				n.Name, n.Count,
				formatNum(n.Mean), formatNum(n.Median), formatNum(n.Std),
				formatNum(n.Min), formatNum(n.Max), formatNum(n.Mode))
		}
	}
	return tw.Flush()
}

func formatNum(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
