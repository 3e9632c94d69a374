package main

import (
	"fmt"
	"os"
	"path/filepath"

	"csvchart/internal/chart"
	"csvchart/internal/table"
)

// go run etc/tools/test_chart.go
// in etc/charts/sample_chart.png and etc/charts/sample_placeholder.png
func main() {
	fmt.Println("Generating test charts...")

	dir := filepath.Join("etc", "charts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	samples := []struct {
		name    string
		columns []string
		rows    [][]string
	}{
		{"sample_chart.png", []string{"category", "value"}, [][]string{{"A", "10"}, {"B", "20"}, {"C", "-5"}, {"A", "4"}}},
		{"sample_chart.svg", []string{"category", "value"}, [][]string{{"A", "10"}, {"B", "20"}, {"C", "15"}}},
		{"sample_placeholder.png", []string{"foo", "bar"}, [][]string{{"1", "2"}}},
	}

	for _, s := range samples {
		tbl, err := table.New(s.columns, s.rows)
		if err != nil {
			fmt.Printf("Error building table for %s: %v\n", s.name, err)
			os.Exit(1)
		}
		out := filepath.Join(dir, s.name)
		res, err := chart.Render(tbl, out, chart.Options{DPI: 100})
		if err != nil {
			fmt.Printf("Error generating %s: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Printf("Chart generated successfully: %s (%s, %dx%d)\n", out, res.Branch, res.Width, res.Height)
	}
	fmt.Println("Open the files to see the result!")
}
