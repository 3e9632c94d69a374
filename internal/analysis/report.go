package analysis

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const reportTitle = "Data Analysis Report"

// WriteReport renders the summary as a PDF: overview, data types, missing
// values and, when there are numeric columns, the numeric summary. Each
// section starts on its own page.
func (s Summary) WriteReport(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, true)
	pdf.SetCreator("csvchart", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	heading := func(text string) {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(text), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
	}
	line := func(format string, args ...any) {
		pdf.CellFormat(0, 10, tr(fmt.Sprintf(format, args...)), "", 1, "", false, 0, "")
	}

	pdf.AddPage()
	heading("Dataset Overview")
	line("Total Rows: %d", s.TotalRows)
	line("Total Columns: %d", s.TotalColumns)

	pdf.AddPage()
	heading("Data Types")
	for _, c := range s.Columns {
		line("%s: %s", c.Name, c.Kind)
	}

	pdf.AddPage()
	heading("Missing Values Analysis")
	for _, c := range s.Columns {
		line("%s: %d (%s%%)", c.Name, c.Missing, formatNum(c.MissingPct))
	}

	if len(s.Numeric) > 0 {
		pdf.AddPage()
		heading("Numerical Summary")
		for _, n := range s.Numeric {
			line("%s:", n.Name)
			line("  count: %d", n.Count)
			line("  mean: %s", formatNum(n.Mean))
			line("  median: %s", formatNum(n.Median))
			line("  std: %s", formatNum(n.Std))
			line("  min: %s", formatNum(n.Min))
			line("  max: %s", formatNum(n.Max))
			line("  mode: %s", formatNum(n.Mode))
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return pdf.Output(w)
}
