package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"csvchart/internal/chart"
	"csvchart/internal/table"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestRoot_UsageWithTooFewArgs(t *testing.T) {
	dir := isolate(t)

	for _, args := range [][]string{nil, {"in.csv"}} {
		_, err := run(t, args...)
		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("args %v: expected UsageError, got %v", args, err)
		}
		if !strings.HasPrefix(err.Error(), "Usage: ") || !strings.HasSuffix(err.Error(), "<input_file> <output_image>") {
			t.Fatalf("unexpected usage text %q", err.Error())
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("usage error must not write files, found %d", len(entries))
	}
}

func TestRoot_ChartScenario(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.png")
	if err := os.WriteFile(in, []byte("category,value\nA,10\nB,20\n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if _, err := run(t, in, out, "--dpi", "72"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty output, err = %v", err)
	}
}

func TestRoot_FallbackScenario(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.png")
	if err := os.WriteFile(in, []byte("foo,bar\n1,2\n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if _, err := run(t, in, out); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty output, err = %v", err)
	}
}

func TestRoot_LoadAndRenderErrors(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.png"))
	var le *table.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}

	in := filepath.Join(dir, "in.csv")
	os.WriteFile(in, []byte("category,value\nA,x\n"), 0644)
	_, err = run(t, in, filepath.Join(dir, "out.png"))
	var re *chart.RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected RenderError, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "out.png")); !os.IsNotExist(err) {
		t.Fatalf("failed runs must not leave an output file")
	}
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.csv")
	os.WriteFile(in, []byte("foo\n1\n"), 0644)

	if _, err := run(t, in, filepath.Join(dir, "out.png"), "--dpi", "5"); err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestAnalyze_PrintsSummary(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.csv")
	os.WriteFile(in, []byte("category,value\nA,10\nB,20\n"), 0644)

	out, err := run(t, "analyze", in)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"Total Rows:", "Total Columns:", "value", "int64"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyze_PreviewAndReport(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.csv")
	os.WriteFile(in, []byte("category,value\nA,10\nB,20\nC,30\n"), 0644)
	report := filepath.Join(dir, "report.pdf")

	out, err := run(t, "analyze", in, "--head", "2", "--report", report)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.HasPrefix(out, "Data Preview") {
		t.Fatalf("output should start with the preview:\n%s", out)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("report is not a PDF")
	}

	out, err = run(t, "analyze", in, "--head", "0")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if strings.Contains(out, "Data Preview") {
		t.Fatalf("--head 0 should disable the preview:\n%s", out)
	}
}

func TestAnalyze_ReportMissingDir(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "in.csv")
	os.WriteFile(in, []byte("a\n1\n"), 0644)

	if _, err := run(t, "analyze", in, "--report", filepath.Join(dir, "nope", "r.pdf")); err == nil {
		t.Fatalf("expected error for missing report directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "nope")); !os.IsNotExist(err) {
		t.Fatalf("report directory must not be created")
	}
}
