package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/sheetcheck/internal/dataset"
)

// resetFlags clears values and Changed state that persist between Execute calls.
func resetFlags() {
	for _, name := range []string{"basic", "method", "threshold", "format", "output", "plot", "show-plot"} {
		if fl := checkCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	}
	for _, name := range []string{"config", "debug", "log-format"} {
		if fl := rootCmd.PersistentFlags().Lookup(name); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	}
}

// runCmd is a helper to execute the root command with args and capture stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeOrders(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"id", "customer", "amount", "note"},
		{1, "Alice", 10, nil},
		{2, " bob", 12, nil},
		{3, "Carol", 11, "#N/A"},
		{3, "Carol", 11, "#N/A"},
		{4, "dave", 13, nil},
		{5, "Eve", 9, nil},
		{6, "frank", 100, nil},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	p := filepath.Join(dir, "orders.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return p
}

func TestCLI_CheckTextReport(t *testing.T) {
	home := isolateHome(t)
	p := writeOrders(t, home)

	out := mustRun(t, "check", p)
	for _, want := range []string{
		"=== Excel Data Quality Report ===",
		"== Basic Checks ==",
		"== Outliers ==",
		"== Format Consistency ==",
		"== Formula Errors ==",
		"== Cleaning Recommendations ==",
		"Remove 1 duplicate rows",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Consider removing column 'note' (71.43% missing values)") {
		t.Fatalf("expected removal recommendation for sparse column, got:\n%s", out)
	}
}

func TestCLI_CheckJSONIQR(t *testing.T) {
	home := isolateHome(t)
	p := writeOrders(t, home)

	out := mustRun(t, "check", p, "--format", "json", "--method", "iqr")
	var got map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 top-level keys, got %d", len(got))
	}
	var outliers map[string][]float64
	if err := json.Unmarshal(got["outliers"], &outliers); err != nil {
		t.Fatalf("decode outliers: %v", err)
	}
	if len(outliers["amount"]) != 1 || outliers["amount"][0] != 100 {
		t.Fatalf("expected amount outlier 100, got %v", outliers["amount"])
	}
	var fe map[string][]string
	if err := json.Unmarshal(got["formula_errors"], &fe); err != nil {
		t.Fatalf("decode formula_errors: %v", err)
	}
	if len(fe["note"]) != 1 || fe["note"][0] != "#N/A" {
		t.Fatalf("expected #N/A in note, got %v", fe)
	}
}

func TestCLI_CheckBasicWritesOutputAndPlot(t *testing.T) {
	home := isolateHome(t)
	p := writeOrders(t, home)
	outPath := filepath.Join(home, "out", "report.md")
	plotPath := filepath.Join(home, "out", "panels.txt")

	out := mustRun(t, "check", p, "--basic", "--format", "markdown", "--output", outPath, "--plot", plotPath)
	if !strings.Contains(out, "✓ Wrote markdown report to") {
		t.Fatalf("expected confirmation, got:\n%s", out)
	}
	md, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(md), "[NULL VALUES]") || strings.Contains(string(md), "[OUTLIERS]") {
		t.Fatalf("unexpected basic markdown:\n%s", md)
	}
	panels, err := os.ReadFile(plotPath)
	if err != nil {
		t.Fatalf("read plot: %v", err)
	}
	if !strings.Contains(string(panels), "[DISTRIBUTION] amount") {
		t.Fatalf("expected amount distribution panel, got:\n%s", panels)
	}
}

func TestCLI_CheckMissingFile(t *testing.T) {
	home := isolateHome(t)
	_, err := runCmd(t, "check", filepath.Join(home, "nope.xlsx"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
	var nf *dataset.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *dataset.NotFoundError, got %T", err)
	}
}

func TestCLI_CheckRejectsBadFlags(t *testing.T) {
	home := isolateHome(t)
	p := writeOrders(t, home)
	if _, err := runCmd(t, "check", p, "--method", "mad"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
	if _, err := runCmd(t, "check", p, "--format", "pdf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := runCmd(t, "check", p, "--threshold", "0"); err == nil {
		t.Fatalf("expected error for non-positive threshold")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, "sheetcheck.toml")

	mustRun(t, "--config", cfgPath, "config", "set", "outlier_method", "iqr")
	out := mustRun(t, "--config", cfgPath, "config", "show")
	if !strings.Contains(out, "outlier_method: iqr") {
		t.Fatalf("expected saved method, got:\n%s", out)
	}
	if _, err := runCmd(t, "--config", cfgPath, "config", "set", "plot_bins", "-3"); err == nil {
		t.Fatalf("expected validation error")
	}

	// config default drives check when no flag is given
	p := writeOrders(t, home)
	js := mustRun(t, "--config", cfgPath, "check", p, "--format", "json")
	var res struct {
		Outliers map[string][]float64 `json:"outliers"`
	}
	if err := json.Unmarshal([]byte(js), &res); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	// 100 is only flagged by iqr; zscore stays under 3
	if len(res.Outliers["amount"]) != 1 {
		t.Fatalf("expected iqr from config to flag one amount, got %v", res.Outliers["amount"])
	}
}

func TestCLI_Version(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.HasPrefix(out, "sheetcheck ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}
