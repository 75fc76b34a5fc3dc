package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/sheetcheck/internal/quality"
	"github.com/KaramelBytes/sheetcheck/internal/report"
	"github.com/KaramelBytes/sheetcheck/internal/utils"
	"github.com/KaramelBytes/sheetcheck/internal/visualize"
)

var (
	chkBasic      bool
	chkMethod     string
	chkThreshold  float64
	chkFormat     string
	chkOutputPath string
	chkPlotPath   string
	chkShowPlot   bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run data-quality checks on the first sheet of a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		opt := quality.DefaultOptions()
		method := cfg.OutlierMethod
		if cmd.Flags().Changed("method") {
			method = chkMethod
		}
		m, err := quality.ParseMethod(method)
		if err != nil {
			return err
		}
		opt.Method = m
		opt.ZThreshold = cfg.ZScoreThreshold
		if cmd.Flags().Changed("threshold") {
			if chkThreshold <= 0 {
				return fmt.Errorf("invalid --threshold: %v (must be > 0)", chkThreshold)
			}
			opt.ZThreshold = chkThreshold
		}

		formatName := cfg.OutputFormat
		if cmd.Flags().Changed("format") {
			formatName = chkFormat
		}
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		checker, err := quality.Open(path, opt, logger)
		if err != nil {
			return err
		}
		ds := checker.Dataset()
		name := filepath.Base(path)

		var rep *report.Report
		if chkBasic {
			rep = report.New(name, ds.Rows(), checker.RunBasic())
		} else {
			res, err := checker.RunAdvanced()
			if err != nil {
				return err
			}
			rep = report.NewAdvanced(name, ds.Rows(), opt.Method, res)
		}

		var buf bytes.Buffer
		if err := rep.Write(&buf, format); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if chkOutputPath != "" {
			if err := utils.SafeWriteFile(chkOutputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote %s report to %s\n", format, chkOutputPath)
		} else {
			if _, err := out.Write(buf.Bytes()); err != nil {
				return err
			}
		}

		vopt := visualize.Options{Width: cfg.PlotWidth, Height: cfg.PlotHeight, Bins: cfg.PlotBins}
		if chkPlotPath != "" {
			if err := visualize.WriteFile(chkPlotPath, ds, rep.Basic.ColumnTypes, vopt); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote plots to %s\n", chkPlotPath)
		}
		if chkShowPlot {
			fmt.Fprintln(out)
			if err := visualize.Render(out, ds, rep.Basic.ColumnTypes, vopt); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&chkBasic, "basic", false, "run only the basic checks (nulls, duplicates, types)")
	checkCmd.Flags().StringVar(&chkMethod, "method", "zscore", "outlier method: zscore|iqr (overrides config)")
	checkCmd.Flags().Float64Var(&chkThreshold, "threshold", quality.DefaultZThreshold, "z-score threshold for the zscore method (overrides config)")
	checkCmd.Flags().StringVarP(&chkFormat, "format", "f", "text", "output format: text|json|markdown (overrides config)")
	checkCmd.Flags().StringVarP(&chkOutputPath, "output", "o", "", "optional path to write the report")
	checkCmd.Flags().StringVar(&chkPlotPath, "plot", "", "optional path to write missing-value and distribution panels")
	checkCmd.Flags().BoolVar(&chkShowPlot, "show-plot", false, "print the panels after the report")
}
