/*
PURPOSE:
  Defines the 'generate' subcommand.
  Produces one PDF report per person in the workbook.

REQUIREMENTS:
  User-specified:
  - Input workbook and output folder are the two primary parameters.
  - Report how many documents were generated.

  Implementation-discovered:
  - Positional arguments keep the two-argument invocation (input, output) working.
  - Per-record failures do not change the exit code; only load/config errors do.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config validation fails or the dataset cannot be loaded.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Validate -> Engine.Run.
  - Flags override positional arguments.

USAGE:
  ei-reports generate data.xlsx reports/

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"

	"github.com/daryltucker/ei-reports/internal/engine"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	input       string
	outputDir   string
	chartDir    string
	sheet       string
	metricsFile string
	noManifest  bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [input [output]]",
		Short: "Generate one PDF report per person",
		Long: `Reads every record of the input workbook and writes <name>_Report.pdf into the
output folder. A record that cannot be rendered is logged and skipped; the
rest of the batch continues. A manifest (report_manifest.csv/.jsonl) lists the
outcome of every record.`,
		Example: `  # Defaults: ei_assessment_data.xlsx -> reports_from_excel/
  ei-reports generate

  # Explicit input and output
  ei-reports generate team.xlsx out/

  # Read a specific sheet and export run metrics
  ei-reports generate -i team.xlsx --sheet Results --metrics-file ei_reports.prom`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg

			if len(args) > 0 {
				cfg.InputFile = args[0]
			}
			if len(args) > 1 {
				cfg.OutputDir = args[1]
			}
			if opts.input != "" {
				cfg.InputFile = opts.input
			}
			if opts.outputDir != "" {
				cfg.OutputDir = opts.outputDir
			}
			if opts.chartDir != "" {
				cfg.ChartDir = opts.chartDir
			}
			if opts.sheet != "" {
				cfg.Sheet = opts.sheet
			}
			if opts.metricsFile != "" {
				cfg.MetricsFile = opts.metricsFile
			}
			if opts.noManifest {
				cfg.Manifest = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			summary, err := engine.Run(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d reports in %s\n", summary.Generated(), cfg.OutputDir)
			for _, o := range summary.Failed() {
				fmt.Fprintf(out, "  failed: %s: %v\n", o.Identity, o.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input workbook (.xlsx)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Output folder for the PDF reports")
	cmd.Flags().StringVar(&opts.chartDir, "chart-dir", "", "Temporary folder for chart images")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus text metrics for the run to this file")
	cmd.Flags().BoolVar(&opts.noManifest, "no-manifest", false, "Do not write report_manifest.csv/.jsonl")
	return cmd
}
