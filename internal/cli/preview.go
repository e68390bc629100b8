/*
PURPOSE:
  Defines the 'preview' subcommand.
  Quick look at a workbook before generating reports.

REQUIREMENTS:
  User-specified:
  - Text summary of the dataset plus a multi-panel preview image.

  Implementation-discovered:
  - Useful validation step before a full run: shows which columns were found.
  - Absent columns only blank their statistic or panel.

ARCHITECTURE INTEGRATION:
  - Calls: internal/dataset.Load, internal/stats.NewOverview, internal/chart.Preview

ERROR HANDLING:
  - Load errors are returned; degraded statistics are logged as warnings.

IMPLEMENTATION RULES:
  - Summary goes to stdout, logs to stderr.

USAGE:
  ei-reports preview team.xlsx --out preview.png

RELATED FILES:
  - internal/stats/overview.go
  - internal/chart/preview.go
*/

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/ei-reports/internal/chart"
	"github.com/daryltucker/ei-reports/internal/dataset"
	"github.com/daryltucker/ei-reports/internal/output"
	"github.com/daryltucker/ei-reports/internal/stats"
	"github.com/spf13/cobra"
)

func newPreviewCmd(root *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "preview [input]",
		Short: "Summarise a workbook and render data_preview.png",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if len(args) > 0 {
				cfg.InputFile = args[0]
			}
			if out != "" {
				cfg.PreviewFile = out
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ds, err := dataset.Load(cfg.InputFile, dataset.WithSheet(cfg.Sheet))
			if err != nil {
				return err
			}
			ov, err := stats.NewOverview(ds)
			if err != nil {
				return err
			}
			if err := ov.Err(); err != nil {
				output.Logger.Warn("Preview degraded", "error", err)
			}

			if err := stats.WriteSummary(cmd.OutOrStdout(), ov); err != nil {
				return err
			}

			if dir := filepath.Dir(cfg.PreviewFile); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create preview directory %s: %w", dir, err)
				}
			}
			if err := chart.SavePNG(cfg.PreviewFile, chart.Preview(ds, ov, chart.DefaultStyle())); err != nil {
				return fmt.Errorf("failed to save preview: %w", err)
			}
			output.Logger.Info("Preview saved", "path", cfg.PreviewFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Preview image path (default data_preview.png)")
	return cmd
}
