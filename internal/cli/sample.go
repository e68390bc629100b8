package cli

import (
	"github.com/daryltucker/ei-reports/internal/dataset"
	"github.com/daryltucker/ei-reports/internal/output"
	"github.com/spf13/cobra"
)

func newSampleCmd(root *rootOptions) *cobra.Command {
	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Manage synthetic assessment data",
	}

	var (
		records int
		seed    int64
	)
	writeCmd := &cobra.Command{
		Use:   "write [path]",
		Short: "Write a synthetic EI assessment workbook (default: the configured input file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.cfg.InputFile
			if len(args) > 0 {
				path = args[0]
			}

			output.Logger.Info("Writing sample workbook", "path", path, "records", records, "seed", seed)
			if err := dataset.WriteSample(path, records, seed); err != nil {
				return err
			}
			output.Logger.Info("Sample Complete", "path", path)
			return nil
		},
	}
	writeCmd.Flags().IntVarP(&records, "records", "n", 20, "Number of people to generate")
	writeCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed; the same seed writes the same data")

	sampleCmd.AddCommand(writeCmd)
	return sampleCmd
}
