/*
PURPOSE:
  ei-reports turns an emotional-intelligence assessment workbook (.xlsx)
  into one PDF report per assessed person, with component, wellbeing and
  score charts, plus a dataset preview image and a run manifest.

REQUIREMENTS:
  User-specified:
  - `ei-reports generate data.xlsx out/` is the everyday invocation.
  - The exit status reflects whether the batch ran, not whether every person succeeded.

  Implementation-discovered:
  - Unreadable workbooks and invalid configuration are the only fatal cases;
    cli.Execute returns them and everything else is reported per person.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute() (generate, preview, sample subcommands)

ERROR HANDLING:
  - Exit code 1 with "Error: ..." on stderr for load and config errors.
  - Failed reports are listed in report_manifest.csv/.jsonl and on stdout.

USAGE:
  ei-reports sample write demo.xlsx -n 20
  ei-reports preview demo.xlsx --out previews/
  ei-reports generate demo.xlsx reports/

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/runner.go
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/ei-reports/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
