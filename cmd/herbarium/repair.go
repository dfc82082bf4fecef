package main

import (
	"fmt"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/verify"
)

// Run executes the repair command: a verification pass followed by
// re-fetches of every translation with missing fields.
func (c *RepairCmd) Run(deps *Dependencies) error {
	verifier := &verify.Verifier{Records: deps.Records}
	report, err := verifier.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}

	if report.TotalInconsistencies == 0 {
		fmt.Fprintln(deps.Stdout, "nothing to repair")
		return nil
	}

	repairer := &verify.Repairer{
		Records:   deps.Records,
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Site:      deps.Site,
		Limiter:   deps.Limiter,
		DryRun:    c.DryRun,
		Log: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		},
	}

	result, err := repairer.Run(deps.Ctx, report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "checked %d, repaired %d, unchanged %d, failed %d, still missing %d fields\n",
		result.Checked, result.Repaired, result.Unchanged, result.Failed, result.StillMissing)
	return nil
}
