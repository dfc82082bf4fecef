package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/verify"
	"golang.org/x/term"
)

// reportsDir is where --report writes its output files.
const reportsDir = "reports"

// Run executes the verify command.
func (c *VerifyCmd) Run(deps *Dependencies) error {
	verifier := &verify.Verifier{Records: deps.Records}
	report, err := verifier.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", herbarium.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if err := verify.FormatJSON(deps.Stdout, report); err != nil {
			return err
		}
	} else {
		verify.FormatConsole(deps.Stdout, report, !c.NoColor && isTerminal(deps.Stdout))
	}

	if c.Report {
		if err := writeReportFiles(report); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing report files: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "wrote %s and %s\n",
			filepath.Join(reportsDir, "verify-report.md"),
			filepath.Join(reportsDir, "verify-report.json"))
	}

	if c.Strict && report.IncompleteEntities > 0 {
		return fmt.Errorf("%d of %d entities incomplete", report.IncompleteEntities, report.TotalEntities)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal. Buffers and
// pipes get plain output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeReportFiles(report *herbarium.StoreReport) error {
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return err
	}

	md, err := os.Create(filepath.Join(reportsDir, "verify-report.md"))
	if err != nil {
		return err
	}
	verify.FormatMarkdown(md, report)
	if err := md.Close(); err != nil {
		return err
	}

	js, err := os.Create(filepath.Join(reportsDir, "verify-report.json"))
	if err != nil {
		return err
	}
	if err := verify.FormatJSON(js, report); err != nil {
		js.Close()
		return err
	}
	return js.Close()
}
