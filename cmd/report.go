package cmd

import (
	"fmt"
	"io"

	"codesync/core/reconcile"

	"github.com/olekukonko/tablewriter"
)

// printSummary writes the summary as text, or with problems as a table.
func printSummary(w io.Writer, s *reconcile.Summary, asTable bool) error {
	if !asTable || !s.HasProblems() {
		_, err := fmt.Fprintln(w, s.Format(reconcile.MaxDisplayedProblems))
		return err
	}

	counts := *s
	counts.Problems = nil
	if _, err := fmt.Fprintf(w, "%s\n\nProblems (%d):\n", counts.Format(0), len(s.Problems)); err != nil {
		return err
	}

	table := tablewriter.NewTable(w)
	table.Header("Element", "Reason")
	shown, more := s.DisplayedProblems(reconcile.MaxDisplayedProblems)
	for _, p := range shown {
		if err := table.Append(p.Identifier, p.Reason); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if more > 0 {
		_, err := fmt.Fprintf(w, "...and %d more\n", more)
		return err
	}
	return nil
}
