package reconcile

import (
	"fmt"
	"strings"
)

// MaxDisplayedProblems is how many problem lines Format shows by default.
const MaxDisplayedProblems = 10

// Summarize aggregates entry results. Problems keep the order of results.
func Summarize(results []EntryResult) *Summary {
	summary := &Summary{
		Visited:  len(results),
		Problems: []Problem{},
	}

	for _, result := range results {
		switch result.Outcome.Kind {
		case OutcomeUpdated:
			summary.Updated++
		case OutcomeAlreadyCorrect:
			summary.AlreadyCorrect++
		case OutcomeNoMatch:
			summary.NoMatch++
		case OutcomeProblem:
			summary.Problems = append(summary.Problems, Problem{
				Identifier: result.Identifier,
				Reason:     result.Outcome.Reason,
			})
		}
	}

	return summary
}

// HasProblems reports whether any entry was classified as a problem.
func (s *Summary) HasProblems() bool {
	return len(s.Problems) > 0
}

// DisplayedProblems returns at most max problems and how many were left out.
// A max of zero or less shows everything.
func (s *Summary) DisplayedProblems(max int) (shown []Problem, more int) {
	if max <= 0 || len(s.Problems) <= max {
		return s.Problems, 0
	}
	return s.Problems[:max], len(s.Problems) - max
}

// Format renders the summary as a human readable report.
func (s *Summary) Format(max int) string {
	var sb strings.Builder

	if s.DryRun {
		sb.WriteString("Dry run, no changes were committed.\n")
	}
	sb.WriteString("Processing complete:\n\n")
	fmt.Fprintf(&sb, "Updated: %d\n", s.Updated)
	fmt.Fprintf(&sb, "No match: %d", s.NoMatch)

	if s.Duplicates > 0 {
		fmt.Fprintf(&sb, "\nDuplicate snapshot records ignored: %d", s.Duplicates)
	}
	if s.Rejected > 0 {
		fmt.Fprintf(&sb, "\nIncomplete snapshot records ignored: %d", s.Rejected)
	}

	if !s.HasProblems() {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n\nProblems (%d):\n", len(s.Problems))
	shown, more := s.DisplayedProblems(max)
	for _, p := range shown {
		fmt.Fprintf(&sb, "- %s: %s\n", p.Identifier, p.Reason)
	}
	if more > 0 {
		fmt.Fprintf(&sb, "...and %d more\n", more)
	}

	return strings.TrimRight(sb.String(), "\n")
}
