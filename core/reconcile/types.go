package reconcile

import "go.uber.org/zap"

// OutcomeKind classifies what happened to one catalog entry.
type OutcomeKind string

const (
	// OutcomeUpdated means the value was written and read back correctly.
	OutcomeUpdated OutcomeKind = "updated"
	// OutcomeAlreadyCorrect means the value already matched; nothing was written.
	OutcomeAlreadyCorrect OutcomeKind = "already_correct"
	// OutcomeNoMatch means there was nothing to apply to the entry.
	OutcomeNoMatch OutcomeKind = "no_match"
	// OutcomeProblem means the entry could not be processed; Reason says why.
	OutcomeProblem OutcomeKind = "problem"
)

// Problem reasons produced by the engine.
const (
	ReasonParameterNotFound = "parameter not found"
	ReasonReadOnly          = "parameter is read-only"
)

// Outcome is the result for a single entry.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
}

// Updated returns an OutcomeUpdated outcome.
func Updated() Outcome { return Outcome{Kind: OutcomeUpdated} }

// AlreadyCorrect returns an OutcomeAlreadyCorrect outcome.
func AlreadyCorrect() Outcome { return Outcome{Kind: OutcomeAlreadyCorrect} }

// NoMatch returns an OutcomeNoMatch outcome.
func NoMatch() Outcome { return Outcome{Kind: OutcomeNoMatch} }

// Failed returns an OutcomeProblem outcome with the given reason.
func Failed(reason string) Outcome { return Outcome{Kind: OutcomeProblem, Reason: reason} }

// EntryResult pairs an entry identifier with its outcome.
type EntryResult struct {
	Identifier string  `json:"identifier"`
	Outcome    Outcome `json:"outcome"`
}

// Problem is an entry that could not be processed.
type Problem struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// Summary aggregates the outcomes of one run.
type Summary struct {
	// Visited is the number of entries examined.
	Visited int `json:"visited"`

	// Updated counts entries whose value was written.
	Updated int `json:"updated"`

	// AlreadyCorrect counts matched entries that needed no write.
	AlreadyCorrect int `json:"already_correct"`

	// NoMatch counts entries with nothing to apply.
	NoMatch int `json:"no_match"`

	// Problems lists every problem entry in visit order.
	Problems []Problem `json:"problems"`

	// Duplicates counts snapshot records ignored because an earlier record had the same key.
	Duplicates int `json:"duplicates"`

	// Rejected counts snapshot records ignored for missing a type name or code.
	Rejected int `json:"rejected"`

	// DryRun is set when the session was rolled back instead of committed.
	DryRun bool `json:"dry_run"`
}

// Options controls a reconciliation run.
type Options struct {
	// Parameter is the code parameter name. Defaults to catalog.CodeParameter.
	Parameter string

	// Label names the mutation session.
	Label string

	// DryRun rolls the session back at the end instead of committing.
	DryRun bool

	// Logger receives per-entry diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}
