package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codesync/core/catalog"

	"go.uber.org/zap"
)

// DefaultSessionLabel names the mutation session opened by Run.
const DefaultSessionLabel = "Update classification codes"

// Run applies index to every element type of cat inside one mutation session.
//
// Each element gets an Outcome; an error on one element is recorded as a
// Problem and the walk continues. The session is committed once at the end,
// or rolled back when opts.DryRun is set. Failing to open the session,
// enumerate elements or commit is returned as an error after rolling back.
func Run(ctx context.Context, cat catalog.Catalog, index *CodeIndex, opts Options) (*Summary, error) {
	if index == nil {
		return nil, &ValidationError{Message: "no index"}
	}
	opts = opts.withDefaults()
	log := opts.Logger

	session, err := cat.Begin(ctx, opts.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to begin session: %w", err)
	}

	results, err := reconcileSession(ctx, session, index, opts)
	if err != nil {
		if rbErr := session.Rollback(); rbErr != nil {
			log.Warn("Rollback failed", zap.Error(rbErr))
		}
		return nil, err
	}

	if opts.DryRun {
		if err := session.Rollback(); err != nil {
			return nil, fmt.Errorf("failed to roll back dry-run session: %w", err)
		}
	} else if err := session.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	summary := Summarize(results)
	summary.Duplicates = index.Duplicates()
	summary.Rejected = index.Rejected()
	summary.DryRun = opts.DryRun

	return summary, nil
}

func (o Options) withDefaults() Options {
	if o.Parameter == "" {
		o.Parameter = catalog.CodeParameter
	}
	if o.Label == "" {
		o.Label = DefaultSessionLabel
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// reconcileSession visits every element of the session in catalog order.
func reconcileSession(ctx context.Context, session catalog.Session, index *CodeIndex, opts Options) ([]EntryResult, error) {
	elements, err := session.Elements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate element types: %w", err)
	}

	results := make([]EntryResult, 0, len(elements))
	for _, element := range elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, ReconcileElement(element, index, opts.Parameter, opts.Logger))
	}
	return results, nil
}

// ReconcileElement decides and applies the outcome for one element. It never
// fails: errors and panics from the element become a Problem outcome.
func ReconcileElement(element catalog.Element, index *CodeIndex, parameter string, log *zap.Logger) (result EntryResult) {
	result.Identifier = element.ID()
	defer func() {
		if r := recover(); r != nil {
			result.Outcome = Failed(fmt.Sprintf("panic: %v", r))
			log.Warn("Element processing panicked", zap.String("element", result.Identifier), zap.Any("panic", r))
		}
	}()

	category := CategoryLabel(element.Category())
	name := element.Name()
	result.Identifier = Identifier(category, name)

	key := Normalize(category, name)
	record, ok := index.Lookup(key)
	if !ok {
		log.Debug("No match found", zap.String("key", key.String()))
		result.Outcome = NoMatch()
		return result
	}

	result.Outcome = applyCode(element, parameter, record.Code)

	switch result.Outcome.Kind {
	case OutcomeUpdated:
		log.Debug("Successfully updated", zap.String("key", key.String()), zap.String("code", record.Code))
	case OutcomeAlreadyCorrect:
		log.Debug("Value already correct", zap.String("key", key.String()))
	case OutcomeProblem:
		log.Debug("Problem element", zap.String("key", key.String()), zap.String("reason", result.Outcome.Reason))
	}
	return result
}

// applyCode writes code into the element's parameter unless it already matches.
func applyCode(element catalog.Element, parameter, code string) Outcome {
	param, err := element.Parameter(parameter)
	if err != nil {
		if errors.Is(err, catalog.ErrParameterNotFound) {
			return Failed(ReasonParameterNotFound)
		}
		return Failed(err.Error())
	}

	if param.ReadOnly() {
		return Failed(ReasonReadOnly)
	}

	current, err := param.Get()
	if err != nil {
		return Failed(fmt.Sprintf("failed to read value: %v", err))
	}
	if strings.EqualFold(current, code) {
		return AlreadyCorrect()
	}

	if err := param.Set(code); err != nil {
		return Failed(fmt.Sprintf("failed to set value: %v", err))
	}

	// The store may reject or coerce the value without failing.
	got, err := param.Get()
	if err != nil {
		return Failed(fmt.Sprintf("failed to read back value: %v", err))
	}
	if !strings.EqualFold(got, code) {
		return Failed(fmt.Sprintf("write did not take effect: got %q, expected %q", got, code))
	}

	return Updated()
}
