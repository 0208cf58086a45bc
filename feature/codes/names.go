package codes

import (
	"context"
	"errors"
	"fmt"

	"codesync/core/catalog"
	"codesync/core/reconcile"

	"go.uber.org/zap"
)

// DefaultNamesLabel names the session opened by DeriveNames.
const DefaultNamesLabel = "Derive full names"

// Problem reasons produced by DeriveNames.
const (
	ReasonTypeNotFound   = "element type not found"
	ReasonCodeMissing    = "type has no code parameter"
	ReasonDescMissing    = "type has no description parameter"
	ReasonTargetMissing  = "target parameter not found"
	ReasonTargetNotText  = "target parameter is not text"
	ReasonTargetReadOnly = "target parameter is read-only"
)

// NameOptions controls DeriveNames.
type NameOptions struct {
	// Target is the instance parameter receiving the name. Defaults to catalog.FullNameParameter.
	Target string
	// Code and Description name the type parameters read. Default to the catalog constants.
	Code        string
	Description string
	Label       string
	DryRun      bool
	Logger      *zap.Logger
}

func (o NameOptions) withDefaults() NameOptions {
	if o.Target == "" {
		o.Target = catalog.FullNameParameter
	}
	if o.Code == "" {
		o.Code = catalog.CodeParameter
	}
	if o.Description == "" {
		o.Description = catalog.DescriptionParameter
	}
	if o.Label == "" {
		o.Label = DefaultNamesLabel
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// FullName composes the display name from a code and description.
func FullName(code, description string) string {
	if description == "" {
		return code
	}
	return code + "_" + description
}

// DeriveNames writes FullName(code, description) of each instance's type
// into the instance's target parameter, inside one session.
//
// Types with an empty code are NoMatch. Unresolvable types, missing
// parameters and unwritable targets are Problems. Instances already
// carrying the right name are not written.
func DeriveNames(ctx context.Context, cat catalog.Catalog, opts NameOptions) (*reconcile.Summary, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	session, err := cat.Begin(ctx, opts.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to begin session: %w", err)
	}

	results, err := deriveSession(ctx, session, opts)
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

	summary := reconcile.Summarize(results)
	summary.DryRun = opts.DryRun
	return summary, nil
}

func deriveSession(ctx context.Context, session catalog.Session, opts NameOptions) ([]reconcile.EntryResult, error) {
	instances, err := session.Instances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate instances: %w", err)
	}

	results := make([]reconcile.EntryResult, 0, len(instances))
	for _, inst := range instances {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, deriveInstance(ctx, inst, opts))
	}
	return results, nil
}

func instanceIdentifier(inst catalog.Instance) string {
	return fmt.Sprintf("%s (%s)", inst.Name(), inst.ID())
}

func deriveInstance(ctx context.Context, inst catalog.Instance, opts NameOptions) (result reconcile.EntryResult) {
	result.Identifier = inst.ID()
	defer func() {
		if r := recover(); r != nil {
			result.Outcome = reconcile.Failed(fmt.Sprintf("panic: %v", r))
			opts.Logger.Warn("Instance processing panicked", zap.String("instance", result.Identifier), zap.Any("panic", r))
		}
	}()
	result.Identifier = instanceIdentifier(inst)

	name, outcome := composeName(ctx, inst, opts)
	if outcome != nil {
		result.Outcome = *outcome
		return result
	}

	result.Outcome = writeName(inst, opts.Target, name)
	opts.Logger.Debug("Derived name",
		zap.String("instance", result.Identifier),
		zap.String("name", name),
		zap.String("outcome", string(result.Outcome.Kind)),
	)
	return result
}

// composeName reads the type's code and description. A non-nil outcome ends
// processing of the instance.
func composeName(ctx context.Context, inst catalog.Instance, opts NameOptions) (string, *reconcile.Outcome) {
	fail := func(reason string) (string, *reconcile.Outcome) {
		o := reconcile.Failed(reason)
		return "", &o
	}

	typ, err := inst.Type(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrTypeNotFound) {
			return fail(ReasonTypeNotFound)
		}
		return fail(err.Error())
	}

	codeParam, err := typ.Parameter(opts.Code)
	if err != nil {
		if errors.Is(err, catalog.ErrParameterNotFound) {
			return fail(ReasonCodeMissing)
		}
		return fail(fmt.Sprintf("failed to look up code: %v", err))
	}
	descParam, err := typ.Parameter(opts.Description)
	if err != nil {
		if errors.Is(err, catalog.ErrParameterNotFound) {
			return fail(ReasonDescMissing)
		}
		return fail(fmt.Sprintf("failed to look up description: %v", err))
	}

	code, err := codeParam.Get()
	if err != nil {
		return fail(fmt.Sprintf("failed to read code: %v", err))
	}
	if code == "" {
		o := reconcile.NoMatch()
		return "", &o
	}

	description, err := descParam.Get()
	if err != nil {
		return fail(fmt.Sprintf("failed to read description: %v", err))
	}

	return FullName(code, description), nil
}

func writeName(inst catalog.Instance, target, name string) reconcile.Outcome {
	param, err := inst.Parameter(target)
	if err != nil {
		if errors.Is(err, catalog.ErrParameterNotFound) {
			return reconcile.Failed(ReasonTargetMissing)
		}
		return reconcile.Failed(err.Error())
	}
	if !param.Storage().IsText() {
		return reconcile.Failed(ReasonTargetNotText)
	}
	if param.ReadOnly() {
		return reconcile.Failed(ReasonTargetReadOnly)
	}

	current, err := param.Get()
	if err != nil {
		return reconcile.Failed(fmt.Sprintf("failed to read value: %v", err))
	}
	if current == name {
		return reconcile.AlreadyCorrect()
	}

	if err := param.Set(name); err != nil {
		return reconcile.Failed(fmt.Sprintf("failed to set value: %v", err))
	}
	got, err := param.Get()
	if err != nil {
		return reconcile.Failed(fmt.Sprintf("failed to read back value: %v", err))
	}
	if got != name {
		return reconcile.Failed(fmt.Sprintf("write did not take effect: got %q, expected %q", got, name))
	}
	return reconcile.Updated()
}
