package catalog

import (
	"context"
	"errors"
)

// Built-in parameter names.
const (
	// CodeParameter holds the classification code of an element type.
	CodeParameter = "classification_code"
	// DescriptionParameter holds the classification description of an element type.
	DescriptionParameter = "classification_description"
	// FullNameParameter is the instance parameter that receives the derived full name.
	FullNameParameter = "full_name"
)

var (
	// ErrParameterNotFound is returned when an element has no parameter with the requested name.
	ErrParameterNotFound = errors.New("parameter not found")

	// ErrTypeNotFound is returned when an instance's owning type cannot be resolved.
	ErrTypeNotFound = errors.New("element type not found")

	// ErrReadOnly is returned when writing to a read-only parameter.
	ErrReadOnly = errors.New("parameter is read-only")

	// ErrSessionClosed is returned when a finished session is used again.
	ErrSessionClosed = errors.New("session already closed")
)

// StorageKind describes how a parameter value is stored.
type StorageKind string

const (
	StorageText      StorageKind = "text"
	StorageInteger   StorageKind = "integer"
	StorageDouble    StorageKind = "double"
	StorageElementID StorageKind = "element_id"
)

// IsText reports whether values of this kind are stored as text.
func (k StorageKind) IsText() bool {
	return k == StorageText
}

// Catalog is a live catalog of element types and instances.
type Catalog interface {
	// Title is the human readable catalog name, used to name exported snapshots.
	Title() string

	// SourcePath is the file backing the catalog, or "" when there is none.
	SourcePath() string

	// Elements returns the element types in the catalog's natural order.
	// The returned elements are read-only views: Set on their parameters fails.
	Elements(ctx context.Context) ([]Element, error)

	// Begin opens a mutation session. Only one session may be open at a time.
	Begin(ctx context.Context, label string) (Session, error)
}

// Session is a scoped mutation session. Writes made through elements
// returned by a session become visible to others only after Commit.
type Session interface {
	// Elements returns the element types, writable within this session.
	Elements(ctx context.Context) ([]Element, error)

	// Instances returns the instances, writable within this session.
	Instances(ctx context.Context) ([]Instance, error)

	// Commit applies every write made in the session.
	Commit() error

	// Rollback discards every write made in the session.
	Rollback() error
}

// Element is a type-level entry.
type Element interface {
	// ID uniquely identifies the element inside its catalog.
	ID() string

	// Category is the category label, or "" if the element has none.
	Category() string

	// Name is the type name.
	Name() string

	// Parameter returns the named parameter or ErrParameterNotFound.
	Parameter(name string) (Parameter, error)
}

// Instance is a placed element that references exactly one element type.
type Instance interface {
	ID() string
	Name() string

	// Type resolves the owning element type or returns ErrTypeNotFound.
	Type(ctx context.Context) (Element, error)

	// Parameter returns the named parameter or ErrParameterNotFound.
	Parameter(name string) (Parameter, error)
}

// Parameter is a named, typed value on an element or instance.
type Parameter interface {
	Name() string
	Storage() StorageKind
	ReadOnly() bool

	// Get reads the current value rendered as text.
	Get() (string, error)

	// Set writes a text value. Implementations may coerce the value, so
	// callers that care should read it back.
	Set(value string) error
}
