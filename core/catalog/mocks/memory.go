// Package mocks provides an in-memory catalog for tests.
package mocks

import (
	"context"
	"fmt"

	"codesync/core/catalog"
)

// Catalog is an in-memory catalog.Catalog. Sessions snapshot every parameter
// value on Begin and restore them on Rollback.
type Catalog struct {
	TitleValue string
	Path       string
	Types      []*Element
	Items      []*Instance

	// ElementsErr and InstancesErr fail enumeration.
	ElementsErr  error
	InstancesErr error
	BeginErr     error
	CommitErr    error

	Commits   int
	Rollbacks int
	Labels    []string

	session *Session
}

// NewCatalog creates an empty catalog.
func NewCatalog(title string) *Catalog {
	return &Catalog{TitleValue: title}
}

// Add appends element types.
func (c *Catalog) Add(elements ...*Element) *Catalog {
	c.Types = append(c.Types, elements...)
	return c
}

// AddInstances appends instances.
func (c *Catalog) AddInstances(instances ...*Instance) *Catalog {
	for _, inst := range instances {
		inst.catalog = c
	}
	c.Items = append(c.Items, instances...)
	return c
}

func (c *Catalog) Title() string      { return c.TitleValue }
func (c *Catalog) SourcePath() string { return c.Path }

func (c *Catalog) Elements(ctx context.Context) ([]catalog.Element, error) {
	if c.ElementsErr != nil {
		return nil, c.ElementsErr
	}
	out := make([]catalog.Element, len(c.Types))
	for i, e := range c.Types {
		out[i] = e
	}
	return out, nil
}

func (c *Catalog) Begin(ctx context.Context, label string) (catalog.Session, error) {
	if c.BeginErr != nil {
		return nil, c.BeginErr
	}
	if c.session != nil {
		return nil, fmt.Errorf("session %q already open", c.Labels[len(c.Labels)-1])
	}
	c.Labels = append(c.Labels, label)

	saved := make(map[*Parameter]string)
	for _, e := range c.Types {
		for _, p := range e.Params {
			saved[p] = p.Value
		}
	}
	for _, inst := range c.Items {
		for _, p := range inst.Params {
			saved[p] = p.Value
		}
	}
	c.session = &Session{catalog: c, saved: saved}
	return c.session, nil
}

// FindType returns the element type with the given id.
func (c *Catalog) FindType(id string) *Element {
	for _, e := range c.Types {
		if e.IDValue == id {
			return e
		}
	}
	return nil
}

// Session is the in-memory session.
type Session struct {
	catalog *Catalog
	saved   map[*Parameter]string
	closed  bool
}

func (s *Session) Elements(ctx context.Context) ([]catalog.Element, error) {
	if s.closed {
		return nil, catalog.ErrSessionClosed
	}
	return s.catalog.Elements(ctx)
}

func (s *Session) Instances(ctx context.Context) ([]catalog.Instance, error) {
	if s.closed {
		return nil, catalog.ErrSessionClosed
	}
	if s.catalog.InstancesErr != nil {
		return nil, s.catalog.InstancesErr
	}
	out := make([]catalog.Instance, len(s.catalog.Items))
	for i, inst := range s.catalog.Items {
		out[i] = inst
	}
	return out, nil
}

func (s *Session) Commit() error {
	if s.closed {
		return catalog.ErrSessionClosed
	}
	if s.catalog.CommitErr != nil {
		return s.catalog.CommitErr
	}
	s.closed = true
	s.catalog.session = nil
	s.catalog.Commits++
	return nil
}

func (s *Session) Rollback() error {
	if s.closed {
		return catalog.ErrSessionClosed
	}
	for p, v := range s.saved {
		p.Value = v
	}
	s.closed = true
	s.catalog.session = nil
	s.catalog.Rollbacks++
	return nil
}

// Element is an in-memory element type.
type Element struct {
	IDValue       string
	CategoryValue string
	NameValue     string
	Params        map[string]*Parameter

	// ParameterErr fails every parameter lookup.
	ParameterErr error
	// PanicOnName panics when Name is called.
	PanicOnName bool
}

// NewElement creates an element type with the given parameters.
func NewElement(id, category, name string, params ...*Parameter) *Element {
	e := &Element{IDValue: id, CategoryValue: category, NameValue: name, Params: map[string]*Parameter{}}
	for _, p := range params {
		e.Params[p.NameValue] = p
	}
	return e
}

func (e *Element) ID() string       { return e.IDValue }
func (e *Element) Category() string { return e.CategoryValue }

func (e *Element) Name() string {
	if e.PanicOnName {
		panic("element name unavailable")
	}
	return e.NameValue
}

func (e *Element) Parameter(name string) (catalog.Parameter, error) {
	if e.ParameterErr != nil {
		return nil, e.ParameterErr
	}
	p, ok := e.Params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrParameterNotFound, name)
	}
	return p, nil
}

// Code returns the value of the code parameter, or "" when absent.
func (e *Element) Code() string {
	if p, ok := e.Params[catalog.CodeParameter]; ok {
		return p.Value
	}
	return ""
}

// Instance is an in-memory instance.
type Instance struct {
	IDValue   string
	NameValue string
	TypeID    string
	Params    map[string]*Parameter

	catalog *Catalog
}

// NewInstance creates an instance of the type typeID.
func NewInstance(id, name, typeID string, params ...*Parameter) *Instance {
	inst := &Instance{IDValue: id, NameValue: name, TypeID: typeID, Params: map[string]*Parameter{}}
	for _, p := range params {
		inst.Params[p.NameValue] = p
	}
	return inst
}

func (i *Instance) ID() string   { return i.IDValue }
func (i *Instance) Name() string { return i.NameValue }

func (i *Instance) Type(ctx context.Context) (catalog.Element, error) {
	if i.catalog != nil {
		if e := i.catalog.FindType(i.TypeID); e != nil {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", catalog.ErrTypeNotFound, i.TypeID)
}

func (i *Instance) Parameter(name string) (catalog.Parameter, error) {
	p, ok := i.Params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrParameterNotFound, name)
	}
	return p, nil
}

// Parameter is an in-memory parameter.
type Parameter struct {
	NameValue string
	Kind      catalog.StorageKind
	Locked    bool
	Value     string

	// MaxLength truncates written values when positive.
	MaxLength int
	// IgnoreWrites makes Set succeed without changing the value.
	IgnoreWrites bool

	GetErr error
	SetErr error

	Sets int
}

// Text creates a writable text parameter.
func Text(name, value string) *Parameter {
	return &Parameter{NameValue: name, Kind: catalog.StorageText, Value: value}
}

// Code creates a writable text code parameter.
func Code(value string) *Parameter {
	return Text(catalog.CodeParameter, value)
}

func (p *Parameter) Name() string                 { return p.NameValue }
func (p *Parameter) Storage() catalog.StorageKind { return p.Kind }
func (p *Parameter) ReadOnly() bool               { return p.Locked }

func (p *Parameter) Get() (string, error) {
	if p.GetErr != nil {
		return "", p.GetErr
	}
	return p.Value, nil
}

func (p *Parameter) Set(value string) error {
	if p.Locked {
		return catalog.ErrReadOnly
	}
	if p.SetErr != nil {
		return p.SetErr
	}
	p.Sets++
	if p.IgnoreWrites {
		return nil
	}
	if p.MaxLength > 0 && len(value) > p.MaxLength {
		value = value[:p.MaxLength]
	}
	p.Value = value
	return nil
}
