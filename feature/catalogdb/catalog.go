package catalogdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"codesync/core/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errDetached is returned by writes to parameters loaded outside a session.
var errDetached = errors.New("element was loaded outside a session")

// Catalog is a catalog.Catalog stored in a SQL database.
type Catalog struct {
	db     *gorm.DB
	title  string
	source string
	logger *zap.Logger
}

// New creates a Catalog over db. source is the path of the backing file, or
// empty when the database is not file based.
func New(db *gorm.DB, title, source string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{db: db, title: title, source: source, logger: logger}
}

// Title returns the catalog title.
func (c *Catalog) Title() string {
	return c.title
}

// SourcePath returns the backing file path, if any.
func (c *Catalog) SourcePath() string {
	return c.source
}

// Elements returns a read-only view of every element type.
func (c *Catalog) Elements(ctx context.Context) ([]catalog.Element, error) {
	rows, params, err := loadElements(ctx, c.db, KindType)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Element, len(rows))
	for i, row := range rows {
		out[i] = newElement(row, params[row.ID], nil)
	}
	return out, nil
}

// Begin starts a transaction and returns it as a session.
func (c *Catalog) Begin(ctx context.Context, label string) (catalog.Session, error) {
	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	c.logger.Debug("Session started", zap.String("label", label))
	return &Session{tx: tx, label: label, logger: c.logger}, nil
}

// loadElements reads the elements of one kind in id order together with
// their parameters grouped by element id.
func loadElements(ctx context.Context, db *gorm.DB, kind string) ([]ElementRow, map[uint][]ParameterRow, error) {
	var rows []ElementRow
	if err := db.WithContext(ctx).Where("kind = ?", kind).Order("id").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to query %s elements: %w", kind, err)
	}

	params, err := loadParameters(ctx, db, rows)
	if err != nil {
		return nil, nil, err
	}
	return rows, params, nil
}

func loadParameters(ctx context.Context, db *gorm.DB, rows []ElementRow) (map[uint][]ParameterRow, error) {
	grouped := make(map[uint][]ParameterRow, len(rows))
	if len(rows) == 0 {
		return grouped, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var params []ParameterRow
	if err := db.WithContext(ctx).Where("element_id IN ?", ids).Order("id").Find(&params).Error; err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}
	for _, p := range params {
		grouped[p.ElementID] = append(grouped[p.ElementID], p)
	}
	return grouped, nil
}

// Element is an element type backed by a catalog_elements row.
type Element struct {
	row    ElementRow
	params map[string]*Parameter
}

func newElement(row ElementRow, params []ParameterRow, tx *gorm.DB) *Element {
	e := &Element{row: row, params: make(map[string]*Parameter, len(params))}
	for _, p := range params {
		e.params[p.Name] = &Parameter{row: p, tx: tx}
	}
	return e
}

// ID returns the row id as text.
func (e *Element) ID() string {
	return strconv.FormatUint(uint64(e.row.ID), 10)
}

func (e *Element) Category() string {
	return e.row.Category
}

func (e *Element) Name() string {
	return e.row.Name
}

// Parameter returns the named parameter or catalog.ErrParameterNotFound.
func (e *Element) Parameter(name string) (catalog.Parameter, error) {
	p, ok := e.params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrParameterNotFound, name)
	}
	return p, nil
}

// Instance is an element instance backed by a catalog_elements row.
type Instance struct {
	Element
	tx *gorm.DB
}

// Type loads the instance's element type inside the same session.
func (i *Instance) Type(ctx context.Context) (catalog.Element, error) {
	if i.row.TypeID == nil {
		return nil, fmt.Errorf("%w: instance %s has no type", catalog.ErrTypeNotFound, i.ID())
	}

	var row ElementRow
	err := i.tx.WithContext(ctx).Where("id = ? AND kind = ?", *i.row.TypeID, KindType).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", catalog.ErrTypeNotFound, *i.row.TypeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load type %d: %w", *i.row.TypeID, err)
	}

	params, err := loadParameters(ctx, i.tx, []ElementRow{row})
	if err != nil {
		return nil, err
	}
	return newElement(row, params[row.ID], i.tx), nil
}

// Parameter is a catalog_parameters row. Writes go through the session
// transaction it was loaded in.
type Parameter struct {
	row ParameterRow
	tx  *gorm.DB
}

func (p *Parameter) Name() string {
	return p.row.Name
}

func (p *Parameter) Storage() catalog.StorageKind {
	return p.row.StorageKind()
}

func (p *Parameter) ReadOnly() bool {
	return p.row.ReadOnly
}

// Get returns the stored value as text.
func (p *Parameter) Get() (string, error) {
	return p.row.Value, nil
}

// Set stores value. Only text parameters accept text; values longer than
// MaxLength are truncated by the store.
func (p *Parameter) Set(value string) error {
	if p.row.ReadOnly {
		return catalog.ErrReadOnly
	}
	if p.tx == nil {
		return errDetached
	}
	if !p.Storage().IsText() {
		return fmt.Errorf("cannot store text in %s parameter %s", p.row.Storage, p.row.Name)
	}

	if p.row.MaxLength > 0 {
		value = truncate(value, p.row.MaxLength)
	}

	err := p.tx.Model(&ParameterRow{}).Where("id = ?", p.row.ID).Update("value", value).Error
	if err != nil {
		return fmt.Errorf("failed to update parameter %s: %w", p.row.Name, err)
	}
	p.row.Value = value
	return nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
