package catalogdb

import (
	"context"
	"fmt"
	"sync"

	"codesync/core/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Session is one catalog transaction.
type Session struct {
	mu     sync.Mutex
	tx     *gorm.DB
	label  string
	closed bool
	logger *zap.Logger
}

func (s *Session) open() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, catalog.ErrSessionClosed
	}
	return s.tx, nil
}

// Elements returns the element types, writable through this session.
func (s *Session) Elements(ctx context.Context) ([]catalog.Element, error) {
	tx, err := s.open()
	if err != nil {
		return nil, err
	}

	rows, params, err := loadElements(ctx, tx, KindType)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Element, len(rows))
	for i, row := range rows {
		out[i] = newElement(row, params[row.ID], tx)
	}
	return out, nil
}

// Instances returns the element instances, writable through this session.
func (s *Session) Instances(ctx context.Context) ([]catalog.Instance, error) {
	tx, err := s.open()
	if err != nil {
		return nil, err
	}

	rows, params, err := loadElements(ctx, tx, KindInstance)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Instance, len(rows))
	for i, row := range rows {
		out[i] = &Instance{Element: *newElement(row, params[row.ID], tx), tx: tx}
	}
	return out, nil
}

// Commit makes the session's writes durable.
func (s *Session) Commit() error {
	return s.finish("commit", func(tx *gorm.DB) error { return tx.Commit().Error })
}

// Rollback discards the session's writes.
func (s *Session) Rollback() error {
	return s.finish("rollback", func(tx *gorm.DB) error { return tx.Rollback().Error })
}

func (s *Session) finish(action string, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return catalog.ErrSessionClosed
	}
	s.closed = true

	if err := fn(s.tx); err != nil {
		return fmt.Errorf("failed to %s session %q: %w", action, s.label, err)
	}
	s.logger.Debug("Session closed", zap.String("label", s.label), zap.String("action", action))
	return nil
}
