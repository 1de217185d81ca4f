package console

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUpstream marks failures reported by the admin API.
var ErrUpstream = errors.New("admin api request failed")

type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string { return e.err.Error() }
func (e *upstreamError) Unwrap() error { return e.err }
func (e *upstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func upstream(err error) error {
	if err == nil {
		return nil
	}
	return &upstreamError{err: err}
}

// Console is the admin session: one lead book shared by every view.
type Console struct {
	Book   *LeadBook
	Board  *Board
	Table  *Table
	Hidden *HiddenView
	Notes  *NotesEditor

	gateway Gateway
	logger  *zap.Logger
}

func New(gw Gateway, notifier Notifier, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	book := NewLeadBook(nil)
	notes := NewNotesEditor(book, gw, logger)

	return &Console{
		Book:    book,
		Board:   NewBoard(book, gw, notifier, notes, logger),
		Table:   NewTable(book, gw, notifier, logger),
		Hidden:  NewHiddenView(book, gw, notifier, logger),
		Notes:   notes,
		gateway: gw,
		logger:  logger,
	}
}

// Refresh reloads the whole list from the gateway. The book keeps its
// current contents when the request fails.
func (c *Console) Refresh(ctx context.Context) error {
	leads, err := c.gateway.ListLeads(ctx)
	if err != nil {
		c.logger.Error("failed to load leads", zap.Error(err))
		return fmt.Errorf("load leads: %w", upstream(err))
	}
	c.Book.Replace(leads)
	c.logger.Debug("leads loaded", zap.Int("count", len(leads)))
	return nil
}
