package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrNotFocused = errors.New("no notes field has focus")

// NotesEditor edits the notes of one lead at a time. Keystrokes update the
// book at once; leaving the field sends the text to the gateway.
type NotesEditor struct {
	book    *LeadBook
	gateway Gateway
	logger  *zap.Logger

	mu        sync.Mutex
	focused   string
	committed string
}

func NewNotesEditor(book *LeadBook, gw Gateway, logger *zap.Logger) *NotesEditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesEditor{book: book, gateway: gw, logger: logger}
}

// Focus starts editing id. Any other field loses focus without saving.
func (n *NotesEditor) Focus(id string) bool {
	lead, ok := n.book.Get(id)
	if !ok {
		return false
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.focused = id
	n.committed = lead.NotesText()
	return true
}

func (n *NotesEditor) Focused() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.focused != ""
}

func (n *NotesEditor) FocusedID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.focused
}

// Text returns the current notes of the focused lead.
func (n *NotesEditor) Text() string {
	lead, ok := n.book.Get(n.FocusedID())
	if !ok {
		return ""
	}
	return lead.NotesText()
}

// Change replaces the focused lead's notes in the book. No request is made.
func (n *NotesEditor) Change(text string) error {
	id := n.FocusedID()
	if id == "" {
		return ErrNotFocused
	}
	if !n.book.SetNotes(id, text) {
		return errLeadGone
	}
	return nil
}

// Blur ends editing and sends the current text in a single update. An empty
// text clears the notes. If the update fails the notes go back to what they
// were at focus time; the failure is only logged.
func (n *NotesEditor) Blur(ctx context.Context) error {
	n.mu.Lock()
	id, committed := n.focused, n.committed
	n.focused, n.committed = "", ""
	n.mu.Unlock()

	if id == "" {
		return ErrNotFocused
	}

	if err := notesUpdate(n.book, n.gateway, id, committed, n.logger).Execute(ctx); err != nil {
		n.logger.Error("failed to save notes",
			zap.String("lead_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}
