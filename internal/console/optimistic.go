package console

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

var errLeadGone = errors.New("lead is no longer in the list")

// optimisticUpdate builds a two-step transaction: apply patch to the book,
// then commit it through the gateway. A failed commit puts back the patched
// fields as they were before the first step; other fields keep any change
// made in the meantime.
func optimisticUpdate(book *LeadBook, gw Gateway, id string, patch entity.LeadPatch, logger *zap.Logger) *Transaction {
	tx := NewTransaction("update lead "+id, logger)

	var before entity.Lead
	tx.AddOperation("apply locally",
		func(context.Context) error {
			lead, ok := book.Get(id)
			if !ok {
				return errLeadGone
			}
			before = lead
			applyPatch(book, id, patch)
			return nil
		},
		func(context.Context) error {
			restoreFields(book, id, before, patch)
			return nil
		},
	)
	tx.AddOperation("commit", func(ctx context.Context) error {
		_, err := gw.UpdateLead(ctx, id, patch)
		return upstream(err)
	}, nil)

	return tx
}

// notesUpdate commits notes already edited in the book. committed is the
// value the server last accepted; a failed commit brings it back.
func notesUpdate(book *LeadBook, gw Gateway, id, committed string, logger *zap.Logger) *Transaction {
	tx := NewTransaction("save notes "+id, logger)

	before := entity.Lead{ID: id, Notes: entity.StringPtr(committed)}
	var patch entity.LeadPatch
	tx.AddOperation("read edits",
		func(context.Context) error {
			lead, ok := book.Get(id)
			if !ok {
				return errLeadGone
			}
			text := lead.NotesText()
			patch.Notes = &text
			return nil
		},
		func(context.Context) error {
			restoreFields(book, id, before, patch)
			return nil
		},
	)
	tx.AddOperation("commit", func(ctx context.Context) error {
		_, err := gw.UpdateLead(ctx, id, patch)
		return upstream(err)
	}, nil)

	return tx
}

// committedUpdate commits first and applies to the book only on success.
func committedUpdate(book *LeadBook, gw Gateway, id string, patch entity.LeadPatch, logger *zap.Logger) *Transaction {
	tx := NewTransaction("update lead "+id, logger)

	tx.AddOperation("commit", func(ctx context.Context) error {
		_, err := gw.UpdateLead(ctx, id, patch)
		return upstream(err)
	}, nil)
	tx.AddOperation("apply locally", func(context.Context) error {
		applyPatch(book, id, patch)
		return nil
	}, nil)

	return tx
}

// restoreFields copies back from before only the fields patch touches.
func restoreFields(book *LeadBook, id string, before entity.Lead, patch entity.LeadPatch) {
	book.mutate(id, func(l *entity.Lead) {
		if patch.Status != nil {
			l.Status = cloneString(before.Status)
		}
		if patch.Notes != nil {
			l.Notes = cloneString(before.Notes)
		}
	})
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func applyPatch(book *LeadBook, id string, patch entity.LeadPatch) {
	if patch.Status != nil {
		book.SetStatus(id, *patch.Status)
	}
	if patch.Notes != nil {
		book.SetNotes(id, *patch.Notes)
	}
}
