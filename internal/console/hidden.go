package console

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

// HiddenView lists only leads whose status is in the hidden subset, so they
// can be re-classified.
type HiddenView struct {
	book     *LeadBook
	gateway  Gateway
	notifier Notifier
	logger   *zap.Logger
}

func NewHiddenView(book *LeadBook, gw Gateway, notifier Notifier, logger *zap.Logger) *HiddenView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HiddenView{book: book, gateway: gw, notifier: notifier, logger: logger}
}

func (h *HiddenView) Leads() []entity.Lead {
	out := []entity.Lead{}
	for _, lead := range h.book.All() {
		if entity.IsHiddenStatus(lead.EffectiveStatus()) {
			out = append(out, lead)
		}
	}
	return out
}

// ChangeStatus commits first and updates the book only on success. A lead
// moved to a visible label drops out of Leads.
func (h *HiddenView) ChangeStatus(ctx context.Context, id, status string) error {
	tx := committedUpdate(h.book, h.gateway, id, entity.LeadPatch{Status: &status}, h.logger)
	if err := tx.Execute(ctx); err != nil {
		h.logger.Error("failed to re-classify hidden lead",
			zap.String("lead_id", id),
			zap.String("to", status),
			zap.Error(err),
		)
		if h.notifier != nil {
			h.notifier.Alert("Error al actualizar el estado: " + Reason(err))
		}
		return err
	}
	return nil
}
