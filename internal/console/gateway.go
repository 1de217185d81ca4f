// Package console holds the admin console state and interaction logic,
// independent of how it is rendered.
package console

import (
	"context"
	"sync"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

// Gateway is the console's view of the admin API.
type Gateway interface {
	ListLeads(ctx context.Context) ([]entity.Lead, error)
	UpdateLead(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error)
}

// Notifier surfaces a failure to the operator.
type Notifier interface {
	Alert(msg string)
}

// Notices is a Notifier that queues messages for the renderer to display.
type Notices struct {
	mu    sync.Mutex
	items []string
}

func (n *Notices) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, msg)
}

// Drain returns the queued messages and clears the queue.
func (n *Notices) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
