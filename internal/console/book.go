package console

import (
	"sync"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

// LeadBook is the console's single in-memory lead list. Every view reads
// from it and every mutation goes through it.
type LeadBook struct {
	mu    sync.RWMutex
	leads []entity.Lead
}

func NewLeadBook(leads []entity.Lead) *LeadBook {
	b := &LeadBook{}
	b.Replace(leads)
	return b
}

// All returns a deep copy in book order.
func (b *LeadBook) All() []entity.Lead {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.Lead, len(b.leads))
	for i, l := range b.leads {
		out[i] = l.Clone()
	}
	return out
}

func (b *LeadBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.leads)
}

func (b *LeadBook) Get(id string) (entity.Lead, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.index(id)
	if i < 0 {
		return entity.Lead{}, false
	}
	return b.leads[i].Clone(), true
}

// Snapshot copies the whole list.
func (b *LeadBook) Snapshot() []entity.Lead {
	return b.All()
}

// Restore puts back a list taken with Snapshot.
func (b *LeadBook) Restore(snapshot []entity.Lead) {
	b.Replace(snapshot)
}

func (b *LeadBook) Replace(leads []entity.Lead) {
	cp := make([]entity.Lead, len(leads))
	for i, l := range leads {
		cp[i] = l.Clone()
	}

	b.mu.Lock()
	b.leads = cp
	b.mu.Unlock()
}

// Put overwrites the lead with the same id. It reports whether it existed.
func (b *LeadBook) Put(lead entity.Lead) bool {
	return b.mutate(lead.ID, func(l *entity.Lead) { *l = lead.Clone() })
}

func (b *LeadBook) SetStatus(id, status string) bool {
	return b.mutate(id, func(l *entity.Lead) { l.Status = &status })
}

// SetNotes stores text; an empty string unsets the notes.
func (b *LeadBook) SetNotes(id, text string) bool {
	return b.mutate(id, func(l *entity.Lead) { l.Notes = entity.StringPtr(text) })
}

func (b *LeadBook) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return false
	}
	b.leads = append(b.leads[:i], b.leads[i+1:]...)
	return true
}

func (b *LeadBook) mutate(id string, fn func(*entity.Lead)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return false
	}
	fn(&b.leads[i])
	return true
}

// index must be called with mu held.
func (b *LeadBook) index(id string) int {
	for i := range b.leads {
		if b.leads[i].ID == id {
			return i
		}
	}
	return -1
}
