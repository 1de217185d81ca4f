package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrEmptyPatch    = errors.New("no fields to update")
	ErrInvalidStatus = errors.New("status is not part of the taxonomy")
)

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Clinic    *string   `json:"clinic"`
	Revenue   *string   `json:"revenue"`
	Challenge *string   `json:"challenge"`
	Status    *string   `json:"status,omitempty"` // nil = DefaultStatus
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// EffectiveStatus resolves an unset status to the first taxonomy label.
func (l Lead) EffectiveStatus() string {
	if l.Status == nil || *l.Status == "" {
		return DefaultStatus
	}
	return *l.Status
}

// NotesText returns the notes or "" when unset.
func (l Lead) NotesText() string {
	if l.Notes == nil {
		return ""
	}
	return *l.Notes
}

// Clone returns a deep copy, pointer fields included.
func (l Lead) Clone() Lead {
	c := l
	c.Clinic = cloneString(l.Clinic)
	c.Revenue = cloneString(l.Revenue)
	c.Challenge = cloneString(l.Challenge)
	c.Status = cloneString(l.Status)
	c.Notes = cloneString(l.Notes)
	return c
}

// LeadPatch is a partial update. A nil field is left untouched; Notes set to
// an empty string clears the notes.
type LeadPatch struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (p LeadPatch) IsEmpty() bool {
	return p.Status == nil && p.Notes == nil
}

type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]Lead, error)
	ListByStatuses(ctx context.Context, statuses []string, includeUnset bool) ([]Lead, error)
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
