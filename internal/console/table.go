package console

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/export"
)

var PageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 20

type SortField int

const (
	SortCreatedAt SortField = iota
	SortName
	SortStatus
)

// Table is the paginated, filterable list of leads.
type Table struct {
	book     *LeadBook
	gateway  Gateway
	notifier Notifier
	logger   *zap.Logger

	filter   string
	pageSize int
	page     int
	sortBy   SortField
	asc      bool
}

func NewTable(book *LeadBook, gw Gateway, notifier Notifier, logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{
		book:     book,
		gateway:  gw,
		notifier: notifier,
		logger:   logger,
		filter:   export.FilterAll,
		pageSize: DefaultPageSize,
		page:     1,
	}
}

func (t *Table) Filter() string   { return t.filter }
func (t *Table) PageSize() int    { return t.pageSize }
func (t *Table) CurrentPage() int { return t.page }

func (t *Table) SortField() SortField { return t.sortBy }

// SetFilter selects ALL or one taxonomy label and goes back to page 1.
func (t *Table) SetFilter(filter string) bool {
	if filter != export.FilterAll && !entity.IsValidStatus(filter) {
		return false
	}
	t.filter = filter
	t.page = 1
	return true
}

// SetPageSize accepts one of PageSizes and goes back to page 1.
func (t *Table) SetPageSize(size int) bool {
	if !slices.Contains(PageSizes, size) {
		return false
	}
	t.pageSize = size
	t.page = 1
	return true
}

// SortBy orders the rows. Selecting the current field again flips the
// direction.
func (t *Table) SortBy(field SortField) {
	if t.sortBy == field {
		t.asc = !t.asc
		return
	}
	t.sortBy = field
	t.asc = field != SortCreatedAt
}

// FilterOptions returns the distinct effective statuses present in the book,
// sorted.
func (t *Table) FilterOptions() []string {
	seen := map[string]bool{}
	var out []string
	for _, lead := range t.book.All() {
		s := lead.EffectiveStatus()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Rows returns every lead passing the filter, sorted.
func (t *Table) Rows() []entity.Lead {
	rows := export.Filter(t.book.All(), t.filter)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch t.sortBy {
		case SortName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortStatus:
			less = a.EffectiveStatus() < b.EffectiveStatus()
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if !t.asc {
			return !less && !t.equal(a, b)
		}
		return less
	})
	return rows
}

func (t *Table) PageCount() int {
	n := len(t.Rows())
	if n == 0 {
		return 1
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// Page returns the rows of page n, counting from 1. Out of range pages are
// empty.
func (t *Table) Page(n int) []entity.Lead {
	rows := t.Rows()
	start := (n - 1) * t.pageSize
	if n < 1 || start >= len(rows) {
		return []entity.Lead{}
	}
	end := min(start+t.pageSize, len(rows))
	return rows[start:end]
}

// GoTo moves to page n, clamped to the valid range.
func (t *Table) GoTo(n int) int {
	t.page = max(1, min(n, t.PageCount()))
	return t.page
}

func (t *Table) Current() []entity.Lead {
	return t.Page(t.GoTo(t.page))
}

// ChangeStatus applies the new status right away and commits it. On failure
// the row goes back to its previous status and the operator is alerted.
func (t *Table) ChangeStatus(ctx context.Context, id, status string) error {
	tx := optimisticUpdate(t.book, t.gateway, id, entity.LeadPatch{Status: &status}, t.logger)
	if err := tx.Execute(ctx); err != nil {
		t.logger.Error("status change rolled back",
			zap.String("lead_id", id),
			zap.String("to", status),
			zap.Error(err),
		)
		if t.notifier != nil {
			t.notifier.Alert("Error al actualizar el estado: " + Reason(err))
		}
		return err
	}
	return nil
}

// Export renders the filtered rows as a workbook.
func (t *Table) Export(now time.Time) ([]byte, string, error) {
	rows := t.Rows()
	if len(rows) == 0 {
		return nil, "", export.ErrNothingToExport
	}
	data, err := export.Workbook(rows)
	if err != nil {
		return nil, "", err
	}
	return data, export.Filename(t.filter, now), nil
}

func (t *Table) equal(a, b entity.Lead) bool {
	switch t.sortBy {
	case SortName:
		return strings.EqualFold(a.Name, b.Name)
	case SortStatus:
		return a.EffectiveStatus() == b.EffectiveStatus()
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}

// NotesPreview shortens notes to width runes, ending with an ellipsis when
// cut. Line breaks become spaces.
func NotesPreview(notes *string, width int) string {
	if notes == nil || width <= 0 {
		return ""
	}
	text := strings.Join(strings.Fields(*notes), " ")
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	r := []rune(text)
	return strings.TrimRight(string(r[:width-1]), " ") + "…"
}
