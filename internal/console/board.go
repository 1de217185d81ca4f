package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

// ActivationDistance is how far the pointer must travel before a press on a
// card becomes a drag. Shorter gestures are clicks.
const ActivationDistance = 8

type DragPhase int

const (
	DragIdle DragPhase = iota
	DragPending
	DragActive
)

type DropOutcome int

const (
	// DropNotStarted: the gesture never became a drag.
	DropNotStarted DropOutcome = iota
	DropCancelled
	DropUnresolved
	DropUnchanged
	DropMoved
	DropFailed
)

func (o DropOutcome) String() string {
	switch o {
	case DropNotStarted:
		return "not-started"
	case DropCancelled:
		return "cancelled"
	case DropUnresolved:
		return "unresolved"
	case DropUnchanged:
		return "unchanged"
	case DropMoved:
		return "moved"
	case DropFailed:
		return "failed"
	}
	return "unknown"
}

type DropResult struct {
	Outcome DropOutcome
	LeadID  string
	Target  string
	From    string
	To      string
	Err     error

	tx *Transaction
}

// Pending reports whether the result still needs Commit.
func (r DropResult) Pending() bool {
	return r.tx != nil
}

type Column struct {
	Status string
	Color  string
	Leads  []entity.Lead
}

// Board groups visible leads by status and turns drag gestures into status
// changes.
type Board struct {
	book     *LeadBook
	gateway  Gateway
	notifier Notifier
	notes    *NotesEditor
	logger   *zap.Logger
	layout   *Layout

	mu      sync.Mutex
	phase   DragPhase
	active  string
	origin  Point
	pointer Point
}

func NewBoard(book *LeadBook, gw Gateway, notifier Notifier, notes *NotesEditor, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		book:     book,
		gateway:  gw,
		notifier: notifier,
		notes:    notes,
		logger:   logger,
		layout:   NewLayout(),
	}
}

// Layout is the geometry the renderer records after drawing the board.
func (b *Board) Layout() *Layout {
	return b.layout
}

// Columns returns one column per board status, in taxonomy order, holding
// the visible leads of that status.
func (b *Board) Columns() []Column {
	statuses := entity.BoardStatuses()
	cols := make([]Column, len(statuses))
	index := make(map[string]int, len(statuses))
	for i, s := range statuses {
		cols[i] = Column{Status: s, Color: entity.StatusColor(s), Leads: []entity.Lead{}}
		index[s] = i
	}

	for _, lead := range b.book.All() {
		if i, ok := index[lead.EffectiveStatus()]; ok {
			cols[i].Leads = append(cols[i].Leads, lead)
		}
	}
	return cols
}

func (b *Board) Phase() DragPhase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

func (b *Board) ActiveID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != DragActive {
		return ""
	}
	return b.active
}

// ClickSuppressed is true while a drag is in progress.
func (b *Board) ClickSuppressed() bool {
	return b.Phase() == DragActive
}

// Click returns the lead to show in the detail overlay, unless a drag is in
// progress or the card is not on the board.
func (b *Board) Click(id string) (entity.Lead, bool) {
	if b.ClickSuppressed() {
		return entity.Lead{}, false
	}
	return b.visibleLead(id)
}

// PointerDown arms a drag on card id. It refuses while a notes field has
// focus or another gesture is in progress.
func (b *Board) PointerDown(id string, p Point) bool {
	if b.notes != nil && b.notes.Focused() {
		return false
	}
	if _, ok := b.visibleLead(id); !ok {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != DragIdle {
		return false
	}
	b.phase = DragPending
	b.active = id
	b.origin = p
	b.pointer = p
	return true
}

// PointerMove tracks the pointer and starts the drag once it has travelled
// ActivationDistance. It reports whether a drag is active.
func (b *Board) PointerMove(p Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case DragPending:
		b.pointer = p
		if p.Dist(b.origin) >= ActivationDistance {
			b.phase = DragActive
		}
	case DragActive:
		b.pointer = p
	}
	return b.phase == DragActive
}

// PickUp starts a keyboard drag, which needs no travel.
func (b *Board) PickUp(id string) bool {
	if b.notes != nil && b.notes.Focused() {
		return false
	}
	if _, ok := b.visibleLead(id); !ok {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != DragIdle {
		return false
	}
	b.phase = DragActive
	b.active = id
	return true
}

func (b *Board) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

// PointerUp ends a pointer gesture. The drop target is found by hit-testing
// the layout. A resolved move is applied to the book and returned pending;
// the caller finishes it with Commit.
func (b *Board) PointerUp(p Point) DropResult {
	b.mu.Lock()
	phase, id, origin := b.phase, b.active, b.origin
	b.reset()
	b.mu.Unlock()

	switch phase {
	case DragIdle:
		return DropResult{Outcome: DropCancelled}
	case DragPending:
		return DropResult{Outcome: DropNotStarted, LeadID: id}
	}

	dragged := Rect{X: p.X, Y: p.Y, W: 1, H: 1}
	if r, ok := b.layout.Region(id); ok {
		dragged = r.Rect.Translate(p.Sub(origin))
	}
	target, _ := b.layout.Collide(p, dragged, "")

	return b.drop(id, target, &p)
}

// DropOn ends a keyboard drag on the given target id.
func (b *Board) DropOn(target string) DropResult {
	b.mu.Lock()
	phase, id := b.phase, b.active
	b.reset()
	b.mu.Unlock()

	if phase != DragActive {
		return DropResult{Outcome: DropCancelled}
	}
	return b.drop(id, target, nil)
}

// Commit sends a pending move to the gateway. On failure the lead is put
// back as it was before the drop and the operator is alerted.
func (b *Board) Commit(ctx context.Context, res DropResult) DropResult {
	if res.tx == nil {
		return res
	}
	tx := res.tx
	res.tx = nil

	if err := tx.Execute(ctx); err != nil {
		res.Outcome = DropFailed
		res.Err = err
		b.logger.Error("status change rolled back",
			zap.String("lead_id", res.LeadID),
			zap.String("from", res.From),
			zap.String("to", res.To),
			zap.Error(err),
		)
		if b.notifier != nil {
			b.notifier.Alert("Error al actualizar el estado del lead: " + Reason(err))
		}
	}
	return res
}

func (b *Board) drop(id, target string, at *Point) DropResult {
	res := DropResult{LeadID: id, Target: target}

	lead, ok := b.visibleLead(id)
	if !ok {
		res.Outcome = DropUnresolved
		b.logger.Warn("dropped card is not on the board", zap.String("active_card", id))
		return res
	}
	res.From = lead.EffectiveStatus()

	status, ok := b.resolveTarget(target, at)
	if !ok {
		res.Outcome = DropUnresolved
		fields := []zap.Field{zap.String("drop_target", target), zap.String("active_card", id)}
		if at != nil {
			fields = append(fields, zap.Int("x", at.X), zap.Int("y", at.Y))
		}
		b.logger.Warn("drop target unresolved", fields...)
		return res
	}
	res.To = status

	if status == res.From {
		res.Outcome = DropUnchanged
		return res
	}

	tx := optimisticUpdate(b.book, b.gateway, id, entity.LeadPatch{Status: &status}, b.logger)
	if _, err := tx.Step(context.Background()); err != nil {
		res.Outcome = DropUnresolved
		res.Err = err
		b.logger.Warn("drop could not be applied", zap.String("active_card", id), zap.Error(err))
		return res
	}

	res.Outcome = DropMoved
	res.tx = tx
	return res
}

// resolveTarget maps a drop target to a board status: a column id, then a
// card id, then the nearest enclosing column of the target or of the element
// under the drop point.
func (b *Board) resolveTarget(target string, at *Point) (string, bool) {
	if isBoardStatus(target) {
		return target, true
	}

	if lead, ok := b.visibleLead(target); ok {
		return lead.EffectiveStatus(), true
	}

	if status, ok := b.layout.ColumnOf(target); ok && isBoardStatus(status) {
		return status, true
	}
	if at != nil {
		if el, ok := b.layout.ElementAt(*at); ok {
			if status, ok := b.layout.ColumnOf(el); ok && isBoardStatus(status) {
				return status, true
			}
		}
	}
	return "", false
}

func (b *Board) visibleLead(id string) (entity.Lead, bool) {
	if id == "" {
		return entity.Lead{}, false
	}
	lead, ok := b.book.Get(id)
	if !ok || entity.IsHiddenStatus(lead.EffectiveStatus()) {
		return entity.Lead{}, false
	}
	return lead, true
}

// reset must be called with mu held.
func (b *Board) reset() {
	b.phase = DragIdle
	b.active = ""
	b.origin = Point{}
	b.pointer = Point{}
}

func isBoardStatus(s string) bool {
	return entity.IsValidStatus(s) && !entity.IsHiddenStatus(s)
}
