package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoColumns() *Layout {
	l := NewLayout()
	l.Add(Region{ID: "A", Kind: RegionColumn, Rect: Rect{X: 0, Y: 0, W: 10, H: 50}, Status: "A"})
	l.Add(Region{ID: "card", Kind: RegionCard, Rect: Rect{X: 1, Y: 1, W: 8, H: 5}, Parent: "A"})
	l.Add(Region{ID: "label", Kind: RegionOther, Rect: Rect{X: 2, Y: 2, W: 3, H: 1}, Parent: "card"})
	l.Add(Region{ID: "B", Kind: RegionColumn, Rect: Rect{X: 20, Y: 0, W: 10, H: 50}, Status: "B"})
	return l
}

func TestRect_ContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 5}
	assert.True(t, r.Contains(Point{0, 0}))
	assert.True(t, r.Contains(Point{9, 4}))
	assert.False(t, r.Contains(Point{10, 4}))
	assert.False(t, r.Contains(Point{9, 5}))
}

func TestLayout_CollidePointerWithinPrefersTopmost(t *testing.T) {
	l := twoColumns()

	id, ok := l.Collide(Point{3, 3}, Rect{X: 3, Y: 3, W: 1, H: 1}, "")
	assert.True(t, ok)
	assert.Equal(t, "card", id)

	id, ok = l.Collide(Point{3, 3}, Rect{X: 3, Y: 3, W: 1, H: 1}, "card")
	assert.True(t, ok)
	assert.Equal(t, "A", id)

	id, _ = l.Collide(Point{25, 40}, Rect{X: 25, Y: 40, W: 1, H: 1}, "")
	assert.Equal(t, "B", id)
}

func TestLayout_CollideFallsBackToClosestCorners(t *testing.T) {
	l := twoColumns()

	// in the gap between columns, nearer to B
	id, ok := l.Collide(Point{17, 10}, Rect{X: 16, Y: 0, W: 10, H: 50}, "")
	assert.True(t, ok)
	assert.Equal(t, "B", id)

	_, ok = NewLayout().Collide(Point{}, Rect{}, "")
	assert.False(t, ok)
}

func TestLayout_ColumnOf(t *testing.T) {
	l := twoColumns()

	status, ok := l.ColumnOf("label")
	assert.True(t, ok)
	assert.Equal(t, "A", status)

	status, ok = l.ColumnOf("B")
	assert.True(t, ok)
	assert.Equal(t, "B", status)

	_, ok = l.ColumnOf("missing")
	assert.False(t, ok)

	l.Add(Region{ID: "loop1", Parent: "loop2"})
	l.Add(Region{ID: "loop2", Parent: "loop1"})
	_, ok = l.ColumnOf("loop1")
	assert.False(t, ok)
}

func TestLayout_ElementAt(t *testing.T) {
	l := twoColumns()

	id, ok := l.ElementAt(Point{2, 2})
	assert.True(t, ok)
	assert.Equal(t, "label", id)

	_, ok = l.ElementAt(Point{15, 10})
	assert.False(t, ok)

	l.Reset()
	_, ok = l.Region("A")
	assert.False(t, ok)
}
