package console

import (
	"math"
)

type Point struct {
	X, Y int
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Rect is half-open: X <= x < X+W, Y <= y < Y+H.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X, r.Y + r.H},
		{r.X + r.W, r.Y + r.H},
	}
}

func (r Rect) Area() int {
	return r.W * r.H
}

// RegionKind tells what a rendered rectangle stands for.
type RegionKind int

const (
	RegionOther RegionKind = iota
	RegionColumn
	RegionCard
)

// Region is one rendered element. Parent is the ID of the enclosing region,
// or "" at the top level. Status is set on column regions.
type Region struct {
	ID     string
	Kind   RegionKind
	Rect   Rect
	Parent string
	Status string
}

func (r Region) droppable() bool {
	return r.Kind == RegionColumn || r.Kind == RegionCard
}

// Layout is the rendered geometry of the board, recorded by the renderer
// after every draw.
type Layout struct {
	regions []Region
	byID    map[string]int
}

func NewLayout() *Layout {
	return &Layout{byID: map[string]int{}}
}

// Add registers a region. A later region with the same ID replaces the
// earlier one. Later regions are drawn on top.
func (l *Layout) Add(r Region) {
	if i, ok := l.byID[r.ID]; ok {
		l.regions[i] = r
		return
	}
	l.byID[r.ID] = len(l.regions)
	l.regions = append(l.regions, r)
}

func (l *Layout) Reset() {
	l.regions = l.regions[:0]
	clear(l.byID)
}

func (l *Layout) Region(id string) (Region, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Region{}, false
	}
	return l.regions[i], true
}

// Collide picks the drop target for a pointer at p while the dragged card
// occupies dragged. Droppables directly under the pointer win, topmost
// first; only when none contains the pointer does the droppable with the
// nearest corners win.
func (l *Layout) Collide(p Point, dragged Rect, exclude string) (string, bool) {
	if id, ok := l.pointerWithin(p, exclude); ok {
		return id, true
	}
	return l.closestCorners(dragged, exclude)
}

func (l *Layout) pointerWithin(p Point, exclude string) (string, bool) {
	for i := len(l.regions) - 1; i >= 0; i-- {
		r := l.regions[i]
		if r.ID == exclude || !r.droppable() {
			continue
		}
		if r.Rect.Contains(p) {
			return r.ID, true
		}
	}
	return "", false
}

func (l *Layout) closestCorners(dragged Rect, exclude string) (string, bool) {
	best, bestDist := "", math.Inf(1)
	from := dragged.Corners()

	for _, r := range l.regions {
		if r.ID == exclude || !r.droppable() {
			continue
		}
		to := r.Rect.Corners()
		var d float64
		for i := range from {
			d += from[i].Dist(to[i])
		}
		if d < bestDist {
			best, bestDist = r.ID, d
		}
	}
	return best, best != ""
}

// ColumnOf walks up from the region id to the nearest column ancestor.
func (l *Layout) ColumnOf(id string) (string, bool) {
	seen := map[string]bool{}
	for id != "" && !seen[id] {
		seen[id] = true
		r, ok := l.Region(id)
		if !ok {
			return "", false
		}
		if r.Kind == RegionColumn {
			return r.Status, true
		}
		id = r.Parent
	}
	return "", false
}

// ElementAt returns the topmost region of any kind containing p.
func (l *Layout) ElementAt(p Point) (string, bool) {
	for i := len(l.regions) - 1; i >= 0; i-- {
		if l.regions[i].Rect.Contains(p) {
			return l.regions[i].ID, true
		}
	}
	return "", false
}
