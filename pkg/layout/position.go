package layout

import (
	"math"
	"slices"
)

// Point is an absolute offset in the root container's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position is the absolute rectangle of one node.
type Position struct {
	Key       string  `json:"key"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Container bool    `json:"container,omitempty"`
}

// Right returns the x-coordinate of the right edge.
func (p Position) Right() float64 { return p.X + p.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (p Position) Bottom() float64 { return p.Y + p.Height }

// Contains reports whether (x, y) lies inside p. Left and top edges are
// inside, right and bottom edges are outside.
func (p Position) Contains(x, y float64) bool {
	return x >= p.X && x < p.Right() && y >= p.Y && y < p.Bottom()
}

// PositionMap holds one position per node in depth-first traversal order.
type PositionMap struct {
	order []Position
	index map[string]int
}

// ToPositionMap walks c, advancing an offset cursor along each container's
// axis while inheriting the cross-axis offset unchanged. Containers get an
// entry too, before their children.
func ToPositionMap(c *Container, offset Point) PositionMap {
	m := PositionMap{index: make(map[string]int)}
	if c != nil {
		m.walk(c, offset)
	}
	return m
}

func (m *PositionMap) add(p Position) {
	m.index[p.Key] = len(m.order)
	m.order = append(m.order, p)
}

func (m *PositionMap) walk(n Node, at Point) {
	s := n.NodeSize()
	p := Position{Key: n.NodeKey(), X: at.X, Y: at.Y, Width: s.Width, Height: s.Height}
	c, ok := n.(*Container)
	if !ok {
		m.add(p)
		return
	}
	p.Container = true
	m.add(p)
	cursor := at
	for _, ch := range c.Children {
		m.walk(ch, cursor)
		step := ch.NodeSize().Along(c.Axis)
		if c.Axis == Vertical {
			cursor.Y += step
		} else {
			cursor.X += step
		}
	}
}

// Get returns the position of key.
func (m PositionMap) Get(key string) (Position, bool) {
	i, ok := m.index[key]
	if !ok {
		return Position{}, false
	}
	return m.order[i], true
}

// Len returns the number of entries.
func (m PositionMap) Len() int { return len(m.order) }

// All returns every entry in traversal order.
func (m PositionMap) All() []Position { return slices.Clone(m.order) }

// Leaves returns the leaf entries in traversal order.
func (m PositionMap) Leaves() []Position {
	var out []Position
	for _, p := range m.order {
		if !p.Container {
			out = append(out, p)
		}
	}
	return out
}

// Divider is the draggable boundary between a child and its next sibling.
// Dragging it resizes Key (and Next) along Axis, the parent's axis.
type Divider struct {
	Key    string  `json:"key"`
	Next   string  `json:"next"`
	Axis   Axis    `json:"axis"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Length float64 `json:"length"`
}

// Dividers returns one divider per child that has a next sibling, placed on
// the child's trailing edge. Horizontal containers produce vertical lines of
// the child's height; vertical containers produce horizontal lines.
func Dividers(l *Layout) []Divider {
	pm := l.Positions()
	var out []Divider
	for _, k := range l.order {
		c, ok := l.nodes[k].(*Container)
		if !ok {
			continue
		}
		for i := 0; i+1 < len(c.Children); i++ {
			p, _ := pm.Get(c.Children[i].NodeKey())
			d := Divider{Key: p.Key, Next: c.Children[i+1].NodeKey(), Axis: c.Axis}
			if c.Axis == Vertical {
				d.X, d.Y, d.Length = p.X, p.Bottom(), p.Width
			} else {
				d.X, d.Y, d.Length = p.Right(), p.Y, p.Height
			}
			out = append(out, d)
		}
	}
	return out
}

// Pointer is a corner handle where a vertical divider and a horizontal
// divider meet. Dragging it resizes WidthKey horizontally and HeightKey
// vertically in one gesture (see [Engine.ResizeCorner]).
type Pointer struct {
	WidthKey  string  `json:"width_key"`
	HeightKey string  `json:"height_key"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Pointers returns the corner handles of l: every place where a horizontal
// divider ends on a vertical divider's line.
func Pointers(l *Layout) []Pointer {
	const tol = 1e-6
	var vs, hs []Divider
	for _, d := range Dividers(l) {
		if d.Axis == Horizontal {
			vs = append(vs, d)
		} else {
			hs = append(hs, d)
		}
	}
	var out []Pointer
	for _, v := range vs {
		for _, h := range hs {
			touches := math.Abs(h.X-v.X) <= tol || math.Abs(h.X+h.Length-v.X) <= tol
			within := h.Y >= v.Y-tol && h.Y <= v.Y+v.Length+tol
			if touches && within {
				out = append(out, Pointer{WidthKey: v.Key, HeightKey: h.Key, X: v.X, Y: h.Y})
			}
		}
	}
	return out
}
