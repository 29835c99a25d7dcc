package layout

import (
	"fmt"
	"math"
)

const eps = 1e-9

// Axis is the direction along which a container lays out its children.
type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

// DefaultAxis is used for containers whose draft leaves the axis empty.
const DefaultAxis = Horizontal

// ParseAxis parses an axis name. The empty string yields [DefaultAxis].
func ParseAxis(s string) (Axis, error) {
	a := Axis(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown axis %q (want horizontal or vertical)", s)
	}
	return a.Normalize(), nil
}

// Valid reports whether a is a known axis or empty.
func (a Axis) Valid() bool {
	switch a {
	case "", Horizontal, Vertical:
		return true
	}
	return false
}

// Normalize maps the empty axis to [DefaultAxis].
func (a Axis) Normalize() Axis {
	if a == "" {
		return DefaultAxis
	}
	return a
}

// Flip returns the orthogonal axis.
func (a Axis) Flip() Axis {
	if a.Normalize() == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Size is a width/height pair in caller units (typically pixels).
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// AxisSize returns a Size whose component along a is v and whose other
// component is zero. It is the natural shape of a single-axis delta.
func AxisSize(a Axis, v float64) Size {
	return Size{}.WithAlong(a, v)
}

// Along returns the component of s along a.
func (s Size) Along(a Axis) float64 {
	if a.Normalize() == Vertical {
		return s.Height
	}
	return s.Width
}

// Across returns the component of s orthogonal to a.
func (s Size) Across(a Axis) float64 {
	return s.Along(a.Flip())
}

// WithAlong returns a copy of s with the component along a replaced by v.
func (s Size) WithAlong(a Axis, v float64) Size {
	if a.Normalize() == Vertical {
		s.Height = v
	} else {
		s.Width = v
	}
	return s
}

// WithAcross returns a copy of s with the component orthogonal to a replaced by v.
func (s Size) WithAcross(a Axis, v float64) Size {
	return s.WithAlong(a.Flip(), v)
}

// Add returns the component-wise sum of s and o.
func (s Size) Add(o Size) Size {
	return Size{Width: s.Width + o.Width, Height: s.Height + o.Height}
}

// Sub returns the component-wise difference s - o.
func (s Size) Sub(o Size) Size {
	return Size{Width: s.Width - o.Width, Height: s.Height - o.Height}
}

// IsZero reports whether both components are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// ApproxEqual reports whether s and o differ by at most tol in each component.
func (s Size) ApproxEqual(o Size, tol float64) bool {
	return math.Abs(s.Width-o.Width) <= tol && math.Abs(s.Height-o.Height) <= tol
}

// Node is a concrete tree node: either a *[Leaf] or a *[Container].
// The set of implementations is closed; dispatch with a type switch.
type Node interface {
	NodeKey() string
	NodeSize() Size
	node()
}

// Leaf is a terminal node standing for one piece of caller content.
// Its key is assigned by the caller and stays stable across tree edits.
type Leaf struct {
	Key  string
	Size Size
}

func (l *Leaf) NodeKey() string { return l.Key }
func (l *Leaf) NodeSize() Size  { return l.Size }
func (*Leaf) node()             {}

// Container is an internal node that splits its space among ordered
// children along Axis. Child order is the visual left-to-right or
// top-to-bottom sequence.
type Container struct {
	Key      string
	Axis     Axis
	Size     Size
	Children []Node
}

func (c *Container) NodeKey() string { return c.Key }
func (c *Container) NodeSize() Size  { return c.Size }
func (*Container) node()             {}

// IndexOf returns the position of the child with the given key, or -1.
func (c *Container) IndexOf(key string) int {
	for i, ch := range c.Children {
		if ch.NodeKey() == key {
			return i
		}
	}
	return -1
}

// with returns a shallow copy of c carrying the given size and children.
func (c *Container) with(size Size, children []Node) *Container {
	return &Container{Key: c.Key, Axis: c.Axis, Size: size, Children: children}
}

// Kind discriminates draft nodes.
type Kind string

const (
	KindContainer Kind = "container"
	KindLeaf      Kind = "leaf"
)

// Draft is a sparse, partially specified layout tree as supplied by a
// caller. Width and Height of zero mean "unspecified"; an empty Axis means
// [DefaultAxis]. When Kind is empty a draft with children is a container and
// a draft without children is a leaf.
type Draft struct {
	Kind     Kind    `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
	Key      string  `json:"key,omitempty" toml:"key,omitempty" yaml:"key,omitempty"`
	Axis     Axis    `json:"axis,omitempty" toml:"axis,omitempty" yaml:"axis,omitempty"`
	Width    float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height   float64 `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Children []Draft `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// IsContainer reports whether d describes a container.
func (d Draft) IsContainer() bool {
	switch d.Kind {
	case KindContainer:
		return true
	case KindLeaf:
		return false
	}
	return len(d.Children) > 0
}

// DraftOf converts a concrete node back into a fully specified draft.
// Formatting the result with the node's own size reproduces the node.
func DraftOf(n Node) Draft {
	switch n := n.(type) {
	case *Leaf:
		return Draft{Kind: KindLeaf, Key: n.Key, Width: n.Size.Width, Height: n.Size.Height}
	case *Container:
		d := Draft{
			Kind:     KindContainer,
			Key:      n.Key,
			Axis:     n.Axis,
			Width:    n.Size.Width,
			Height:   n.Size.Height,
			Children: make([]Draft, len(n.Children)),
		}
		for i, ch := range n.Children {
			d.Children[i] = DraftOf(ch)
		}
		return d
	}
	return Draft{}
}
