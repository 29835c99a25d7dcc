package layout

import (
	"math"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Scale applies delta to the whole snapshot, as when the viewport that
// hosts the layout changes size. The change is redistributed proportionally
// through the tree (see [Engine.ScaleNode]). Each component of the returned
// applied delta may be smaller in magnitude than requested when shrinking
// runs into minimum sizes. A zero applied delta returns l itself. NaN or
// infinite components are rejected with INVALID_INPUT.
func (e *Engine) Scale(l *Layout, delta Size) (*Layout, Size, error) {
	if err := perrors.ValidateDelta("width delta", delta.Width); err != nil {
		return l, Size{}, err
	}
	if err := perrors.ValidateDelta("height delta", delta.Height); err != nil {
		return l, Size{}, err
	}
	n, applied := e.ScaleNode(l.root, delta)
	if applied.IsZero() {
		return l, applied, nil
	}
	next, err := NewLayout(n.(*Container))
	if err != nil {
		return nil, Size{}, err
	}
	return next, applied, nil
}

// ScaleTo scales l so that its root takes size, returning the applied delta.
func (e *Engine) ScaleTo(l *Layout, size Size) (*Layout, Size, error) {
	return e.Scale(l, size.Sub(l.Size()))
}

// ScaleNode applies delta to n and returns the resized node with the delta
// it actually accepted. Leaves clamp directly against the minimum size.
// Containers split each axis independently:
//
//   - Across their own axis every child must keep the container's size, so
//     the child that can shrink least binds, and that change is applied to
//     all children uniformly.
//   - Along their own axis the delta is spread evenly over the children that
//     still have room, in repeated passes; a child that would drop below its
//     minimum is clamped and the unplaced remainder goes back into the pool.
//     This takes at most one pass per child.
//
// Growth is never constrained. Non-finite components count as zero. n itself
// is returned when nothing changes.
func (e *Engine) ScaleNode(n Node, delta Size) (Node, Size) {
	delta = Size{Width: finiteOrZero(delta.Width), Height: finiteOrZero(delta.Height)}
	switch n := n.(type) {
	case *Leaf:
		applied := Size{
			Width:  clampDelta(n.Size.Width, delta.Width, e.cons.MinWidth),
			Height: clampDelta(n.Size.Height, delta.Height, e.cons.MinHeight),
		}
		if applied.IsZero() {
			return n, applied
		}
		return &Leaf{Key: n.Key, Size: n.Size.Add(applied)}, applied
	case *Container:
		return e.scaleContainer(n, delta)
	}
	return n, Size{}
}

func (e *Engine) scaleContainer(c *Container, delta Size) (*Container, Size) {
	axis := c.Axis.Normalize()
	cross := axis.Flip()

	if len(c.Children) == 0 {
		applied := Size{
			Width:  clampDelta(c.Size.Width, delta.Width, e.cons.MinWidth),
			Height: clampDelta(c.Size.Height, delta.Height, e.cons.MinHeight),
		}
		if applied.IsZero() {
			return c, applied
		}
		return c.with(c.Size.Add(applied), nil), applied
	}

	appliedCross := delta.Along(cross)
	if appliedCross < 0 {
		for _, ch := range c.Children {
			appliedCross = math.Max(appliedCross, -e.capacity(ch, cross))
		}
	}

	shares := e.distribute(c.Children, axis, delta.Along(axis))
	var appliedAlong float64
	for _, s := range shares {
		appliedAlong += s
	}

	if appliedAlong == 0 && appliedCross == 0 {
		return c, Size{}
	}

	children := make([]Node, len(c.Children))
	for i, ch := range c.Children {
		d := AxisSize(axis, shares[i]).WithAlong(cross, appliedCross)
		children[i], _ = e.ScaleNode(ch, d)
	}
	applied := AxisSize(axis, appliedAlong).WithAlong(cross, appliedCross)
	return c.with(c.Size.Add(applied), children), applied
}

// distribute splits total along axis over children. Positive totals are
// split evenly in one pass; negative totals are split in repeated passes
// over the children that still have room to shrink.
func (e *Engine) distribute(children []Node, axis Axis, total float64) []float64 {
	shares := make([]float64, len(children))
	if total == 0 || len(children) == 0 {
		return shares
	}
	if total > 0 {
		each := total / float64(len(children))
		for i := range shares {
			shares[i] = each
		}
		return shares
	}

	caps := make([]float64, len(children))
	active := make([]int, 0, len(children))
	for i, ch := range children {
		caps[i] = e.capacity(ch, axis)
		if caps[i] > eps {
			active = append(active, i)
		}
	}

	pool := total
	for len(active) > 0 && pool < -eps {
		share := pool / float64(len(active))
		pool = 0
		next := active[:0:0]
		for _, i := range active {
			room := caps[i] + shares[i]
			if -share >= room {
				pool += share + room
				shares[i] = -caps[i]
				continue
			}
			shares[i] += share
			next = append(next, i)
		}
		active = next
	}
	return shares
}

// capacity reports how far n can shrink along axis before some node in it
// reaches its minimum size. Along a container's own axis the children's
// capacities add up; across it the most constrained child binds.
func (e *Engine) capacity(n Node, axis Axis) float64 {
	c, ok := n.(*Container)
	if !ok || len(c.Children) == 0 {
		return math.Max(0, n.NodeSize().Along(axis)-e.cons.Min(axis))
	}
	if c.Axis.Normalize() == axis.Normalize() {
		var sum float64
		for _, ch := range c.Children {
			sum += e.capacity(ch, axis)
		}
		return sum
	}
	low := math.Inf(1)
	for _, ch := range c.Children {
		low = math.Min(low, e.capacity(ch, axis))
	}
	return low
}

// clampDelta limits a shrinking delta so that size does not go below min.
// Sizes already below min cannot shrink at all; growth passes unchanged.
func clampDelta(size, delta, min float64) float64 {
	if delta >= 0 {
		return delta
	}
	room := math.Max(0, size-min)
	return math.Max(delta, -room)
}

func finiteOrZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
