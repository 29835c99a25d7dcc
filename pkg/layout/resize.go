package layout

import (
	"math"
	"slices"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Resize moves the divider between key and its next sibling by delta along
// the parent's axis: widths in horizontal containers, heights in vertical
// ones. A positive delta grows key and shrinks the siblings after it; a
// negative delta shrinks key and grows the next sibling.
//
// The shrinking side gives up space nearest-first. Once a sibling reaches
// its minimum size the remainder cascades to the one beyond it, until the
// delta is placed or the side runs out of siblings. The returned applied
// delta may therefore be smaller in magnitude than requested and is the
// authoritative amount. Container siblings are resized with
// [Engine.ScaleNode] along the parent's axis. The orthogonal dimension is
// never touched.
//
// When nothing can be applied l itself is returned with a zero delta.
func (e *Engine) Resize(l *Layout, key string, delta float64) (*Layout, float64, error) {
	father, i, err := l.locate(key)
	if err != nil {
		return l, 0, err
	}
	if i+1 >= len(father.Children) {
		return l, 0, perrors.New(perrors.ErrCodeNoSibling,
			"%q is the last child of %q and has no divider", key, father.Key)
	}
	if delta == 0 || math.IsNaN(delta) {
		return l, 0, nil
	}

	axis := father.Axis.Normalize()
	children := slices.Clone(father.Children)

	grow := i
	var order []int
	if delta > 0 {
		for j := i + 1; j < len(children); j++ {
			order = append(order, j)
		}
	} else {
		grow = i + 1
		for j := i; j >= 0; j-- {
			order = append(order, j)
		}
	}

	// applied sums what the siblings actually gave up, so an unbounded
	// delta saturates at their combined capacity.
	want := math.Abs(delta)
	var applied float64
	for _, j := range order {
		remaining := want - applied
		if remaining <= eps {
			break
		}
		take := math.Min(remaining, e.capacity(children[j], axis))
		if take <= 0 {
			continue
		}
		var got Size
		children[j], got = e.ScaleNode(children[j], AxisSize(axis, -take))
		applied -= got.Along(axis)
	}
	if applied <= eps {
		return l, 0, nil
	}
	children[grow], _ = e.ScaleNode(children[grow], AxisSize(axis, applied))

	next, err := l.derive(father.Key, father.with(father.Size, children))
	if err != nil {
		return l, 0, err
	}
	if delta < 0 {
		applied = -applied
	}
	return next, applied, nil
}

// ResizeCorner drags a corner handle: widthKey's divider moves by dx inside
// its horizontal parent, then heightKey's divider moves by dy inside its
// vertical parent. Both keys usually come from a [Pointer].
func (e *Engine) ResizeCorner(l *Layout, widthKey string, dx float64, heightKey string, dy float64) (*Layout, Size, error) {
	for _, c := range []struct {
		key  string
		axis Axis
	}{{widthKey, Horizontal}, {heightKey, Vertical}} {
		f, _, err := l.locate(c.key)
		if err != nil {
			return l, Size{}, err
		}
		if f.Axis.Normalize() != c.axis {
			return l, Size{}, perrors.New(perrors.ErrCodeInvalidInput,
				"%q sits in a %s container, want %s", c.key, f.Axis.Normalize(), c.axis)
		}
	}

	mid, ax, err := e.Resize(l, widthKey, dx)
	if err != nil {
		return l, Size{}, err
	}
	next, ay, err := e.Resize(mid, heightKey, dy)
	if err != nil {
		return l, Size{}, err
	}
	return next, Size{Width: ax, Height: ay}, nil
}
