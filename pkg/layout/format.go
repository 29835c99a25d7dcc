package layout

import (
	"strconv"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Format turns a sparse draft into a concrete snapshot filling size.
//
// For every container, a child that declares its size along the container's
// axis consumes exactly that much; the remaining space is split evenly among
// the children that declare nothing. A child inherits the container's
// cross-axis size unless it declares its own. Containers without a key are
// keyed parentKey/index; the root is keyed rootKey, falling back to the
// draft's key and then to [DefaultRootKey].
//
// When every child declares its size and the declarations leave space
// unclaimed, the engine's [LeftoverPolicy] decides. Over-subscription is not
// corrected: children whose declarations exceed the container surface as
// negative sizes, which [Check] reports.
func (e *Engine) Format(d Draft, size Size, rootKey string) (*Layout, error) {
	if err := perrors.ValidateDimension("container width", size.Width); err != nil {
		return nil, err
	}
	if err := perrors.ValidateDimension("container height", size.Height); err != nil {
		return nil, err
	}
	if d.Kind == KindLeaf {
		return nil, perrors.New(perrors.ErrCodeInvalidTree, "root must be a container, got leaf %q", d.Key)
	}
	if len(d.Children) == 0 && !size.IsZero() {
		return nil, perrors.New(perrors.ErrCodeEmptyTree,
			"layout has no children to fill %gx%g", size.Width, size.Height)
	}
	if rootKey == "" {
		rootKey = d.Key
	}
	if rootKey == "" {
		rootKey = DefaultRootKey
	}

	root, err := e.formatContainer(d, rootKey, size)
	if err != nil {
		return nil, err
	}
	return NewLayout(root)
}

func (e *Engine) formatContainer(d Draft, key string, size Size) (*Container, error) {
	if !d.Axis.Valid() {
		return nil, perrors.New(perrors.ErrCodeInvalidTree, "container %q has unknown axis %q", key, d.Axis)
	}
	axis := d.Axis.Normalize()

	sizes := make([]Size, len(d.Children))
	remaining := size.Along(axis)
	var open []int
	for i, ch := range d.Children {
		s := Size{Width: ch.Width, Height: ch.Height}
		if s.Across(axis) == 0 {
			s = s.WithAcross(axis, size.Across(axis))
		}
		if a := s.Along(axis); a != 0 {
			remaining -= a
		} else {
			open = append(open, i)
		}
		sizes[i] = s
	}

	switch {
	case len(open) > 0:
		share := remaining / float64(len(open))
		for _, i := range open {
			sizes[i] = sizes[i].WithAlong(axis, share)
		}
	case len(sizes) > 0 && remaining > eps:
		switch e.cons.Leftover {
		case LeftoverStretchLast:
			last := len(sizes) - 1
			sizes[last] = sizes[last].WithAlong(axis, sizes[last].Along(axis)+remaining)
		case LeftoverError:
			return nil, perrors.New(perrors.ErrCodeLeftoverSpace,
				"container %q leaves %g unassigned along %s", key, remaining, axis)
		}
	}

	c := &Container{Key: key, Axis: axis, Size: size, Children: make([]Node, len(d.Children))}
	for i, ch := range d.Children {
		if !ch.IsContainer() {
			if len(ch.Children) > 0 {
				return nil, perrors.New(perrors.ErrCodeInvalidTree, "leaf %q has children", ch.Key)
			}
			if err := perrors.ValidateKey(ch.Key); err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "child %d of %q", i, key)
			}
			c.Children[i] = &Leaf{Key: ch.Key, Size: sizes[i]}
			continue
		}
		childKey := ch.Key
		if childKey == "" {
			childKey = key + "/" + strconv.Itoa(i)
		}
		sub, err := e.formatContainer(ch, childKey, sizes[i])
		if err != nil {
			return nil, err
		}
		c.Children[i] = sub
	}
	return c, nil
}
