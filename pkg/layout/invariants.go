package layout

import (
	"math"

	"go.uber.org/multierr"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// checkTol is the absolute slack allowed when comparing sizes.
const checkTol = 1e-6

// Check validates the size and structure invariants of l under cons and
// returns every violation it finds, combined with multierr. A nil result
// means l is well formed:
//
//   - children of a container add up to its size along its axis
//   - every child matches its container's size across the axis
//   - no container except the root has fewer than two children
//   - no node is smaller than the configured minimum
//
// Snapshots straight out of [Engine.Format] can fail the last check when the
// container is too small for its children, and fail the first under
// [LeftoverDrop] when declared sizes leave space unassigned.
func Check(l *Layout, cons Constraints) error {
	if l == nil {
		return perrors.New(perrors.ErrCodeInvalidTree, "nil layout")
	}
	return CheckTree(l.root, cons)
}

// CheckTree is [Check] for a bare tree that has not been wrapped in a
// snapshot yet. It additionally reports empty and duplicate keys.
func CheckTree(root *Container, cons Constraints) error {
	if root == nil {
		return perrors.New(perrors.ErrCodeInvalidTree, "nil root container")
	}
	c := checker{cons: cons, seen: make(map[string]bool)}
	c.node(root, true)
	return c.err
}

type checker struct {
	cons Constraints
	seen map[string]bool
	err  error
}

func (c *checker) fail(code perrors.Code, format string, args ...any) {
	c.err = multierr.Append(c.err, perrors.New(code, format, args...))
}

func (c *checker) node(n Node, isRoot bool) {
	if n == nil {
		c.fail(perrors.ErrCodeInvalidTree, "nil node")
		return
	}
	key := n.NodeKey()
	switch {
	case key == "":
		c.fail(perrors.ErrCodeInvalidTree, "node without key")
	case c.seen[key]:
		c.fail(perrors.ErrCodeDuplicateKey, "key %q appears more than once", key)
	}
	c.seen[key] = true

	s := n.NodeSize()
	if !finite(s.Width) || !finite(s.Height) {
		c.fail(perrors.ErrCodeInvalidTree, "%q: size %gx%g is not finite", key, s.Width, s.Height)
	}
	if s.Width < c.cons.MinWidth-checkTol {
		c.fail(perrors.ErrCodeInvalidTree, "%q: width %g below minimum %g", key, s.Width, c.cons.MinWidth)
	}
	if s.Height < c.cons.MinHeight-checkTol {
		c.fail(perrors.ErrCodeInvalidTree, "%q: height %g below minimum %g", key, s.Height, c.cons.MinHeight)
	}

	ct, ok := n.(*Container)
	if !ok {
		return
	}
	if !ct.Axis.Valid() {
		c.fail(perrors.ErrCodeInvalidTree, "%q: unknown axis %q", key, ct.Axis)
		return
	}
	if !isRoot && len(ct.Children) < 2 {
		c.fail(perrors.ErrCodeInvalidTree, "%q: container has %d children, want at least 2", key, len(ct.Children))
	}
	if len(ct.Children) == 0 {
		return
	}

	axis := ct.Axis.Normalize()
	var sum float64
	for _, ch := range ct.Children {
		if ch == nil {
			c.fail(perrors.ErrCodeInvalidTree, "%q: nil child", key)
			continue
		}
		cs := ch.NodeSize()
		sum += cs.Along(axis)
		if math.Abs(cs.Across(axis)-s.Across(axis)) > checkTol {
			c.fail(perrors.ErrCodeInvalidTree, "%q: child %q is %g across %s, container is %g",
				key, ch.NodeKey(), cs.Across(axis), axis, s.Across(axis))
		}
		c.node(ch, false)
	}
	if math.Abs(sum-s.Along(axis)) > checkTol {
		c.fail(perrors.ErrCodeInvalidTree, "%q: children sum to %g along %s, container is %g",
			key, sum, axis, s.Along(axis))
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
