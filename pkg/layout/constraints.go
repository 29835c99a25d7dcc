package layout

import (
	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Default constraint values.
const (
	DefaultMinWidth  = 50.0
	DefaultMinHeight = 50.0

	// DefaultRootKey is the key given to the root container when the caller
	// supplies none.
	DefaultRootKey = "ROOT"
)

// LeftoverPolicy decides what [Engine.Format] does with container space that
// no child claims, which happens when every child declares its size along
// the container's axis and the declared sizes sum to less than the container.
type LeftoverPolicy string

const (
	// LeftoverDrop silently leaves the space unassigned.
	LeftoverDrop LeftoverPolicy = "drop"
	// LeftoverStretchLast grows the last child by the unclaimed amount.
	LeftoverStretchLast LeftoverPolicy = "stretch-last"
	// LeftoverError makes Format fail with LEFTOVER_SPACE.
	LeftoverError LeftoverPolicy = "error"
)

// Valid reports whether p is a known policy or empty (meaning drop).
func (p LeftoverPolicy) Valid() bool {
	switch p {
	case "", LeftoverDrop, LeftoverStretchLast, LeftoverError:
		return true
	}
	return false
}

// Constraints is the size policy of one engine instance.
type Constraints struct {
	MinWidth  float64
	MinHeight float64
	Leftover  LeftoverPolicy
}

// DefaultConstraints returns 50x50 minimums and the drop policy.
func DefaultConstraints() Constraints {
	return Constraints{
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
		Leftover:  LeftoverDrop,
	}
}

// Min returns the minimum size along a.
func (c Constraints) Min(a Axis) float64 {
	if a.Normalize() == Vertical {
		return c.MinHeight
	}
	return c.MinWidth
}

// MinSize returns the minimum leaf size.
func (c Constraints) MinSize() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Validate checks that minimums are non-negative and the policy is known.
func (c Constraints) Validate() error {
	if err := perrors.ValidateDimension("min width", c.MinWidth); err != nil {
		return err
	}
	if err := perrors.ValidateDimension("min height", c.MinHeight); err != nil {
		return err
	}
	if !c.Leftover.Valid() {
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown leftover policy %q", c.Leftover)
	}
	return nil
}
