// Package layout is a constraint-based engine for resizable, splittable panel
// arrangements such as tiling window managers, IDE panel systems and
// dashboard builders.
//
// # Overview
//
// A layout is a tree. Internal nodes are [Container] values that split their
// space among ordered children along one [Axis]; terminal nodes are [Leaf]
// values that stand for one piece of caller content. The engine owns the
// geometry and the tree edits, nothing else: callers render the positions it
// returns and feed its snapshots back as the new source of truth.
//
// # Snapshots
//
// Every operation takes a [Layout] snapshot and returns a new one. Snapshots
// are never mutated; unchanged subtrees are shared between the input and the
// output, and only the path from the root to the edited node is copied. Each
// snapshot carries its own father index, so parent lookups can never be made
// against the wrong tree version.
//
// # Operations
//
//   - [Engine.Format] turns a sparse [Draft] into a concrete snapshot.
//   - [ToPositionMap] and [Layout.Positions] derive absolute rectangles.
//   - [Engine.Resize] moves the divider after a child, cascading overflow to
//     further siblings once a neighbour reaches its minimum size.
//   - [Engine.Scale] applies a two-dimensional delta to the whole tree,
//     redistributing it proportionally.
//   - [Engine.Remove], [Engine.Insert] and [Engine.Drag] relocate content,
//     splitting a parent into a new sub-container when the drop direction is
//     orthogonal to the parent's axis.
//
// # Partial results
//
// Minimum sizes come from [Constraints], passed to [New]. A resize or scale
// that cannot be fully applied is not an error: the engine returns the
// applied delta, which callers must treat as authoritative. Structural
// problems (unknown keys, edits of the root) are reported as
// [github.com/matzehuels/panelayout/pkg/errors.Error] values and leave the
// input snapshot untouched.
//
// # Gestures
//
// During a continuous drag every intermediate frame must be computed from the
// same pre-gesture base snapshot, not from the previous frame, so that many
// small deltas do not compound floating point drift. Package
// [github.com/matzehuels/panelayout/pkg/session] implements that protocol.
//
// # Concurrency
//
// An [Engine] holds only its constraints and is safe for concurrent use.
// Snapshots are immutable and may be shared freely between goroutines.
package layout
