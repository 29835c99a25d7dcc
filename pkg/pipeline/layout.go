package pipeline

import (
	perrors "github.com/matzehuels/panelayout/pkg/errors"
	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// Format runs the format stage without caching.
func Format(e *layout.Engine, d layout.Draft, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForFormat(); err != nil {
		return nil, err
	}
	return e.Format(d, opts.Size(), opts.RootKey)
}

// StepResult reports one applied op. Requested and Applied are size deltas
// for the ops that move dividers or scale the root (resize, corner, scale,
// scale-to) and zero for structural edits. Changed is false when the op
// left the snapshot as it was.
type StepResult struct {
	Index     int          `json:"index"`
	Op        pkgio.OpKind `json:"op"`
	Requested layout.Size  `json:"requested"`
	Applied   layout.Size  `json:"applied"`
	Changed   bool         `json:"changed"`
}

// ApplyOp applies a single scripted op to l. On error l is returned
// unchanged together with the error.
func ApplyOp(e *layout.Engine, l *layout.Layout, op pkgio.Op) (*layout.Layout, StepResult, error) {
	res := StepResult{Op: op.Op}
	if err := op.Validate(); err != nil {
		return l, res, err
	}

	var (
		next *layout.Layout
		err  error
	)
	switch op.Op {
	case pkgio.OpResize:
		axis := layout.DefaultAxis
		if father, _, ok := l.Father(op.Key); ok {
			axis = father.Axis.Normalize()
		}
		var applied float64
		next, applied, err = e.Resize(l, op.Key, op.Delta)
		res.Requested = layout.AxisSize(axis, op.Delta)
		res.Applied = layout.AxisSize(axis, applied)
	case pkgio.OpCorner:
		res.Requested = layout.Size{Width: op.DX, Height: op.DY}
		next, res.Applied, err = e.ResizeCorner(l, op.WidthKey, op.DX, op.HeightKey, op.DY)
	case pkgio.OpScale:
		res.Requested = layout.Size{Width: op.Width, Height: op.Height}
		next, res.Applied, err = e.Scale(l, res.Requested)
	case pkgio.OpScaleTo:
		res.Requested = layout.Size{Width: op.Width, Height: op.Height}.Sub(l.Size())
		next, res.Applied, err = e.ScaleTo(l, layout.Size{Width: op.Width, Height: op.Height})
	case pkgio.OpRemove:
		next, err = e.Remove(l, op.Key)
	case pkgio.OpInsert:
		next, err = e.Insert(l, op.Key, op.Target, op.Direction)
	case pkgio.OpDrag:
		next, err = e.Drag(l, op.Key, op.Target, op.Direction)
	case pkgio.OpSwap:
		next, err = e.Swap(l, op.Key, op.Target)
	default:
		err = perrors.New(perrors.ErrCodeUnsupported, "op %q", op.Op)
	}
	if err != nil {
		return l, res, err
	}
	res.Changed = next != l
	return next, res, nil
}
