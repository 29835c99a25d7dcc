package io

import (
	"io"
	"os"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// WriteLayout encodes a snapshot as indented JSON. Every node carries its
// "type", key, axis (containers only) and concrete size, so [ReadLayout]
// restores the snapshot exactly.
func WriteLayout(w io.Writer, l *layout.Layout) error {
	return encode(w, FormatJSON, layout.DraftOf(l.Root()))
}

// ExportLayout writes a snapshot to a JSON file at path.
func ExportLayout(l *layout.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteLayout(f, l)
}

// WriteDraft encodes a draft in format f. Use it to turn a snapshot back
// into an editable document in the caller's preferred encoding.
func WriteDraft(w io.Writer, d layout.Draft, f Format) error {
	return encode(w, f, d)
}

// positions is the JSON shape of a position listing.
type positions struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Positions []layout.Position `json:"positions"`
	Dividers  []layout.Divider  `json:"dividers,omitempty"`
	Pointers  []layout.Pointer  `json:"pointers,omitempty"`
}

// PositionOptions selects what [WritePositions] includes.
type PositionOptions struct {
	Containers bool // include container rectangles, not just leaves
	Handles    bool // include dividers and corner pointers
}

// WritePositions encodes the absolute geometry of l as JSON.
func WritePositions(w io.Writer, l *layout.Layout, opts PositionOptions) error {
	pm := l.Positions()
	out := positions{
		Width:     l.Size().Width,
		Height:    l.Size().Height,
		Positions: pm.Leaves(),
	}
	if opts.Containers {
		out.Positions = pm.All()
	}
	if opts.Handles {
		out.Dividers = layout.Dividers(l)
		out.Pointers = layout.Pointers(l)
	}
	if out.Positions == nil {
		out.Positions = []layout.Position{}
	}
	return encode(w, FormatJSON, out)
}
