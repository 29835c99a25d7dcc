package io

import (
	"io"
	"os"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// ReadDraft decodes a sparse layout tree from r.
//
// Unknown fields are rejected for JSON and YAML so that typos such as
// "heigth" fail loudly instead of silently meaning "unspecified". ReadDraft
// does not validate the tree; [layout.Engine.Format] does that.
func ReadDraft(r io.Reader, f Format) (layout.Draft, error) {
	var d layout.Draft
	if err := decode(r, f, &d); err != nil {
		return layout.Draft{}, err
	}
	return d, nil
}

// ImportDraft reads a draft file, picking the format from its extension.
func ImportDraft(path string) (layout.Draft, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return layout.Draft{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return layout.Draft{}, perrors.Wrap(perrors.ErrCodeNotFound, err, "open %s", path)
	}
	defer file.Close()
	return ReadDraft(file, f)
}

// ReadLayout decodes a JSON snapshot written by [WriteLayout] and rebuilds
// it with [layout.FromDraft].
func ReadLayout(r io.Reader) (*layout.Layout, error) {
	d, err := ReadDraft(r, FormatJSON)
	if err != nil {
		return nil, err
	}
	return layout.FromDraft(d)
}

// ImportLayout reads a JSON snapshot file.
func ImportLayout(path string) (*layout.Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeNotFound, err, "open %s", path)
	}
	defer file.Close()
	l, err := ReadLayout(file)
	if err != nil {
		return nil, perrors.Wrap(perrors.GetCode(err), err, "read %s", path)
	}
	return l, nil
}
