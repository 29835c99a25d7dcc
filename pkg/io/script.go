package io

import (
	"io"
	"os"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// OpKind names one scripted operation.
type OpKind string

const (
	OpResize  OpKind = "resize"   // Key, Delta
	OpCorner  OpKind = "corner"   // WidthKey, DX, HeightKey, DY
	OpScale   OpKind = "scale"    // Width, Height as a delta
	OpScaleTo OpKind = "scale-to" // Width, Height as the target size
	OpRemove  OpKind = "remove"   // Key
	OpInsert  OpKind = "insert"   // Key, Target, Direction
	OpDrag    OpKind = "drag"     // Key, Target, Direction
	OpSwap    OpKind = "swap"     // Key, Target
)

// Op is one step of a script. Only the fields listed next to its kind are
// read; the rest are ignored.
type Op struct {
	Op        OpKind           `json:"op" toml:"op" yaml:"op"`
	Key       string           `json:"key,omitempty" toml:"key,omitempty" yaml:"key,omitempty"`
	Target    string           `json:"target,omitempty" toml:"target,omitempty" yaml:"target,omitempty"`
	Direction layout.Direction `json:"direction,omitempty" toml:"direction,omitempty" yaml:"direction,omitempty"`
	Delta     float64          `json:"delta,omitempty" toml:"delta,omitempty" yaml:"delta,omitempty"`
	WidthKey  string           `json:"width_key,omitempty" toml:"width_key,omitempty" yaml:"width_key,omitempty"`
	HeightKey string           `json:"height_key,omitempty" toml:"height_key,omitempty" yaml:"height_key,omitempty"`
	DX        float64          `json:"dx,omitempty" toml:"dx,omitempty" yaml:"dx,omitempty"`
	DY        float64          `json:"dy,omitempty" toml:"dy,omitempty" yaml:"dy,omitempty"`
	Width     float64          `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height    float64          `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
}

// Validate checks that op names a known kind and carries the fields that
// kind needs. Whether the keys exist is decided when the op is applied.
func (op Op) Validate() error {
	need := func(field, v string) error {
		if v == "" {
			return perrors.New(perrors.ErrCodeInvalidInput, "%s: missing %s", op.Op, field)
		}
		return nil
	}
	switch op.Op {
	case OpResize:
		if err := need("key", op.Key); err != nil {
			return err
		}
		return perrors.ValidateDelta("delta", op.Delta)
	case OpRemove:
		return need("key", op.Key)
	case OpCorner:
		if err := need("width_key", op.WidthKey); err != nil {
			return err
		}
		if err := need("height_key", op.HeightKey); err != nil {
			return err
		}
		if err := perrors.ValidateDelta("dx", op.DX); err != nil {
			return err
		}
		return perrors.ValidateDelta("dy", op.DY)
	case OpScale:
		if err := perrors.ValidateDelta("width", op.Width); err != nil {
			return err
		}
		return perrors.ValidateDelta("height", op.Height)
	case OpScaleTo:
		if err := perrors.ValidateDimension("width", op.Width); err != nil {
			return err
		}
		return perrors.ValidateDimension("height", op.Height)
	case OpInsert, OpDrag:
		if err := need("key", op.Key); err != nil {
			return err
		}
		if err := need("target", op.Target); err != nil {
			return err
		}
		if _, err := layout.ParseDirection(string(op.Direction)); err != nil {
			return err
		}
		return nil
	case OpSwap:
		if err := need("key", op.Key); err != nil {
			return err
		}
		return need("target", op.Target)
	}
	return perrors.New(perrors.ErrCodeInvalidInput, "unknown op %q", op.Op)
}

// Script is an ordered list of operations.
type Script struct {
	Ops []Op `json:"ops" toml:"ops" yaml:"ops"`
}

// ReadScript decodes a script from r and validates every op.
func ReadScript(r io.Reader, f Format) (Script, error) {
	var s Script
	if err := decode(r, f, &s); err != nil {
		return Script{}, err
	}
	for i, op := range s.Ops {
		if err := op.Validate(); err != nil {
			return Script{}, perrors.Wrap(perrors.GetCode(err), err, "op %d", i)
		}
	}
	return s, nil
}

// ImportScript reads a script file, picking the format from its extension.
func ImportScript(path string) (Script, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Script{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Script{}, perrors.Wrap(perrors.ErrCodeNotFound, err, "open %s", path)
	}
	defer file.Close()
	return ReadScript(file, f)
}
