package layout

import (
	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Direction is where a dragged node lands relative to its drop target.
type Direction string

const (
	Top    Direction = "top"
	Right  Direction = "right"
	Bottom Direction = "bottom"
	Left   Direction = "left"
	Center Direction = "center"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", perrors.New(perrors.ErrCodeInvalidDirection,
			"unknown direction %q (want top, right, bottom, left or center)", s)
	}
	return d, nil
}

// Valid reports whether d is one of the five directions.
func (d Direction) Valid() bool {
	switch d {
	case Top, Right, Bottom, Left, Center:
		return true
	}
	return false
}

// Axis returns the axis a drop in direction d splits along: vertical for
// top and bottom, horizontal for left and right, empty for center.
func (d Direction) Axis() Axis {
	switch d {
	case Top, Bottom:
		return Vertical
	case Left, Right:
		return Horizontal
	}
	return ""
}

// Leading reports whether the dragged node goes before the target.
func (d Direction) Leading() bool {
	return d == Top || d == Left
}

// Opposite returns the mirrored direction; center mirrors to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// edgeBand is the fraction of a target's extent that counts as an edge.
const edgeBand = 6

// HitTest maps absolute pointer coordinates over p to a drop direction.
// The outer sixth of each side is an edge zone, tested in the order top,
// right, bottom, left; everything else is center.
func HitTest(p Position, x, y float64) Direction {
	switch {
	case y-p.Y < p.Height/edgeBand:
		return Top
	case p.Right()-x < p.Width/edgeBand:
		return Right
	case p.Bottom()-y < p.Height/edgeBand:
		return Bottom
	case x-p.X < p.Width/edgeBand:
		return Left
	}
	return Center
}

// DropMask returns the part of p that a drop in direction d would occupy:
// the matching half for edge directions, the whole rectangle for center.
func DropMask(p Position, d Direction) Position {
	m := p
	switch d {
	case Left:
		m.Width = p.Width / 2
	case Right:
		m.X = p.X + p.Width/2
		m.Width = p.Width / 2
	case Top:
		m.Height = p.Height / 2
	case Bottom:
		m.Y = p.Y + p.Height/2
		m.Height = p.Height / 2
	}
	return m
}
