// Package session tracks interactive gestures against layout snapshots.
//
// A gesture is one continuous pointer interaction: dragging a divider,
// dragging a corner pointer, or resizing the viewport. While it runs, the
// caller reports the total pointer offset since the gesture began, and the
// engine recomputes the live snapshot from the snapshot captured at the
// start (the base). Deltas are never chained, so two updates of +10 and +20
// leave the live snapshot at base+20, and rounding or clamping in one frame
// never leaks into the next.
//
// # Architecture
//
// Gestures are kept in a [Store] with automatic expiration. The store
// supports:
//   - Get/Set/Delete operations
//   - Expiration checking on read
//   - Cleanup of expired gestures
//
// [MemoryStore] is the only implementation; snapshots are immutable trees
// that only live in process memory.
//
// # Usage
//
//	m := session.NewManager(session.NewMemoryStore(), engine, session.DefaultTTL, logger)
//
//	g, err := m.Begin(ctx, session.Spec{Kind: session.KindResize, Key: "editor"}, base)
//	g, err = m.Update(ctx, g.ID, layout.Size{Width: 10})
//	g, err = m.Update(ctx, g.ID, layout.Size{Width: 20}) // base + 20
//	final, err := m.End(ctx, g.ID)
package session

import (
	"context"
	"time"

	"github.com/matzehuels/panelayout/pkg/layout"
)

// Kind names a gesture type.
type Kind string

const (
	// KindResize drags the divider after Key along its father's axis.
	KindResize Kind = "resize"
	// KindCorner drags a corner pointer: the divider after WidthKey
	// horizontally and the divider after HeightKey vertically.
	KindCorner Kind = "corner"
	// KindScale resizes the whole container.
	KindScale Kind = "scale"
)

// Spec describes the gesture to begin.
type Spec struct {
	Kind      Kind   `json:"kind"`
	Key       string `json:"key,omitempty"`
	WidthKey  string `json:"width_key,omitempty"`
	HeightKey string `json:"height_key,omitempty"`
}

// Gesture is one running interaction.
type Gesture struct {
	ID   string
	Spec Spec

	// Base is the snapshot captured when the gesture began.
	Base *layout.Layout
	// Live is Base with the latest offset applied.
	Live *layout.Layout
	// Offset is the latest requested offset and Applied the part of it the
	// engine could place.
	Offset  layout.Size
	Applied layout.Size

	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true if the gesture has expired.
func (g *Gesture) IsExpired() bool {
	return time.Now().After(g.ExpiresAt)
}

// Store is the interface for gesture storage backends.
type Store interface {
	// Get retrieves a gesture by ID.
	// Returns nil, nil if the gesture doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Gesture, error)

	// Set stores a gesture, replacing any gesture with the same ID.
	Set(ctx context.Context, g *Gesture) error

	// Delete removes a gesture.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired gestures and reports how many it removed.
	Cleanup(ctx context.Context) (int, error)
}

// DefaultTTL is how long a gesture may go without updates before it is
// dropped.
const DefaultTTL = 5 * time.Minute
