package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// Manager runs gestures against an engine.
//
// Update, End and Cancel are serialized so that concurrent updates to one
// gesture cannot overwrite each other's results out of order.
type Manager struct {
	mu     sync.Mutex
	store  Store
	engine *layout.Engine
	ttl    time.Duration
	logger *log.Logger
}

// NewManager creates a manager. A nil engine means [layout.Default], a
// non-positive ttl means [DefaultTTL] and a nil logger discards output.
func NewManager(store Store, engine *layout.Engine, ttl time.Duration, logger *log.Logger) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if engine == nil {
		engine = layout.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Manager{store: store, engine: engine, ttl: ttl, logger: logger}
}

// Begin starts a gesture on base. The keys named by spec are checked
// against base up front, so a gesture that begins can always be updated.
func (m *Manager) Begin(ctx context.Context, spec Spec, base *layout.Layout) (*Gesture, error) {
	if base == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "gesture needs a base snapshot")
	}
	if _, _, err := m.apply(spec, base, layout.Size{}); err != nil {
		return nil, err
	}

	now := time.Now()
	g := &Gesture{
		ID:        uuid.NewString(),
		Spec:      spec,
		Base:      base,
		Live:      base,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Set(ctx, g); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "store gesture")
	}
	m.logger.Debug("gesture started", "id", g.ID, "kind", spec.Kind)
	return g, nil
}

// Update recomputes the live snapshot as base plus offset, where offset is
// the total pointer movement since Begin. It also extends the gesture's
// lifetime by the TTL.
func (m *Manager) Update(ctx context.Context, id string, offset layout.Size) (*Gesture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	live, applied, err := m.apply(g.Spec, g.Base, offset)
	if err != nil {
		return nil, err
	}
	g.Live = live
	g.Offset = offset
	g.Applied = applied
	g.ExpiresAt = time.Now().Add(m.ttl)
	if err := m.store.Set(ctx, g); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "store gesture")
	}
	return g, nil
}

// End finishes a gesture and returns its live snapshot, which becomes the
// caller's new committed layout.
func (m *Manager) End(ctx context.Context, id string) (*layout.Layout, error) {
	return m.finish(ctx, id, true)
}

// Cancel abandons a gesture and returns its base snapshot.
func (m *Manager) Cancel(ctx context.Context, id string) (*layout.Layout, error) {
	return m.finish(ctx, id, false)
}

// Get returns a running gesture.
func (m *Manager) Get(ctx context.Context, id string) (*Gesture, error) {
	return m.get(ctx, id)
}

// Cleanup drops expired gestures.
func (m *Manager) Cleanup(ctx context.Context) (int, error) {
	n, err := m.store.Cleanup(ctx)
	if n > 0 {
		m.logger.Debug("expired gestures removed", "count", n)
	}
	return n, err
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := m.Cleanup(ctx); err != nil {
				m.logger.Warn("gesture cleanup failed", "error", err)
			}
		}
	}
}

func (m *Manager) finish(ctx context.Context, id string, commit bool) (*layout.Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "delete gesture")
	}
	m.logger.Debug("gesture finished", "id", id, "commit", commit, "applied", g.Applied)
	if commit {
		return g.Live, nil
	}
	return g.Base, nil
}

func (m *Manager) get(ctx context.Context, id string) (*Gesture, error) {
	g, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "load gesture %q", id)
	}
	if g == nil {
		return nil, perrors.New(perrors.ErrCodeNotFound, "gesture %q not found or expired", id)
	}
	return g, nil
}

// apply computes base plus offset for spec. A resize reads the component of
// offset along the father's axis of the dragged divider.
func (m *Manager) apply(spec Spec, base *layout.Layout, offset layout.Size) (*layout.Layout, layout.Size, error) {
	switch spec.Kind {
	case KindResize:
		father, _, ok := base.Father(spec.Key)
		if !ok {
			_, _, err := m.engine.Resize(base, spec.Key, 0)
			return nil, layout.Size{}, err
		}
		axis := father.Axis.Normalize()
		live, applied, err := m.engine.Resize(base, spec.Key, offset.Along(axis))
		if err != nil {
			return nil, layout.Size{}, err
		}
		return live, layout.AxisSize(axis, applied), nil
	case KindCorner:
		return m.engine.ResizeCorner(base, spec.WidthKey, offset.Width, spec.HeightKey, offset.Height)
	case KindScale:
		return m.engine.Scale(base, offset)
	}
	return nil, layout.Size{}, perrors.New(perrors.ErrCodeInvalidInput, "unknown gesture kind %q", spec.Kind)
}
