package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

func base(t *testing.T) *layout.Layout {
	t.Helper()
	d := layout.Draft{
		Axis: layout.Horizontal,
		Children: []layout.Draft{
			{Key: "A"},
			{Axis: layout.Vertical, Children: []layout.Draft{{Key: "X"}, {Key: "Y"}}},
		},
	}
	l, err := layout.Default().Format(d, layout.Size{Width: 300, Height: 200}, "R")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return l
}

func width(t *testing.T, l *layout.Layout, key string) float64 {
	t.Helper()
	n, ok := l.Node(key)
	if !ok {
		t.Fatalf("key %q missing", key)
	}
	return n.NodeSize().Width
}

func TestGestureUpdatesFromBase(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil, 0, nil)
	b := base(t)

	g, err := m.Begin(ctx, Spec{Kind: KindResize, Key: "A"}, b)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if g.ID == "" || g.Live != b {
		t.Fatalf("Begin() = %+v", g)
	}

	if _, err := m.Update(ctx, g.ID, layout.Size{Width: 10}); err != nil {
		t.Fatalf("Update(+10): %v", err)
	}
	g, err = m.Update(ctx, g.ID, layout.Size{Width: 20})
	if err != nil {
		t.Fatalf("Update(+20): %v", err)
	}
	if got := width(t, g.Live, "A"); got != 170 {
		t.Errorf("live width of A = %v, want 170 (base + 20)", got)
	}
	if got := width(t, b, "A"); got != 150 {
		t.Errorf("base width of A = %v, want 150", got)
	}
	if diff := cmp.Diff(layout.Size{Width: 20}, g.Applied); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}

	final, err := m.End(ctx, g.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if got := width(t, final, "A"); got != 170 {
		t.Errorf("committed width of A = %v, want 170", got)
	}
	if _, err := m.Update(ctx, g.ID, layout.Size{Width: 1}); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("Update after End error = %v, want NOT_FOUND", err)
	}
}

func TestGestureResizeReadsFatherAxis(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil, 0, nil)

	g, err := m.Begin(ctx, Spec{Kind: KindResize, Key: "X"}, base(t))
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	g, err = m.Update(ctx, g.ID, layout.Size{Width: 999, Height: 30})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	x, _ := g.Live.Node("X")
	if got := x.NodeSize(); got != (layout.Size{Width: 150, Height: 130}) {
		t.Errorf("X = %+v, want 150x130", got)
	}
	if diff := cmp.Diff(layout.Size{Height: 30}, g.Applied); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}
}

func TestGestureCancel(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil, 0, nil)
	b := base(t)

	g, _ := m.Begin(ctx, Spec{Kind: KindScale}, b)
	if _, err := m.Update(ctx, g.ID, layout.Size{Width: 100, Height: 50}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := m.Cancel(ctx, g.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got != b {
		t.Error("Cancel should return the base snapshot")
	}
	if _, err := m.Get(ctx, g.ID); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("Get after Cancel error = %v, want NOT_FOUND", err)
	}
}

func TestGestureCorner(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil, 0, nil)

	g, err := m.Begin(ctx, Spec{Kind: KindCorner, WidthKey: "A", HeightKey: "X"}, base(t))
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	g, err = m.Update(ctx, g.ID, layout.Size{Width: 30, Height: -20})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if diff := cmp.Diff(layout.Size{Width: 30, Height: -20}, g.Applied); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}
}

func TestGestureBeginErrors(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil, 0, nil)
	b := base(t)

	tests := []struct {
		name string
		spec Spec
		code perrors.Code
	}{
		{"unknown key", Spec{Kind: KindResize, Key: "nope"}, perrors.ErrCodeKeyNotFound},
		{"last child", Spec{Kind: KindResize, Key: "Y"}, perrors.ErrCodeNoSibling},
		{"root", Spec{Kind: KindResize, Key: "R"}, perrors.ErrCodeRootOperation},
		{"corner wrong axes", Spec{Kind: KindCorner, WidthKey: "X", HeightKey: "A"}, perrors.ErrCodeInvalidInput},
		{"unknown kind", Spec{Kind: "pinch"}, perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Begin(ctx, tt.spec, b); !perrors.Is(err, tt.code) {
				t.Errorf("Begin error = %v, want %s", err, tt.code)
			}
		})
	}
	if _, err := m.Begin(ctx, Spec{Kind: KindScale}, nil); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("Begin(nil base) error = %v, want INVALID_INPUT", err)
	}
}

func TestGestureExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, nil, time.Millisecond, nil)

	g, err := m.Begin(ctx, Spec{Kind: KindScale}, base(t))
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	other, _ := m.Begin(ctx, Spec{Kind: KindScale}, base(t))
	time.Sleep(5 * time.Millisecond)

	if _, err := m.Update(ctx, g.ID, layout.Size{Width: 1}); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("Update on expired gesture error = %v, want NOT_FOUND", err)
	}
	n, err := m.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 || store.Len() != 0 {
		t.Errorf("Cleanup removed %d, %d left; want 1 removed, 0 left (other=%s)", n, store.Len(), other.ID)
	}
}

func TestGestureConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, nil, 0, nil)
	g, _ := m.Begin(ctx, Spec{Kind: KindResize, Key: "A"}, base(t))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(d float64) {
			defer wg.Done()
			if _, err := m.Update(ctx, g.ID, layout.Size{Width: d}); err != nil {
				t.Errorf("Update(%v): %v", d, err)
			}
		}(float64(i))
	}
	wg.Wait()

	cur, err := m.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// Whichever update ran last, live must equal base plus its offset.
	if got, want := width(t, cur.Live, "A"), 150+cur.Offset.Width; got != want {
		t.Errorf("live width %v, want %v", got, want)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := &Gesture{ID: "g", ExpiresAt: time.Now().Add(time.Minute)}
	if err := s.Set(ctx, g); err != nil {
		t.Fatal(err)
	}
	g.Offset = layout.Size{Width: 5}

	got, err := s.Get(ctx, "g")
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Offset != (layout.Size{}) {
		t.Error("store should keep its own copy")
	}
	if missing, err := s.Get(ctx, "nope"); missing != nil || err != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", missing, err)
	}
}
