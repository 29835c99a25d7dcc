package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name        string
		draft       []Draft
		size        Size
		delta       Size
		wantApplied Size
		wantWidths  []float64
		wantHeight  float64
	}{
		{
			name:        "GrowEvenly",
			draft:       leaves("A", "B", "C"),
			size:        Size{Width: 300, Height: 100},
			delta:       Size{Width: 30, Height: 20},
			wantApplied: Size{Width: 30, Height: 20},
			wantWidths:  []float64{110, 110, 110},
			wantHeight:  120,
		},
		{
			name:        "ShrinkSkipsPinnedChild",
			draft:       []Draft{{Key: "A", Width: 50}, {Key: "B"}},
			size:        Size{Width: 300, Height: 100},
			delta:       Size{Width: -100},
			wantApplied: Size{Width: -100},
			wantWidths:  []float64{50, 150},
			wantHeight:  100,
		},
		{
			name:        "ShrinkClampedBothAxes",
			draft:       []Draft{{Key: "A", Width: 50}, {Key: "B"}},
			size:        Size{Width: 300, Height: 100},
			delta:       Size{Width: -300, Height: -80},
			wantApplied: Size{Width: -200, Height: -50},
			wantWidths:  []float64{50, 50},
			wantHeight:  50,
		},
		{
			name:        "RepeatedPasses",
			draft:       []Draft{{Key: "A", Width: 60}, {Key: "B", Width: 100}, {Key: "C"}},
			size:        Size{Width: 300, Height: 100},
			delta:       Size{Width: -90},
			wantApplied: Size{Width: -90},
			wantWidths:  []float64{50, 60, 100},
			wantHeight:  100,
		},
		{
			name:        "AllAtMinimum",
			draft:       leaves("A", "B"),
			size:        Size{Width: 100, Height: 50},
			delta:       Size{Width: -40, Height: -10},
			wantApplied: Size{},
			wantWidths:  []float64{50, 50},
			wantHeight:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Default()
			l := mustFormat(t, e, Draft{Axis: Horizontal, Children: tt.draft}, tt.size.Width, tt.size.Height)

			next, applied, err := e.Scale(l, tt.delta)
			if err != nil {
				t.Fatalf("Scale: %v", err)
			}
			if !applied.ApproxEqual(tt.wantApplied, 1e-9) {
				t.Errorf("applied = %+v, want %+v", applied, tt.wantApplied)
			}
			if diff := cmp.Diff(tt.wantWidths, widths(next)); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
			for _, ch := range next.Root().Children {
				if h := ch.NodeSize().Height; h != tt.wantHeight {
					t.Errorf("%s height = %g, want %g", ch.NodeKey(), h, tt.wantHeight)
				}
			}
			if got, want := next.Size(), tt.size.Add(applied); !got.ApproxEqual(want, 1e-9) {
				t.Errorf("root size = %+v, want %+v", got, want)
			}
			if err := Check(next, e.Constraints()); err != nil {
				t.Errorf("Check: %v", err)
			}
		})
	}
}

func TestScaleNested(t *testing.T) {
	e := Default()
	l := mustFormat(t, e, Draft{Axis: Horizontal, Children: []Draft{
		{Key: "A"},
		{Key: "S", Axis: Vertical, Children: []Draft{{Key: "X", Height: 50}, {Key: "Y"}}},
	}}, 400, 300)

	next, applied, err := e.Scale(l, Size{Width: -200, Height: -200})
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	// X is pinned at the minimum height, so S can only give up Y's spare
	// 200; along the root axis both columns shrink by 100.
	if want := (Size{Width: -200, Height: -200}); !applied.ApproxEqual(want, 1e-9) {
		t.Errorf("applied = %+v, want %+v", applied, want)
	}
	want := box("ROOT", Horizontal, 200, 100,
		leaf("A", 100, 100),
		box("S", Vertical, 100, 100, leaf("X", 100, 50), leaf("Y", 100, 50)))
	if diff := cmp.Diff(want, next.Root()); diff != "" {
		t.Errorf("Scale() mismatch (-want +got):\n%s", diff)
	}
}

func TestScaleZeroDelta(t *testing.T) {
	e := Default()
	l := mustFormat(t, e, Draft{Children: leaves("A", "B")}, 300, 100)
	next, applied, err := e.Scale(l, Size{})
	if err != nil || !applied.IsZero() || next != l {
		t.Errorf("Scale(0) = %p, %+v, %v; want input, zero, nil", next, applied, err)
	}
}

func TestScaleRejectsNonFinite(t *testing.T) {
	e := Default()
	l := mustFormat(t, e, Draft{Children: leaves("A", "B")}, 300, 100)

	for _, delta := range []Size{
		{Height: math.NaN()},
		{Width: math.Inf(1)},
		{Width: 10, Height: math.Inf(-1)},
	} {
		next, applied, err := e.Scale(l, delta)
		if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("Scale(%+v) error = %v, want INVALID_INPUT", delta, err)
		}
		if next != l || !applied.IsZero() {
			t.Errorf("Scale(%+v) = %p, %+v; want input, zero", delta, next, applied)
		}
	}

	if _, _, err := e.ScaleTo(l, Size{Width: math.Inf(1), Height: 100}); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("ScaleTo(+Inf) error = %v, want INVALID_INPUT", err)
	}
}

func TestScaleNodeIgnoresNonFinite(t *testing.T) {
	e := Default()
	n := box("S", Horizontal, 300, 100, leaf("A", 150, 100), leaf("B", 150, 100))

	got, applied := e.ScaleNode(n, Size{Width: 20, Height: math.NaN()})
	if want := (Size{Width: 20}); applied != want {
		t.Errorf("applied = %+v, want %+v", applied, want)
	}
	if err := CheckTree(got.(*Container), e.Constraints()); err != nil {
		t.Errorf("CheckTree: %v", err)
	}
}

func TestScaleTo(t *testing.T) {
	e := Default()
	l := mustFormat(t, e, Draft{Axis: Horizontal, Children: leaves("A", "B", "C")}, 300, 100)

	next, applied, err := e.ScaleTo(l, Size{Width: 600, Height: 200})
	if err != nil {
		t.Fatalf("ScaleTo: %v", err)
	}
	if want := (Size{Width: 300, Height: 100}); applied != want {
		t.Errorf("applied = %+v, want %+v", applied, want)
	}
	for _, ch := range next.Root().Children {
		if s := ch.NodeSize(); s != (Size{Width: 200, Height: 200}) {
			t.Errorf("%s = %+v, want 200x200", ch.NodeKey(), s)
		}
	}
}

func TestCapacity(t *testing.T) {
	e := Default()
	s := box("S", Vertical, 200, 300,
		leaf("X", 200, 100),
		box("S/1", Horizontal, 200, 200, leaf("P", 80, 200), leaf("Q", 120, 200)))

	if got := e.capacity(s, Vertical); got != 50+150 {
		t.Errorf("capacity along own axis = %g, want 200", got)
	}
	if got := e.capacity(s, Horizontal); got != 100 {
		t.Errorf("capacity across own axis = %g, want 100", got)
	}
}
