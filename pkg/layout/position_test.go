package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPositions(t *testing.T) {
	e := Default()
	l := mustFormat(t, e, Draft{Axis: Horizontal, Children: leaves("A", "B", "C")}, 300, 100)

	want := []Position{
		{Key: "A", X: 0, Y: 0, Width: 100, Height: 100},
		{Key: "B", X: 100, Y: 0, Width: 100, Height: 100},
		{Key: "C", X: 200, Y: 0, Width: 100, Height: 100},
	}
	if diff := cmp.Diff(want, l.Positions().Leaves()); diff != "" {
		t.Errorf("Leaves() mismatch (-want +got):\n%s", diff)
	}
}

func TestPositionsNested(t *testing.T) {
	root := box("R", Vertical, 200, 300,
		leaf("top", 200, 100),
		box("R/1", Horizontal, 200, 200, leaf("L", 80, 200), leaf("M", 120, 200)))
	pm := ToPositionMap(root, Point{X: 10, Y: 20})

	want := []Position{
		{Key: "R", X: 10, Y: 20, Width: 200, Height: 300, Container: true},
		{Key: "top", X: 10, Y: 20, Width: 200, Height: 100},
		{Key: "R/1", X: 10, Y: 120, Width: 200, Height: 200, Container: true},
		{Key: "L", X: 10, Y: 120, Width: 80, Height: 200},
		{Key: "M", X: 90, Y: 120, Width: 120, Height: 200},
	}
	if diff := cmp.Diff(want, pm.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if pm.Len() != 5 {
		t.Errorf("Len() = %d, want 5", pm.Len())
	}
	p, ok := pm.Get("M")
	if !ok || p.X != 90 || p.Right() != 210 || p.Bottom() != 320 {
		t.Errorf("Get(M) = %+v, %v", p, ok)
	}
	if _, ok := pm.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestPositionContains(t *testing.T) {
	p := Position{X: 10, Y: 10, Width: 20, Height: 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{29.9, 29.9, true},
		{30, 15, false},
		{15, 30, false},
		{9.9, 15, false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDividers(t *testing.T) {
	e := Default()
	l := mustFormat(t, e, Draft{Axis: Horizontal, Children: leaves("A", "B", "C")}, 300, 100)

	want := []Divider{
		{Key: "A", Next: "B", Axis: Horizontal, X: 100, Y: 0, Length: 100},
		{Key: "B", Next: "C", Axis: Horizontal, X: 200, Y: 0, Length: 100},
	}
	if diff := cmp.Diff(want, Dividers(l)); diff != "" {
		t.Errorf("Dividers() mismatch (-want +got):\n%s", diff)
	}
}

func TestPointers(t *testing.T) {
	root := box("R", Horizontal, 300, 100,
		leaf("A", 150, 100),
		box("R/1", Vertical, 150, 100, leaf("X", 150, 50), leaf("Y", 150, 50)))
	l := mustLayout(t, root)

	want := []Pointer{{WidthKey: "A", HeightKey: "X", X: 150, Y: 50}}
	if diff := cmp.Diff(want, Pointers(l)); diff != "" {
		t.Errorf("Pointers() mismatch (-want +got):\n%s", diff)
	}

	// A flat layout has no corners.
	flat := mustFormat(t, Default(), Draft{Children: leaves("A", "B")}, 200, 100)
	if got := Pointers(flat); len(got) != 0 {
		t.Errorf("Pointers(flat) = %v, want none", got)
	}
}

func TestHitTest(t *testing.T) {
	p := Position{Key: "T", X: 0, Y: 0, Width: 120, Height: 60}
	tests := []struct {
		name string
		x, y float64
		want Direction
	}{
		{"Top", 60, 5, Top},
		{"Right", 115, 30, Right},
		{"Bottom", 60, 55, Bottom},
		{"Left", 5, 30, Left},
		{"Center", 60, 30, Center},
		{"TopWinsCorner", 118, 2, Top},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(p, tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%g, %g) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDropMask(t *testing.T) {
	p := Position{Key: "T", X: 10, Y: 20, Width: 100, Height: 60}
	tests := []struct {
		dir  Direction
		want Position
	}{
		{Top, Position{Key: "T", X: 10, Y: 20, Width: 100, Height: 30}},
		{Bottom, Position{Key: "T", X: 10, Y: 50, Width: 100, Height: 30}},
		{Left, Position{Key: "T", X: 10, Y: 20, Width: 50, Height: 60}},
		{Right, Position{Key: "T", X: 60, Y: 20, Width: 50, Height: 60}},
		{Center, p},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DropMask(p, tt.dir)); diff != "" {
				t.Errorf("DropMask() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection(up) should fail")
	}
	d, err := ParseDirection("left")
	if err != nil || d != Left {
		t.Fatalf("ParseDirection(left) = %v, %v", d, err)
	}
	if d.Axis() != Horizontal || !d.Leading() || d.Opposite() != Right {
		t.Errorf("left: axis=%s leading=%v opposite=%s", d.Axis(), d.Leading(), d.Opposite())
	}
	if Bottom.Axis() != Vertical || Bottom.Leading() {
		t.Errorf("bottom: axis=%s leading=%v", Bottom.Axis(), Bottom.Leading())
	}
	if Center.Axis() != "" || Center.Opposite() != Center {
		t.Error("center should have no axis and mirror to itself")
	}
}
