package io

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	"github.com/matzehuels/panelayout/pkg/layout"
)

var wantDraft = layout.Draft{
	Axis: layout.Horizontal,
	Children: []layout.Draft{
		{Key: "editor"},
		{Axis: layout.Vertical, Children: []layout.Draft{
			{Key: "terminal", Height: 200},
			{Key: "problems"},
		}},
	},
}

const draftJSON = `{
  "axis": "horizontal",
  "children": [
    {"key": "editor"},
    {"axis": "vertical", "children": [
      {"key": "terminal", "height": 200},
      {"key": "problems"}
    ]}
  ]
}`

const draftTOML = `
axis = "horizontal"

[[children]]
key = "editor"

[[children]]
axis = "vertical"

  [[children.children]]
  key = "terminal"
  height = 200.0

  [[children.children]]
  key = "problems"
`

const draftYAML = `
axis: horizontal
children:
  - key: editor
  - axis: vertical
    children:
      - key: terminal
        height: 200
      - key: problems
`

func TestReadDraft(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"JSON", FormatJSON, draftJSON},
		{"TOML", FormatTOML, draftTOML},
		{"YAML", FormatYAML, draftYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ReadDraft(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadDraft: %v", err)
			}
			if diff := cmp.Diff(wantDraft, d); diff != "" {
				t.Errorf("ReadDraft() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadDraftRejectsUnknownFields(t *testing.T) {
	_, err := ReadDraft(strings.NewReader(`{"children": [{"key": "a", "heigth": 10}]}`), FormatJSON)
	if !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestImportDraft(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"tree.json": draftJSON,
		"tree.toml": draftTOML,
		"tree.yml":  draftYAML,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		d, err := ImportDraft(path)
		if err != nil {
			t.Fatalf("ImportDraft(%s): %v", name, err)
		}
		if diff := cmp.Diff(wantDraft, d); diff != "" {
			t.Errorf("ImportDraft(%s) mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := ImportDraft(filepath.Join(dir, "tree.xml")); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("xml error = %v, want INVALID_FORMAT", err)
	}
	if _, err := ImportDraft(filepath.Join(dir, "missing.json")); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("missing error = %v, want NOT_FOUND", err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	e := layout.Default()
	l, err := e.Format(wantDraft, layout.Size{Width: 800, Height: 600}, "")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	l, _, err = e.Resize(l, "editor", 37.5)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteLayout(&buf, l); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	if !strings.Contains(buf.String(), `"type": "container"`) {
		t.Errorf("snapshot lacks type discriminator:\n%s", buf.String())
	}

	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if diff := cmp.Diff(l.Root(), got.Root()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImportLayout(t *testing.T) {
	l, err := layout.Default().Format(wantDraft, layout.Size{Width: 400, Height: 300}, "")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := ExportLayout(l, path); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	got, err := ImportLayout(path)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if diff := cmp.Diff(l.Keys(), got.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDraftFormats(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteDraft(&buf, wantDraft, f); err != nil {
				t.Fatalf("WriteDraft: %v", err)
			}
			got, err := ReadDraft(&buf, f)
			if err != nil {
				t.Fatalf("ReadDraft: %v", err)
			}
			if diff := cmp.Diff(wantDraft, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWritePositions(t *testing.T) {
	l, err := layout.Default().Format(layout.Draft{Children: []layout.Draft{{Key: "a"}, {Key: "b"}}},
		layout.Size{Width: 200, Height: 100}, "")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePositions(&buf, l, PositionOptions{Handles: true}); err != nil {
		t.Fatalf("WritePositions: %v", err)
	}
	var got positions
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Positions) != 2 || got.Positions[1].X != 100 {
		t.Errorf("positions = %+v", got.Positions)
	}
	if len(got.Dividers) != 1 || got.Dividers[0].X != 100 {
		t.Errorf("dividers = %+v", got.Dividers)
	}

	buf.Reset()
	if err := WritePositions(&buf, l, PositionOptions{Containers: true}); err != nil {
		t.Fatalf("WritePositions: %v", err)
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Positions) != 3 || !got.Positions[0].Container {
		t.Errorf("positions with containers = %+v", got.Positions)
	}
}

func TestReadScript(t *testing.T) {
	const script = `
[[ops]]
op = "resize"
key = "editor"
delta = 40.0

[[ops]]
op = "drag"
key = "problems"
target = "editor"
direction = "bottom"

[[ops]]
op = "scale-to"
width = 1024.0
height = 768.0
`
	s, err := ReadScript(strings.NewReader(script), FormatTOML)
	if err != nil {
		t.Fatalf("ReadScript: %v", err)
	}
	want := []Op{
		{Op: OpResize, Key: "editor", Delta: 40},
		{Op: OpDrag, Key: "problems", Target: "editor", Direction: layout.Bottom},
		{Op: OpScaleTo, Width: 1024, Height: 768},
	}
	if diff := cmp.Diff(want, s.Ops); diff != "" {
		t.Errorf("ReadScript() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpValidate(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		code perrors.Code
	}{
		{"UnknownKind", Op{Op: "explode"}, perrors.ErrCodeInvalidInput},
		{"ResizeWithoutKey", Op{Op: OpResize, Delta: 5}, perrors.ErrCodeInvalidInput},
		{"CornerWithoutHeightKey", Op{Op: OpCorner, WidthKey: "a"}, perrors.ErrCodeInvalidInput},
		{"DragBadDirection", Op{Op: OpDrag, Key: "a", Target: "b", Direction: "up"}, perrors.ErrCodeInvalidDirection},
		{"ScaleToNegative", Op{Op: OpScaleTo, Width: -1, Height: 10}, perrors.ErrCodeInvalidInput},
		{"SwapWithoutTarget", Op{Op: OpSwap, Key: "a"}, perrors.ErrCodeInvalidInput},
		{"ResizeInfiniteDelta", Op{Op: OpResize, Key: "a", Delta: math.Inf(1)}, perrors.ErrCodeInvalidInput},
		{"ResizeNaNDelta", Op{Op: OpResize, Key: "a", Delta: math.NaN()}, perrors.ErrCodeInvalidInput},
		{"CornerInfiniteDY", Op{Op: OpCorner, WidthKey: "a", HeightKey: "b", DY: math.Inf(-1)}, perrors.ErrCodeInvalidInput},
		{"ScaleNaNHeight", Op{Op: OpScale, Height: math.NaN()}, perrors.ErrCodeInvalidInput},
		{"ScaleInfiniteWidth", Op{Op: OpScale, Width: math.Inf(1)}, perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op.Validate(); !perrors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}

	if err := (Op{Op: OpScale, Width: -30}).Validate(); err != nil {
		t.Errorf("scale Validate() = %v, want nil", err)
	}

	for _, src := range []struct {
		f    Format
		body string
	}{
		{FormatTOML, "[[ops]]\nop = \"resize\"\nkey = \"a\"\ndelta = inf\n"},
		{FormatYAML, "ops:\n  - op: scale\n    height: .nan\n"},
	} {
		if _, err := ReadScript(strings.NewReader(src.body), src.f); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("ReadScript(%s non-finite) = %v, want INVALID_INPUT", src.f, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, ".toml": FormatTOML, "YML": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
