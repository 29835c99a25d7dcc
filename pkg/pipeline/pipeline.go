// Package pipeline provides the core panelayout workflow.
//
// This package implements the complete format → replay → render pipeline
// that is shared by the CLI and the HTTP API. Centralizing it keeps caching,
// logging and instrumentation identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Format: turn a sparse draft into a concrete snapshot of a given size
//  2. Replay: apply an ordered script of edits (resize, scale, drag, ...)
//  3. Render: produce artifacts (snapshot JSON, positions, DOT, SVG)
//
// Each stage can be run on its own or as part of [Runner.Execute]. The
// format and replay stages are cached by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, engine, logger)
//	result, err := runner.Execute(ctx, draft, pipeline.Options{
//	    Width:   1280,
//	    Height:  720,
//	    Ops:     script.Ops,
//	    Formats: []string{pipeline.FormatPositions},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positions := result.Artifacts[pipeline.FormatPositions]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelayout/pkg/cache"
	perrors "github.com/matzehuels/panelayout/pkg/errors"
	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = 600.0
)

// Artifact formats produced by the render stage.
const (
	FormatJSON      = "json"      // snapshot, readable by pkgio.ReadLayout
	FormatPositions = "positions" // absolute rectangles with dividers and pointers
	FormatDOT       = "dot"       // Graphviz source of the tree
	FormatSVG       = "svg"       // the DOT diagram rendered by Graphviz
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON:      true,
	FormatPositions: true,
	FormatDOT:       true,
	FormatSVG:       true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON so API handlers can
// decode it directly from a request body.
type Options struct {
	// Format options
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	RootKey string  `json:"root_key,omitempty"`
	Refresh bool    `json:"refresh,omitempty"` // bypass cache reads

	// Replay options
	Ops []pkgio.Op `json:"ops,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // sizes in DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the final snapshot after the script.
	Layout *layout.Layout

	// LayoutHash is the content hash of the final snapshot.
	LayoutHash string

	// Steps reports every applied op. It is empty when the replay came
	// from the cache.
	Steps []StepResult

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LeafCount  int
	NodeCount  int
	OpCount    int
	FormatTime time.Duration
	ReplayTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FormatHit bool // Whether the formatted snapshot came from cache
	ReplayHit bool // Whether the replayed snapshot came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: json, positions, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFormat(); err != nil {
		return err
	}
	if err := o.ValidateForReplay(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFormat applies size defaults and checks the target size.
func (o *Options) ValidateForFormat() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := perrors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	return perrors.ValidateDimension("height", o.Height)
}

// ValidateForReplay checks every op of the script.
func (o *Options) ValidateForReplay() error {
	for i, op := range o.Ops {
		if err := op.Validate(); err != nil {
			return perrors.Wrap(perrors.GetCode(err), err, "op %d", i)
		}
	}
	return nil
}

// ValidateForRender applies the default format and checks the list.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	return ValidateFormats(o.Formats)
}

// Size returns the target size.
func (o *Options) Size() layout.Size {
	return layout.Size{Width: o.Width, Height: o.Height}
}

// FormatKeyOpts returns cache key options for the format stage.
func (o *Options) FormatKeyOpts(cons layout.Constraints) cache.FormatKeyOpts {
	return cache.FormatKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		RootKey:   o.RootKey,
		MinWidth:  cons.MinWidth,
		MinHeight: cons.MinHeight,
		Leftover:  string(cons.Leftover),
	}
}

// ReplayKeyOpts returns cache key options for the replay stage.
func ReplayKeyOpts(cons layout.Constraints) cache.ReplayKeyOpts {
	return cache.ReplayKeyOpts{MinWidth: cons.MinWidth, MinHeight: cons.MinHeight}
}
