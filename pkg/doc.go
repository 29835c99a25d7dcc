// Package pkg provides the core libraries of panelayout, a split-pane layout
// engine.
//
// # Overview
//
// panelayout turns sparse trees of nested horizontal and vertical splits into
// fully sized layouts and edits them the way a tiling window manager or an
// IDE does: dragging dividers, resizing the whole viewport, removing panes
// and dropping them next to others. The pkg directory is organized into
// three areas:
//
//  1. [layout] - The engine (normalization, positions, resize, scale, relocation)
//  2. [io], [cache], [config] - Serialization, result caching and configuration
//  3. [pipeline], [session], [api] - Orchestration, gestures and the HTTP service
//
// # Architecture
//
// The typical data flow:
//
//	Draft (JSON / TOML / YAML)
//	         ↓
//	    [layout.Engine.Format] (distribute unclaimed space)
//	         ↓
//	    immutable [layout.Layout] snapshot
//	         ↓
//	    edits: Resize, Scale, Remove, Insert, Drag, Swap
//	         ↓
//	    positions JSON, snapshot JSON, DOT/SVG
//
// Every edit returns a new snapshot and leaves its input untouched, so
// callers can keep history, diff snapshots or discard an edit for free.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/panelayout/pkg/layout"
//	)
//
//	e := layout.Default()
//	l, _ := e.Format(layout.Draft{
//	    Axis: layout.Horizontal,
//	    Children: []layout.Draft{
//	        {Key: "sidebar", Width: 240},
//	        {Key: "editor"},
//	    },
//	}, layout.Size{Width: 1200, Height: 800}, "")
//
//	l, applied, _ := e.Resize(l, "sidebar", 60)   // drag the divider right
//	for _, p := range l.Positions().Leaves() {
//	    fmt.Println(p.Key, p.X, p.Y, p.Width, p.Height)
//	}
//
// # Main Packages
//
// [layout] - Tree model, constraints and every engine operation. Pure: no
// I/O and no logging.
//
// [errors] - Structured errors with machine-readable codes shared by all
// packages and mapped to HTTP statuses by [api].
//
// [io] - Reading drafts, snapshots and op scripts in JSON, TOML or YAML, and
// writing snapshots and position listings.
//
// [cache] - Result cache with file, Redis and null backends, content hashing
// and key derivation.
//
// [config] - The TOML configuration file.
//
// [pipeline] - Format → replay → render with caching, used by the CLI and
// the API alike.
//
// [session] - Drag gestures that recompute every update from a base snapshot.
//
// [api] - The HTTP service.
//
// [render/dot] - Graphviz diagrams of the container tree.
//
// [observability] - Hooks for metrics and tracing without hard dependencies.
//
// # Testing
//
//	go test ./...                            # All tests
//	go test -tags integration ./pkg/cache    # Include the Redis test
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/layout
// [layout.Engine.Format]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/layout#Engine.Format
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/layout#Layout
// [errors]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/pipeline
// [session]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/session
// [api]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/api
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/render/dot
// [observability]: https://pkg.go.dev/github.com/matzehuels/panelayout/pkg/observability
package pkg
