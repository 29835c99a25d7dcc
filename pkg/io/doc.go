// Package io reads and writes panelayout trees and operation scripts.
//
// # Overview
//
// Three kinds of documents cross the engine boundary:
//
//   - Drafts: sparse trees handed to [layout.Engine.Format]. Drafts can be
//     written by hand in JSON, TOML or YAML.
//   - Snapshots: concrete trees produced by the engine, exchanged as JSON so
//     that a later command (or another process) can continue from them.
//   - Scripts: ordered lists of operations (resize, scale, drag, ...) that
//     the pipeline replays against a snapshot.
//
// # Draft Format
//
// A draft node has optional fields at every level:
//
//	{
//	  "axis": "horizontal",
//	  "children": [
//	    {"key": "editor"},
//	    {"axis": "vertical", "children": [
//	      {"key": "terminal", "height": 200},
//	      {"key": "problems"}
//	    ]}
//	  ]
//	}
//
// The "type" field ("container" or "leaf") may be given explicitly; when it
// is missing a node with children is a container and anything else a leaf.
// Width and height of zero mean unspecified. The same structure is accepted
// in TOML (nested [[children]] tables) and YAML.
//
// # Snapshot Format
//
// Snapshots use the draft structure with every field filled in and "type"
// always present. [WriteLayout] and [ReadLayout] round-trip a
// [layout.Layout] exactly.
//
// # Formats
//
// File helpers pick the encoding from the path extension: .json, .toml,
// .yaml or .yml. Reader-based functions take an explicit [Format].
//
// [layout.Engine.Format]: github.com/matzehuels/panelayout/pkg/layout.Engine.Format
// [layout.Layout]: github.com/matzehuels/panelayout/pkg/layout.Layout
package io
