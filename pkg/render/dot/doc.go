// Package dot renders the structure of a layout snapshot as a Graphviz
// diagram.
//
// # Overview
//
// A snapshot is a tree: containers split their area along an axis and leaves
// hold the panes. The diagram draws that tree top to bottom, one box per
// node with an edge from every container to each child in order. Containers
// are drawn as rounded outlines labelled with their axis, leaves as filled
// boxes. The picture is meant for debugging drafts and scripts, not for
// showing the panes at their geometric positions.
//
// # Usage
//
//	src := dot.ToDOT(l, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(src)
//
// # Options
//
//   - Detailed: include each node's concrete width and height in its label.
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process without a system installation.
package dot
