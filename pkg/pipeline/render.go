package pipeline

import (
	"bytes"
	"fmt"

	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/render/dot"
)

// Render generates output artifacts in the requested formats.
func Render(l *layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var src string
	for _, format := range opts.Formats {
		var buf bytes.Buffer
		var err error

		switch format {
		case FormatJSON:
			err = pkgio.WriteLayout(&buf, l)
		case FormatPositions:
			err = pkgio.WritePositions(&buf, l, pkgio.PositionOptions{Handles: true})
		case FormatDOT, FormatSVG:
			if src == "" {
				src = dot.ToDOT(l, dot.Options{Detailed: opts.Detailed})
			}
			if format == FormatDOT {
				buf.WriteString(src)
				break
			}
			var svg []byte
			svg, err = dot.RenderSVG(src)
			buf.Write(svg)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = buf.Bytes()
	}
	return artifacts, nil
}
