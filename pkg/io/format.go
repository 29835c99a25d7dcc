package io

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q (want json, toml or yaml)", s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "%s has no extension", path)
	}
	return ParseFormat(ext)
}

func decode(r io.Reader, f Format, v any) error {
	var err error
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(v)
	default:
		return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}

func encode(w io.Writer, f Format, v any) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}
