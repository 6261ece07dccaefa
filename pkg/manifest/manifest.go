// Package manifest loads declarative style manifests.
//
// A manifest optionally overrides the breakpoint table and the class prefix,
// and lists responsive declarations to register:
//
//	prefix = "app"
//
//	[breakpoints]
//	sm = 600
//	md = 900
//
//	[[style]]
//	name     = "cards"
//	property = "grid-template-columns"
//	format   = "columns"
//	values   = { base = 1, sm = 2, md = 3 }
//
//	[[style]]
//	name     = "gutter"
//	property = "gap"
//	value    = "1rem"
//
// The same document can be written in YAML, with "styles" as the list key.
package manifest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/xui-kit/xui/pkg/errors"
)

// Format is a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Manifest is a parsed manifest file.
type Manifest struct {
	Prefix      string         `toml:"prefix" yaml:"prefix"`
	Breakpoints map[string]int `toml:"breakpoints" yaml:"breakpoints"`
	Styles      []Declaration  `toml:"style" yaml:"styles"`

	// Path is the file the manifest was loaded from, if any.
	Path string `toml:"-" yaml:"-"`
}

// Declaration is one responsive property. Exactly one of Value and Values
// must be set.
type Declaration struct {
	Name     string            `toml:"name" yaml:"name"`
	Class    string            `toml:"class" yaml:"class"` // explicit class name; derived when empty
	Property string            `toml:"property" yaml:"property"`
	Format   string            `toml:"format" yaml:"format"` // named formatter, default "raw"
	Value    Scalar            `toml:"value" yaml:"value"`
	Values   map[string]Scalar `toml:"values" yaml:"values"`
}

// Responsive reports whether the declaration varies per breakpoint.
func (d Declaration) Responsive() bool { return len(d.Values) > 0 }

// Scalar is a manifest value. It accepts strings, numbers and booleans and
// keeps their textual form.
type Scalar string

// UnmarshalTOML implements toml.Unmarshaler.
func (s *Scalar) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*s = Scalar(v)
	case int64:
		*s = Scalar(strconv.FormatInt(v, 10))
	case float64:
		*s = Scalar(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*s = Scalar(strconv.FormatBool(v))
	default:
		return fmt.Errorf("unsupported value of type %T", v)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	*s = Scalar(n.Value)
	return nil
}

// DetectFormat chooses a format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest extension: %q (want .toml, .yaml or .yml)", path)
}

// Parse decodes and validates a manifest.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown manifest format: %q", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	if err := errors.ValidateManifestFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read manifest %s", path)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, withPath(path, err)
	}
	m.Path = path
	return m, nil
}

// LoadAll loads several manifests concurrently. The result preserves the
// order of paths; the first error cancels the remaining loads.
func LoadAll(ctx context.Context, paths ...string) ([]*Manifest, error) {
	out := make([]*Manifest, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Load(path)
			if err != nil {
				return err
			}
			out[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// withPath prefixes a structured error's message with the manifest path,
// keeping its code and cause.
func withPath(path string, err error) error {
	e, ok := err.(*errors.Error)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "%s", path)
	}
	return &errors.Error{Code: e.Code, Message: path + ": " + e.Message, Cause: e.Cause}
}
