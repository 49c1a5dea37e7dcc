package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Config is the file form of Options. Absent fields keep their defaults.
type Config struct {
	Depth            *int64 `json:"depth,omitempty" yaml:"depth" toml:"depth" jsonschema:"description=Container levels to expand; negative expands without limit"`
	StringLength     *int64 `json:"stringLength,omitempty" yaml:"stringLength" toml:"stringLength" jsonschema:"description=Characters shown per string; -1 is unbounded,minimum=-1"`
	CollectionLength *int64 `json:"collectionLength,omitempty" yaml:"collectionLength" toml:"collectionLength" jsonschema:"description=Elements shown per sequence or keyed collection; -1 is unbounded,minimum=-1"`
	ObjectLength     *int64 `json:"objectLength,omitempty" yaml:"objectLength" toml:"objectLength" jsonschema:"description=Keys shown per mapping; -1 is unbounded,minimum=-1"`
	Measure          string `json:"measure,omitempty" yaml:"measure" toml:"measure" jsonschema:"enum=runes,enum=columns"`
	Colors           *bool  `json:"colors,omitempty" yaml:"colors" toml:"colors"`
}

// Apply merges c over base and validates the result.
func (c Config) Apply(base Options) (Options, error) {
	o := base
	for _, f := range []struct {
		name string
		src  *int64
		dst  *int
	}{
		{"depth", c.Depth, &o.Depth},
		{"stringLength", c.StringLength, &o.StringLength},
		{"collectionLength", c.CollectionLength, &o.CollectionLength},
		{"objectLength", c.ObjectLength, &o.ObjectLength},
	} {
		if f.src == nil {
			continue
		}
		n, err := safecast.Conv[int](*f.src)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.name, err)
		}
		*f.dst = n
	}
	if c.Measure != "" {
		m, err := ParseMeasure(c.Measure)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		o.Measure = m
	}
	if c.Colors != nil {
		o.Colors = *c.Colors
	}
	if err := o.Validate(); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return o, nil
}

// ParseConfig decodes a YAML or TOML document. ext is a file extension such
// as ".yaml" or ".toml".
func ParseConfig(data []byte, ext string) (Config, error) {
	var c Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &c)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
		}
	default:
		return Config{}, fmt.Errorf("%w: config extension %q", ErrUnsupportedFormat, ext)
	}
	return c, nil
}

// LoadConfig reads the file at path and merges it over DefaultOptions.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	c, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return c.Apply(DefaultOptions())
}

// ConfigSchema returns the JSON schema of the config file.
func ConfigSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	return json.MarshalIndent(r.Reflect(&Config{}), "", "  ")
}
