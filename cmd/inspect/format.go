package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/inspect"
)

// Format is an input document format.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	TOML    Format = "toml"
	MsgPack Format = "msgpack"
)

var formats = []Format{JSON, YAML, TOML, MsgPack}

var extensions = map[string]Format{
	".json":    JSON,
	".yaml":    YAML,
	".yml":     YAML,
	".toml":    TOML,
	".msgpack": MsgPack,
	".mpk":     MsgPack,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", inspect.ErrUnsupportedFormat, s)
}

// formatFor picks the explicit format when given, else the one implied by
// the path's extension. Stdin (empty path) defaults to JSON.
func formatFor(path, explicit string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if path == "" {
		return JSON, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %q, use --input", inspect.ErrUnsupportedFormat, path)
}

func decode(data []byte, f Format) (any, error) {
	var v any
	switch f {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case YAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	case TOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, err
		}
		v = m
	case MsgPack:
		if len(data) == 0 {
			return nil, nil
		}
		if err := msgpack.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", inspect.ErrUnsupportedFormat, f)
	}
	return v, nil
}

type document struct {
	path  string
	value any
}

func loadFile(path, explicit string) (any, error) {
	f, err := formatFor(path, explicit)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// loadFiles decodes paths concurrently and returns them in argument order.
func loadFiles(ctx context.Context, paths []string, explicit string) ([]document, error) {
	docs := make([]document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := loadFile(path, explicit)
			if err != nil {
				return err
			}
			docs[i] = document{path: path, value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
