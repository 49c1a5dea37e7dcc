package inspect

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidOptions    = errors.New("invalid options")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Unbounded disables a length limit.
const Unbounded = -1

// DefaultDepth is the number of container levels expanded by default.
const DefaultDepth = 2

// Measure controls how StringLength counts characters.
type Measure string

const (
	MeasureRunes   Measure = "runes"   // one unit per rune
	MeasureColumns Measure = "columns" // one unit per terminal column
)

// String returns the measure name.
func (m Measure) String() string { return string(m) }

// ParseMeasure parses a measure name. The empty string selects MeasureRunes.
func ParseMeasure(s string) (Measure, error) {
	switch Measure(s) {
	case "", MeasureRunes:
		return MeasureRunes, nil
	case MeasureColumns:
		return MeasureColumns, nil
	default:
		return "", fmt.Errorf("%w: unknown measure %q", ErrInvalidOptions, s)
	}
}

// Options control rendering. The zero value is not useful; start from
// [DefaultOptions].
type Options struct {
	// Depth is the number of nesting levels expanded for containers.
	// A negative depth expands without limit; cycles are still detected.
	Depth int
	// StringLength is the maximum number of characters shown per string.
	StringLength int
	// CollectionLength is the maximum number of elements shown per sequence,
	// set or map.
	CollectionLength int
	// ObjectLength is the maximum number of keys shown per plain mapping.
	ObjectLength int
	// Measure selects the unit StringLength counts in.
	Measure Measure
	// Colors wraps rendered leaves in ANSI styles.
	Colors bool
	// Escaper escapes pattern literals. Default: regexp.QuoteMeta.
	Escaper func(string) string
}

// DefaultOptions returns depth 2 with every length limit unbounded.
func DefaultOptions() Options {
	return Options{
		Depth:            DefaultDepth,
		StringLength:     Unbounded,
		CollectionLength: Unbounded,
		ObjectLength:     Unbounded,
		Measure:          MeasureRunes,
		Escaper:          regexp.QuoteMeta,
	}
}

// Validate reports whether every length limit is either Unbounded or
// non-negative and the measure is known.
func (o Options) Validate() error {
	for name, n := range map[string]int{
		"string length":     o.StringLength,
		"collection length": o.CollectionLength,
		"object length":     o.ObjectLength,
	} {
		if n < Unbounded {
			return fmt.Errorf("%w: %s %d", ErrInvalidOptions, name, n)
		}
	}
	if _, err := ParseMeasure(string(o.Measure)); err != nil {
		return err
	}
	return nil
}

// Option mutates Options before a render.
type Option func(*Options)

// WithOptions replaces all options at once.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithDepth sets the number of container levels expanded.
func WithDepth(n int) Option {
	return func(o *Options) { o.Depth = n }
}

// WithStringLength truncates strings longer than n characters.
func WithStringLength(n int) Option {
	return func(o *Options) { o.StringLength = n }
}

// WithCollectionLength shows at most n elements per sequence, set or map.
func WithCollectionLength(n int) Option {
	return func(o *Options) { o.CollectionLength = n }
}

// WithObjectLength shows at most n keys per plain mapping.
func WithObjectLength(n int) Option {
	return func(o *Options) { o.ObjectLength = n }
}

// WithMeasure selects how string length is counted.
func WithMeasure(m Measure) Option {
	return func(o *Options) { o.Measure = m }
}

// WithColors enables or disables ANSI styling.
func WithColors(on bool) Option {
	return func(o *Options) { o.Colors = on }
}

// WithEscaper replaces the escaper used for pattern literals.
func WithEscaper(fn func(string) string) Option {
	return func(o *Options) { o.Escaper = fn }
}

// Inspector lets a type supply its own rendering. The returned text is used
// verbatim.
type Inspector interface {
	Inspect() string
}

type undefined struct{}

// Undefined renders as "undefined". Use it to mark an absent value where nil
// would render as "null".
var Undefined = undefined{}

// String renders v as a human-readable string.
func String(v any, opts ...Option) string {
	return newState(resolve(opts)).format(valueOf(v))
}

// Write renders v to w followed by a newline.
func Write(w io.Writer, v any, opts ...Option) error {
	_, err := io.WriteString(w, String(v, opts...)+"\n")
	return err
}

func resolve(opts []Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Depth < 0 {
		o.Depth = math.MaxInt
	}
	for _, n := range []*int{&o.StringLength, &o.CollectionLength, &o.ObjectLength} {
		if *n < Unbounded {
			*n = Unbounded
		}
	}
	if o.Measure != MeasureColumns {
		o.Measure = MeasureRunes
	}
	if o.Escaper == nil {
		o.Escaper = regexp.QuoteMeta
	}
	return &o
}
