package inspect_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/big"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
	"unsafe"
	"weak"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/inspect"
)

// --- Test types ---

type IDs []int

type tags map[string]struct{}

type point struct {
	X, Y   int
	hidden int
}

type node struct {
	Name string
	Next *node
}

type custom struct{}

func (custom) Inspect() string { return "<custom>" }

type labelled struct {
	Label fmtLabel
}

type fmtLabel int

func (l fmtLabel) String() string { return "label-" + string(rune('a'+int(l))) }

func helper() {}

// dump is bounded because spew follows map and slice cycles forever.
var dump = spew.ConfigState{Indent: "  ", MaxDepth: 3}

// --- Primitives ---

func TestStringPrimitives(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		want string
	}{
		"int":          {in: 42, want: "42"},
		"negative":     {in: -7, want: "-7"},
		"uint max":     {in: uint64(math.MaxUint64), want: "18446744073709551615"},
		"float":        {in: 3.14, want: "3.14"},
		"float32":      {in: float32(0.1), want: "0.1"},
		"whole float":  {in: 1000000.0, want: "1000000"},
		"large float":  {in: 1e21, want: "1e+21"},
		"small float":  {in: 1e-7, want: "1e-7"},
		"nan":          {in: math.NaN(), want: "NaN"},
		"inf":          {in: math.Inf(1), want: "Infinity"},
		"neg inf":      {in: math.Inf(-1), want: "-Infinity"},
		"neg zero":     {in: math.Copysign(0, -1), want: "0"},
		"complex":      {in: complex(1, -2), want: "(1-2i)"},
		"true":         {in: true, want: "true"},
		"false":        {in: false, want: "false"},
		"nil":          {in: nil, want: "null"},
		"nil pointer":  {in: (*int)(nil), want: "null"},
		"nil slice":    {in: []int(nil), want: "null"},
		"nil map":      {in: map[string]int(nil), want: "null"},
		"undefined":    {in: inspect.Undefined, want: "undefined"},
		"pointer":      {in: new(int), want: "0"},
		"string":       {in: "hi", want: `"hi"`},
		"empty string": {in: "", want: `""`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in))
		})
	}
}

func TestStringStable(t *testing.T) {
	t.Parallel()
	for _, v := range []any{42, 2.5, true, nil, "x"} {
		first := inspect.String(v, inspect.WithStringLength(1))
		for range 3 {
			assert.Equal(t, first, inspect.String(v, inspect.WithStringLength(1)))
		}
	}
}

func TestStringTruncation(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		opts []inspect.Option
		want string
	}{
		"under limit":   {in: "ab", opts: []inspect.Option{inspect.WithStringLength(3)}, want: `"ab"`},
		"at limit":      {in: "abc", opts: []inspect.Option{inspect.WithStringLength(3)}, want: `"abc"`},
		"over limit":    {in: "hello", opts: []inspect.Option{inspect.WithStringLength(3)}, want: `"hel…"`},
		"zero":          {in: "abc", opts: []inspect.Option{inspect.WithStringLength(0)}, want: `"…"`},
		"runes":         {in: "héllo", opts: []inspect.Option{inspect.WithStringLength(2)}, want: `"hé…"`},
		"unbounded":     {in: "hello", opts: []inspect.Option{inspect.WithStringLength(inspect.Unbounded)}, want: `"hello"`},
		"below minimum": {in: "hello", opts: []inspect.Option{inspect.WithStringLength(-9)}, want: `"hello"`},
		"columns": {
			in:   "你好世界",
			opts: []inspect.Option{inspect.WithStringLength(4), inspect.WithMeasure(inspect.MeasureColumns)},
			want: `"你好…"`,
		},
		"columns fits": {
			in:   "你好",
			opts: []inspect.Option{inspect.WithStringLength(4), inspect.WithMeasure(inspect.MeasureColumns)},
			want: `"你好"`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in, tt.opts...))
		})
	}
}

func TestStringFunc(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	tests := map[string]struct {
		in   any
		want string
	}{
		"named":        {in: helper, want: "[Function: helper]"},
		"closure":      {in: func() {}, want: "[Function: anonymous]"},
		"method value": {in: buf.Len, want: "[Function: Len]"},
		"stdlib":       {in: strings.ToUpper, want: "[Function: ToUpper]"},
		"nil":          {in: (func())(nil), want: "null"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in))
		})
	}
}

func TestStringBigInt(t *testing.T) {
	t.Parallel()
	huge := new(big.Int).Exp(big.NewInt(2), big.NewInt(100), nil)
	assert.Equal(t, "123n", inspect.String(big.NewInt(123)))
	assert.Equal(t, "-5n", inspect.String(big.NewInt(-5)))
	assert.Equal(t, "1267650600228229401496703205376n", inspect.String(huge))
	assert.Equal(t, "[1n]", inspect.String([]*big.Int{big.NewInt(1)}))
	assert.Equal(t, "null", inspect.String((*big.Int)(nil)))
}

// --- Sequences ---

func TestStringSequence(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		opts []inspect.Option
		want string
	}{
		"ints":           {in: []int{1, 2, 3}, want: "[1, 2, 3]"},
		"empty":          {in: []int{}, want: "[]"},
		"array":          {in: [2]string{"a", "b"}, want: `["a", "b"]`},
		"mixed":          {in: []any{1, "a", nil, true}, want: `[1, "a", null, true]`},
		"named":          {in: IDs{1, 2, 3}, want: "IDs(3)[1, 2, 3]"},
		"nested":         {in: [][]int{{1}, {2, 3}}, want: "[[1], [2, 3]]"},
		"depth limit":    {in: [][][]int{{{1}}}, want: "[[Array(1)]]"},
		"depth zero":     {in: []int{1, 2}, opts: []inspect.Option{inspect.WithDepth(0)}, want: "Array(2)"},
		"named at limit": {in: IDs{1}, opts: []inspect.Option{inspect.WithDepth(0)}, want: "IDs(1)"},
		"unlimited":      {in: [][][]int{{{1}}}, opts: []inspect.Option{inspect.WithDepth(-1)}, want: "[[[1]]]"},
		"bytes":          {in: []byte("hi"), want: "Uint8Array(2)[104, 105]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in, tt.opts...))
		})
	}
}

func TestStringCollectionLength(t *testing.T) {
	t.Parallel()
	ten := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := inspect.String(ten, inspect.WithCollectionLength(3))
	assert.Equal(t, "[0, 1, 2, …]", got)
	assert.Equal(t, 3, strings.Count(got, ",")) // three elements, then the marker

	assert.Equal(t, "[…]", inspect.String(ten, inspect.WithCollectionLength(0)))
	assert.Equal(t, "[0, 1]", inspect.String([]int{0, 1}, inspect.WithCollectionLength(2)))
}

// --- Mappings ---

func TestStringMapping(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		opts []inspect.Option
		want string
	}{
		"sorted keys":  {in: map[string]int{"b": 2, "a": 1}, want: "{\n  a: 1\n  b: 2\n}"},
		"struct":       {in: point{X: 1, Y: 2, hidden: 3}, want: "{\n  X: 1\n  Y: 2\n}"},
		"struct ptr":   {in: &point{X: 1}, want: "{\n  X: 1\n  Y: 0\n}"},
		"empty map":    {in: map[string]int{}, want: "{}"},
		"empty struct": {in: struct{}{}, want: "{}"},
		"nil field":    {in: struct{ V any }{}, want: "{\n  V: null\n}"},
		"object length": {
			in:   map[string]int{"a": 1, "b": 2, "c": 3},
			opts: []inspect.Option{inspect.WithObjectLength(1)},
			want: "{\n  a: 1\n  …\n}",
		},
		"object length zero": {
			in:   map[string]int{"a": 1},
			opts: []inspect.Option{inspect.WithObjectLength(0)},
			want: "{\n  …\n}",
		},
		"nested siblings": {
			in:   map[string]any{"x": map[string]int{"a": 1, "b": 2}},
			want: "{\n  x: {\n    a: 1,\n    b: 2\n  }\n}",
		},
		"nested multiline sibling": {
			in:   map[string]any{"x": map[string]any{"a": 1, "b": map[string]int{"c": 1}}},
			want: "{\n  x: {\n    a: 1,\n    b: {\n    c: 1\n  }\n  }\n}",
		},
		"depth elided": {
			in:   map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}},
			opts: []inspect.Option{inspect.WithDepth(1)},
			want: "{\n  a: {\n    b: {…}\n  }\n}",
		},
		"default depth": {
			in:   map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]int{"d": 1}}}},
			want: "{\n  a: {\n    b: {\n      c: {…}\n    }\n  }\n}",
		},
		"sequence value": {
			in:   map[string][]int{"xs": {1, 2}},
			want: "{\n  xs: [1, 2]\n}",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in, tt.opts...))
		})
	}
}

// --- Keyed collections ---

func TestStringCollection(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		opts []inspect.Option
		want string
	}{
		"set":         {in: map[int]struct{}{2: {}, 1: {}}, want: "Set(2) { 1, 2 }"},
		"empty set":   {in: map[int]struct{}{}, want: "Set(0) {}"},
		"named set":   {in: tags{"a": {}}, want: `tags(1) { "a" }`},
		"map":         {in: map[int]string{2: "b", 1: "a"}, want: `Map(2) { 1 => "a", 2 => "b" }`},
		"numeric":     {in: map[int]int{10: 1, 2: 1}, want: "Map(2) { 2 => 1, 10 => 1 }"},
		"mixed keys":  {in: map[any]int{1: 1, "a": 2}, want: `Map(2) { "a" => 2, 1 => 1 }`},
		"bool keys":   {in: map[bool]int{true: 1, false: 0}, want: "Map(2) { false => 0, true => 1 }"},
		"empty map":   {in: map[int]int{}, want: "Map(0) {}"},
		"nested":      {in: map[int][]int{1: {1, 2}}, want: "Map(1) { 1 => [1, 2] }"},
		"truncated": {
			in:   map[int]bool{1: true, 2: true, 3: true},
			opts: []inspect.Option{inspect.WithCollectionLength(2)},
			want: "Map(3) { 1 => true, 2 => true, … }",
		},
		"truncated set": {
			in:   map[string]struct{}{"a": {}, "b": {}},
			opts: []inspect.Option{inspect.WithCollectionLength(1)},
			want: `Set(2) { "a", … }`,
		},
		"depth header": {
			in:   map[string]any{"m": map[string]any{"n": map[int]int{1: 1}}},
			opts: []inspect.Option{inspect.WithDepth(1)},
			want: "{\n  m: {\n    n: Map(1)\n  }\n}",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in, tt.opts...))
		})
	}
}

func TestStringCollectionTiedKeys(t *testing.T) {
	t.Parallel()
	nan := map[float64]string{}
	for _, v := range []string{"c", "a", "b"} {
		nan[math.NaN()] = v
	}
	type cell struct{ N int }
	ptrs := map[*cell]int{{1}: 3, {1}: 1, {1}: 2}

	assert.Equal(t, `Map(3) { NaN => "a", NaN => "b", NaN => "c" }`, inspect.String(nan))
	first := inspect.String(ptrs)
	for range 100 {
		assert.Equal(t, `Map(3) { NaN => "a", NaN => "b", NaN => "c" }`, inspect.String(nan))
		assert.Equal(t, first, inspect.String(ptrs))
	}
}

// --- Cycles ---

func TestStringCircular(t *testing.T) {
	t.Parallel()

	self := map[string]any{}
	self["self"] = self

	seq := []any{1, nil}
	seq[1] = seq

	n := &node{Name: "a"}
	n.Next = n

	set := map[any]struct{}{}
	holder := map[int]any{1: set}
	set[&holder] = struct{}{}

	tests := map[string]struct {
		in   any
		want string
	}{
		"mapping":  {in: self, want: "{\n  self: [Circular]\n}"},
		"sequence": {in: seq, want: "[1, [Circular]]"},
		"struct":   {in: n, want: "{\n  Name: \"a\"\n  Next: [Circular]\n}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := inspect.String(tt.in)
			assert.Equal(t, tt.want, got, dump.Sdump(tt.in))
			assert.Equal(t, 1, strings.Count(got, "[Circular]"))

			unlimited := inspect.String(tt.in, inspect.WithDepth(-1))
			assert.Equal(t, 1, strings.Count(unlimited, "[Circular]"))
		})
	}
	t.Run("through keyed collection", func(t *testing.T) {
		t.Parallel()
		got := inspect.String(holder, inspect.WithDepth(-1))
		assert.Equal(t, 1, strings.Count(got, "[Circular]"))
	})
}

func TestStringSharedReferenceIsNotCircular(t *testing.T) {
	t.Parallel()
	shared := []int{1}
	got := inspect.String(map[string]any{"a": shared, "b": shared})
	assert.Equal(t, "{\n  a: [1]\n  b: [1]\n}", got)
}

// --- Opaque, buffers, patterns, native text ---

func TestStringBuiltins(t *testing.T) {
	t.Parallel()
	x := 1
	tests := map[string]struct {
		in   any
		want string
	}{
		"chan":          {in: make(chan int), want: "chan int {}"},
		"recv chan":     {in: make(<-chan string), want: "<-chan string {}"},
		"sync map":      {in: &sync.Map{}, want: "sync.Map {}"},
		"sync pool":     {in: &sync.Pool{}, want: "sync.Pool {}"},
		"weak pointer":  {in: weak.Make(&x), want: "weak.Pointer[int] {}"},
		"buffer":        {in: bytes.NewBufferString("hello"), want: "bytes.Buffer(5)"},
		"bytes reader":  {in: bytes.NewReader([]byte{1, 2}), want: "bytes.Reader(2)"},
		"string reader": {in: strings.NewReader("abc"), want: "strings.Reader(3)"},
		"pattern":       {in: regexp.MustCompile(`ab+c`), want: `ab\+c`},
		"duration":      {in: time.Second, want: "1s"},
		"error":         {in: errors.New("boom"), want: "boom"},
		"inspector":     {in: custom{}, want: "<custom>"},
		"stringer":      {in: labelled{Label: 1}, want: "{\n  Label: label-b\n}"},
		"unsafe":        {in: unsafe.Pointer(&x), want: "[object unsafe.Pointer]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inspect.String(tt.in))
		})
	}
}

func TestStringEscaper(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`ab+c`)
	assert.Equal(t, "AB+C", inspect.String(re, inspect.WithEscaper(strings.ToUpper)))
	assert.Equal(t, `ab\+c`, inspect.String(re, inspect.WithEscaper(nil)))
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		want inspect.Kind
	}{
		"null":      {in: nil, want: inspect.KindNull},
		"undefined": {in: inspect.Undefined, want: inspect.KindUndefined},
		"bool":      {in: true, want: inspect.KindBool},
		"number":    {in: 1.5, want: inspect.KindNumber},
		"string":    {in: "s", want: inspect.KindString},
		"func":      {in: helper, want: inspect.KindFunc},
		"bigint":    {in: big.NewInt(1), want: inspect.KindBigInt},
		"sequence":  {in: []int{}, want: inspect.KindSequence},
		"mapping":   {in: point{}, want: inspect.KindMapping},
		"map":       {in: map[int]int{}, want: inspect.KindMap},
		"set":       {in: map[int]struct{}{}, want: inspect.KindSet},
		"opaque":    {in: make(chan int), want: inspect.KindOpaque},
		"buffer":    {in: &bytes.Buffer{}, want: inspect.KindBuffer},
		"pattern":   {in: regexp.MustCompile("a"), want: inspect.KindPattern},
		"native":    {in: time.Second, want: inspect.KindNative},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := inspect.KindOf(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, name, got.String())
		})
	}
}

// --- Colors ---

func TestStringColors(t *testing.T) {
	t.Parallel()
	plain := inspect.String([]any{1, "a"})
	colored := inspect.String([]any{1, "a"}, inspect.WithColors(true))
	assert.NotContains(t, plain, "\x1b[")
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "1")
	assert.Contains(t, colored, `"a"`)
}

// --- Write ---

func TestWrite(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, inspect.Write(&buf, []int{1, 2}))
	assert.Equal(t, "[1, 2]\n", buf.String())
}

var errWrite = errors.New("write failed")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteError(t *testing.T) {
	t.Parallel()
	err := inspect.Write(errWriter{}, 1)
	assert.ErrorIs(t, err, errWrite)
}

// --- Options ---

func TestDefaultOptions(t *testing.T) {
	t.Parallel()
	o := inspect.DefaultOptions()
	assert.Equal(t, 2, o.Depth)
	assert.Equal(t, inspect.Unbounded, o.StringLength)
	assert.Equal(t, inspect.Unbounded, o.CollectionLength)
	assert.Equal(t, inspect.Unbounded, o.ObjectLength)
	assert.Equal(t, inspect.MeasureRunes, o.Measure)
	assert.False(t, o.Colors)
	require.NoError(t, o.Validate())
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		mutate func(*inspect.Options)
		ok     bool
	}{
		"defaults":         {mutate: func(*inspect.Options) {}, ok: true},
		"zero lengths":     {mutate: func(o *inspect.Options) { o.StringLength, o.ObjectLength = 0, 0 }, ok: true},
		"negative depth":   {mutate: func(o *inspect.Options) { o.Depth = -1 }, ok: true},
		"string length":    {mutate: func(o *inspect.Options) { o.StringLength = -2 }},
		"collection":       {mutate: func(o *inspect.Options) { o.CollectionLength = -5 }},
		"object length":    {mutate: func(o *inspect.Options) { o.ObjectLength = -3 }},
		"unknown measure":  {mutate: func(o *inspect.Options) { o.Measure = "bytes" }},
		"columns measure":  {mutate: func(o *inspect.Options) { o.Measure = inspect.MeasureColumns }, ok: true},
		"empty is default": {mutate: func(o *inspect.Options) { o.Measure = "" }, ok: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			o := inspect.DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, inspect.ErrInvalidOptions)
		})
	}
}

func TestWithOptions(t *testing.T) {
	t.Parallel()
	o := inspect.DefaultOptions()
	o.CollectionLength = 1
	assert.Equal(t, "[1, …]", inspect.String([]int{1, 2}, inspect.WithOptions(o)))
}

func TestParseMeasure(t *testing.T) {
	t.Parallel()
	m, err := inspect.ParseMeasure("columns")
	require.NoError(t, err)
	assert.Equal(t, inspect.MeasureColumns, m)
	assert.Equal(t, "columns", m.String())

	m, err = inspect.ParseMeasure("")
	require.NoError(t, err)
	assert.Equal(t, inspect.MeasureRunes, m)

	_, err = inspect.ParseMeasure("bytes")
	assert.ErrorIs(t, err, inspect.ErrInvalidOptions)
}

// --- slog ---

func TestLog(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("msg", inspect.Attr("v", []int{1, 2}), "w", inspect.Log("abc", inspect.WithStringLength(1)))
	assert.Contains(t, buf.String(), `"v":"[1, 2]"`)
	assert.Contains(t, buf.String(), `"w":"\"a…\""`)
}
