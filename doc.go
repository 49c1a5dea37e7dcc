// Package inspect renders arbitrary Go values as deterministic, human-readable
// strings for debugging and log output.
//
// The central entry points are [String] and [Write]. Rendering never fails:
// every value has a rule, ending in a fallback that prints the type.
//
//	inspect.String(42)                          // 42
//	inspect.String("hi")                        // "hi"
//	inspect.String([]int{1, 2, 3})              // [1, 2, 3]
//	inspect.String(map[int]struct{}{1: {}})     // Set(1) { 1 }
//	inspect.String(regexp.MustCompile(`ab+c`))  // ab\+c
//
// # Rendering Rules
//
//   - nil and nil pointers, maps, slices, funcs and channels → null
//   - [Undefined] → undefined
//   - numbers and booleans → their literal text
//   - strings → double-quoted, truncated with "…"
//   - funcs → [Function: name], closures are "anonymous"
//   - *big.Int → digits followed by n
//   - slices and arrays → [a, b]; named slice types get a Name(len) prefix
//   - string-keyed maps and structs → a block of sorted "key: value" lines
//   - maps with struct{} values → Set(n) { a, b }
//   - other maps → Map(n) { key => value }
//   - channels, sync.Map, sync.Pool and weak pointers → Type {}
//   - byte buffers and sized readers → Type(byteLength)
//   - *regexp.Regexp → its source, escaped
//   - [Inspector], error and fmt.Stringer → their own text
//   - anything else → [object Type]
//
// Use [KindOf] to see which rule a value falls under.
//
// # Limits
//
// Options bound the output. Containers deeper than Depth collapse to a
// header such as Array(3) or {…}. StringLength, CollectionLength and
// ObjectLength keep the first N characters, elements or keys and append a
// single "…" marker. A container that contains itself renders as [Circular]
// at the point of recurrence.
//
//	inspect.String(v, inspect.WithDepth(1), inspect.WithCollectionLength(10))
//
// # Configuration
//
// [LoadConfig] reads options from a YAML or TOML file; absent fields keep
// their defaults. [ConfigSchema] describes the file format.
//
// # Logging
//
// [Log] and [Attr] plug into log/slog and render only when a record is
// emitted:
//
//	slog.Debug("state", inspect.Attr("cache", cache))
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidOptions]: a length limit below Unbounded or unknown measure
//   - [ErrInvalidConfig]: a config file that does not decode or validate
//   - [ErrUnsupportedFormat]: an unknown config or input format
package inspect
