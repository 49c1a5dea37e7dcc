package inspect

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func formatScalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return formatFloat(v.Float(), 32)
	case reflect.Float64:
		return formatFloat(v.Float(), 64)
	default:
		c := v.Complex()
		return "(" + formatFloat(real(c), 64) + signed(formatFloat(imag(c), 64)) + "i)"
	}
}

func signed(s string) string {
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// formatFloat prints the shortest round-trip digits, switching to exponent
// form outside [1e-6, 1e21).
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func (s state) formatString(text string) string {
	return `"` + truncate(text, s.opts.StringLength, s.opts.Measure) + `"`
}

// truncate cuts text to n units and appends the ellipsis marker when anything
// was dropped.
func truncate(text string, n int, m Measure) string {
	if n < 0 {
		return text
	}
	if m == MeasureColumns {
		if runewidth.StringWidth(text) <= n {
			return text
		}
		return runewidth.Truncate(text, n, "") + ellipsis
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + ellipsis
}

var closureName = regexp.MustCompile(`(^|\.)func\d+(\.\d+)*$`)

// funcName derives a display name from the runtime symbol.
func funcName(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "anonymous"
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if closureName.MatchString(name) {
		return "anonymous"
	}
	name = strings.TrimSuffix(name, "[...]")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "anonymous"
	}
	return name
}

func formatBigInt(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		return v.Interface().(*big.Int).String()
	}
	if v.CanAddr() {
		return v.Addr().Interface().(*big.Int).String()
	}
	n := v.Interface().(big.Int)
	return n.String()
}

func patternSource(v reflect.Value) string {
	return v.Interface().(*regexp.Regexp).String()
}

// formatNative uses the value's own text. Panics raised by user methods
// propagate to the caller.
func formatNative(v reflect.Value) string {
	switch x := v.Interface().(type) {
	case Inspector:
		return x.Inspect()
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return "[object " + v.Type().String() + "]"
	}
}
