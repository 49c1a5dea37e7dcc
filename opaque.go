package inspect

import (
	"reflect"
	"strconv"
)

// formatOpaque renders built-ins whose content is never shown, such as
// channels and sync.Map.
func formatOpaque(v reflect.Value) string {
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String() + " {}"
}

// formatBuffer renders byte containers by size only.
func formatBuffer(v reflect.Value) string {
	var n int64
	switch b := v.Interface().(type) {
	case byteBuffer:
		n = int64(b.Len())
	case sizedReader:
		n = b.Size()
	}
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String() + "(" + strconv.FormatInt(n, 10) + ")"
}
