package inspect

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"regexp"
	"strings"
	"sync"
)

// Kind is the rendering category of a value.
type Kind int

const (
	KindFallback  Kind = iota // anything else, shown as [object Type]
	KindUndefined             // the Undefined sentinel
	KindNull                  // nil of any nilable type
	KindBool                  // true or false
	KindNumber                // integers, floats and complex numbers
	KindString                // quoted, escaped, maybe truncated text
	KindFunc                  // [Function: name]
	KindBigInt                // big.Int with an n suffix
	KindSequence              // slices and arrays
	KindMapping               // string-keyed maps and structs
	KindMap                   // maps with non-string keys
	KindSet                   // maps with struct{} values
	KindOpaque                // channels, sync.Map, sync.Pool, weak pointers
	KindBuffer                // byte buffers, shown by length
	KindPattern               // *regexp.Regexp, shown as escaped source
	KindNative                // values with their own Inspect, Error or String
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunc:
		return "func"
	case KindBigInt:
		return "bigint"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindOpaque:
		return "opaque"
	case KindBuffer:
		return "buffer"
	case KindPattern:
		return "pattern"
	case KindNative:
		return "native"
	default:
		return "fallback"
	}
}

// KindOf reports the category v renders as.
func KindOf(v any) Kind {
	return classify(valueOf(v)).kind
}

var (
	undefinedType = reflect.TypeFor[undefined]()
	bigIntType    = reflect.TypeFor[big.Int]()
	bigIntPtrType = reflect.TypeFor[*big.Int]()
	regexpPtrType = reflect.TypeFor[*regexp.Regexp]()
	syncMapType   = reflect.TypeFor[sync.Map]()
	syncPoolType  = reflect.TypeFor[sync.Pool]()
	emptyType     = reflect.TypeFor[struct{}]()

	inspectorType = reflect.TypeFor[Inspector]()
	errorType     = reflect.TypeFor[error]()
	stringerType  = reflect.TypeFor[fmt.Stringer]()
	bufferType    = reflect.TypeFor[byteBuffer]()
	sizedType     = reflect.TypeFor[sizedReader]()
)

// byteBuffer matches growable buffers such as *bytes.Buffer.
type byteBuffer interface {
	Len() int
	Bytes() []byte
}

// sizedReader matches fixed views such as *bytes.Reader and *strings.Reader.
type sizedReader interface {
	io.ReaderAt
	Size() int64
}

var (
	_ byteBuffer  = (*bytes.Buffer)(nil)
	_ sizedReader = (*bytes.Reader)(nil)
	_ sizedReader = (*strings.Reader)(nil)
)

// identity names a container for the cycle guard. The type is part of the key
// because a struct and its first field share an address.
type identity struct {
	ptr uintptr
	typ reflect.Type
}

// class is the result of classifying a value once before dispatch.
type class struct {
	kind Kind
	v    reflect.Value
	id   identity
}

func valueOf(v any) reflect.Value {
	return reflect.ValueOf(v)
}

func classify(v reflect.Value) class {
	var id identity
	for {
		if !v.IsValid() {
			return class{kind: KindNull}
		}
		t := v.Type()
		if t == undefinedType {
			return class{kind: KindUndefined}
		}
		if nilable(v) && v.IsNil() {
			return class{kind: KindNull}
		}
		if t.Kind() == reflect.Interface {
			v = v.Elem()
			continue
		}
		switch {
		case t == bigIntType || t == bigIntPtrType:
			return class{kind: KindBigInt, v: v}
		case t == regexpPtrType:
			return class{kind: KindPattern, v: v}
		case opaque(t):
			return class{kind: KindOpaque, v: v}
		case t.Kind() == reflect.Func:
			return class{kind: KindFunc, v: v}
		}
		if v.CanInterface() {
			switch {
			case t.Implements(bufferType) || t.Implements(sizedType):
				return class{kind: KindBuffer, v: v}
			case t.Implements(inspectorType):
				return class{kind: KindNative, v: v}
			case native(t) && (t.Implements(errorType) || t.Implements(stringerType)):
				return class{kind: KindNative, v: v}
			}
		}
		switch t.Kind() {
		case reflect.Pointer:
			id = identity{ptr: v.Pointer(), typ: t}
			v = v.Elem()
			continue
		case reflect.Bool:
			return class{kind: KindBool, v: v}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			return class{kind: KindNumber, v: v}
		case reflect.String:
			return class{kind: KindString, v: v}
		case reflect.Slice:
			if v.Len() > 0 {
				id = identity{ptr: v.Pointer(), typ: t}
			}
			return class{kind: KindSequence, v: v, id: id}
		case reflect.Array:
			return class{kind: KindSequence, v: v, id: id}
		case reflect.Map:
			id = identity{ptr: v.Pointer(), typ: t}
			switch {
			case t.Elem() == emptyType:
				return class{kind: KindSet, v: v, id: id}
			case t.Key().Kind() == reflect.String:
				return class{kind: KindMapping, v: v, id: id}
			default:
				return class{kind: KindMap, v: v, id: id}
			}
		case reflect.Struct:
			return class{kind: KindMapping, v: v, id: id}
		default:
			return class{kind: KindFallback, v: v}
		}
	}
}

func nilable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// opaque reports built-ins whose content is not shown.
func opaque(t reflect.Type) bool {
	if t.Kind() == reflect.Chan {
		return true
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == syncMapType || t == syncPoolType {
		return true
	}
	return t.PkgPath() == "weak" && strings.HasPrefix(t.Name(), "Pointer[")
}

// native reports whether a type's own String or Error method takes precedence
// over structural rendering. Sequences and maps always render structurally.
func native(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return false
	}
	return true
}
