package inspect

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// header renders "Name(n)". Named container types keep their own name.
func header(t reflect.Type, generic string, n int) string {
	return typeName(t, generic) + "(" + strconv.Itoa(n) + ")"
}

func sequenceHeader(v reflect.Value) string {
	if byteView(v.Type()) {
		return header(v.Type(), "Uint8Array", v.Len())
	}
	return header(v.Type(), "Array", v.Len())
}

// byteView reports an unnamed byte slice, shown like a typed binary view.
func byteView(t reflect.Type) bool {
	return t.Name() == "" && t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

func (s state) formatSequence(c class) string {
	if !s.enter(c.id) {
		return s.mark(circular)
	}
	defer s.leave(c.id)

	v := c.v
	if s.depth >= s.opts.Depth {
		return sequenceHeader(v)
	}
	prefix := ""
	if v.Type().Name() != "" || byteView(v.Type()) {
		prefix = sequenceHeader(v)
	}
	n, more := limit(v.Len(), s.opts.CollectionLength)
	child := s.next()
	parts := make([]string, 0, n+1)
	for i := range n {
		parts = append(parts, child.format(v.Index(i)))
	}
	if more {
		parts = append(parts, ellipsis)
	}
	return prefix + "[" + strings.Join(parts, ", ") + "]"
}

type entry struct {
	key   string
	value reflect.Value
}

// mappingEntries lists string-keyed map entries or exported struct fields,
// sorted by key.
func mappingEntries(v reflect.Value) []entry {
	var entries []entry
	if v.Kind() == reflect.Map {
		iter := v.MapRange()
		for iter.Next() {
			entries = append(entries, entry{key: iter.Key().String(), value: iter.Value()})
		}
	} else {
		t := v.Type()
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				entries = append(entries, entry{key: f.Name, value: v.Field(i)})
			}
		}
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })
	return entries
}

func (s state) formatMapping(c class) string {
	if s.depth > s.opts.Depth {
		return s.mark("{" + ellipsis + "}")
	}
	if !s.enter(c.id) {
		return s.mark(circular)
	}
	defer s.leave(c.id)

	entries := mappingEntries(c.v)
	if len(entries) == 0 {
		return "{}"
	}
	n, more := limit(len(entries), s.opts.ObjectLength)
	child := s.next()

	// Past the first level, only the first entry is indented and siblings
	// are joined with a comma and one tab.
	nested := child.depth > 1
	sep := "\n"
	if nested {
		sep = ",\n" + tab
	}
	lines := make([]string, 0, n+1)
	for i, e := range entries[:n] {
		count := 1
		if nested && i != 0 {
			count = 0
		}
		lines = append(lines, indent(e.key+": "+child.format(e.value), count))
	}
	if more {
		count := 1
		if nested && n != 0 {
			count = 0
		}
		lines = append(lines, indent(ellipsis, count))
	}
	return "{\n" + strings.Join(lines, sep) + "\n}"
}

func (s state) formatCollection(c class) string {
	v := c.v
	generic := "Map"
	if c.kind == KindSet {
		generic = "Set"
	}
	head := header(v.Type(), generic, v.Len())
	if s.depth > s.opts.Depth {
		return head
	}
	if !s.enter(c.id) {
		return s.mark(circular)
	}
	defer s.leave(c.id)

	child := s.next()
	type item struct {
		raw   reflect.Value
		key   string
		value reflect.Value
		text  string
	}
	items := make([]item, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		it := item{raw: iter.Key(), key: child.format(iter.Key()), value: iter.Value()}
		if c.kind == KindMap {
			it.text = child.format(it.value)
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return head + " {}"
	}
	slices.SortStableFunc(items, func(a, b item) int {
		if d, ok := compareKeys(a.raw, b.raw); ok && d != 0 {
			return d
		}
		if d := strings.Compare(a.key, b.key); d != 0 {
			return d
		}
		// Keys like NaN render alike; order by value so output stays stable.
		return strings.Compare(a.text, b.text)
	})

	n, more := limit(len(items), s.opts.CollectionLength)
	parts := make([]string, 0, n+1)
	for _, it := range items[:n] {
		if c.kind == KindSet {
			parts = append(parts, it.key)
			continue
		}
		parts = append(parts, it.key+" => "+it.text)
	}
	if more {
		parts = append(parts, ellipsis)
	}
	return head + " { " + strings.Join(parts, ", ") + " }"
}

// compareKeys orders keys of the same basic kind by value. It reports false
// when the keys are not comparable that way.
func compareKeys(a, b reflect.Value) (int, bool) {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if a.Kind() != b.Kind() {
		return 0, false
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint()), true
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float()), true
	case reflect.String:
		return strings.Compare(a.String(), b.String()), true
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0, true
		case b.Bool():
			return -1, true
		default:
			return 1, true
		}
	}
	return 0, false
}
