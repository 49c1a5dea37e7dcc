package inspect

import (
	"reflect"
	"strings"
)

const (
	tab      = "  "
	ellipsis = "…"
	circular = "[Circular]"
)

// state is the traversal context of one top-level render. It is passed by
// value; only the visited set is shared along the call stack.
type state struct {
	opts    *Options
	depth   int
	visited map[identity]struct{}
}

func newState(opts *Options) state {
	return state{opts: opts, visited: make(map[identity]struct{})}
}

func (s state) next() state {
	s.depth++
	return s
}

// enter marks id as being rendered. It reports false when id is already on
// the active path. Values without an identity always enter.
func (s state) enter(id identity) bool {
	if id.ptr == 0 {
		return true
	}
	if _, ok := s.visited[id]; ok {
		return false
	}
	s.visited[id] = struct{}{}
	return true
}

func (s state) leave(id identity) {
	if id.ptr != 0 {
		delete(s.visited, id)
	}
}

func (s state) format(v reflect.Value) string {
	c := classify(v)
	switch c.kind {
	case KindUndefined:
		return s.paint(KindUndefined, "undefined")
	case KindNull:
		return s.paint(KindNull, "null")
	case KindBool, KindNumber:
		return s.paint(c.kind, formatScalar(c.v))
	case KindString:
		return s.paint(KindString, s.formatString(c.v.String()))
	case KindFunc:
		return s.paint(KindFunc, "[Function: "+funcName(c.v)+"]")
	case KindBigInt:
		return s.paint(KindBigInt, formatBigInt(c.v)+"n")
	case KindSequence:
		return s.formatSequence(c)
	case KindMapping:
		return s.formatMapping(c)
	case KindMap, KindSet:
		return s.formatCollection(c)
	case KindOpaque:
		return formatOpaque(c.v)
	case KindBuffer:
		return formatBuffer(c.v)
	case KindPattern:
		return s.paint(KindPattern, s.opts.Escaper(patternSource(c.v)))
	case KindNative:
		return formatNative(c.v)
	default:
		return "[object " + c.v.Type().String() + "]"
	}
}

// indent prefixes every non-blank line of text with count tabs.
func indent(text string, count int) string {
	if count == 0 {
		return text
	}
	prefix := strings.Repeat(tab, count)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// limit returns how many of n items to show and whether a marker follows.
func limit(n, max int) (int, bool) {
	if max < 0 || n <= max {
		return n, false
	}
	return max, true
}

// typeName is the header name of a container type. Unnamed types fall back to
// a generic name.
func typeName(t reflect.Type, generic string) string {
	if t.Name() != "" {
		return t.Name()
	}
	return generic
}
