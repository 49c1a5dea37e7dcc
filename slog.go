package inspect

import "log/slog"

type logValue struct {
	v    any
	opts []Option
}

func (l logValue) LogValue() slog.Value {
	return slog.StringValue(String(l.v, l.opts...))
}

// Log defers rendering v until a handler actually emits the record.
//
//	slog.Debug("request", "body", inspect.Log(body, inspect.WithDepth(1)))
func Log(v any, opts ...Option) slog.LogValuer {
	return logValue{v: v, opts: opts}
}

// Attr returns an attribute whose value is the rendering of v.
func Attr(key string, v any, opts ...Option) slog.Attr {
	return slog.Any(key, Log(v, opts...))
}
