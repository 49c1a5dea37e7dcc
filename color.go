package inspect

import "github.com/fatih/color"

// styles ignore color.NoColor. Options.Colors is the only switch.
var styles = map[Kind]*color.Color{
	KindUndefined: enabled(color.New(color.Faint)),
	KindNull:      enabled(color.New(color.Bold)),
	KindBool:      enabled(color.New(color.FgYellow)),
	KindNumber:    enabled(color.New(color.FgYellow)),
	KindBigInt:    enabled(color.New(color.FgYellow)),
	KindString:    enabled(color.New(color.FgGreen)),
	KindFunc:      enabled(color.New(color.FgCyan)),
	KindPattern:   enabled(color.New(color.FgRed)),
}

var markStyle = enabled(color.New(color.FgMagenta))

func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

func (s state) paint(k Kind, text string) string {
	if !s.opts.Colors {
		return text
	}
	if c, ok := styles[k]; ok {
		return c.Sprint(text)
	}
	return text
}

// mark styles traversal markers such as [Circular].
func (s state) mark(text string) string {
	if !s.opts.Colors {
		return text
	}
	return markStyle.Sprint(text)
}
