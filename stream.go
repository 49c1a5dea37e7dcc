package inspect

import (
	"io"
	"iter"
)

// WriteIter renders each item from seq on its own line as it arrives. Every
// item gets a fresh traversal, so cycles are only detected within one item.
func WriteIter[T any](w io.Writer, seq iter.Seq[T], opts ...Option) error {
	o := resolve(opts)
	var err error
	seq(func(item T) bool {
		_, err = io.WriteString(w, newState(o).format(valueOf(item))+"\n")
		return err == nil
	})
	return err
}

// WriteChan renders items received from ch until it is closed.
// It is a thin wrapper around [WriteIter].
func WriteChan[T any](w io.Writer, ch <-chan T, opts ...Option) error {
	return WriteIter(w, chanToIter(ch), opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
