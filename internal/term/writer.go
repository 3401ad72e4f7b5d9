// Package term renders a session on a plain text terminal.
package term

import (
	"io"
	"sync"
)

// lockedWriter serializes writes, so that progress bars drawn from other goroutines don't interleave with output.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// SyncWriter wraps w so that it is safe for concurrent use. Everything drawing on the same terminal should share
// one SyncWriter.
func SyncWriter(w io.Writer) io.Writer {
	if lw, ok := w.(*lockedWriter); ok {
		return lw
	}
	return &lockedWriter{w: w}
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
