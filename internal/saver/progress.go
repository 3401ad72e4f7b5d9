package saver

import "github.com/alanbriolat/clip-saver"

// ProgressFunc is told how many bytes of d have arrived so far, and how many are expected (-1 if unknown).
type ProgressFunc func(d clip_saver.Descriptor, downloaded int64, expected int64)

// progressWriter ignores the data but counts it, for use at the end of an io.MultiWriter so that failed writes
// aren't counted.
type progressWriter struct {
	descriptor clip_saver.Descriptor
	downloaded int64
	expected   int64
	callback   ProgressFunc
}

func (w *progressWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.downloaded += int64(n)
	if w.callback != nil {
		w.callback(w.descriptor, w.downloaded, w.expected)
	}
	return n, nil
}
