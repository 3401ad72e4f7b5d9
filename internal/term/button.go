package term

import (
	"fmt"
	"io"
	"sync"
)

// A Button is the terminal stand-in for a clickable control. Label changes are printed so that the user can see
// when a download starts and ends.
type Button struct {
	mu      sync.Mutex
	out     io.Writer
	label   string
	opacity float64
	enabled bool
}

func NewButton(out io.Writer, label string) *Button {
	return &Button{
		out:     out,
		label:   label,
		opacity: 1,
		enabled: true,
	}
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) SetLabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if label == b.label {
		return
	}
	b.label = label
	if b.out != nil {
		_, _ = fmt.Fprintln(b.out, b.render())
	}
}

func (b *Button) Opacity() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opacity
}

func (b *Button) SetOpacity(opacity float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opacity = opacity
}

func (b *Button) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

func (b *Button) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.render()
}

func (b *Button) render() string {
	if b.enabled {
		return fmt.Sprintf("[%s]", b.label)
	}
	return fmt.Sprintf("[%s] (busy)", b.label)
}
