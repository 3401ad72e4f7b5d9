// Package slides is a circular cursor over the images of a photo post.
package slides

import (
	"fmt"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
)

// A SlideShow holds an ordered set of slides and the current position. The zero value is an empty show.
//
// It is not safe for concurrent use; the session guards it.
type SlideShow struct {
	slides  []clip_saver.Descriptor
	index   int
	current generic.Option[clip_saver.Descriptor]
}

func New(slides []clip_saver.Descriptor) *SlideShow {
	s := &SlideShow{}
	s.Load(slides)
	return s
}

// Load replaces every slide and goes back to the first one.
func (s *SlideShow) Load(slides []clip_saver.Descriptor) {
	s.slides = append([]clip_saver.Descriptor(nil), slides...)
	s.index = 0
	s.bind()
}

func (s *SlideShow) Advance() {
	s.Move(1)
}

func (s *SlideShow) Retreat() {
	s.Move(-1)
}

// Move goes forward (or backward, if negative) by delta slides, wrapping around at either end. It does nothing on
// an empty show.
func (s *SlideShow) Move(delta int) {
	n := len(s.slides)
	if n == 0 {
		return
	}
	s.index = ((s.index+delta)%n + n) % n
	s.bind()
}

// bind replaces the current descriptor with the one at the current index.
func (s *SlideShow) bind() {
	if len(s.slides) == 0 {
		s.current = generic.None[clip_saver.Descriptor]()
	} else {
		s.current = generic.Some(s.slides[s.index])
	}
}

func (s *SlideShow) Index() int {
	return s.index
}

func (s *SlideShow) Len() int {
	return len(s.slides)
}

// Current returns the slide a single download should save, or false if there are no slides.
func (s *SlideShow) Current() (clip_saver.Descriptor, bool) {
	return s.current.Get()
}

// Slides returns a copy of every slide in order.
func (s *SlideShow) Slides() []clip_saver.Descriptor {
	return append([]clip_saver.Descriptor(nil), s.slides...)
}

// Counter renders the 1-based position, e.g. "2 / 5".
func (s *SlideShow) Counter() string {
	if len(s.slides) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.index+1, len(s.slides))
}
