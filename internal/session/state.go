package session

import (
	"fmt"

	"github.com/alanbriolat/clip-saver"
)

// State is a comparable summary of the session, suitable for diffing.
type State struct {
	Link        string
	Provider    string
	Type        clip_saver.MediaType
	Username    string
	Views       string
	Likes       string
	Watermarked bool
	HasAudio    bool
	SlideIndex  int
	SlideCount  int
	// URL of the slide a single download would save.
	BoundSlide string
}

func (a *activeMedia) state() State {
	state := State{
		Link:       a.link,
		Provider:   a.provider,
		SlideIndex: a.slides.Index(),
		SlideCount: a.slides.Len(),
	}
	if m := a.media; m != nil {
		state.Type = m.Type
		state.Username = m.Username
		state.Views = m.Views
		state.Likes = m.Likes
		state.Watermarked = m.Watermarked
		state.HasAudio = m.Audio.IsSome()
	}
	if current, ok := a.slides.Current(); ok {
		state.BoundSlide = current.URL
	}
	return state
}

// Counter renders the slide position, e.g. "2 / 5".
func (s State) Counter() string {
	if s.SlideCount == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.SlideIndex+1, s.SlideCount)
}
