package session

import (
	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/saver"
)

type Event interface {
	sessionEvent()
}

type event struct{}

func (event) sessionEvent() {}

type MediaLoaded struct {
	event
	Media clip_saver.MediaSet
	State State
}

type StateChanged struct {
	event
	OldState State
	NewState State
}

type AttemptFinished struct {
	event
	Attempt *saver.Attempt
}
