package saver

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
)

type AttemptID string

func NewAttemptID() AttemptID {
	return AttemptID(generic.Unwrap(uuid.NewRandom()).String())
}

type Status string

const (
	StatusPending        Status = "pending"
	StatusSuccess        Status = "success"
	StatusFallbackOpened Status = "fallback-opened"
	StatusFailed         Status = "failed"
)

// An Attempt records a single ForceDownload call.
type Attempt struct {
	ID         AttemptID
	Descriptor clip_saver.Descriptor
	Status     Status
	// Path of the saved file, only set for StatusSuccess.
	Path string
	// Err is why the automatic save didn't happen; nil for StatusSuccess.
	Err error
}

func newAttempt(d clip_saver.Descriptor) *Attempt {
	return &Attempt{
		ID:         NewAttemptID(),
		Descriptor: d,
		Status:     StatusPending,
	}
}

func (a *Attempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("Attempt{ID:%q, Filename:%q, Status:%q, Err:%q}", a.ID, a.Descriptor.Filename, a.Status, a.Err)
	}
	return fmt.Sprintf("Attempt{ID:%q, Filename:%q, Status:%q}", a.ID, a.Descriptor.Filename, a.Status)
}
