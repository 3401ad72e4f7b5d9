package batch

import (
	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/saver"
)

type Event interface {
	// The batch this event relates to.
	JobID() JobID
}

type jobEvent struct {
	jobID JobID
}

func (e jobEvent) JobID() JobID {
	return e.jobID
}

type ItemStarted struct {
	jobEvent
	Index      int
	Total      int
	Descriptor clip_saver.Descriptor
}

type ItemFinished struct {
	jobEvent
	Index   int
	Total   int
	Attempt *saver.Attempt
}

type BatchFinished struct {
	jobEvent
	Summary Summary
}
