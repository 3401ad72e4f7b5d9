package batch

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/clip-saver/internal/saver"
)

// Summary is the outcome of one DownloadAll call.
type Summary struct {
	JobID          JobID
	Total          int
	Succeeded      int
	FallbackOpened int
	Failed         int
	// Items never attempted because the batch was cancelled.
	Skipped  int
	Attempts []*saver.Attempt
	// Err collects the error of every attempt that didn't succeed, plus the reason for stopping early.
	Err error
}

func (s *Summary) add(attempt *saver.Attempt) {
	s.Attempts = append(s.Attempts, attempt)
	switch attempt.Status {
	case saver.StatusSuccess:
		s.Succeeded++
	case saver.StatusFallbackOpened:
		s.FallbackOpened++
	default:
		s.Failed++
	}
	if attempt.Err != nil {
		s.Err = multierror.Append(s.Err, fmt.Errorf("%s: %w", attempt.Descriptor.Filename, attempt.Err))
	}
}

// Complete is true if every item was attempted.
func (s Summary) Complete() bool {
	return s.Skipped == 0 && len(s.Attempts) == s.Total
}

func (s Summary) String() string {
	return fmt.Sprintf("%d/%d saved, %d opened for manual download, %d failed, %d skipped",
		s.Succeeded, s.Total, s.FallbackOpened, s.Failed, s.Skipped)
}
