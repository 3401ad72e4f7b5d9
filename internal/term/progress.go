package term

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/batch"
	"github.com/alanbriolat/clip-saver/internal/pubsub"
	"github.com/alanbriolat/clip-saver/internal/session"
)

// ByteProgress draws a byte counter for each download in turn. Its Update method is a saver.ProgressFunc.
type ByteProgress struct {
	mu      sync.Mutex
	out     io.Writer
	bar     *progressbar.ProgressBar
	current clip_saver.Descriptor
}

func NewByteProgress(out io.Writer) *ByteProgress {
	return &ByteProgress{out: out}
}

func (p *ByteProgress) Update(d clip_saver.Descriptor, downloaded int64, expected int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil || d != p.current {
		p.finish()
		p.current = d
		size := expected
		if size <= 0 {
			// Unknown length, draw a spinner
			size = -1
		}
		p.bar = progressbar.NewOptions64(
			size,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(d.Filename),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(p.out, "\n") }),
		)
	}
	if expected > 0 && p.bar.GetMax64() != expected {
		p.bar.ChangeMax64(expected)
	}
	if err := p.bar.Set64(downloaded); err != nil {
		zap.S().Named("term").Debugf("progress bar: %v", err)
	}
	if expected > 0 && downloaded >= expected {
		p.finish()
	}
}

// Finish completes any bar still being drawn.
func (p *ByteProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finish()
}

func (p *ByteProgress) finish() {
	if p.bar == nil {
		return
	}
	if !p.bar.IsFinished() {
		_ = p.bar.Finish()
	}
	p.bar = nil
	p.current = clip_saver.Descriptor{}
}

// WatchBatch draws a bar counting finished items until a batch finishes or events is closed. The returned channel is
// closed once it stops.
func WatchBatch(out io.Writer, events pubsub.Receiver[batch.Event]) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var bar *progressbar.ProgressBar
		for event := range events.Receive() {
			switch e := event.(type) {
			case batch.ItemStarted:
				if bar == nil {
					bar = progressbar.NewOptions(
						e.Total,
						progressbar.OptionSetWriter(out),
						progressbar.OptionSetDescription("photos"),
						progressbar.OptionSetItsString("photo"),
						progressbar.OptionShowCount(),
						progressbar.OptionSetWidth(30),
						progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(out, "\n") }),
					)
				}
			case batch.ItemFinished:
				if bar != nil {
					_ = bar.Add(1)
				}
			case batch.BatchFinished:
				if bar != nil {
					_ = bar.Finish()
				}
				return
			}
		}
	}()
	return done
}

// SaveAll runs DownloadAll on s with a progress bar, returning once the bar has drawn every item.
func SaveAll(ctx context.Context, s *session.Session, out io.Writer) (batch.Summary, error) {
	events, err := s.Batch().Subscribe()
	if err != nil {
		return batch.Summary{}, err
	}
	defer events.Close()
	done := WatchBatch(out, events)
	summary, err := s.DownloadAll(ctx, nil)
	if err != nil {
		return summary, err
	}
	// BatchFinished is always published, but may still be queued
	<-done
	return summary, nil
}

// StartLoading shows a spinner until the returned function is called. Call it in a defer, so the spinner can't be
// left running.
func StartLoading(out io.Writer, description string) (stop func()) {
	bar := progressbar.NewOptions(
		-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-stopped
			_ = bar.Clear()
		})
	}
}
