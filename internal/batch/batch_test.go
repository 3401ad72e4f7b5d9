package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/saver"
)

type call struct {
	at         time.Time
	descriptor clip_saver.Descriptor
	affordance saver.Affordance
}

type fakeSaver struct {
	mu       sync.Mutex
	calls    []call
	statuses map[string]saver.Status
	onCall   func(n int)
}

func (s *fakeSaver) ForceDownload(ctx context.Context, d clip_saver.Descriptor, a saver.Affordance) *saver.Attempt {
	s.mu.Lock()
	s.calls = append(s.calls, call{time.Now(), d, a})
	n := len(s.calls)
	s.mu.Unlock()
	if s.onCall != nil {
		s.onCall(n)
	}
	attempt := &saver.Attempt{ID: saver.NewAttemptID(), Descriptor: d, Status: saver.StatusSuccess}
	if status, ok := s.statuses[d.Filename]; ok {
		attempt.Status = status
		attempt.Err = errors.New("boom")
	}
	return attempt
}

type labelOnly struct {
	saver.Affordance
	label string
}

func (l *labelOnly) Label() string         { return l.label }
func (l *labelOnly) SetLabel(label string) { l.label = label }

func items(n int) []clip_saver.Descriptor {
	filenames, _ := clip_saver.NewFilenameConfig().SlideFilenames("abc", n)
	var result []clip_saver.Descriptor
	for i, f := range filenames {
		result = append(result, clip_saver.Descriptor{URL: "u" + string(rune('1'+i)), Filename: f})
	}
	return result
}

func TestConfig(t *testing.T) {
	assert := assert_.New(t)
	assert.Equal(time.Second, DefaultConfig.Interval)
	assert.NoError(DefaultConfig.Validate())
	assert.NoError(Config{Interval: 5 * time.Second}.Validate())
	assert.ErrorIs(Config{Interval: 999 * time.Millisecond}.Validate(), ErrIntervalTooShort)
	assert.ErrorIs(Config{}.Validate(), ErrIntervalTooShort)
	assert.ErrorIs(Config{Interval: -time.Second}.Validate(), ErrIntervalTooShort)

	d := New(&fakeSaver{}, Config{})
	defer d.Close()
	assert.Equal(DefaultInterval, d.Interval())
	d2 := New(&fakeSaver{}, Config{Interval: -time.Second})
	defer d2.Close()
	assert.Equal(DefaultInterval, d2.Interval())
}

func TestDownloadAll_ZeroIntervalStillWaits(t *testing.T) {
	assert := assert_.New(t)
	s := &fakeSaver{}
	d := New(s, Config{})
	defer d.Close()

	start := time.Now()
	summary := d.DownloadAll(context.Background(), items(1), nil)
	assert.Equal(1, summary.Succeeded)
	if assert.Len(s.calls, 1) {
		assert.True(s.calls[0].at.Sub(start) >= DefaultInterval, "waited %v", s.calls[0].at.Sub(start))
	}
}

func TestDownloadAll_OrderAndInterval(t *testing.T) {
	assert := assert_.New(t)
	interval := 30 * time.Millisecond
	s := &fakeSaver{}
	d := New(s, Config{Interval: interval})
	defer d.Close()

	start := time.Now()
	summary := d.DownloadAll(context.Background(), items(3), nil)

	assert.Len(s.calls, 3)
	assert.Equal(3, summary.Total)
	assert.Equal(3, summary.Succeeded)
	assert.True(summary.Complete())
	assert.NoError(summary.Err)
	assert.NotEmpty(summary.JobID)
	prev := start
	for i, c := range s.calls {
		assert.Equal(items(3)[i], c.descriptor)
		assert.Nil(c.affordance)
		assert.True(c.at.Sub(prev) >= interval, "gap before item %d was %v", i, c.at.Sub(prev))
		prev = c.at
	}
	for i, a := range summary.Attempts {
		assert.Equal(items(3)[i].Filename, a.Descriptor.Filename)
	}
}

func TestDownloadAll_ContinuesAfterFailures(t *testing.T) {
	assert := assert_.New(t)
	s := &fakeSaver{statuses: map[string]saver.Status{
		"abc_slide_1.jpg": saver.StatusFallbackOpened,
		"abc_slide_2.jpg": saver.StatusFailed,
	}}
	d := New(s, Config{Interval: time.Millisecond})
	defer d.Close()

	summary := d.DownloadAll(context.Background(), items(3), nil)
	assert.Len(s.calls, 3)
	assert.Equal(1, summary.Succeeded)
	assert.Equal(1, summary.FallbackOpened)
	assert.Equal(1, summary.Failed)
	assert.Equal(0, summary.Skipped)
	assert.True(summary.Complete())
	assert.Error(summary.Err)
	assert.Contains(summary.String(), "1/3 saved")
}

func TestDownloadAll_Cancel(t *testing.T) {
	assert := assert_.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &fakeSaver{onCall: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	d := New(s, Config{Interval: 10 * time.Millisecond})
	defer d.Close()

	summary := d.DownloadAll(ctx, items(5), nil)
	assert.Len(s.calls, 2)
	assert.Equal(3, summary.Skipped)
	assert.False(summary.Complete())
	assert.ErrorIs(summary.Err, context.Canceled)
}

func TestDownloadAll_CancelledBeforeStart(t *testing.T) {
	assert := assert_.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeSaver{}
	d := New(s, Config{Interval: time.Hour})
	defer d.Close()

	summary := d.DownloadAll(ctx, items(2), nil)
	assert.Empty(s.calls)
	assert.Equal(2, summary.Skipped)
}

func TestDownloadAll_Label(t *testing.T) {
	assert := assert_.New(t)
	button := &labelOnly{label: "Download All"}
	var during string
	s := &fakeSaver{onCall: func(int) { during = button.Label() }}
	d := New(s, Config{Interval: time.Millisecond})
	defer d.Close()

	_ = d.DownloadAll(context.Background(), items(1), button)
	assert.Equal(BusyLabel, during)
	assert.Equal("Download All", button.Label())
}

func TestDownloadAll_Events(t *testing.T) {
	assert := assert_.New(t)
	d := New(&fakeSaver{}, Config{Interval: time.Millisecond})
	events, err := d.Subscribe()
	assert.NoError(err)

	summary := d.DownloadAll(context.Background(), items(2), nil)
	d.Close()

	var received []Event
	for e := range events.Receive() {
		received = append(received, e)
	}
	if assert.Len(received, 5) {
		for _, e := range received {
			assert.Equal(summary.JobID, e.JobID())
		}
		assert.IsType(ItemStarted{}, received[0])
		assert.IsType(ItemFinished{}, received[1])
		assert.IsType(ItemStarted{}, received[2])
		assert.Equal(1, received[2].(ItemStarted).Index)
		assert.Equal("abc_slide_2.jpg", received[3].(ItemFinished).Attempt.Descriptor.Filename)
		assert.Equal(summary.Total, received[4].(BatchFinished).Summary.Total)
	}
}
