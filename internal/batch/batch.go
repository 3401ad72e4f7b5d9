// Package batch saves a sequence of media items one at a time, pausing before each one so that the destination is
// never flooded with parallel downloads.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
	"github.com/alanbriolat/clip-saver/internal/pubsub"
	"github.com/alanbriolat/clip-saver/internal/saver"
)

const (
	DefaultInterval = time.Second
	BusyLabel       = "Downloading all photos..."
)

type JobID string

func NewJobID() JobID {
	return JobID(generic.Unwrap(uuid.NewRandom()).String())
}

// ItemSaver makes a single download attempt; *saver.Saver is the real implementation.
type ItemSaver interface {
	ForceDownload(ctx context.Context, d clip_saver.Descriptor, a saver.Affordance) *saver.Attempt
}

var ErrIntervalTooShort = errors.New("interval too short")

type Config struct {
	// Pause before every item, including the first. Zero or negative means DefaultInterval.
	Interval time.Duration
}

// Validate rejects intervals shorter than DefaultInterval, which would flood the media host.
func (c Config) Validate() error {
	if c.Interval < DefaultInterval {
		return fmt.Errorf("%w: %v, must be at least %v", ErrIntervalTooShort, c.Interval, DefaultInterval)
	}
	return nil
}

var DefaultConfig = Config{
	Interval: DefaultInterval,
}

type Downloader struct {
	saver  ItemSaver
	config Config
	events pubsub.Publisher[Event]
	log    *zap.SugaredLogger
}

func New(saver ItemSaver, config Config) *Downloader {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	return &Downloader{
		saver:  saver,
		config: config,
		events: pubsub.NewPublisher[Event](),
		log:    zap.S().Named("batch"),
	}
}

// Subscribe to progress events for every batch run by this Downloader. Subscribers must keep receiving, or the batch
// will stall.
func (d *Downloader) Subscribe() (pubsub.ReceiverCloser[Event], error) {
	return d.events.SubscribeBufSize(16)
}

// Interval is the pause before each item.
func (d *Downloader) Interval() time.Duration {
	return d.config.Interval
}

func (d *Downloader) Close() {
	d.events.Close()
}

// DownloadAll attempts each item exactly once, in order, waiting Config.Interval before each. A failed item never
// stops the batch. Cancelling ctx stops it before the next item, and everything not yet attempted is counted as
// skipped. If a is not nil its label shows a busy message until DownloadAll returns.
func (d *Downloader) DownloadAll(ctx context.Context, items []clip_saver.Descriptor, a saver.Affordance) Summary {
	summary := Summary{
		JobID:    NewJobID(),
		Total:    len(items),
		Attempts: make([]*saver.Attempt, 0, len(items)),
	}
	log := d.log.With("job_id", summary.JobID)
	log.Infof("starting batch of %d items", len(items))

	if a != nil {
		label := a.Label()
		a.SetLabel(BusyLabel)
		defer a.SetLabel(label)
	}

	for i, item := range items {
		if err := sleep(ctx, d.config.Interval); err != nil {
			summary.Skipped = len(items) - i
			summary.Err = multierror.Append(summary.Err, fmt.Errorf("batch stopped before item %d: %w", i+1, err))
			log.Infof("batch cancelled, skipping %d items", summary.Skipped)
			break
		}
		d.events.Send(ItemStarted{jobEvent{summary.JobID}, i, len(items), item})
		attempt := d.saver.ForceDownload(ctx, item, nil)
		summary.add(attempt)
		log.Debugf("item %d/%d finished: %v", i+1, len(items), attempt)
		d.events.Send(ItemFinished{jobEvent{summary.JobID}, i, len(items), attempt})
	}

	log.Infof("batch finished: %v", summary)
	d.events.Send(BatchFinished{jobEvent{summary.JobID}, summary})
	return summary
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
