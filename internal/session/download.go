package session

import (
	"context"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/batch"
	"github.com/alanbriolat/clip-saver/internal/saver"
)

// forceDownload makes one attempt bounded by both ctx and the session's lifetime.
func (s *Session) forceDownload(ctx context.Context, d clip_saver.Descriptor, a saver.Affordance) *saver.Attempt {
	ctx, cancel := s.withSession(ctx)
	defer cancel()
	attempt := s.saver.ForceDownload(ctx, d, a)
	s.events.Send(AttemptFinished{Attempt: attempt})
	return attempt
}

func (s *Session) withSession(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func (s *Session) DownloadVideo(ctx context.Context, a saver.Affordance) (*saver.Attempt, error) {
	media, err := s.media(clip_saver.MediaTypeVideo)
	if err != nil {
		return nil, err
	}
	return s.forceDownload(ctx, media.Video, a), nil
}

func (s *Session) DownloadAudio(ctx context.Context, a saver.Affordance) (*saver.Attempt, error) {
	media, err := s.media(clip_saver.MediaTypeVideo)
	if err != nil {
		return nil, err
	}
	audio, ok := media.Audio.Get()
	if !ok {
		return nil, ErrNoAudio
	}
	return s.forceDownload(ctx, audio, a), nil
}

// CurrentSlide is the slide a single download would save right now.
func (s *Session) CurrentSlide() (clip_saver.Descriptor, error) {
	if _, err := s.media(clip_saver.MediaTypePhoto); err != nil {
		return clip_saver.Descriptor{}, err
	}
	var current clip_saver.Descriptor
	var ok bool
	_ = s.active.RLocked(func(a *activeMedia) error {
		current, ok = a.slides.Current()
		return nil
	})
	if !ok {
		return clip_saver.Descriptor{}, ErrNothingLoaded
	}
	return current, nil
}

func (s *Session) DownloadCurrentSlide(ctx context.Context, a saver.Affordance) (*saver.Attempt, error) {
	current, err := s.CurrentSlide()
	if err != nil {
		return nil, err
	}
	return s.forceDownload(ctx, current, a), nil
}

// DownloadAll saves every slide in order, through the batch downloader.
func (s *Session) DownloadAll(ctx context.Context, a saver.Affordance) (batch.Summary, error) {
	media, err := s.media(clip_saver.MediaTypePhoto)
	if err != nil {
		return batch.Summary{}, err
	}
	ctx, cancel := s.withSession(ctx)
	defer cancel()
	summary := s.batch.DownloadAll(ctx, media.Slides, a)
	for _, attempt := range summary.Attempts {
		s.events.Send(AttemptFinished{Attempt: attempt})
	}
	return summary, nil
}

func (s *Session) NextSlide() (State, error) {
	return s.moveSlide(1)
}

func (s *Session) PreviousSlide() (State, error) {
	return s.moveSlide(-1)
}

func (s *Session) moveSlide(delta int) (State, error) {
	if _, err := s.media(clip_saver.MediaTypePhoto); err != nil {
		return State{}, err
	}
	old, updated := s.update(func(a *activeMedia) {
		a.slides.Move(delta)
	})
	s.events.Send(StateChanged{OldState: old, NewState: updated})
	return updated, nil
}
