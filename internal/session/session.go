// Package session holds the state of one interactive session: the media set most recently loaded, and where the
// slide show is. Every user action goes through a Session.
package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/batch"
	"github.com/alanbriolat/clip-saver/internal/pubsub"
	"github.com/alanbriolat/clip-saver/internal/saver"
	"github.com/alanbriolat/clip-saver/internal/slides"
	"github.com/alanbriolat/clip-saver/internal/sync_"
)

var (
	ErrEmptyLink     = errors.New("please paste a TikTok link first")
	ErrNothingLoaded = errors.New("nothing loaded yet")
	ErrWrongMode     = errors.New("not available for this kind of post")
	ErrNoAudio       = errors.New("no audio available")
	ErrSessionClosed = errors.New("session closed")
)

type Config struct {
	ProviderRegistry *clip_saver.ProviderRegistry
	// If set, links are only matched against the named provider.
	Provider string
	// Zero value means the default filename templates.
	Filenames clip_saver.FilenameConfig
	Saver     saver.Config
	Batch     batch.Config
}

var DefaultConfig = Config{
	ProviderRegistry: &clip_saver.DefaultProviderRegistry,
	Saver:            saver.DefaultConfig,
	Batch:            batch.DefaultConfig,
}

// activeMedia is everything that changes when a new link is loaded. Exactly one media set is active at a time.
type activeMedia struct {
	link     string
	provider string
	media    *clip_saver.MediaSet
	slides   slides.SlideShow
}

type Session struct {
	config    Config
	ctx       context.Context
	ctxCancel context.CancelFunc
	log       *zap.SugaredLogger

	saver  *saver.Saver
	batch  *batch.Downloader
	active *sync_.RWMutexed[activeMedia]
	events pubsub.Publisher[Event]
	closed sync_.Event
}

func New(config Config, ctx context.Context) (*Session, error) {
	if config.ProviderRegistry == nil {
		config.ProviderRegistry = &clip_saver.DefaultProviderRegistry
	}
	defaults := clip_saver.NewFilenameConfig()
	if config.Filenames.VideoTemplate == nil {
		config.Filenames.VideoTemplate = defaults.VideoTemplate
	}
	if config.Filenames.AudioTemplate == nil {
		config.Filenames.AudioTemplate = defaults.AudioTemplate
	}
	if config.Filenames.SlideTemplate == nil {
		config.Filenames.SlideTemplate = defaults.SlideTemplate
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		config:    config,
		ctx:       ctx,
		ctxCancel: cancel,
		log:       zap.S().Named("session"),

		active: sync_.NewRWMutexed(activeMedia{}),
		events: pubsub.NewPublisher[Event](),
	}
	s.saver = saver.New(config.Saver)
	s.batch = batch.New(s.saver, config.Batch)
	return s, nil
}

func (s *Session) Subscribe() (pubsub.ReceiverCloser[Event], error) {
	return s.events.SubscribeBufSize(16)
}

// Batch gives access to the downloader used by DownloadAll, e.g. to subscribe to per-item progress.
func (s *Session) Batch() *batch.Downloader {
	return s.batch
}

// Snapshot describes the session as it is now.
func (s *Session) Snapshot() State {
	var state State
	_ = s.active.RLocked(func(a *activeMedia) error {
		state = a.state()
		return nil
	})
	return state
}

// Media returns the active media set, or false if nothing has been loaded.
func (s *Session) Media() (clip_saver.MediaSet, bool) {
	var media *clip_saver.MediaSet
	_ = s.active.RLocked(func(a *activeMedia) error {
		media = a.media
		return nil
	})
	if media == nil {
		return clip_saver.MediaSet{}, false
	}
	return *media, true
}

// Load looks up link and makes the result the active media set, replacing the previous one entirely and going back
// to the first slide. On any error the previous media set stays active.
func (s *Session) Load(ctx context.Context, link string) (*clip_saver.MediaSet, error) {
	if s.closed.IsSet() {
		return nil, ErrSessionClosed
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, ErrEmptyLink
	}
	match, err := s.match(link)
	if err != nil {
		return nil, err
	}
	log := s.log.With("provider", match.ProviderName, "link", match.Source.URL())
	log.Infof("looking up %s", match.Source.URL())
	media, err := match.Source.Recon(ctx, s.config.Filenames)
	if err != nil {
		log.Warnf("lookup failed: %v", err)
		return nil, err
	}
	if media.Watermarked {
		log.Warnf("no watermark-free video available, using the watermarked copy")
	}

	old, updated := s.update(func(a *activeMedia) {
		a.link = match.Source.URL()
		a.provider = match.ProviderName
		a.media = media
		a.slides.Load(media.Slides)
	})
	s.events.Send(MediaLoaded{Media: *media, State: updated})
	s.events.Send(StateChanged{OldState: old, NewState: updated})
	return media, nil
}

func (s *Session) match(link string) (*clip_saver.Match, error) {
	if s.config.Provider != "" {
		return s.config.ProviderRegistry.MatchWith(s.config.Provider, link)
	}
	return s.config.ProviderRegistry.Match(link)
}

// update applies f with the lock held, returning the state before and after.
func (s *Session) update(f func(a *activeMedia)) (old State, updated State) {
	_ = s.active.Locked(func(a *activeMedia) error {
		old = a.state()
		f(a)
		updated = a.state()
		return nil
	})
	return old, updated
}

// media returns the active media set if it is of type t.
func (s *Session) media(t clip_saver.MediaType) (*clip_saver.MediaSet, error) {
	var media *clip_saver.MediaSet
	_ = s.active.RLocked(func(a *activeMedia) error {
		media = a.media
		return nil
	})
	if media == nil {
		return nil, ErrNothingLoaded
	}
	if media.Type != t {
		return nil, ErrWrongMode
	}
	return media, nil
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.closed.Wait()
}

// Close cancels anything in progress and closes every subscription. It is safe to call more than once.
func (s *Session) Close() {
	if !s.closed.Set() {
		return
	}
	s.ctxCancel()
	s.batch.Close()
	s.events.Close()
}
