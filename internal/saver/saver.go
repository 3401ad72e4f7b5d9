// Package saver force-saves remote media to local disk, working around hotlink protection by never sending a
// Referer header. If the automatic save fails, the original URL is handed to an Opener so that the user can still
// save it by hand.
package saver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/download"
	"github.com/alanbriolat/clip-saver/util"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

type Config struct {
	// Directory downloads are saved into.
	TargetDir string
	// Client used for fetching media; it is wrapped so that it never sends a Referer header. Nil means a client with
	// no timeout.
	Client *http.Client
	// Opener receives the original URL when the automatic save fails.
	Opener Opener
	// Notifier, if set, is told when falling back to the Opener.
	Notifier Notifier
	// Progress, if set, is called as bytes arrive.
	Progress ProgressFunc
}

var DefaultConfig = Config{
	TargetDir: ".",
	Opener:    BrowserOpener,
}

type Saver struct {
	config Config
	client *http.Client
}

func New(config Config) *Saver {
	client := config.Client
	if client == nil {
		client = NewClient(0)
	} else {
		client = WrapClient(client)
	}
	return &Saver{
		config: config,
		client: client,
	}
}

func (s *Saver) TargetDir() string {
	return s.config.TargetDir
}

// ForceDownload makes exactly one attempt to save d.URL as d.Filename in the target directory. On failure the user
// is notified and the URL is passed to the Opener instead. Errors are recorded on the returned Attempt rather than
// returned. If a is not nil it shows a busy state until ForceDownload returns.
//
// A cancelled ctx aborts the download without falling back.
func (s *Saver) ForceDownload(ctx context.Context, d clip_saver.Descriptor, a Affordance) *Attempt {
	attempt := newAttempt(d)
	log := clip_saver.Logger(ctx).Sugar().Named("saver").With("attempt_id", attempt.ID, "filename", d.Filename)

	if a != nil {
		original := captureAffordance(a)
		setBusy(a)
		defer original.restore(a)
	}

	path, err := s.fetchAndSave(ctx, d)
	if err == nil {
		attempt.Status = StatusSuccess
		attempt.Path = path
		log.Infof("saved %s", path)
		return attempt
	}

	attempt.Err = err
	if ctx.Err() != nil {
		attempt.Status = StatusFailed
		log.Infof("download cancelled: %v", err)
		return attempt
	}
	log.Warnf("download failed, falling back to opener: %v", err)
	s.fallback(attempt, log)
	return attempt
}

func (s *Saver) fallback(attempt *Attempt, log *zap.SugaredLogger) {
	if s.config.Notifier != nil {
		s.config.Notifier.Notify(FallbackNotice)
	}
	var err error
	if s.config.Opener == nil {
		err = ErrNoOpener
	} else {
		err = s.config.Opener.Open(attempt.Descriptor.URL)
	}
	if err != nil {
		attempt.Status = StatusFailed
		attempt.Err = multierror.Append(attempt.Err, fmt.Errorf("fallback failed: %w", err))
		log.Errorf("fallback failed: %v", err)
		return
	}
	attempt.Status = StatusFallbackOpened
}

func (s *Saver) fetchAndSave(ctx context.Context, d clip_saver.Descriptor) (string, error) {
	if err := util.ValidateFilename(d.Filename); err != nil {
		return "", err
	}
	if _, err := util.ParseHTTPURL(d.URL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	var target string
	err = download.WithDownloadState(func(state *download.DownloadState) error {
		blob, err := s.materialize(ctx, state, d, resp)
		if err != nil {
			return err
		}
		trigger := newSaveTrigger(blob, s.config.TargetDir, d.Filename)
		if err := trigger.Fire(); err != nil {
			return err
		}
		target = trigger.Target()
		return nil
	}, download.WithTempDir(s.config.TargetDir))
	if err != nil {
		return "", err
	}
	return target, nil
}

// materialize spools the response body into a blob file in the scratch directory, returning its path.
func (s *Saver) materialize(ctx context.Context, state *download.DownloadState, d clip_saver.Descriptor, resp *http.Response) (string, error) {
	f, err := state.CreateTemp("blob-*")
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	defer f.Close()

	progress := &progressWriter{
		descriptor: d,
		expected:   resp.ContentLength,
		callback:   s.config.Progress,
	}
	if _, err := io.Copy(io.MultiWriter(f, progress), clip_saver.NewContextReader(ctx, resp.Body)); err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return f.Name(), nil
}
