package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/r3labs/diff/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/async"
	"github.com/alanbriolat/clip-saver/internal/api"
	"github.com/alanbriolat/clip-saver/internal/batch"
	"github.com/alanbriolat/clip-saver/internal/pubsub"
	"github.com/alanbriolat/clip-saver/internal/saver"
	"github.com/alanbriolat/clip-saver/internal/session"
	"github.com/alanbriolat/clip-saver/internal/term"
	_ "github.com/alanbriolat/clip-saver/providers"
	"github.com/alanbriolat/clip-saver/providers/tiktok"
)

func main() {
	dotenvErr := godotenv.Load()

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := config.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)
	if dotenvErr != nil && !errors.Is(dotenvErr, os.ErrNotExist) {
		logger.Sugar().Warnf("failed to load .env: %v", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = clip_saver.WithLogger(ctx, logger)

	app := newApp(ctx, config.Level, term.SyncWriter(os.Stdout))
	result := async.Run(func() error { return app.Run(os.Args) })

	select {
	case err = <-result:
		if err != nil {
			logger.Fatal(err.Error())
		}
	case <-ctx.Done():
		stop()
		err = <-result
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal(err.Error())
		}
	}
}

func newApp(ctx context.Context, level zap.AtomicLevel, out io.Writer) *cli.App {
	linkCommand := func(name string, usage string, action func(ctx context.Context, s *session.Session, out io.Writer) error) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: "LINK",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit(fmt.Sprintf("%s needs exactly one link", name), 2)
				}
				return withSession(ctx, c, out, func(s *session.Session) error {
					if err := load(ctx, s, out, c.Args().First()); err != nil {
						return err
					}
					return action(ctx, s, out)
				})
			},
		}
	}

	return &cli.App{
		Name:  "clip-saver",
		Usage: "save videos, audio and photos from TikTok posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   api.DefaultConfig.BaseURL,
				Usage:   "metadata backend at `URL`",
				EnvVars: []string{"CLIPSAVER_API_URL"},
			},
			&cli.DurationFlag{
				Name:  "api-timeout",
				Value: api.DefaultConfig.Timeout,
				Usage: "give up on the backend after `DURATION`",
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Value:   ".",
				Usage:   "save downloads to `DIR`",
				EnvVars: []string{"CLIPSAVER_TARGET"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "give up on a single download after `DURATION` (0 means never)",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: batch.DefaultInterval,
				Usage: "wait `DURATION` (at least 1s) before each photo when saving all of them",
			},
			&cli.BoolFlag{
				Name:  "no-open",
				Usage: "when a download fails, print the link instead of opening a browser",
			},
			&cli.StringFlag{
				Name:  "video-name",
				Value: clip_saver.DefaultVideoFilename,
				Usage: "filename `TEMPLATE` for videos",
			},
			&cli.StringFlag{
				Name:  "audio-name",
				Value: clip_saver.DefaultAudioFilename,
				Usage: "filename `TEMPLATE` for audio",
			},
			&cli.StringFlag{
				Name:  "slide-name",
				Value: clip_saver.DefaultSlideFilename,
				Usage: "filename `TEMPLATE` for photos, {{.Index}} counts from 1",
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "only match links against provider `NAME` (tiktok or raw)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				level.SetLevel(zap.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			linkCommand("info", "show what a post contains", func(ctx context.Context, s *session.Session, out io.Writer) error {
				return nil
			}),
			linkCommand("video", "save the video of a post", func(ctx context.Context, s *session.Session, out io.Writer) error {
				return report(out)(s.DownloadVideo(ctx, term.NewButton(out, "Download Video")))
			}),
			linkCommand("audio", "save the audio track of a post", func(ctx context.Context, s *session.Session, out io.Writer) error {
				return report(out)(s.DownloadAudio(ctx, term.NewButton(out, "Download Audio")))
			}),
			linkCommand("photos", "save every photo of a post", func(ctx context.Context, s *session.Session, out io.Writer) error {
				zap.S().Debugf("saving photos %v apart", s.Batch().Interval())
				summary, err := term.SaveAll(ctx, s, out)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, summary)
				if !summary.Complete() {
					return summary.Err
				}
				return nil
			}),
			{
				Name:  "shell",
				Usage: "load posts and save media interactively",
				Action: func(c *cli.Context) error {
					return withSession(ctx, c, out, func(s *session.Session) error {
						shell := term.NewShell(s, os.Stdin, out)
						_, _ = fmt.Fprintln(out, "Paste a TikTok link, or type \"help\".")
						return shell.Run(ctx)
					})
				},
			},
		},
		HideHelpCommand: true,
	}
}

func filenameConfig(c *cli.Context) (clip_saver.FilenameConfig, error) {
	var names clip_saver.FilenameConfig
	var err error
	if names.VideoTemplate, err = clip_saver.ParseFilenameTemplate("video", c.String("video-name")); err != nil {
		return names, fmt.Errorf("invalid --video-name: %w", err)
	}
	if names.AudioTemplate, err = clip_saver.ParseFilenameTemplate("audio", c.String("audio-name")); err != nil {
		return names, fmt.Errorf("invalid --audio-name: %w", err)
	}
	if names.SlideTemplate, err = clip_saver.ParseFilenameTemplate("slide", c.String("slide-name")); err != nil {
		return names, fmt.Errorf("invalid --slide-name: %w", err)
	}
	return names, nil
}

// withSession runs f with a session configured from the command line, logging its events until f returns.
func withSession(ctx context.Context, c *cli.Context, out io.Writer, f func(s *session.Session) error) error {
	names, err := filenameConfig(c)
	if err != nil {
		return err
	}
	backend := api.New(api.Config{
		BaseURL: c.String("api-url"),
		Timeout: c.Duration("api-timeout"),
	})
	registry := &clip_saver.DefaultProviderRegistry
	if err := registry.Add(tiktok.New(backend).Provider()); err != nil && !errors.Is(err, clip_saver.ErrDuplicateProvider) {
		return err
	}
	if name := c.String("provider"); name != "" && !contains(registry.List(), name) {
		return fmt.Errorf("%w %q, choose from %v", clip_saver.ErrUnknownProvider, name, registry.List())
	}

	progress := term.NewByteProgress(out)
	defer progress.Finish()
	cfg := session.DefaultConfig
	cfg.ProviderRegistry = registry
	cfg.Provider = c.String("provider")
	cfg.Filenames = names
	cfg.Saver = saver.Config{
		TargetDir: c.String("target"),
		Client:    saver.NewClient(c.Duration("timeout")),
		Opener:    term.Opener(out, !c.Bool("no-open")),
		Notifier:  term.Notifier{Out: out},
		Progress:  progress.Update,
	}
	cfg.Batch = batch.Config{Interval: c.Duration("interval")}
	if err := cfg.Batch.Validate(); err != nil {
		return fmt.Errorf("invalid --interval: %w", err)
	}
	if err := os.MkdirAll(cfg.Saver.TargetDir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	s, err := session.New(cfg, ctx)
	if err != nil {
		return err
	}
	events, err := s.Subscribe()
	if err != nil {
		s.Close()
		return err
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logEvents(events)
	}()

	err = f(s)
	s.Close()
	wg.Wait()
	return err
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func logEvents(events pubsub.Receiver[session.Event]) {
	logger := zap.S().Named("events")
	for event := range events.Receive() {
		switch e := event.(type) {
		case session.MediaLoaded:
			logger.Infof("loaded %s post by @%s", e.Media.Type, e.Media.Username)
		case session.StateChanged:
			changes, err := diff.Diff(e.OldState, e.NewState)
			if err != nil {
				logger.Errorf("failed to diff old and new session state: %v", err)
			} else {
				for _, change := range changes {
					logger.Debugf("%v: %#v -> %#v", change.Path, change.From, change.To)
				}
			}
		case session.AttemptFinished:
			logger.Debugf("attempt finished: %v", e.Attempt)
		}
	}
}

func load(ctx context.Context, s *session.Session, out io.Writer, link string) error {
	started := time.Now()
	if err := lookup(ctx, s, out, link); err != nil {
		return err
	}
	zap.S().Debugf("lookup took %v", time.Since(started))
	media, _ := s.Media()
	term.PrintMedia(out, media, s.Snapshot())
	return nil
}

func lookup(ctx context.Context, s *session.Session, out io.Writer, link string) error {
	defer term.StartLoading(out, "loading")()
	result := async.RunResult(func() (*clip_saver.MediaSet, error) { return s.Load(ctx, link) })
	select {
	case r := <-result:
		return r.Error
	case <-ctx.Done():
		return ctx.Err()
	}
}

func report(out io.Writer) func(attempt *saver.Attempt, err error) error {
	return func(attempt *saver.Attempt, err error) error {
		if err != nil {
			return err
		}
		switch attempt.Status {
		case saver.StatusSuccess:
			_, _ = fmt.Fprintf(out, "saved %s\n", attempt.Path)
			return nil
		case saver.StatusFallbackOpened:
			_, _ = fmt.Fprintf(out, "could not save %s automatically\n", attempt.Descriptor.Filename)
			return nil
		default:
			return attempt.Err
		}
	}
}
