package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/alanbriolat/clip-saver/internal/saver"
	"github.com/alanbriolat/clip-saver/internal/session"
)

const shellHelp = `commands:
  load <link>   look up a post (a bare link works too)
  info          show the loaded post
  video         save the video
  audio         save the audio track
  next, prev    move between photos
  slide         save the current photo
  all           save every photo, one at a time
  help          show this help
  quit          leave
`

// Shell is an interactive loop over a session, with one Button per action.
type Shell struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
	log     *zap.SugaredLogger

	videoButton *Button
	audioButton *Button
	slideButton *Button
	allButton   *Button
}

// NewShell creates a shell reading commands from in. The same writer should be given to anything else drawing on
// the terminal, e.g. progress bars.
func NewShell(s *session.Session, in io.Reader, out io.Writer) *Shell {
	out = SyncWriter(out)
	return &Shell{
		session: s,
		in:      in,
		out:     out,
		log:     zap.S().Named("shell"),

		videoButton: NewButton(out, "Download Video"),
		audioButton: NewButton(out, "Download Audio"),
		slideButton: NewButton(out, "Download Photo"),
		allButton:   NewButton(out, "Download All"),
	}
}

// Run reads commands until quit, end of input, the session closing or ctx being cancelled. Command errors are printed,
// never returned.
//
// Cancelling ctx returns straight away, even while waiting for input. The reader is left to the goroutine blocked on
// it, which exits at the next line or end of input.
func (sh *Shell) Run(ctx context.Context) error {
	scanCtx, stopScan := context.WithCancel(ctx)
	defer stopScan()
	lines, scanErr := sh.scan(scanCtx)
	var closed <-chan struct{}
	if sh.session != nil {
		closed = sh.session.Done()
	}
	sh.prompt()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-closed:
			return session.ErrSessionClosed
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = strings.TrimSpace(line)
			if line == "" {
				sh.prompt()
				continue
			}
			if quit := sh.Exec(ctx, line); quit {
				return nil
			}
			sh.prompt()
		}
	}
}

// scan feeds lines from the input to a channel, which is closed at end of input after the scanner's error has been
// sent. It stops handing over lines once ctx is done.
func (sh *Shell) scan(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(sh.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

func (sh *Shell) prompt() {
	_, _ = io.WriteString(sh.out, "> ")
}

// Exec runs a single command line, returning true if the shell should exit.
func (sh *Shell) Exec(ctx context.Context, line string) (quit bool) {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	var err error
	switch strings.ToLower(command) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		_, _ = io.WriteString(sh.out, shellHelp)
	case "load":
		err = sh.load(ctx, arg)
	case "info":
		err = sh.info()
	case "video":
		err = sh.attempt(sh.session.DownloadVideo(ctx, sh.videoButton))
	case "audio":
		err = sh.attempt(sh.session.DownloadAudio(ctx, sh.audioButton))
	case "slide", "photo":
		err = sh.attempt(sh.session.DownloadCurrentSlide(ctx, sh.slideButton))
	case "next":
		err = sh.move(sh.session.NextSlide())
	case "prev", "previous":
		err = sh.move(sh.session.PreviousSlide())
	case "all":
		err = sh.all(ctx)
	default:
		if strings.Contains(command, ".") && arg == "" {
			err = sh.load(ctx, command)
		} else {
			_, _ = fmt.Fprintf(sh.out, "unknown command %q, try \"help\"\n", command)
		}
	}
	if err != nil {
		sh.log.Debugf("%s: %v", command, err)
		_, _ = fmt.Fprintf(sh.out, "Error: %v\n", err)
	}
	return false
}

func (sh *Shell) load(ctx context.Context, link string) error {
	if err := sh.lookup(ctx, link); err != nil {
		return err
	}
	return sh.info()
}

func (sh *Shell) lookup(ctx context.Context, link string) error {
	stop := StartLoading(sh.out, "loading")
	defer stop()
	_, err := sh.session.Load(ctx, link)
	return err
}

func (sh *Shell) info() error {
	media, ok := sh.session.Media()
	if !ok {
		return session.ErrNothingLoaded
	}
	PrintMedia(sh.out, media, sh.session.Snapshot())
	return nil
}

func (sh *Shell) attempt(attempt *saver.Attempt, err error) error {
	if err != nil {
		return err
	}
	switch attempt.Status {
	case saver.StatusSuccess:
		_, _ = fmt.Fprintf(sh.out, "saved %s\n", attempt.Path)
	case saver.StatusFallbackOpened:
		_, _ = fmt.Fprintf(sh.out, "could not save %s automatically\n", attempt.Descriptor.Filename)
	default:
		return attempt.Err
	}
	return nil
}

func (sh *Shell) move(state session.State, err error) error {
	if err != nil {
		return err
	}
	PrintSlide(sh.out, state)
	return nil
}

func (sh *Shell) all(ctx context.Context) error {
	summary, err := sh.session.DownloadAll(ctx, sh.allButton)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(sh.out, "%v\n", summary)
	return nil
}
