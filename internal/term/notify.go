package term

import (
	"fmt"
	"io"

	"github.com/alanbriolat/clip-saver/internal/saver"
)

// Notifier prints notices, where a browser would show an alert.
type Notifier struct {
	Out io.Writer
}

func (n Notifier) Notify(msg string) {
	_, _ = fmt.Fprintf(n.Out, "! %s\n", msg)
}

// PrintOpener doesn't open anything, it just prints the link for the user to save by hand.
type PrintOpener struct {
	Out io.Writer
}

func (o PrintOpener) Open(url string) error {
	_, err := fmt.Fprintf(o.Out, "Open this link to save it manually: %s\n", url)
	return err
}

// Opener picks how to fall back when an automatic download fails. Even when a browser is used the link is printed,
// in case the browser can't be started.
func Opener(out io.Writer, useBrowser bool) saver.Opener {
	printer := PrintOpener{Out: out}
	if !useBrowser {
		return printer
	}
	return saver.OpenerFunc(func(url string) error {
		_ = printer.Open(url)
		return saver.BrowserOpener.Open(url)
	})
}
