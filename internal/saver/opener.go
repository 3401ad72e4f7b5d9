package saver

import (
	"errors"

	"github.com/pkg/browser"
)

const FallbackNotice = "Automatic download failed. Opening the original link in a new window..."

var ErrNoOpener = errors.New("no fallback opener configured")

// An Opener hands a URL to something outside the process, so the user can save it by hand.
type Opener interface {
	Open(url string) error
}

type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// BrowserOpener opens the URL in the system's default browser.
var BrowserOpener Opener = OpenerFunc(browser.OpenURL)

// A Notifier shows a message to the user.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) {
	f(msg)
}
