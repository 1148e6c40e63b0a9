package workflow

import (
	"errors"

	"github.com/pkg/browser"
)

// Opener presents a finished file to the user.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a plain function to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	if url == "" {
		return errors.New("no url to open")
	}
	return browser.OpenURL(url)
}

// NopOpener accepts every URL without doing anything.
type NopOpener struct{}

func (NopOpener) Open(string) error { return nil }
