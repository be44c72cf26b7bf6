// Package desktop opens links with the desktop environment's handler (XDG).
package desktop

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"

	"github.com/bnema/startdash/internal/logging"
)

const defaultOpenCommand = "xdg-open"

// ErrNoOpener is returned when no URL handler is installed.
var ErrNoOpener = errors.New("no URL opener available")

// Opener implements port.URLOpener by starting xdg-open.
type Opener struct {
	path string
}

// NewOpener detects xdg-open on PATH. A missing binary is reported by Open.
func NewOpener() *Opener {
	o := &Opener{}
	if path, err := exec.LookPath(defaultOpenCommand); err == nil {
		o.path = path
	}
	return o
}

// NewOpenerWithCommand uses command instead of xdg-open.
func NewOpenerWithCommand(command string) *Opener {
	return &Opener{path: command}
}

// Available reports whether a handler was found.
func (o *Opener) Available() bool { return o.path != "" }

// Open hands rawURL to the handler without waiting for it to exit. Only
// http and https URLs are accepted.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	if o.path == "" {
		return ErrNoOpener
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}

	cmd := exec.Command(o.path, u.String())
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", o.path, err)
	}
	logging.FromContext(ctx).Debug().Str("url", u.String()).Int("pid", cmd.Process.Pid).Msg("url handed to opener")

	// Reap the child; its exit status is not interesting.
	go func() { _ = cmd.Wait() }()
	return nil
}
