// Package notify delivers reminders to the user.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/studyplan/pkg/model"
)

// Notifier is the platform notification facility.
type Notifier interface {
	// Permission reports the current permission state.
	Permission() model.Permission
	// RequestPermission asks the user and returns the resulting state.
	RequestPermission(ctx context.Context) (model.Permission, error)
	// Show posts a notification. A later Show with the same tag replaces it.
	Show(title, body, tag string) error
	// Alert interrupts the user synchronously.
	Alert(title, body string) error
}

// Effective combines the stored permission with what n reports now. A
// facility that cannot show notifications wins over a stored grant.
func Effective(n Notifier, stored model.Permission) model.Permission {
	if facility := n.Permission(); facility == model.PermissionUnsupported {
		return facility
	}
	return stored
}

// Deliver shows the message as a notification when perm is granted and the
// facility supports it, and falls back to an alert otherwise.
func Deliver(n Notifier, perm model.Permission, title, body, tag string) error {
	if Effective(n, perm) == model.PermissionGranted {
		return n.Show(title, body, tag)
	}
	return n.Alert(title, body)
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithSupported overrides the terminal detection.
func WithSupported(ok bool) TerminalOption {
	return func(t *Terminal) { t.supported = ok }
}

// Terminal prints notifications as colored banners.
type Terminal struct {
	out       io.Writer
	supported bool

	mu    sync.Mutex
	state model.Permission
	shown map[string]int
}

var _ Notifier = (*Terminal)(nil)

// NewTerminal writes to out. state is the last persisted permission.
func NewTerminal(out io.Writer, state model.Permission, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		out:       out,
		supported: isTerminal(out),
		state:     state,
		shown:     make(map[string]int),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Permission is unsupported when out is not a terminal.
func (t *Terminal) Permission() model.Permission {
	if !t.supported {
		return model.PermissionUnsupported
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Valid() {
		return model.PermissionNotRequested
	}
	return t.state
}

// RequestPermission grants on a terminal.
func (t *Terminal) RequestPermission(ctx context.Context) (model.Permission, error) {
	if err := ctx.Err(); err != nil {
		return t.Permission(), err
	}
	if !t.supported {
		return model.PermissionUnsupported, nil
	}
	t.mu.Lock()
	t.state = model.PermissionGranted
	t.mu.Unlock()
	return model.PermissionGranted, nil
}

// Show prints a banner. Repeats of a tag are marked as updates.
func (t *Terminal) Show(title, body, tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	head := color.New(color.Bold, color.FgHiYellow)
	faint := color.New(color.Faint)

	if _, err := head.Fprintf(t.out, "🔔 %s", title); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if tag != "" && t.shown[tag] > 0 {
		_, _ = faint.Fprint(t.out, " (updated)")
	}
	if tag != "" {
		t.shown[tag]++
	}
	_, err := fmt.Fprintf(t.out, "\n   %s\n", body)
	return err
}

// Alert prints an unmissable message.
func (t *Terminal) Alert(title, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	alert := color.New(color.Bold, color.FgHiRed)
	if _, err := alert.Fprintf(t.out, "! %s\n", title); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	_, err := fmt.Fprintf(t.out, "  %s\n", body)
	return err
}
