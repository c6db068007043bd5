// Package sshd hosts the game over SSH: each connection gets its own tcell
// screen backed by the session's channel, and its own single-player run.
package sshd

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty adapts a gliderlabs SSH session to tcell.Tty so a terminfo screen can
// draw straight onto the SSH channel.
type Tty struct {
	session gossh.Session

	mu     sync.Mutex
	width  int
	height int
	onSize func()

	winCh <-chan gossh.Window
	stop  chan struct{}
}

// NewTty wraps an SSH session that granted a PTY. pty carries the initial
// window size; winCh delivers resizes for the life of the session.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{
		session: s,
		width:   pty.Window.Width,
		height:  pty.Window.Height,
		winCh:   winCh,
	}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start begins pumping resize events from the SSH channel into tcell.
func (t *Tty) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return nil
	}
	t.stop = make(chan struct{})
	go t.pumpResizes(t.stop)
	return nil
}

// Stop halts the resize pump. The session channel stays open; tcell calls
// Close separately on teardown.
func (t *Tty) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	return nil
}

// Drain is a no-op: writes go straight to the channel.
func (t *Tty) Drain() error { return nil }

// WindowSize reports the client terminal's current dimensions.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.width, Height: t.height}, nil
}

// NotifyResize registers tcell's resize callback.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()
}

func (t *Tty) pumpResizes(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.width, t.height = win.Width, win.Height
			cb := t.onSize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
