package sshd

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"lingotrail/internal/config"
	"lingotrail/internal/game"
)

// Server runs the game over SSH. Every connection plays its own session;
// saves are kept per SSH user so players do not stomp each other's slots.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	saveDir string

	// Serializes the TERM environment mutation around screen creation.
	termMu sync.Mutex
}

// NewServer builds a Server. saveDir is the root save directory; per-user
// subdirectories are created beneath it.
func NewServer(cfg *config.Config, logger *slog.Logger, saveDir string) *Server {
	return &Server{cfg: cfg, log: logger, saveDir: saveDir}
}

// ListenAndServe blocks serving SSH connections on the configured port.
func (srv *Server) ListenAndServe() error {
	signer, err := loadOrCreateHostKey(srv.cfg.Server.HostKey)
	if err != nil {
		return fmt.Errorf("host key: %w", err)
	}

	s := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", srv.cfg.Server.Port),
		Handler:     srv.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
	srv.log.Info("listening", "port", srv.cfg.Server.Port)
	return s.ListenAndServe()
}

// handleSession runs one player's game for the life of the connection.
func (srv *Server) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "A PTY is required. Connect with: ssh -t -p", srv.cfg.Server.Port, "<host>")
		return
	}

	screen, err := srv.newScreen(s, pty, winCh)
	if err != nil {
		fmt.Fprintf(s, "terminal setup failed: %v\n", err)
		srv.log.Warn("terminal setup", "user", s.User(), "err", err)
		return
	}

	name := s.User()
	if name == "" {
		name = "traveler"
	}
	dir := filepath.Join(srv.saveDir, "players", sanitizeUser(name))

	g, err := game.New(screen, srv.cfg, srv.log.With("user", name), name, dir)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(s, "game setup failed: %v\n", err)
		srv.log.Error("game setup", "user", name, "err", err)
		return
	}
	srv.log.Info("session start", "user", name)
	g.Run()
	srv.log.Info("session end", "user", name)
}

// newScreen builds a tcell screen over the SSH channel. TERM must be in the
// process environment when the terminfo screen is created, so the mutation
// is serialized across sessions.
func (srv *Server) newScreen(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) (tcell.Screen, error) {
	term := "xterm-256color"
	for _, env := range s.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok {
			term = v
			break
		}
	}

	tty := NewTty(s, pty, winCh)
	srv.termMu.Lock()
	defer srv.termMu.Unlock()
	if err := os.Setenv("TERM", term); err != nil {
		return nil, err
	}
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return screen, nil
}

// sanitizeUser keeps SSH usernames filesystem-safe for the per-user save
// directory.
func sanitizeUser(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

// loadOrCreateHostKey loads a PEM host key from path, generating and
// persisting a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			return signer, nil
		}
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	if pemBlock, err := xssh.MarshalPrivateKey(key, "lingotrail host"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	return signer, nil
}
