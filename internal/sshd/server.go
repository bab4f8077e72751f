// Package sshd serves cavecrawl sessions over SSH: a full-screen game for
// clients with a terminal, line mode for the rest.
package sshd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"

	"github.com/samdwyer/cavecrawl/internal/console"
	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/session"
	"github.com/samdwyer/cavecrawl/internal/ui"
)

// termMu guards the TERM variable while a terminfo screen is created.
var termMu sync.Mutex

// Server runs one game per SSH session. Each user name is its own save
// slot, so reconnecting as the same user resumes a quit game.
type Server struct {
	Launcher *session.Launcher
	Logger   *slog.Logger
}

// Listener returns an SSH server for addr that hands sessions to Handle.
// Any client is accepted.
func (s *Server) Listener(addr string, signer gossh.Signer) *gossh.Server {
	return &gossh.Server{
		Addr:        addr,
		Handler:     s.Handle,
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
}

// Handle plays one session to completion. It blocks for the lifetime of
// the connection.
func (s *Server) Handle(sess gossh.Session) {
	ctx := sess.Context()
	logger := s.Logger.With("remote", sess.RemoteAddr().String(), "user", sess.User())

	g, err := s.Launcher.Open(ctx, slotFor(sess.User()), 0)
	if err != nil {
		logger.Error("open session", "error", err)
		fmt.Fprintf(sess, "Could not start a game: %v\n", err)
		_ = sess.Exit(1)
		return
	}
	logger = logger.With("session", g.ID)
	logger.Info("session connected", "resumed", g.Resumed)

	var actor game.Actor
	if pty, winCh, ok := sess.Pty(); ok {
		screen, err := newSessionScreen(sess, pty, winCh)
		if err != nil {
			logger.Error("terminal setup", "error", err)
			fmt.Fprintf(sess, "Terminal setup failed: %v\n", err)
			_ = sess.Exit(1)
			return
		}
		defer screen.Close()
		actor = ui.NewActor(screen)
	} else {
		actor = console.New(sess, sess)
	}

	state, err := s.Launcher.Play(ctx, g, actor)
	if err != nil && ctx.Err() == nil {
		logger.Error("session failed", "error", err)
		_ = sess.Exit(1)
		return
	}
	logger.Info("session closed", "state", state.String())
	_ = sess.Exit(0)
}

func newSessionScreen(sess gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) (*ui.Screen, error) {
	term := pty.Term
	if term == "" {
		term = "xterm-256color"
	}
	for _, env := range sess.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && v != "" {
			term = v
			break
		}
	}

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(NewSessionTty(sess, pty, winCh))
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	return ui.WrapScreen(screen)
}

// slotFor maps an SSH user name to a save slot.
func slotFor(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return ""
	}
	return "ssh:" + user
}
