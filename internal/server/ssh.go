// Package server serves the terminal starfield over SSH, one independent
// universe per session.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gliderlabs/ssh"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/config"
	"github.com/Faultbox/starfield/internal/logger"
	"github.com/Faultbox/starfield/internal/tui"
)

// Server wraps the SSH listener and the running sessions.
type Server struct {
	cfg   config.SSHConfig
	opts  tui.Options
	srv   *ssh.Server
	slots chan struct{}

	mu       sync.Mutex
	programs map[*tea.Program]struct{}
}

// New creates a server from cfg. It does not start listening.
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		cfg:      cfg.SSH,
		opts:     tui.OptionsFromConfig(cfg),
		programs: make(map[*tea.Program]struct{}),
	}
	if cfg.SSH.MaxSessions > 0 {
		s.slots = make(chan struct{}, cfg.SSH.MaxSessions)
	}

	s.srv = &ssh.Server{
		Addr:        cfg.SSH.Addr,
		Handler:     s.handleSession,
		IdleTimeout: cfg.SSH.IdleTimeout,
	}

	if cfg.SSH.HostKey != "" {
		if err := s.srv.SetOption(ssh.HostKeyFile(cfg.SSH.HostKey)); err != nil {
			return nil, fmt.Errorf("set host key: %w", err)
		}
	} else {
		logger.Warn("no host key configured, using an ephemeral key")
	}
	return s, nil
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe() error {
	logger.Info("SSH server listening", zap.String("addr", s.cfg.Addr))
	return s.srv.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	logger.Info("SSH server listening", zap.Stringer("addr", l.Addr()))
	return s.srv.Serve(l)
}

// Shutdown ends every session and stops the server, waiting for
// connections to close until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for p := range s.programs {
		p.Quit()
	}
	s.mu.Unlock()

	err := s.srv.Shutdown(ctx)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Active returns the number of running sessions.
func (s *Server) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.programs)
}

func (s *Server) acquire() bool {
	if s.slots == nil {
		return true
	}
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Server) release() {
	if s.slots != nil {
		<-s.slots
	}
}

func (s *Server) handleSession(sess ssh.Session) {
	log := logger.Named("ssh",
		zap.String("user", sess.User()),
		zap.Stringer("remote", sess.RemoteAddr()),
	)

	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		sess.Exit(1)
		return
	}

	if !s.acquire() {
		log.Warn("session rejected, server full")
		fmt.Fprintln(sess, "Server full, try again later.")
		sess.Exit(1)
		return
	}
	defer s.release()

	opts := s.opts
	opts.Renderer = newRenderer(sess, ptyReq.Term, sess.Environ())
	opts.Log = log

	model, err := tui.New(opts)
	if err != nil {
		log.Error("failed to create session", zap.Error(err))
		fmt.Fprintln(sess, "Error:", err)
		sess.Exit(1)
		return
	}

	p := tea.NewProgram(model,
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithAltScreen(),
		tea.WithContext(sess.Context()),
		tea.WithEnvironment(sess.Environ()),
		tea.WithoutSignalHandler(),
	)
	s.track(p, true)
	defer s.track(p, false)

	log.Info("session started",
		zap.String("term", ptyReq.Term),
		zap.Int("width", ptyReq.Window.Width),
		zap.Int("height", ptyReq.Window.Height),
	)

	go func() {
		p.Send(tea.WindowSizeMsg{Width: ptyReq.Window.Width, Height: ptyReq.Window.Height})
		for win := range winCh {
			p.Send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
		}
	}()

	final, err := p.Run()
	switch {
	case err == nil, errors.Is(err, tea.ErrProgramKilled), errors.Is(err, io.EOF):
	default:
		log.Warn("session ended with error", zap.Error(err))
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		log.Error("session failed", zap.Error(m.Err()))
	}
	log.Info("session ended")
}

func (s *Server) track(p *tea.Program, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.programs[p] = struct{}{}
	} else {
		delete(s.programs, p)
	}
}

// newRenderer creates a lipgloss renderer for a remote terminal.
func newRenderer(w io.Writer, term string, environ []string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w, termenv.WithUnsafe())
	r.SetColorProfile(colorProfile(term, environ))
	return r
}

// colorProfile guesses the color support of a remote terminal from its
// TERM and the environment the client sent.
func colorProfile(term string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "COLORTERM" {
			if v == "truecolor" || v == "24bit" {
				return termenv.TrueColor
			}
		}
	}
	switch {
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.Contains(term, "truecolor") || strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}
