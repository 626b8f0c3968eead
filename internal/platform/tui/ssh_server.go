// Package tui provides the terminal front end for t2048, including SSH
// server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/persist"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// Wish generates the key on first start if it does not exist.
	HostKeyPath string

	// DBPath is the path to the scores database shared by all users.
	DBPath string

	// DataDir holds one directory per user for best score and save slot.
	DataDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game holds the rule settings for every session. Persistence,
	// recorder and logger are filled in per session.
	Game t2048.Options

	// Logger receives server and session logs. Defaults to stderr.
	Logger *log.Logger
}

// SSHServer wraps a Wish SSH server serving one 2048 session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(cfg.HostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Seed:    time.Now().UnixNano(),
	}

	game := s.newSessionGame(sshSession.User())
	game.Reset(cfg) // Loads the user's best score for the picker
	model := NewSessionModel(game, s.store, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// newSessionGame builds a game with the user's own files and logger.
func (s *SSHServer) newSessionGame(user string) *t2048.Game {
	opts := s.config.Game
	opts.Persistence = persist.NewInDir(UserDataDir(s.config.DataDir, user))
	opts.Logger = s.logger.With("user", user)
	if s.store != nil {
		opts.Recorder = s.store.Recorder(sanitizeUser(user))
	}
	return t2048.New(opts)
}

// UserDataDir returns the directory holding one user's best score and save
// slot. The name is reduced to characters that are safe in a path element.
func UserDataDir(base, user string) string {
	return filepath.Join(base, "users", sanitizeUser(user))
}

func sanitizeUser(user string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, user)

	if strings.Trim(clean, ".") == "" {
		return "anonymous"
	}
	return clean
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		//nolint:errcheck // Best-effort close
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenPicker sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages one player's flow: picker -> game -> picker, with
// the scoreboard reachable from the picker. Child models signal the end of
// their screen with tea.Quit; the session swallows that and switches screen
// instead. This is the top-level model used for SSH sessions.
type SessionModel struct {
	game     *t2048.Game
	store    *storage.Store
	config   core.RuntimeConfig
	screen   sessionScreen
	picker   DifficultyModel
	play     Model
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model that starts at the picker.
func NewSessionModel(game *t2048.Game, store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	m := SessionModel{
		game:   game,
		store:  store,
		config: cfg,
	}
	m.picker = m.newPicker()
	return m
}

func (m SessionModel) newPicker() DifficultyModel {
	return NewDifficultyModel(m.config.ScreenW, m.config.ScreenH, m.game.Difficulty(), m.game.Best())
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker handles updates while choosing a difficulty.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(DifficultyModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.picker.Selected() != nil:
		m.game.SetDifficulty(*m.picker.Selected())
		m.config.Seed = time.Now().UnixNano()
		m.play = NewModel(m.game, m.config).asEmbedded()
		m.screen = screenGame
		return m, m.play.Init()
	}

	return m, cmd
}

// updateGame handles updates while playing.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(Model); ok {
		m.play = play
	}

	// Check if user quit entirely
	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user went back to the picker
	if m.play.BackToMenu() {
		m.picker = m.newPicker()
		m.screen = screenPicker
		return m, m.picker.Init()
	}

	return m, cmd
}

// updateScores handles updates while the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.picker = m.newPicker()
		m.screen = screenPicker
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.picker.View()
	}
}

// IsQuitting returns true if the player ended the session.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}
