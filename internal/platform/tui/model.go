package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// hud collects what the controller reports for the status line and the
// game over prompt. It implements snake.Scoreboard and snake.Prompter.
type hud struct {
	score     int
	record    int
	hasRecord bool
	gameOver  *snake.GameOverInfo
}

func (h *hud) SetScore(score int) {
	h.score = score
}

func (h *hud) SetRecord(record int) {
	h.record = record
	h.hasRecord = true
}

func (h *hud) PromptRestart(info snake.GameOverInfo) {
	h.gameOver = &info
}

// Options configures a game Model.
type Options struct {
	Config  config.SnakeConfig
	Seed    int64 // 0 means seed from the clock
	Records snake.RecordStore
	History snake.ScoreHistory
	Logger  *log.Logger
	Width   int
	Height  int

	// ScreenshotDir receives ctrl+s board dumps; empty means ~/.snake/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one snake game.
// The controller and its sinks are shared pointers, so copies of Model made
// by Bubble Tea's value-receiver updates all drive the same game.
type Model struct {
	ctrl   *snake.Controller
	board  *BoardView
	hud    *hud
	ticker *teaTicker
	log    *log.Logger

	shotDir  string
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a Model and its controller. The game starts idle.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rc := opts.Config.Runtime(opts.Seed)
	board := NewBoardView(rc.BoardSize, opts.Config.Theme)
	h := &hud{}
	ticker := &teaTicker{}

	ctrl := snake.NewController(snake.ConfigFromRuntime(rc), snake.Deps{
		Renderer:   board,
		Scoreboard: h,
		Records:    opts.Records,
		History:    opts.History,
		Prompter:   h,
		Ticker:     ticker,
		Logger:     logger,
	})

	return Model{
		ctrl:    ctrl,
		board:   board,
		hud:     h,
		ticker:  ticker,
		log:     logger,
		shotDir: opts.ScreenshotDir,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   opts.Width,
		height:  opts.Height,
	}
}

// Init implements tea.Model. Nothing ticks until the player starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Shot):
			if path, err := m.saveScreenshot(); err != nil {
				m.log.Warn("could not save screenshot", "error", err)
			} else {
				m.log.Info("screenshot saved", "path", path)
			}
			return m, nil
		}
		return m.handleAction(m.keys.Action(msg))

	case tea.MouseMsg:
		return m.handleAction(MouseAction(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleAction applies one input action to the controller.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionReset:
		m.hud.gameOver = nil
	}

	m.ctrl.HandleAction(a)
	return m, m.ticker.take()
}

// handleTick forwards a tick to the controller and keeps the chain alive
// while the run it belongs to is still going.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	outcome, ok := m.ctrl.Tick(msg.Epoch)
	if !ok {
		return m, nil
	}
	if outcome == snake.AteFood {
		m.log.Debug("food eaten", "score", m.ctrl.Score(), "length", m.ctrl.World().Len())
	}
	if m.ctrl.State() == snake.StateRunning {
		m.ticker.next(msg.Epoch)
	}
	return m, m.ticker.take()
}

// saveScreenshot writes the plain-text board to a timestamped file.
func (m Model) saveScreenshot() (string, error) {
	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".snake", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))
	content := fmt.Sprintf("score %d\n%s\n", m.hud.score, m.board.Screen().String())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SNAKE"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.board.Screen()))
	b.WriteString("\n")
	if overlay := m.overlay(); overlay != "" {
		b.WriteString(overlay)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	if lipgloss.Width(content) > m.width || lipgloss.Height(content) > m.height {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			lipgloss.Width(content), lipgloss.Height(content), m.width, m.height)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) statusLine() string {
	record := "-"
	if m.hud.hasRecord {
		record = fmt.Sprintf("%d", m.hud.record)
	}
	return hudStyle.Render(fmt.Sprintf("Score: %d   Record: %s", m.hud.score, record))
}

func (m Model) overlay() string {
	switch m.ctrl.State() {
	case snake.StateIdle:
		return overlayStyle.Render("Press space or click to start")
	case snake.StateGameOver:
		info := m.hud.gameOver
		if info == nil {
			return overlayStyle.Render(gameOverStyle.Render("GAME OVER"))
		}
		lines := []string{
			gameOverStyle.Render("GAME OVER"),
			fmt.Sprintf("Score %d  Length %d", info.Score, info.Length),
		}
		if info.NewRecord {
			lines = append(lines, recordStyle.Render("New record!"))
		}
		lines = append(lines, "r: play again   q: quit")
		return overlayStyle.Render(strings.Join(lines, "\n"))
	}
	return ""
}

// Controller returns the game controller.
func (m Model) Controller() *snake.Controller {
	return m.ctrl
}

// Board returns the board renderer.
func (m Model) Board() *BoardView {
	return m.board
}

// Run starts the Bubble Tea program with a new game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click starts a run
	)

	_, err := p.Run()
	return err
}
