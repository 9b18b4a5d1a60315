package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/engine"
	"github.com/vovakirdan/cardpath/internal/rules"
	"github.com/vovakirdan/cardpath/internal/storage"
)

// toastTicks is how long a penalty toast stays on screen.
const toastTicks = playTickRate * 2

type toast struct {
	text  string
	ticks int
}

// PlayModel is the Bubble Tea model for one puzzle session.
type PlayModel struct {
	game  *engine.Game
	reg   rules.Regulation
	store *storage.Store
	seed  int64

	keys PlayKeyMap
	help help.Model

	cursor core.Point
	slot   int

	pending  *engine.PendingMove
	animStep int

	toasts []toast

	width       int
	height      int
	paused      bool
	quitting    bool
	backToMenu  bool
	resultSaved bool
	failed      error
}

// NewPlayModel starts a session for the given regulation. A zero seed is
// replaced with the wall clock so every run gets a fresh shuffle.
func NewPlayModel(reg rules.Regulation, store *storage.Store, seed int64) (PlayModel, error) {
	if seed != 0 {
		reg.Seed = seed
	}
	if reg.Seed == 0 {
		reg.Seed = time.Now().UnixNano()
	}

	game, err := engine.New(reg, time.Now())
	if err != nil {
		return PlayModel{}, err
	}

	m := PlayModel{
		game:  game,
		reg:   reg,
		store: store,
		seed:  reg.Seed,
		keys:  DefaultPlayKeyMap(),
		help:  help.New(),
	}
	if pos, ok := game.Position(); ok {
		m.cursor = pos
	}
	return m, nil
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(playTickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.game.InDiscardSelection() {
			m.game.CancelDiscardSelection()
			return m, nil
		}
		if m.paused || m.game.Progress() == engine.ProgressCleared {
			m.backToMenu = true
			return m, nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.game.Progress() == engine.ProgressCleared {
			return m.restart()
		}
		return m, nil
	}

	// Animation in flight: buffer nothing, commit happens on tick.
	if m.pending != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.togglePause()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(core.Up)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(core.Down)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(core.Left)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(core.Right)

	case key.Matches(msg, m.keys.NextCard):
		m.cycleSlot(1)
	case key.Matches(msg, m.keys.PrevCard):
		m.cycleSlot(-1)

	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()

	case key.Matches(msg, m.keys.Redraw):
		if !m.paused && m.game.ManualRedraw(time.Now()) {
			m.drainEvents()
		}

	case key.Matches(msg, m.keys.Discard):
		if !m.paused {
			m.game.BeginDiscardSelection()
		}

	default:
		// Digit keys select a hand slot directly.
		if n := digitKey(msg.String()); n > 0 && n <= len(m.game.HandStacks()) {
			m.slot = n - 1
		}
	}

	return m, nil
}

// confirm resolves the current intent: spawn pick, discard pick, or a
// two-phase card play at the cursor.
func (m PlayModel) confirm() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, nil
	}

	if m.game.SpawnSelectionRequired() {
		if m.game.SelectSpawn(m.cursor, time.Now()) {
			m.drainEvents()
		}
		return m, nil
	}

	if m.game.InDiscardSelection() {
		if m.game.DiscardStack(m.slot, time.Now()) {
			m.drainEvents()
			m.clampSlot()
		}
		return m, nil
	}

	if pm := m.game.ResolveTap(m.cursor); pm != nil {
		m.pending = pm
		m.animStep = 0
	}
	return m, nil
}

func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	// Age out toasts.
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		t.ticks--
		if t.ticks > 0 {
			kept = append(kept, t)
		}
	}
	m.toasts = kept

	// Advance the move animation one path cell per tick, then commit.
	if m.pending != nil {
		m.animStep++
		if m.animStep >= len(m.pending.Resolution.Path) {
			if m.game.Commit(m.pending, time.Now()) {
				m.drainEvents()
				if pos, ok := m.game.Position(); ok {
					m.cursor = pos
				}
				m.clampSlot()
				m.saveResultOnClear()
			}
			m.pending = nil
			m.animStep = 0
		}
	}

	return m, tickCmd(playTickRate)
}

func (m *PlayModel) moveCursor(v core.Vector) {
	if m.paused {
		return
	}
	next := m.cursor.Add(v)
	if m.game.Board().Contains(next) {
		m.cursor = next
	}
}

func (m *PlayModel) cycleSlot(dir int) {
	n := len(m.game.HandStacks())
	if n == 0 {
		return
	}
	m.slot = ((m.slot+dir)%n + n) % n
}

func (m *PlayModel) clampSlot() {
	if n := len(m.game.HandStacks()); m.slot >= n && n > 0 {
		m.slot = n - 1
	}
}

func (m *PlayModel) togglePause() {
	now := time.Now()
	if m.paused {
		m.game.Resume(now)
	} else {
		m.game.Pause(now)
	}
	m.paused = !m.paused
}

func (m *PlayModel) drainEvents() {
	for _, e := range m.game.Events() {
		text := e.Kind.String()
		if e.Amount > 0 {
			text = fmt.Sprintf("%s +%d", text, e.Amount)
		}
		m.toasts = append(m.toasts, toast{text: text, ticks: toastTicks})
	}
}

// saveResultOnClear persists a cleared run once, best effort.
func (m *PlayModel) saveResultOnClear() {
	if m.resultSaved || m.store == nil || m.game.Progress() != engine.ProgressCleared {
		return
	}
	now := time.Now()
	//nolint:errcheck // Best-effort save, the clear screen shows regardless
	m.store.SaveResult(storage.Result{
		Stage:     m.reg.Stage,
		Score:     m.game.Score(now),
		Moves:     m.game.MoveCount(),
		Penalties: m.game.PenaltyCount(),
		Seconds:   m.game.ElapsedSeconds(now),
		Seed:      m.seed,
	})
	m.resultSaved = true
}

func (m PlayModel) restart() (tea.Model, tea.Cmd) {
	fresh, err := NewPlayModel(m.reg, m.store, time.Now().UnixNano())
	if err != nil {
		m.failed = err
		return m, nil
	}
	fresh.width = m.width
	fresh.height = m.height
	return fresh, fresh.Init()
}

// animPosition returns the piece position override while a move animates.
func (m PlayModel) animPosition() *core.Point {
	if m.pending == nil {
		return nil
	}
	path := m.pending.Resolution.Path
	step := core.Min(m.animStep, len(path)-1)
	if step < 0 {
		return nil
	}
	p := path[step]
	return &p
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.failed != nil {
		return "error: " + m.failed.Error() + "\n"
	}

	snap := m.game.Snapshot(time.Now())

	targets := make(map[core.Point]bool)
	if m.pending == nil && !m.game.SpawnSelectionRequired() && !snap.DiscardMode {
		for _, p := range m.game.LegalDestinations(m.slot) {
			targets[p] = true
		}
	}

	var b strings.Builder
	title := m.reg.Title
	if title == "" {
		title = m.reg.Stage
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	best, hasBest := 0, false
	if m.store != nil {
		best, hasBest, _ = m.store.BestScore(m.reg.Stage)
	}
	b.WriteString(renderHUD(snap, best, hasBest))
	b.WriteString("\n\n")

	b.WriteString(renderBoard(m.game, boardView{
		cursor:  m.cursor,
		targets: targets,
		animAt:  m.animPosition(),
	}))
	b.WriteString("\n\n")

	b.WriteString(renderHand(m.game, m.slot))
	b.WriteString("\n")
	if preview := renderPreview(m.game); preview != "" {
		b.WriteString(preview)
		b.WriteString("\n")
	}

	switch {
	case m.game.Progress() == engine.ProgressCleared:
		b.WriteString("\n")
		b.WriteString(clearedStyle.Render(fmt.Sprintf("cleared! score %d  —  n: new run, esc: menu", snap.Score)))
		b.WriteString("\n")
	case m.paused:
		b.WriteString("\n")
		b.WriteString(pausedStyle.Render("paused  —  p: resume"))
		b.WriteString("\n")
	case m.game.SpawnSelectionRequired():
		b.WriteString("\n")
		b.WriteString(toastStyle.Render("pick a starting cell"))
		b.WriteString("\n")
	case snap.DiscardMode:
		b.WriteString("\n")
		b.WriteString(toastStyle.Render("pick a stack to discard  —  esc: cancel"))
		b.WriteString("\n")
	}

	for _, t := range m.toasts {
		b.WriteString(toastStyle.Render(t.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// IsQuitting returns true if the user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

func digitKey(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}

// Run starts a local Bubble Tea program for one stage.
func Run(reg rules.Regulation, store *storage.Store, seed int64) error {
	model, err := NewPlayModel(reg, store, seed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
