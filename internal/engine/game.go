package engine

import (
	"context"
	"time"

	"github.com/looplab/fsm"

	"github.com/vovakirdan/cardpath/internal/board"
	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/deck"
	"github.com/vovakirdan/cardpath/internal/hand"
	"github.com/vovakirdan/cardpath/internal/rules"
)

// Progress is the session lifecycle state.
type Progress string

const (
	// ProgressAwaitingSpawn waits for the player to pick a start cell.
	ProgressAwaitingSpawn Progress = "awaiting_spawn"
	// ProgressPlaying accepts card plays and manual penalty actions.
	ProgressPlaying Progress = "playing"
	// ProgressDeadlock is transient while the penalty redraw chain runs.
	ProgressDeadlock Progress = "deadlock"
	// ProgressCleared is terminal; no input is accepted.
	ProgressCleared Progress = "cleared"
)

// State machine event names.
const (
	evSpawn   = "spawn"
	evStall   = "stall"
	evRecover = "recover"
	evClear   = "clear"
)

// maxDeadlockRedraws bounds the chained free-redraw loop. A well-formed
// deck terminates the chain on its own; the bound only guards against a
// pathological configuration where no card can ever be played.
const maxDeadlockRedraws = 128

// PendingMove is a resolved-but-uncommitted card play, produced by
// ResolveTap so the UI can animate before Commit applies it. It is
// invalidated by any state change between the two calls.
type PendingMove struct {
	Slot       int
	PatternID  string
	Dest       core.Point
	Resolution Resolution

	gen uint64
}

// Game owns one puzzle session: board, deck, hand, position, counters and
// elapsed time. A new session means a new Game; nothing is shared between
// sessions.
type Game struct {
	reg   rules.Regulation
	board *board.Board
	deck  *deck.Deck
	hand  *hand.Manager
	res   *Resolver
	fsm   *fsm.FSM

	pos    core.Point
	hasPos bool

	moveCount    int
	penaltyCount int
	clk          clock
	events       []PenaltyEvent
	discardMode  bool

	// gen bumps on every committed state change; pending moves from an
	// older generation are stale and refuse to commit.
	gen uint64
}

// New builds a session from a validated regulation. now seeds the elapsed
// clock. Fixed-spawn sessions pre-mark the spawn cell and start playing;
// choice-spawn sessions await a spawn selection with the hand already dealt
// so the player can see it first.
func New(reg rules.Regulation, now time.Time) (*Game, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	d := deck.New(reg.DeckConfig())
	return newGame(reg, d, d, now), nil
}

// newGame wires a session from pre-built parts. Tests substitute a scripted
// hand source to pin down exact hand contents.
func newGame(reg rules.Regulation, d *deck.Deck, src hand.Source, now time.Time) *Game {
	var preVisited []core.Point
	initial := ProgressAwaitingSpawn
	if reg.Spawn.Rule == rules.SpawnFixed {
		preVisited = []core.Point{reg.Spawn.Point()}
		initial = ProgressPlaying
	}

	b := board.New(reg.BoardSize, preVisited, reg.RequiredMap(), reg.ImpassableSet())

	g := &Game{
		reg:   reg,
		board: b,
		deck:  d,
		hand:  hand.New(reg.HandConfig(), src),
		res:   NewResolver(b, reg.ToggleSet(), reg.ShuffleSet(), reg.WarpMap()),
	}
	g.fsm = fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: evSpawn, Src: []string{string(ProgressAwaitingSpawn)}, Dst: string(ProgressPlaying)},
			{Name: evStall, Src: []string{string(ProgressPlaying)}, Dst: string(ProgressDeadlock)},
			{Name: evRecover, Src: []string{string(ProgressDeadlock)}, Dst: string(ProgressPlaying)},
			{Name: evClear, Src: []string{string(ProgressPlaying)}, Dst: string(ProgressCleared)},
		},
		fsm.Callbacks{},
	)
	g.clk.start(now)
	g.hand.Refill()

	if reg.Spawn.Rule == rules.SpawnFixed {
		g.pos = reg.Spawn.Point()
		g.hasPos = true
		if g.board.IsCleared() {
			g.finish(now)
		} else {
			g.checkDeadlock(false)
		}
	}
	return g
}

func (g *Game) event(name string) {
	// Transitions are pre-guarded; fsm errors here would be programmer
	// errors and are intentionally not surfaced to callers.
	_ = g.fsm.Event(context.Background(), name)
}

// Progress returns the current lifecycle state.
func (g *Game) Progress() Progress {
	return Progress(g.fsm.Current())
}

// SpawnSelectionRequired reports whether the session is waiting for the
// player to choose a start cell.
func (g *Game) SpawnSelectionRequired() bool {
	return g.Progress() == ProgressAwaitingSpawn
}

// CanSpawnAt reports whether p is a legal start cell.
func (g *Game) CanSpawnAt(p core.Point) bool {
	return g.board.Contains(p) && !g.board.Impassable(p)
}

// SelectSpawn places the piece on a player-chosen cell, marks it visited
// and starts play. Ignored outside awaiting-spawn or for an illegal cell.
func (g *Game) SelectSpawn(p core.Point, now time.Time) bool {
	if g.Progress() != ProgressAwaitingSpawn || !g.CanSpawnAt(p) {
		return false
	}

	g.res.visit(p)
	g.pos = p
	g.hasPos = true
	g.event(evSpawn)
	g.gen++

	if g.board.IsCleared() {
		g.finish(now)
		return true
	}
	g.checkDeadlock(false)
	return true
}

// Position returns the piece's position; ok is false before spawn.
func (g *Game) Position() (core.Point, bool) {
	return g.pos, g.hasPos
}

// Board exposes the board for the UI layer. Read-only by convention.
func (g *Game) Board() *board.Board {
	return g.board
}

// Regulation returns the session's regulation.
func (g *Game) Regulation() rules.Regulation {
	return g.reg
}

// HandStacks returns the hand slots in display order.
func (g *Game) HandStacks() []*hand.Stack {
	return g.hand.Stacks()
}

// PreviewCards returns the deck's look-ahead queue, oldest first.
func (g *Game) PreviewCards() []*deck.DealtCard {
	return g.deck.Preview()
}

// LegalDestinations returns the legal destinations of the top card in the
// given slot. Nil outside play or for an invalid slot.
func (g *Game) LegalDestinations(slot int) []core.Point {
	if g.Progress() != ProgressPlaying {
		return nil
	}
	s, ok := g.hand.Stack(slot)
	if !ok {
		return nil
	}
	return g.res.Destinations(s.Pattern(), g.pos)
}

// PlayCard consumes the top card of the given slot toward the chosen
// destination. Invalid input (bad slot, illegal destination, wrong state)
// is silently ignored and reported as false.
func (g *Game) PlayCard(slot int, dest core.Point, now time.Time) bool {
	if g.Progress() != ProgressPlaying || g.discardMode {
		return false
	}
	s, ok := g.hand.Stack(slot)
	if !ok {
		return false
	}
	res, ok := g.res.Plan(s.Pattern(), g.pos, dest)
	if !ok {
		return false
	}
	g.commit(slot, res, now)
	return true
}

// ResolveTap maps a board tap to a playable card: the first slot, in
// display order, whose top card can legally reach p. The returned pending
// move is resolved but uncommitted so the UI can animate before Commit.
// Returns nil when no card reaches p.
func (g *Game) ResolveTap(p core.Point) *PendingMove {
	if g.Progress() != ProgressPlaying || g.discardMode {
		return nil
	}
	for slot, s := range g.hand.Stacks() {
		res, ok := g.res.Plan(s.Pattern(), g.pos, p)
		if !ok {
			continue
		}
		return &PendingMove{
			Slot:       slot,
			PatternID:  s.Pattern().ID,
			Dest:       p,
			Resolution: res,
			gen:        g.gen,
		}
	}
	return nil
}

// Commit applies a pending move produced by ResolveTap. A stale pending
// move (any state change since the resolve) is silently ignored.
func (g *Game) Commit(pm *PendingMove, now time.Time) bool {
	if pm == nil || g.Progress() != ProgressPlaying || g.discardMode || pm.gen != g.gen {
		return false
	}
	g.commit(pm.Slot, pm.Resolution, now)
	return true
}

// commit applies a validated resolution: consume the card, visit the path,
// move the piece, count the move and any revisit penalty, run tile effects,
// refill, then check for clear or deadlock.
func (g *Game) commit(slot int, res Resolution, now time.Time) {
	g.hand.ConsumeTop(slot)
	g.res.Apply(res)
	g.pos = res.Final
	g.moveCount++
	g.gen++

	if res.Revisit {
		g.penaltyCount += g.reg.Penalties.Revisit
	}
	for _, eff := range res.Effects {
		if eff.Kind == EffectShuffle {
			g.hand.DiscardAll()
			g.deck.DiscardPreview()
		}
	}
	g.hand.Refill()

	if g.board.IsCleared() {
		g.finish(now)
		return
	}
	g.checkDeadlock(false)
}

// ManualRedraw pays the configured cost and exchanges the entire hand and
// preview queue. A deadlock persisting through the new hand chains free
// redraws without charging again.
func (g *Game) ManualRedraw(now time.Time) bool {
	if g.Progress() != ProgressPlaying || g.discardMode {
		return false
	}

	g.addPenalty(PenaltyManualRedraw, g.reg.Penalties.Redraw)
	g.redrawHand()
	g.gen++
	g.checkDeadlock(true)
	return true
}

// BeginDiscardSelection enters the mode where the player picks one stack to
// sacrifice. Ignored outside play or with an empty hand.
func (g *Game) BeginDiscardSelection() bool {
	if g.Progress() != ProgressPlaying || g.hand.Len() == 0 {
		return false
	}
	g.discardMode = true
	return true
}

// CancelDiscardSelection leaves discard mode without discarding.
func (g *Game) CancelDiscardSelection() {
	g.discardMode = false
}

// InDiscardSelection reports whether a discard selection is in progress.
func (g *Game) InDiscardSelection() bool {
	return g.discardMode
}

// DiscardStack sacrifices the whole stack at the given slot for the
// configured cost, refills (preferring the freed slot) and re-runs the
// deadlock check.
func (g *Game) DiscardStack(slot int, now time.Time) bool {
	if g.Progress() != ProgressPlaying || !g.discardMode {
		return false
	}
	if !g.hand.RemoveStack(slot) {
		return false
	}

	g.discardMode = false
	g.addPenalty(PenaltyManualDiscard, g.reg.Penalties.Discard)
	g.hand.Refill()
	g.gen++
	g.checkDeadlock(false)
	return true
}

// Pause stops the elapsed-time accumulator.
func (g *Game) Pause(now time.Time) {
	if g.Progress() == ProgressCleared {
		return
	}
	g.clk.pause(now)
}

// Resume restarts the elapsed-time accumulator.
func (g *Game) Resume(now time.Time) {
	g.clk.resume(now)
}

// ElapsedSeconds returns whole elapsed seconds, frozen once cleared.
func (g *Game) ElapsedSeconds(now time.Time) int {
	return int(g.clk.elapsed(now).Seconds())
}

// Score derives the session score. It is always recomputed from the move
// and penalty counters and the elapsed time, never stored.
func (g *Game) Score(now time.Time) int {
	return (g.moveCount+g.penaltyCount)*10 + g.ElapsedSeconds(now)
}

// MoveCount returns the number of committed card plays.
func (g *Game) MoveCount() int {
	return g.moveCount
}

// PenaltyCount returns the accumulated penalty total.
func (g *Game) PenaltyCount() int {
	return g.penaltyCount
}

// Events drains the queued penalty events, oldest first.
func (g *Game) Events() []PenaltyEvent {
	out := g.events
	g.events = nil
	return out
}

func (g *Game) finish(now time.Time) {
	g.clk.finalize(now)
	g.discardMode = false
	g.event(evClear)
}

func (g *Game) addPenalty(kind PenaltyKind, amount int) {
	g.penaltyCount += amount
	g.events = append(g.events, PenaltyEvent{Kind: kind, Amount: amount})
}

func (g *Game) redrawHand() {
	g.hand.DiscardAll()
	g.deck.DiscardPreview()
	g.hand.Refill()
}

func (g *Game) hasPlayableCard() bool {
	for _, s := range g.hand.Stacks() {
		if g.res.HasAnyDestination(s.Pattern(), g.pos) {
			return true
		}
	}
	return false
}

// checkDeadlock detects a hand with zero legal destinations and runs the
// penalty redraw chain: the deadlock cost is charged exactly once per
// incident, then the hand is exchanged repeatedly for free until a playable
// hand appears. alreadyCharged seeds the chain after a manual redraw so a
// persisting deadlock is not double-charged.
func (g *Game) checkDeadlock(alreadyCharged bool) {
	if g.Progress() != ProgressPlaying || !g.hasPos {
		return
	}
	if g.hasPlayableCard() {
		return
	}

	g.event(evStall)
	charged := alreadyCharged
	for attempt := 0; attempt < maxDeadlockRedraws; attempt++ {
		if !charged {
			g.addPenalty(PenaltyDeadlock, g.reg.Penalties.Deadlock)
			charged = true
		} else {
			g.addPenalty(PenaltyFreeRedraw, 0)
		}
		g.redrawHand()
		g.gen++
		if g.hasPlayableCard() {
			break
		}
	}
	g.event(evRecover)
}
