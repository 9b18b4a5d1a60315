// Package engine implements the movement resolver and the session state
// machine orchestrating board, deck and hand. It is single-threaded and
// synchronous: every operation runs to completion, performs no I/O, and
// accepts timestamps instead of reading a clock.
package engine

import (
	"github.com/vovakirdan/cardpath/internal/board"
	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/deck"
)

// EffectKind discriminates tile effects triggered along a movement path.
type EffectKind int

const (
	// EffectWarp relocates the piece to the warp partner cell.
	EffectWarp EffectKind = iota
	// EffectShuffle discards and refills the whole hand.
	EffectShuffle
)

// Effect records one triggered tile effect. To is meaningful for warps only.
type Effect struct {
	Kind EffectKind
	At   core.Point
	To   core.Point
}

// Resolution is the outcome of resolving one chosen destination: the
// ordered cells the piece passes through (start excluded, destination
// included), the final position after tile effects, and the effects in
// encounter order. Revisit reports whether the chosen destination was
// already fully visited before the move.
type Resolution struct {
	Path    []core.Point
	Final   core.Point
	Effects []Effect
	Revisit bool
}

// Resolver evaluates card movement against the board and the regulation's
// tile marks. Plan never mutates; Apply commits a planned resolution. The
// split exists for the two-phase tap-to-play flow, where the UI animates
// between resolving and committing.
type Resolver struct {
	board   *board.Board
	toggle  map[core.Point]bool
	shuffle map[core.Point]bool
	warps   map[core.Point]core.Point
}

// NewResolver creates a resolver over the given board and tile marks.
func NewResolver(b *board.Board, toggle, shuffle map[core.Point]bool, warps map[core.Point]core.Point) *Resolver {
	return &Resolver{board: b, toggle: toggle, shuffle: shuffle, warps: warps}
}

func (r *Resolver) passable(p core.Point) bool {
	return r.board.Contains(p) && !r.board.Impassable(p)
}

// Destinations returns every legal destination of the pattern from the
// given position, in a fixed deterministic order. Choice and warp cards are
// never auto-resolved: the caller must pick one of the returned points.
func (r *Resolver) Destinations(p *deck.Pattern, from core.Point) []core.Point {
	switch p.Kind {
	case deck.KindFixed:
		if d := from.Add(p.Vector); r.passable(d) {
			return []core.Point{d}
		}
		return nil

	case deck.KindChoice:
		var out []core.Point
		for _, v := range p.Choices {
			if d := from.Add(v); r.passable(d) {
				out = append(out, d)
			}
		}
		return out

	case deck.KindRay:
		if d, ok := r.rayEnd(p.Ray, from); ok {
			return []core.Point{d}
		}
		return nil

	case deck.KindWarp:
		var out []core.Point
		size := r.board.Size()
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := core.Point{X: x, Y: y}
				if d == from || !r.passable(d) || r.board.IsVisited(d) {
					continue
				}
				out = append(out, d)
			}
		}
		return out
	}
	return nil
}

// HasAnyDestination reports whether the pattern offers at least one legal
// destination from the given position. Used by the deadlock check.
func (r *Resolver) HasAnyDestination(p *deck.Pattern, from core.Point) bool {
	return len(r.Destinations(p, from)) > 0
}

// rayEnd walks in dir from from until the board edge or an impassable tile,
// returning the last traversable cell. ok is false when the immediately
// adjacent cell is already blocked.
func (r *Resolver) rayEnd(dir core.Vector, from core.Point) (core.Point, bool) {
	cur := from
	moved := false
	for {
		next := cur.Add(dir)
		if !r.passable(next) {
			break
		}
		cur = next
		moved = true
	}
	return cur, moved
}

// Plan resolves the pattern toward a chosen destination without mutating
// any state. ok is false when dest is not a legal destination.
func (r *Resolver) Plan(p *deck.Pattern, from, dest core.Point) (Resolution, bool) {
	legal := false
	for _, d := range r.Destinations(p, from) {
		if d == dest {
			legal = true
			break
		}
	}
	if !legal {
		return Resolution{}, false
	}

	var path []core.Point
	if p.Kind == deck.KindRay {
		for cur := from.Add(p.Ray); ; cur = cur.Add(p.Ray) {
			path = append(path, cur)
			if cur == dest {
				break
			}
		}
	} else {
		path = []core.Point{dest}
	}

	res := Resolution{
		Path:    path,
		Final:   dest,
		Revisit: r.board.IsVisited(dest),
	}
	for _, cell := range path {
		if r.shuffle[cell] {
			res.Effects = append(res.Effects, Effect{Kind: EffectShuffle, At: cell})
		}
		if partner, ok := r.warps[cell]; ok {
			res.Effects = append(res.Effects, Effect{Kind: EffectWarp, At: cell, To: partner})
			res.Final = partner
		}
	}
	return res, true
}

// Apply commits a planned resolution: every path cell is visited in order
// (toggle tiles flip instead of decrementing) and warp arrivals visit the
// partner cell. Effects on the hand (shuffle) are the state machine's job.
func (r *Resolver) Apply(res Resolution) {
	for _, cell := range res.Path {
		r.visit(cell)
		if partner, ok := r.warps[cell]; ok {
			r.visit(partner)
		}
	}
}

func (r *Resolver) visit(p core.Point) {
	if r.toggle[p] {
		r.board.ToggleVisit(p)
		return
	}
	r.board.MarkVisited(p)
}
