// Package board models the puzzle grid as a pure visit-counter grid.
// Each tile carries a required visit count and a remaining count; a tile is
// visited once its remaining count reaches zero. Special tile behavior
// (toggle flips, warp relocation) is decided by the movement resolver, which
// calls back into the two mutation primitives here. The board itself only
// counts.
package board

import (
	"fmt"

	"github.com/vovakirdan/cardpath/internal/core"
)

// Tile is the visit state of a single cell.
type Tile struct {
	Required  int // visits needed in total, >= 0
	Remaining int // visits still needed, in [0, Required]
}

// Visited reports whether the tile needs no further visits.
func (t Tile) Visited() bool {
	return t.Remaining == 0
}

// Board owns an immutable size and the mutable tile grid, plus the
// impassable mask (needed to decide clearance). Toggle and warp marks are
// regulation data consulted by the resolver, not stored here.
type Board struct {
	size       int
	tiles      [][]Tile
	impassable map[core.Point]bool
}

// New creates a size×size board. Every passable tile starts with a required
// visit count of 1 unless overridden in required. Points in preVisited are
// marked fully visited (used for the spawn cell). Impassable points never
// need visits and never accept them.
//
// A non-positive size is a caller contract violation and panics; regulations
// are validated before they reach this constructor.
func New(size int, preVisited []core.Point, required map[core.Point]int, impassable map[core.Point]bool) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("board: non-positive size %d", size))
	}

	b := &Board{
		size:       size,
		tiles:      make([][]Tile, size),
		impassable: make(map[core.Point]bool, len(impassable)),
	}
	for y := range b.tiles {
		b.tiles[y] = make([]Tile, size)
		for x := range b.tiles[y] {
			b.tiles[y][x] = Tile{Required: 1, Remaining: 1}
		}
	}

	for p, n := range required {
		if !b.Contains(p) || n < 0 {
			continue
		}
		b.tiles[p.Y][p.X] = Tile{Required: n, Remaining: n}
	}

	for p, ok := range impassable {
		if !ok || !b.Contains(p) {
			continue
		}
		b.impassable[p] = true
		b.tiles[p.Y][p.X] = Tile{}
	}

	for _, p := range preVisited {
		if !b.Contains(p) || b.impassable[p] {
			continue
		}
		b.tiles[p.Y][p.X].Remaining = 0
	}

	return b
}

// Size returns the board's side length.
func (b *Board) Size() int {
	return b.size
}

// Contains reports whether the point lies on the board.
func (b *Board) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < b.size && p.Y >= 0 && p.Y < b.size
}

// Impassable reports whether the point is on the board and marked impassable.
func (b *Board) Impassable(p core.Point) bool {
	return b.impassable[p]
}

// StateAt returns the tile at p. ok is false off-board.
func (b *Board) StateAt(p core.Point) (Tile, bool) {
	if !b.Contains(p) {
		return Tile{}, false
	}
	return b.tiles[p.Y][p.X], true
}

// IsVisited reports whether the tile at p needs no further visits.
// Off-board points report false.
func (b *Board) IsVisited(p core.Point) bool {
	t, ok := b.StateAt(p)
	return ok && t.Visited()
}

// MarkVisited records one visit at p, decrementing the remaining count by
// one. It is a no-op off-board, on impassable tiles, and on tiles already at
// zero.
func (b *Board) MarkVisited(p core.Point) {
	if !b.Contains(p) || b.impassable[p] {
		return
	}
	if b.tiles[p.Y][p.X].Remaining > 0 {
		b.tiles[p.Y][p.X].Remaining--
	}
}

// ToggleVisit flips the tile at p between visited and unvisited. Used by the
// resolver for toggle-marked tiles instead of MarkVisited. A flip back to
// unvisited restores the full required count (minimum one visit).
func (b *Board) ToggleVisit(p core.Point) {
	if !b.Contains(p) || b.impassable[p] {
		return
	}
	t := &b.tiles[p.Y][p.X]
	if t.Remaining == 0 {
		t.Remaining = core.Max(t.Required, 1)
	} else {
		t.Remaining = 0
	}
}

// RemainingCount returns the number of passable tiles still needing visits.
func (b *Board) RemainingCount() int {
	n := 0
	for y := range b.tiles {
		for x := range b.tiles[y] {
			p := core.Point{X: x, Y: y}
			if b.impassable[p] {
				continue
			}
			if b.tiles[y][x].Remaining > 0 {
				n++
			}
		}
	}
	return n
}

// IsCleared reports whether every passable tile is fully visited.
func (b *Board) IsCleared() bool {
	return b.RemainingCount() == 0
}
