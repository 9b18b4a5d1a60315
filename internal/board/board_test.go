package board

import (
	"testing"

	"github.com/vovakirdan/cardpath/internal/core"
)

func TestSingleCellBoardClearedImmediately(t *testing.T) {
	b := New(1, []core.Point{{X: 0, Y: 0}}, nil, nil)

	if !b.IsCleared() {
		t.Error("1x1 board with spawn pre-marked should be cleared immediately")
	}
	if got := b.RemainingCount(); got != 0 {
		t.Errorf("RemainingCount() = %d, want 0", got)
	}
}

func TestMarkVisitedDecrements(t *testing.T) {
	b := New(3, nil, map[core.Point]int{{X: 1, Y: 1}: 2}, nil)

	p := core.Point{X: 1, Y: 1}
	if b.IsVisited(p) {
		t.Fatal("multi-visit tile should start unvisited")
	}

	b.MarkVisited(p)
	tile, _ := b.StateAt(p)
	if tile.Remaining != 1 || tile.Visited() {
		t.Errorf("after one visit: remaining = %d, want 1", tile.Remaining)
	}

	b.MarkVisited(p)
	if !b.IsVisited(p) {
		t.Error("tile should be visited after two visits")
	}

	// Further visits are a no-op.
	b.MarkVisited(p)
	tile, _ = b.StateAt(p)
	if tile.Remaining != 0 {
		t.Errorf("visit at zero changed remaining to %d", tile.Remaining)
	}
}

func TestMarkVisitedOffBoardIsNoOp(t *testing.T) {
	b := New(2, nil, nil, nil)
	b.MarkVisited(core.Point{X: -1, Y: 0})
	b.MarkVisited(core.Point{X: 2, Y: 2})

	if got := b.RemainingCount(); got != 4 {
		t.Errorf("RemainingCount() = %d, want 4", got)
	}
}

func TestImpassableExcludedFromClear(t *testing.T) {
	wall := core.Point{X: 1, Y: 1}
	b := New(2, nil, nil, map[core.Point]bool{wall: true})

	if got := b.RemainingCount(); got != 3 {
		t.Fatalf("RemainingCount() = %d, want 3", got)
	}

	for _, p := range []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}} {
		b.MarkVisited(p)
	}
	if !b.IsCleared() {
		t.Error("board should clear without visiting the impassable tile")
	}

	// Visits to the wall never register.
	b.MarkVisited(wall)
	tile, _ := b.StateAt(wall)
	if tile.Required != 0 || tile.Remaining != 0 {
		t.Errorf("impassable tile state = %+v, want zero", tile)
	}
}

func TestToggleVisitFlips(t *testing.T) {
	p := core.Point{X: 0, Y: 0}
	b := New(2, nil, nil, nil)

	b.ToggleVisit(p)
	if !b.IsVisited(p) {
		t.Fatal("toggle on unvisited tile should mark it visited")
	}

	b.ToggleVisit(p)
	if b.IsVisited(p) {
		t.Fatal("toggle on visited tile should mark it unvisited")
	}

	tile, _ := b.StateAt(p)
	if tile.Remaining != 1 {
		t.Errorf("flipped-back tile remaining = %d, want 1", tile.Remaining)
	}
}

func TestClearedIffEveryPassableTileVisited(t *testing.T) {
	b := New(3, []core.Point{{X: 0, Y: 0}}, map[core.Point]int{{X: 2, Y: 2}: 3}, nil)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if b.IsCleared() {
				t.Fatal("board cleared before all tiles visited")
			}
			p := core.Point{X: x, Y: y}
			tile, _ := b.StateAt(p)
			for i := 0; i < tile.Remaining; i++ {
				b.MarkVisited(p)
			}
		}
	}

	if !b.IsCleared() {
		t.Error("board should be cleared after visiting every tile to zero")
	}
}

func TestNewPanicsOnNonPositiveSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0, ...) should panic")
		}
	}()
	New(0, nil, nil, nil)
}
