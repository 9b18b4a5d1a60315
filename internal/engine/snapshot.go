package engine

import (
	"time"

	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/deck"
)

// StackView is the UI-facing shape of one hand slot.
type StackView struct {
	PatternID string
	Kind      deck.Kind
	Size      int
	TopSerial int64
}

// Snapshot captures the observable session state for the UI layer and for
// determinism testing; comparing snapshots across replays of the same seed
// must yield identical values.
type Snapshot struct {
	Stage                  string
	Progress               Progress
	SpawnSelectionRequired bool

	Position    core.Point
	HasPosition bool

	MoveCount      int
	PenaltyCount   int
	ElapsedSeconds int
	Score          int
	Remaining      int

	Hand        []StackView
	Preview     []string
	DiscardMode bool
}

// Snapshot returns the current observable state. now feeds elapsed-time and
// score derivation; once cleared they are frozen regardless of now.
func (g *Game) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Stage:                  g.reg.Stage,
		Progress:               g.Progress(),
		SpawnSelectionRequired: g.SpawnSelectionRequired(),
		Position:               g.pos,
		HasPosition:            g.hasPos,
		MoveCount:              g.moveCount,
		PenaltyCount:           g.penaltyCount,
		ElapsedSeconds:         g.ElapsedSeconds(now),
		Score:                  g.Score(now),
		Remaining:              g.board.RemainingCount(),
		DiscardMode:            g.discardMode,
	}
	for _, st := range g.hand.Stacks() {
		s.Hand = append(s.Hand, StackView{
			PatternID: st.Pattern().ID,
			Kind:      st.Pattern().Kind,
			Size:      st.Size(),
			TopSerial: st.Top().Serial,
		})
	}
	for _, c := range g.deck.Preview() {
		s.Preview = append(s.Preview, c.Pattern.ID)
	}
	return s
}
