package engine

// PenaltyKind identifies what triggered a penalty.
type PenaltyKind int

const (
	// PenaltyDeadlock is the automatic charge when no card in hand has a
	// legal destination.
	PenaltyDeadlock PenaltyKind = iota
	// PenaltyManualRedraw is the cost of a player-requested full redraw.
	PenaltyManualRedraw
	// PenaltyManualDiscard is the cost of sacrificing one stack.
	PenaltyManualDiscard
	// PenaltyFreeRedraw is a zero-cost chained redraw while a deadlock
	// persists; emitted so the UI can still announce the reshuffle.
	PenaltyFreeRedraw
)

func (k PenaltyKind) String() string {
	switch k {
	case PenaltyDeadlock:
		return "deadlock"
	case PenaltyManualRedraw:
		return "manual redraw"
	case PenaltyManualDiscard:
		return "manual discard"
	case PenaltyFreeRedraw:
		return "free redraw"
	default:
		return "unknown"
	}
}

// PenaltyEvent is a discrete notification for the UI layer: what was
// charged and how much. Events are ephemeral; they queue until drained and
// are never persisted.
type PenaltyEvent struct {
	Kind   PenaltyKind
	Amount int
}
