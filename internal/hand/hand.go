// Package hand manages the bounded set of card stacks the player can play
// from. Slots hold stacks of same-pattern cards; only the top card of each
// stack is usable. Refilling prefers the deck's preview queue and reinserts
// into freed slots before appending.
package hand

import (
	"sort"

	"github.com/vovakirdan/cardpath/internal/deck"
)

// Source produces the next card for a refill. *deck.Deck satisfies it; tests
// substitute scripted sources.
type Source interface {
	TakeNext() *deck.DealtCard
}

// SortMode selects how Reorder arranges the slots.
type SortMode int

const (
	// SortNone keeps insertion order.
	SortNone SortMode = iota
	// SortByDirection stable-sorts stacks by their top card's primary
	// vector: ascending horizontal component, then descending vertical,
	// then catalogue order.
	SortByDirection
)

// Config parameterizes the hand for one session.
type Config struct {
	HandSize int
	Stacking bool
	Sort     SortMode

	// DistinctPatterns is the number of distinct patterns the deck can
	// produce. Refill targets min(HandSize, DistinctPatterns) slots.
	DistinctPatterns int
}

// Stack is an ordered, non-empty pile of same-pattern cards. The last card
// is the visible top.
type Stack struct {
	cards []*deck.DealtCard
}

// Top returns the visible card.
func (s *Stack) Top() *deck.DealtCard {
	return s.cards[len(s.cards)-1]
}

// Pattern returns the shared pattern of the stack's cards.
func (s *Stack) Pattern() *deck.Pattern {
	return s.Top().Pattern
}

// Size returns the number of cards in the stack.
func (s *Stack) Size() int {
	return len(s.cards)
}

// refillBoundPerSlot caps refill iterations per slot; a refill that busy-loops
// past it indicates a broken deck configuration and is abandoned.
const refillBoundPerSlot = 16

// Manager owns the hand slots.
type Manager struct {
	cfg    Config
	src    Source
	stacks []*Stack
	freed  []int // pending freed slot indices, ascending
}

// New creates an empty hand manager drawing from src.
func New(cfg Config, src Source) *Manager {
	return &Manager{cfg: cfg, src: src}
}

// Len returns the current number of stacks.
func (m *Manager) Len() int {
	return len(m.stacks)
}

// Stacks returns the slots in display order. The slice is a copy; the
// stacks are shared.
func (m *Manager) Stacks() []*Stack {
	out := make([]*Stack, len(m.stacks))
	copy(out, m.stacks)
	return out
}

// Stack returns the stack at the given slot.
func (m *Manager) Stack(slot int) (*Stack, bool) {
	if slot < 0 || slot >= len(m.stacks) {
		return nil, false
	}
	return m.stacks[slot], true
}

// ConsumeTop pops the visible card from the given slot. If the stack
// empties it is removed and its index recorded so the next refill prefers
// reinserting there. Returns false for an invalid slot.
func (m *Manager) ConsumeTop(slot int) (*deck.DealtCard, bool) {
	if slot < 0 || slot >= len(m.stacks) {
		return nil, false
	}

	s := m.stacks[slot]
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]

	if len(s.cards) == 0 {
		m.removeAt(slot)
	}
	return c, true
}

// RemoveStack discards the whole stack at the given slot, recording the
// freed index. Used by the discard-penalty action.
func (m *Manager) RemoveStack(slot int) bool {
	if slot < 0 || slot >= len(m.stacks) {
		return false
	}
	m.removeAt(slot)
	return true
}

func (m *Manager) removeAt(slot int) {
	m.stacks = append(m.stacks[:slot], m.stacks[slot+1:]...)
	m.freed = append(m.freed, slot)
	sort.Ints(m.freed)
}

// DiscardAll empties the hand entirely, clearing freed-slot bookkeeping.
// Used by the full redraw actions.
func (m *Manager) DiscardAll() {
	m.stacks = m.stacks[:0]
	m.freed = m.freed[:0]
}

// Refill tops the hand back up: it repeatedly takes the next card from the
// source, appending to an existing same-pattern stack when stacking is
// enabled, otherwise inserting a new stack at the lowest pending freed index
// (or the end). It stops once the slot count reaches
// min(HandSize, DistinctPatterns) with no freed indices pending.
//
// Returns false if the safety iteration bound was hit, which means the deck
// configuration cannot populate the hand; the partial hand is kept.
func (m *Manager) Refill() bool {
	target := m.cfg.HandSize
	if m.cfg.DistinctPatterns > 0 && m.cfg.DistinctPatterns < target {
		target = m.cfg.DistinctPatterns
	}

	bound := refillBoundPerSlot * (m.cfg.HandSize + 1)
	for iter := 0; len(m.stacks) < target || len(m.freed) > 0; iter++ {
		if iter >= bound {
			return false
		}
		if len(m.stacks) >= target {
			// Target reached; leftover freed indices are stale.
			m.freed = m.freed[:0]
			break
		}

		c := m.src.TakeNext()
		if c == nil {
			return false
		}

		if m.cfg.Stacking {
			if s := m.findStack(c.Pattern.ID); s != nil {
				s.cards = append(s.cards, c)
				continue
			}
		}
		m.insertStack(&Stack{cards: []*deck.DealtCard{c}})
	}

	m.reorder()
	return true
}

func (m *Manager) findStack(patternID string) *Stack {
	for _, s := range m.stacks {
		if s.Pattern().ID == patternID {
			return s
		}
	}
	return nil
}

// insertStack places a new stack at the lowest pending freed index, or
// appends when none is pending. A consumed freed index realigns the slice
// for the remaining pending indices.
func (m *Manager) insertStack(s *Stack) {
	if len(m.freed) == 0 {
		m.stacks = append(m.stacks, s)
		return
	}

	idx := m.freed[0]
	m.freed = m.freed[1:]
	if idx > len(m.stacks) {
		idx = len(m.stacks)
	}
	m.stacks = append(m.stacks, nil)
	copy(m.stacks[idx+1:], m.stacks[idx:])
	m.stacks[idx] = s
}

// Reorder applies the configured sort mode to the slots.
func (m *Manager) Reorder() {
	m.reorder()
}

func (m *Manager) reorder() {
	if m.cfg.Sort != SortByDirection {
		return
	}
	sort.SliceStable(m.stacks, func(i, j int) bool {
		a, b := m.stacks[i].Pattern(), m.stacks[j].Pattern()
		av, bv := a.Primary(), b.Primary()
		if av.DX != bv.DX {
			return av.DX < bv.DX
		}
		if av.DY != bv.DY {
			return av.DY > bv.DY
		}
		return a.Ord < b.Ord
	})
}
