// Package deck provides the movement-card catalogue and the weighted,
// anti-streak draw source feeding the hand.
package deck

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cardpath/internal/core"
)

// Kind discriminates the movement shapes a card can carry.
type Kind int

const (
	// KindFixed moves by exactly one vector.
	KindFixed Kind = iota
	// KindChoice offers a finite set of alternative vectors; the player
	// must pick one.
	KindChoice
	// KindRay travels repeatedly in one direction until blocked.
	KindRay
	// KindWarp jumps to any unvisited, passable cell on the board.
	KindWarp
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindChoice:
		return "choice"
	case KindRay:
		return "ray"
	case KindWarp:
		return "warp"
	default:
		return "unknown"
	}
}

// Pattern is a card's stable identity plus its candidate movement set.
// Exactly one of Vector/Choices/Ray is meaningful, selected by Kind.
// Ord fixes the catalogue enumeration order used for draw tie-breaks and
// hand sorting; it must be unique within one deck configuration.
type Pattern struct {
	ID      string
	Kind    Kind
	Vector  core.Vector   // KindFixed
	Choices []core.Vector // KindChoice
	Ray     core.Vector   // KindRay, a unit direction
	Ord     int
}

// Primary returns the vector used for direction-sorted hand ordering:
// the fixed vector, the first choice, or the ray direction. Warp cards
// sort with a zero vector.
func (p *Pattern) Primary() core.Vector {
	switch p.Kind {
	case KindFixed:
		return p.Vector
	case KindChoice:
		if len(p.Choices) > 0 {
			return p.Choices[0]
		}
	case KindRay:
		return p.Ray
	}
	return core.Vector{}
}

func (p *Pattern) String() string {
	return fmt.Sprintf("%s(%s)", p.ID, p.Kind)
}

// DealtCard is one physical instance of a pattern. The serial is unique per
// draw within a deck lifetime so the UI layer can track a specific card
// through animations; it carries no gameplay state.
type DealtCard struct {
	Serial  int64
	Pattern *Pattern
}

var (
	catalogue   = make(map[string]*Pattern)
	catalogueMu sync.RWMutex
	nextOrd     int
)

// RegisterPattern adds a pattern to the global catalogue, assigning it the
// next enumeration ordinal. Panics on a duplicate ID.
func RegisterPattern(p Pattern) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()

	if _, exists := catalogue[p.ID]; exists {
		panic(fmt.Sprintf("deck: pattern %q already registered", p.ID))
	}
	p.Ord = nextOrd
	nextOrd++
	catalogue[p.ID] = &p
}

// Lookup returns the catalogue pattern with the given ID.
func Lookup(id string) (*Pattern, bool) {
	catalogueMu.RLock()
	defer catalogueMu.RUnlock()

	p, ok := catalogue[id]
	return p, ok
}

// Catalogue returns all registered patterns in enumeration order.
func Catalogue() []*Pattern {
	catalogueMu.RLock()
	defer catalogueMu.RUnlock()

	out := make([]*Pattern, 0, len(catalogue))
	for _, p := range catalogue {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ord < out[j].Ord })
	return out
}

func init() {
	// Single-step cards.
	RegisterPattern(Pattern{ID: "up1", Kind: KindFixed, Vector: core.Up})
	RegisterPattern(Pattern{ID: "down1", Kind: KindFixed, Vector: core.Down})
	RegisterPattern(Pattern{ID: "left1", Kind: KindFixed, Vector: core.Left})
	RegisterPattern(Pattern{ID: "right1", Kind: KindFixed, Vector: core.Right})

	// Two-cell jumps.
	RegisterPattern(Pattern{ID: "up2", Kind: KindFixed, Vector: core.Up.Scale(2)})
	RegisterPattern(Pattern{ID: "down2", Kind: KindFixed, Vector: core.Down.Scale(2)})
	RegisterPattern(Pattern{ID: "left2", Kind: KindFixed, Vector: core.Left.Scale(2)})
	RegisterPattern(Pattern{ID: "right2", Kind: KindFixed, Vector: core.Right.Scale(2)})

	// Choice cards: player picks one candidate.
	RegisterPattern(Pattern{ID: "diag1", Kind: KindChoice, Choices: []core.Vector{
		{DX: 1, DY: 1}, {DX: 1, DY: -1}, {DX: -1, DY: 1}, {DX: -1, DY: -1},
	}})
	RegisterPattern(Pattern{ID: "orth2", Kind: KindChoice, Choices: []core.Vector{
		{DX: 2, DY: 0}, {DX: 0, DY: 2}, {DX: -2, DY: 0}, {DX: 0, DY: -2},
	}})

	// Rays: travel until the board edge or an impassable tile.
	RegisterPattern(Pattern{ID: "ray-up", Kind: KindRay, Ray: core.Up})
	RegisterPattern(Pattern{ID: "ray-down", Kind: KindRay, Ray: core.Down})
	RegisterPattern(Pattern{ID: "ray-left", Kind: KindRay, Ray: core.Left})
	RegisterPattern(Pattern{ID: "ray-right", Kind: KindRay, Ray: core.Right})

	// Whole-board warp.
	RegisterPattern(Pattern{ID: "warp", Kind: KindWarp})
}
