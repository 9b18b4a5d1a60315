// Package rules defines the stage regulation: the configuration bundle
// (board, deck, hand, penalties, spawn rule) that parameterizes one puzzle
// session. Regulations load from YAML and are validated before the engine
// sees them; the engine never mutates a regulation.
package rules

import (
	"fmt"

	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/deck"
	"github.com/vovakirdan/cardpath/internal/hand"
)

// Spawn rule names.
const (
	SpawnFixed  = "fixed"  // piece starts at the configured point
	SpawnChoice = "choice" // player picks the start cell after seeing the preview
)

// Spawn describes where the piece starts.
type Spawn struct {
	Rule string `yaml:"rule"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Point returns the fixed spawn point.
func (s Spawn) Point() core.Point {
	return core.Point{X: s.X, Y: s.Y}
}

// CardWeight allows one card pattern and optionally overrides its weight.
// A zero weight means "use the default weight".
type CardWeight struct {
	ID     string `yaml:"id"`
	Weight int    `yaml:"weight,omitempty"`
}

// Suppression configures anti-streak draw weighting.
type Suppression struct {
	Enabled     bool `yaml:"enabled"`
	Cooldown    int  `yaml:"cooldown"`
	NormalMult  int  `yaml:"normal_mult"`
	ReducedMult int  `yaml:"reduced_mult"`
}

// Penalties are the four configured penalty costs.
type Penalties struct {
	Deadlock int `yaml:"deadlock"`
	Redraw   int `yaml:"redraw"`
	Discard  int `yaml:"discard"`
	Revisit  int `yaml:"revisit"`
}

// Cell is a board coordinate in YAML form.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Point converts the cell to a core.Point.
func (c Cell) Point() core.Point {
	return core.Point{X: c.X, Y: c.Y}
}

// CellCount is a per-cell required-visit override.
type CellCount struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Count int `yaml:"count"`
}

// WarpPair links two cells; arriving at one relocates the piece to the other.
type WarpPair struct {
	A Cell `yaml:"a"`
	B Cell `yaml:"b"`
}

// Regulation is the full per-session configuration.
type Regulation struct {
	Stage string `yaml:"stage"`
	Title string `yaml:"title"`

	BoardSize int   `yaml:"board_size"`
	Spawn     Spawn `yaml:"spawn"`

	HandSize   int    `yaml:"hand_size"`
	PreviewLen int    `yaml:"preview_len"`
	Stacking   bool   `yaml:"stacking"`
	SortMode   string `yaml:"sort_mode,omitempty"` // "insertion" (default) or "direction"

	Cards         []CardWeight `yaml:"cards"`
	DefaultWeight int          `yaml:"default_weight"`
	Suppression   Suppression  `yaml:"suppression"`

	Penalties Penalties `yaml:"penalties"`

	RequiredVisits []CellCount `yaml:"required_visits,omitempty"`
	Impassable     []Cell      `yaml:"impassable,omitempty"`
	Toggle         []Cell      `yaml:"toggle,omitempty"`
	Shuffle        []Cell      `yaml:"shuffle,omitempty"`
	Warps          []WarpPair  `yaml:"warps,omitempty"`

	Seed int64 `yaml:"seed"`
}

// Validate checks the regulation against the engine's configuration
// contract. A regulation that fails validation must never reach the engine
// constructors.
func (r Regulation) Validate() error {
	if r.BoardSize <= 0 {
		return fmt.Errorf("rules: non-positive board size %d", r.BoardSize)
	}
	if r.HandSize < 1 {
		return fmt.Errorf("rules: hand size %d, need at least 1", r.HandSize)
	}
	if r.PreviewLen < 0 {
		return fmt.Errorf("rules: negative preview length %d", r.PreviewLen)
	}
	if len(r.Cards) == 0 {
		return fmt.Errorf("rules: empty allowed-card set")
	}

	total := 0
	for _, cw := range r.Cards {
		if _, ok := deck.Lookup(cw.ID); !ok {
			return fmt.Errorf("rules: unknown card %q", cw.ID)
		}
		if cw.Weight < 0 {
			return fmt.Errorf("rules: negative weight for card %q", cw.ID)
		}
		w := cw.Weight
		if w == 0 {
			w = r.DefaultWeight
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("rules: all card weights are zero")
	}

	if r.Suppression.Enabled {
		if r.Suppression.Cooldown < 1 {
			return fmt.Errorf("rules: suppression cooldown %d, need at least 1", r.Suppression.Cooldown)
		}
		if r.Suppression.NormalMult < 1 || r.Suppression.ReducedMult < 1 {
			return fmt.Errorf("rules: suppression multipliers must be positive")
		}
	}

	switch r.SortMode {
	case "", "insertion", "direction":
	default:
		return fmt.Errorf("rules: unknown sort mode %q", r.SortMode)
	}

	switch r.Spawn.Rule {
	case SpawnFixed:
		if !r.inBounds(r.Spawn.Point()) {
			return fmt.Errorf("rules: spawn %v outside %d×%d board", r.Spawn.Point(), r.BoardSize, r.BoardSize)
		}
		if r.ImpassableSet()[r.Spawn.Point()] {
			return fmt.Errorf("rules: spawn %v is impassable", r.Spawn.Point())
		}
	case SpawnChoice:
	default:
		return fmt.Errorf("rules: unknown spawn rule %q", r.Spawn.Rule)
	}

	if p := r.Penalties; p.Deadlock < 0 || p.Redraw < 0 || p.Discard < 0 || p.Revisit < 0 {
		return fmt.Errorf("rules: negative penalty cost")
	}

	for _, c := range r.RequiredVisits {
		if !r.inBounds(c.Point()) {
			return fmt.Errorf("rules: required-visit override %v out of bounds", c.Point())
		}
		if c.Count < 0 {
			return fmt.Errorf("rules: negative required-visit count at %v", c.Point())
		}
	}
	for _, group := range [][]Cell{r.Impassable, r.Toggle, r.Shuffle} {
		for _, c := range group {
			if !r.inBounds(c.Point()) {
				return fmt.Errorf("rules: tile mark %v out of bounds", c.Point())
			}
		}
	}

	seen := make(map[core.Point]bool)
	for _, w := range r.Warps {
		a, b := w.A.Point(), w.B.Point()
		if !r.inBounds(a) || !r.inBounds(b) {
			return fmt.Errorf("rules: warp pair %v-%v out of bounds", a, b)
		}
		if a == b {
			return fmt.Errorf("rules: warp pair %v links a cell to itself", a)
		}
		if seen[a] || seen[b] {
			return fmt.Errorf("rules: warp endpoint reused in pair %v-%v", a, b)
		}
		seen[a], seen[b] = true, true
	}

	return nil
}

func (c CellCount) Point() core.Point {
	return core.Point{X: c.X, Y: c.Y}
}

func (r Regulation) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < r.BoardSize && p.Y >= 0 && p.Y < r.BoardSize
}

// Patterns resolves the allowed-card IDs against the catalogue, preserving
// regulation order.
func (r Regulation) Patterns() []*deck.Pattern {
	out := make([]*deck.Pattern, 0, len(r.Cards))
	for _, cw := range r.Cards {
		if p, ok := deck.Lookup(cw.ID); ok {
			out = append(out, p)
		}
	}
	return out
}

// DeckConfig builds the deck configuration for this regulation.
func (r Regulation) DeckConfig() deck.Config {
	weights := make(map[string]int)
	for _, cw := range r.Cards {
		if cw.Weight > 0 {
			weights[cw.ID] = cw.Weight
		}
	}
	return deck.Config{
		Cards:         r.Patterns(),
		DefaultWeight: r.DefaultWeight,
		Weights:       weights,
		Suppression:   r.Suppression.Enabled,
		Cooldown:      r.Suppression.Cooldown,
		NormalMult:    r.Suppression.NormalMult,
		ReducedMult:   r.Suppression.ReducedMult,
		PreviewLen:    r.PreviewLen,
		Seed:          r.Seed,
	}
}

// HandConfig builds the hand configuration for this regulation.
func (r Regulation) HandConfig() hand.Config {
	sort := hand.SortNone
	if r.SortMode == "direction" {
		sort = hand.SortByDirection
	}
	return hand.Config{
		HandSize:         r.HandSize,
		Stacking:         r.Stacking,
		Sort:             sort,
		DistinctPatterns: len(r.Cards),
	}
}

// RequiredMap returns the per-point required-visit overrides.
func (r Regulation) RequiredMap() map[core.Point]int {
	if len(r.RequiredVisits) == 0 {
		return nil
	}
	m := make(map[core.Point]int, len(r.RequiredVisits))
	for _, c := range r.RequiredVisits {
		m[c.Point()] = c.Count
	}
	return m
}

// ImpassableSet returns the impassable cells as a set.
func (r Regulation) ImpassableSet() map[core.Point]bool {
	return cellSet(r.Impassable)
}

// ToggleSet returns the toggle-marked cells as a set.
func (r Regulation) ToggleSet() map[core.Point]bool {
	return cellSet(r.Toggle)
}

// ShuffleSet returns the hand-reshuffle cells as a set.
func (r Regulation) ShuffleSet() map[core.Point]bool {
	return cellSet(r.Shuffle)
}

// WarpMap returns the warp pairs as a symmetric point-to-partner map.
func (r Regulation) WarpMap() map[core.Point]core.Point {
	if len(r.Warps) == 0 {
		return nil
	}
	m := make(map[core.Point]core.Point, len(r.Warps)*2)
	for _, w := range r.Warps {
		m[w.A.Point()] = w.B.Point()
		m[w.B.Point()] = w.A.Point()
	}
	return m
}

func cellSet(cells []Cell) map[core.Point]bool {
	if len(cells) == 0 {
		return nil
	}
	m := make(map[core.Point]bool, len(cells))
	for _, c := range cells {
		m[c.Point()] = true
	}
	return m
}
