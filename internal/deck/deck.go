package deck

import (
	"fmt"
	"math/rand"
)

// Config parameterizes one deck for one session. It comes from the stage
// regulation and is validated there; New panics on a config that slipped
// through validation, since drawing from it could never succeed.
type Config struct {
	// Cards is the allowed pattern set in fixed enumeration order.
	Cards []*Pattern

	// DefaultWeight applies to cards without an override. Must leave the
	// total weight positive.
	DefaultWeight int

	// Weights overrides the base weight per pattern ID.
	Weights map[string]int

	// Suppression enables anti-streak weighting: a just-drawn card keeps a
	// reduced weight for Cooldown subsequent draws.
	Suppression bool
	Cooldown    int
	NormalMult  int
	ReducedMult int

	// PreviewLen is the size of the look-ahead queue.
	PreviewLen int

	// Seed initializes the deterministic random source.
	Seed int64
}

// Deck is an infinite draw source producing cards according to the weight
// profile. It owns the only random source in the engine; the same seed and
// call sequence always reproduce the same cards.
type Deck struct {
	cfg        Config
	rng        *rand.Rand
	cooldowns  map[string]int
	preview    []*DealtCard
	nextSerial int64
}

// New creates a deck and fills its preview queue.
func New(cfg Config) *Deck {
	if len(cfg.Cards) == 0 {
		panic("deck: empty card set")
	}
	if cfg.DefaultWeight < 0 {
		panic("deck: negative default weight")
	}

	d := &Deck{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		cooldowns: make(map[string]int),
	}
	if d.totalWeight() <= 0 {
		panic("deck: total weight is zero")
	}
	d.fillPreview()
	return d
}

// baseWeight returns the configured weight of p before suppression scaling.
func (d *Deck) baseWeight(p *Pattern) int {
	if w, ok := d.cfg.Weights[p.ID]; ok {
		return w
	}
	return d.cfg.DefaultWeight
}

// weightOf returns the effective draw weight of p, applying the suppression
// multiplier when the card is cooling down. Without suppression the base
// weights are used as-is.
func (d *Deck) weightOf(p *Pattern) int {
	w := d.baseWeight(p)
	if !d.cfg.Suppression {
		return w
	}
	if d.cooldowns[p.ID] > 0 {
		return w * d.cfg.ReducedMult
	}
	return w * d.cfg.NormalMult
}

func (d *Deck) totalWeight() int {
	total := 0
	for _, p := range d.cfg.Cards {
		total += d.weightOf(p)
	}
	return total
}

// Draw produces the next card from the weighted lottery. The winner is the
// first card, in enumeration order, whose cumulative weight exceeds a
// uniform draw in [0, total). Ties always break toward earlier cards, so
// the process is fully determined by the random source's state.
func (d *Deck) Draw() *DealtCard {
	total := d.totalWeight()
	if total <= 0 {
		// Unreachable for a validated config; weights never change sign.
		panic("deck: total weight is zero")
	}

	n := d.rng.Intn(total)
	var chosen *Pattern
	cum := 0
	for _, p := range d.cfg.Cards {
		cum += d.weightOf(p)
		if n < cum {
			chosen = p
			break
		}
	}

	if d.cfg.Suppression {
		for id, c := range d.cooldowns {
			if c > 0 {
				d.cooldowns[id] = c - 1
			}
		}
		d.cooldowns[chosen.ID] = d.cfg.Cooldown
	}

	d.nextSerial++
	return &DealtCard{Serial: d.nextSerial, Pattern: chosen}
}

// TakeNext returns the next card for the hand, consuming the preview queue
// first and topping it back up so the look-ahead stays full.
func (d *Deck) TakeNext() *DealtCard {
	if len(d.preview) == 0 {
		return d.Draw()
	}
	c := d.preview[0]
	d.preview = d.preview[1:]
	d.fillPreview()
	return c
}

// Preview returns a copy of the look-ahead queue, oldest first.
func (d *Deck) Preview() []*DealtCard {
	out := make([]*DealtCard, len(d.preview))
	copy(out, d.preview)
	return out
}

// DiscardPreview throws away the queued cards and draws a fresh look-ahead.
// Used by the full hand redraw, which discards the preview along with the
// hand.
func (d *Deck) DiscardPreview() {
	d.preview = d.preview[:0]
	d.fillPreview()
}

func (d *Deck) fillPreview() {
	for len(d.preview) < d.cfg.PreviewLen {
		d.preview = append(d.preview, d.Draw())
	}
}

// Reset restores the random source to its initial seed and clears the
// suppression and preview state. Drawing the same number of cards after a
// reset reproduces the exact same sequence.
func (d *Deck) Reset() {
	d.rng = rand.New(rand.NewSource(d.cfg.Seed))
	d.cooldowns = make(map[string]int)
	d.preview = d.preview[:0]
	d.nextSerial = 0
	d.fillPreview()
}

// String summarizes the deck configuration, mostly for logs.
func (d *Deck) String() string {
	return fmt.Sprintf("deck{cards=%d preview=%d suppression=%v seed=%d}",
		len(d.cfg.Cards), d.cfg.PreviewLen, d.cfg.Suppression, d.cfg.Seed)
}
