package deck

import (
	"testing"

	"github.com/vovakirdan/cardpath/internal/core"
)

// testPatterns builds a small standalone pattern set so tests don't depend
// on the global catalogue ordering.
func testPatterns() []*Pattern {
	return []*Pattern{
		{ID: "a", Kind: KindFixed, Vector: core.Up, Ord: 0},
		{ID: "b", Kind: KindFixed, Vector: core.Down, Ord: 1},
		{ID: "c", Kind: KindFixed, Vector: core.Left, Ord: 2},
	}
}

func TestDrawDeterministicAfterReset(t *testing.T) {
	cfg := Config{
		Cards:         testPatterns(),
		DefaultWeight: 1,
		Suppression:   true,
		Cooldown:      2,
		NormalMult:    4,
		ReducedMult:   1,
		PreviewLen:    3,
		Seed:          42,
	}
	d := New(cfg)

	first := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		c := d.TakeNext()
		first = append(first, c.Pattern.ID)
	}

	d.Reset()
	for i := 0; i < 50; i++ {
		c := d.TakeNext()
		if c.Pattern.ID != first[i] {
			t.Fatalf("draw %d after reset = %s, want %s", i, c.Pattern.ID, first[i])
		}
	}
}

func TestSerialsUniqueAndIncreasing(t *testing.T) {
	d := New(Config{Cards: testPatterns(), DefaultWeight: 1, Seed: 1})

	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 20; i++ {
		c := d.Draw()
		if seen[c.Serial] {
			t.Fatalf("duplicate serial %d", c.Serial)
		}
		if c.Serial <= last {
			t.Fatalf("serial %d not increasing past %d", c.Serial, last)
		}
		seen[c.Serial] = true
		last = c.Serial
	}
}

func TestSuppressionReducesRepeats(t *testing.T) {
	base := Config{
		Cards:         testPatterns(),
		DefaultWeight: 1,
		Cooldown:      1,
		NormalMult:    8,
		ReducedMult:   1,
		Seed:          7,
	}

	repeats := func(suppression bool) int {
		cfg := base
		cfg.Suppression = suppression
		d := New(cfg)
		count := 0
		prev := ""
		for i := 0; i < 3000; i++ {
			id := d.Draw().Pattern.ID
			if id == prev {
				count++
			}
			prev = id
		}
		return count
	}

	with := repeats(true)
	without := repeats(false)

	// With 3 equal-weight cards, repeats without suppression run near 1/3 of
	// draws; an 8:1 weight ratio must cut that down sharply.
	if with >= without/2 {
		t.Errorf("suppressed repeats = %d, unsuppressed = %d; want a clear reduction", with, without)
	}
}

func TestSuppressionCooldownExpires(t *testing.T) {
	cfg := Config{
		Cards:         testPatterns(),
		DefaultWeight: 1,
		Suppression:   true,
		Cooldown:      2,
		NormalMult:    4,
		ReducedMult:   1,
		Seed:          3,
	}
	d := New(cfg)

	first := d.Draw().Pattern
	if got := d.weightOf(first); got != cfg.DefaultWeight*cfg.ReducedMult {
		t.Errorf("weight right after draw = %d, want reduced %d", got, cfg.DefaultWeight*cfg.ReducedMult)
	}

	// Two more draws exhaust the cooldown regardless of what they produce.
	d.Draw()
	d.Draw()
	if d.cooldowns[first.ID] > 0 {
		// The card may have been redrawn, refreshing its cooldown.
		t.Skipf("card %s redrawn during cooldown window", first.ID)
	}
	if got := d.weightOf(first); got != cfg.DefaultWeight*cfg.NormalMult {
		t.Errorf("weight after cooldown = %d, want normal %d", got, cfg.DefaultWeight*cfg.NormalMult)
	}
}

func TestWeightOverridesSteerDraws(t *testing.T) {
	cfg := Config{
		Cards:         testPatterns(),
		DefaultWeight: 1,
		Weights:       map[string]int{"b": 50},
		Seed:          11,
	}
	d := New(cfg)

	counts := make(map[string]int)
	for i := 0; i < 520; i++ {
		counts[d.Draw().Pattern.ID]++
	}

	if counts["b"] <= counts["a"]*10 || counts["b"] <= counts["c"]*10 {
		t.Errorf("overridden card drawn %d times vs a=%d c=%d; override not dominating", counts["b"], counts["a"], counts["c"])
	}
}

func TestPreviewQueueStaysFull(t *testing.T) {
	d := New(Config{Cards: testPatterns(), DefaultWeight: 1, PreviewLen: 4, Seed: 5})

	if got := len(d.Preview()); got != 4 {
		t.Fatalf("initial preview length = %d, want 4", got)
	}

	head := d.Preview()[0]
	taken := d.TakeNext()
	if taken.Serial != head.Serial {
		t.Errorf("TakeNext returned serial %d, want preview head %d", taken.Serial, head.Serial)
	}
	if got := len(d.Preview()); got != 4 {
		t.Errorf("preview length after TakeNext = %d, want 4", got)
	}
}

func TestDiscardPreviewDrawsFreshCards(t *testing.T) {
	d := New(Config{Cards: testPatterns(), DefaultWeight: 1, PreviewLen: 3, Seed: 9})

	before := d.Preview()
	d.DiscardPreview()
	after := d.Preview()

	if len(after) != 3 {
		t.Fatalf("preview length after discard = %d, want 3", len(after))
	}
	for i := range after {
		if after[i].Serial == before[i].Serial {
			t.Errorf("preview slot %d still holds discarded card %d", i, before[i].Serial)
		}
	}
}

func TestNewPanicsOnBrokenConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty card set", Config{DefaultWeight: 1}},
		{"all-zero weights", Config{Cards: testPatterns(), DefaultWeight: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%s) should panic", tt.name)
				}
			}()
			New(tt.cfg)
		})
	}
}

func TestCataloguePrimaryVectors(t *testing.T) {
	tests := []struct {
		id   string
		want core.Vector
	}{
		{"up1", core.Up},
		{"right2", core.Vector{DX: 2, DY: 0}},
		{"diag1", core.Vector{DX: 1, DY: 1}},
		{"ray-left", core.Left},
		{"warp", core.Vector{}},
	}

	for _, tt := range tests {
		p, ok := Lookup(tt.id)
		if !ok {
			t.Fatalf("catalogue missing %q", tt.id)
		}
		if got := p.Primary(); got != tt.want {
			t.Errorf("%s.Primary() = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestCatalogueOrdinalsUnique(t *testing.T) {
	seen := make(map[int]string)
	for _, p := range Catalogue() {
		if other, dup := seen[p.Ord]; dup {
			t.Errorf("patterns %s and %s share ordinal %d", other, p.ID, p.Ord)
		}
		seen[p.Ord] = p.ID
	}
}
