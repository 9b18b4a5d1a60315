package rules

import (
	"strings"
	"testing"

	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/hand"
)

func TestBuiltinStagesValidate(t *testing.T) {
	for _, info := range Stages() {
		t.Run(info.Stage, func(t *testing.T) {
			reg, err := Stage(info.Stage)
			if err != nil {
				t.Fatalf("Stage(%q): %v", info.Stage, err)
			}
			if err := reg.Validate(); err != nil {
				t.Errorf("stage %q fails validation: %v", info.Stage, err)
			}
			if reg.Stage != info.Stage {
				t.Errorf("stage field %q does not match registry ID %q", reg.Stage, info.Stage)
			}
			if info.BoardSize != reg.BoardSize || info.Title != reg.Title {
				t.Errorf("Stages() metadata %+v does not match regulation %q/%d", info, reg.Title, reg.BoardSize)
			}
		})
	}
}

func TestValidateRejectsBrokenRegulations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Regulation)
		wantErr string
	}{
		{"zero board size", func(r *Regulation) { r.BoardSize = 0 }, "board size"},
		{"zero hand size", func(r *Regulation) { r.HandSize = 0 }, "hand size"},
		{"empty card set", func(r *Regulation) { r.Cards = nil }, "empty allowed-card set"},
		{"unknown card", func(r *Regulation) { r.Cards = []CardWeight{{ID: "nope"}} }, "unknown card"},
		{"all-zero weights", func(r *Regulation) {
			r.DefaultWeight = 0
			for i := range r.Cards {
				r.Cards[i].Weight = 0
			}
		}, "weights are zero"},
		{"spawn off board", func(r *Regulation) { r.Spawn = Spawn{Rule: SpawnFixed, X: 9, Y: 9} }, "outside"},
		{"spawn on wall", func(r *Regulation) {
			r.Impassable = []Cell{{X: r.Spawn.X, Y: r.Spawn.Y}}
		}, "impassable"},
		{"bad spawn rule", func(r *Regulation) { r.Spawn.Rule = "random" }, "spawn rule"},
		{"bad sort mode", func(r *Regulation) { r.SortMode = "shuffled" }, "sort mode"},
		{"negative penalty", func(r *Regulation) { r.Penalties.Deadlock = -1 }, "negative penalty"},
		{"self warp", func(r *Regulation) {
			r.Warps = []WarpPair{{A: Cell{X: 1, Y: 1}, B: Cell{X: 1, Y: 1}}}
		}, "itself"},
		{"reused warp endpoint", func(r *Regulation) {
			r.Warps = []WarpPair{
				{A: Cell{X: 0, Y: 0}, B: Cell{X: 1, Y: 1}},
				{A: Cell{X: 1, Y: 1}, B: Cell{X: 2, Y: 2}},
			}
		}, "reused"},
		{"suppression without cooldown", func(r *Regulation) {
			r.Suppression = Suppression{Enabled: true, NormalMult: 3, ReducedMult: 1}
		}, "cooldown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := Classic()
			tt.mutate(&reg)
			err := reg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDeckConfigCarriesOverrides(t *testing.T) {
	reg := Classic()
	cfg := reg.DeckConfig()

	if len(cfg.Cards) != len(reg.Cards) {
		t.Fatalf("deck config has %d cards, want %d", len(cfg.Cards), len(reg.Cards))
	}
	if cfg.Weights["up2"] != 2 {
		t.Errorf("weight override for up2 = %d, want 2", cfg.Weights["up2"])
	}
	if _, overridden := cfg.Weights["up1"]; overridden {
		t.Error("up1 should fall back to the default weight")
	}
	if !cfg.Suppression || cfg.Cooldown != 2 {
		t.Errorf("suppression not carried: %+v", cfg)
	}
}

func TestHandConfigSortMode(t *testing.T) {
	reg := Crossing()
	cfg := reg.HandConfig()

	if cfg.Sort != hand.SortByDirection {
		t.Errorf("sort mode = %v, want SortByDirection", cfg.Sort)
	}
	if cfg.DistinctPatterns != len(reg.Cards) {
		t.Errorf("distinct patterns = %d, want %d", cfg.DistinctPatterns, len(reg.Cards))
	}
}

func TestWarpMapIsSymmetric(t *testing.T) {
	reg := Twingate()
	warps := reg.WarpMap()

	for from, to := range warps {
		if back, ok := warps[to]; !ok || back != from {
			t.Errorf("warp %v -> %v not symmetric", from, to)
		}
	}
	if len(warps) != len(reg.Warps)*2 {
		t.Errorf("warp map has %d entries, want %d", len(warps), len(reg.Warps)*2)
	}
}

func TestRequiredMap(t *testing.T) {
	reg := Shrine()
	m := reg.RequiredMap()

	if got := m[core.Point{X: 2, Y: 4}]; got != 3 {
		t.Errorf("required visits at (2,4) = %d, want 3", got)
	}
}

func TestRegisterStagePanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate stage should panic")
		}
	}()
	RegisterStage("classic", Classic)
}

func TestDefaultRegulationParsesEmbeddedYAML(t *testing.T) {
	reg := DefaultRegulation()

	if reg.Stage != DefaultStageID {
		t.Errorf("default stage = %q, want %q", reg.Stage, DefaultStageID)
	}
	if err := reg.Validate(); err != nil {
		t.Errorf("embedded default fails validation: %v", err)
	}
	if reg.BoardSize != 5 || reg.HandSize != 4 {
		t.Errorf("unexpected embedded values: size=%d hand=%d", reg.BoardSize, reg.HandSize)
	}
}
