package rules

// Built-in stage presets. Custom stages load from YAML via Load; these
// cover the tile and card variety the engine supports.

func init() {
	RegisterStage("classic", Classic)
	RegisterStage("crossing", Crossing)
	RegisterStage("twingate", Twingate)
	RegisterStage("shrine", Shrine)
}

// Classic is the introductory 5×5 stage: fixed center spawn, single-step
// and jump cards, stacking on.
func Classic() Regulation {
	return Regulation{
		Stage:     "classic",
		Title:     "Classic Crossing",
		BoardSize: 5,
		Spawn:     Spawn{Rule: SpawnFixed, X: 2, Y: 2},

		HandSize:   4,
		PreviewLen: 3,
		Stacking:   true,

		Cards: []CardWeight{
			{ID: "up1"}, {ID: "down1"}, {ID: "left1"}, {ID: "right1"},
			{ID: "up2", Weight: 2}, {ID: "down2", Weight: 2},
			{ID: "left2", Weight: 2}, {ID: "right2", Weight: 2},
		},
		DefaultWeight: 4,
		Suppression: Suppression{
			Enabled:     true,
			Cooldown:    2,
			NormalMult:  3,
			ReducedMult: 1,
		},

		Penalties: Penalties{Deadlock: 3, Redraw: 2, Discard: 1, Revisit: 1},
		Seed:      1,
	}
}

// Crossing is a 7×7 stage with an impassable wall, ray cards, and
// direction-sorted slots.
func Crossing() Regulation {
	return Regulation{
		Stage:     "crossing",
		Title:     "Walled Crossing",
		BoardSize: 7,
		Spawn:     Spawn{Rule: SpawnFixed, X: 0, Y: 0},

		HandSize:   5,
		PreviewLen: 3,
		Stacking:   true,
		SortMode:   "direction",

		Cards: []CardWeight{
			{ID: "up1"}, {ID: "down1"}, {ID: "left1"}, {ID: "right1"},
			{ID: "ray-up", Weight: 2}, {ID: "ray-down", Weight: 2},
			{ID: "ray-left", Weight: 2}, {ID: "ray-right", Weight: 2},
			{ID: "diag1", Weight: 3},
		},
		DefaultWeight: 5,
		Suppression: Suppression{
			Enabled:     true,
			Cooldown:    3,
			NormalMult:  4,
			ReducedMult: 1,
		},

		Penalties: Penalties{Deadlock: 4, Redraw: 2, Discard: 1, Revisit: 1},
		Impassable: []Cell{
			{X: 3, Y: 2}, {X: 3, Y: 3}, {X: 3, Y: 4},
		},
		Seed: 7,
	}
}

// Twingate is a 6×6 stage with two warp pairs, toggle tiles, and a
// player-chosen spawn.
func Twingate() Regulation {
	return Regulation{
		Stage:     "twingate",
		Title:     "Twin Gates",
		BoardSize: 6,
		Spawn:     Spawn{Rule: SpawnChoice},

		HandSize:   4,
		PreviewLen: 4,
		Stacking:   true,

		Cards: []CardWeight{
			{ID: "up1"}, {ID: "down1"}, {ID: "left1"}, {ID: "right1"},
			{ID: "orth2", Weight: 3}, {ID: "warp", Weight: 1},
		},
		DefaultWeight: 5,
		Suppression: Suppression{
			Enabled:     true,
			Cooldown:    2,
			NormalMult:  3,
			ReducedMult: 1,
		},

		Penalties: Penalties{Deadlock: 3, Redraw: 2, Discard: 0, Revisit: 1},
		Toggle: []Cell{
			{X: 2, Y: 2}, {X: 3, Y: 3},
		},
		Warps: []WarpPair{
			{A: Cell{X: 0, Y: 5}, B: Cell{X: 5, Y: 0}},
			{A: Cell{X: 0, Y: 0}, B: Cell{X: 5, Y: 5}},
		},
		Seed: 21,
	}
}

// Shrine is a 5×5 stage with multi-visit shrines and a reshuffle tile.
func Shrine() Regulation {
	return Regulation{
		Stage:     "shrine",
		Title:     "Triple Shrine",
		BoardSize: 5,
		Spawn:     Spawn{Rule: SpawnFixed, X: 2, Y: 0},

		HandSize:   4,
		PreviewLen: 3,
		Stacking:   true,

		Cards: []CardWeight{
			{ID: "up1"}, {ID: "down1"}, {ID: "left1"}, {ID: "right1"},
			{ID: "diag1", Weight: 2},
		},
		DefaultWeight: 4,
		Suppression: Suppression{
			Enabled:     true,
			Cooldown:    2,
			NormalMult:  3,
			ReducedMult: 1,
		},

		Penalties: Penalties{Deadlock: 3, Redraw: 2, Discard: 1, Revisit: 0},
		RequiredVisits: []CellCount{
			{X: 0, Y: 4, Count: 2}, {X: 4, Y: 4, Count: 2}, {X: 2, Y: 4, Count: 3},
		},
		Shuffle: []Cell{
			{X: 2, Y: 2},
		},
		Seed: 13,
	}
}
