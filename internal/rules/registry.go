package rules

import (
	"fmt"
	"sort"
	"sync"
)

// StageInfo is display metadata for a registered stage.
type StageInfo struct {
	Stage     string
	Title     string
	BoardSize int
}

// Factory produces a fresh copy of a stage regulation.
type Factory func() Regulation

var (
	stages   = make(map[string]Factory)
	stagesMu sync.RWMutex
)

// RegisterStage adds a built-in stage preset. Called from init(); panics on
// a duplicate ID or a preset that fails validation.
func RegisterStage(id string, f Factory) {
	stagesMu.Lock()
	defer stagesMu.Unlock()

	if _, exists := stages[id]; exists {
		panic(fmt.Sprintf("rules: stage %q already registered", id))
	}
	reg := f()
	if err := reg.Validate(); err != nil {
		panic(fmt.Sprintf("rules: stage %q is invalid: %v", id, err))
	}
	stages[id] = f
}

// Stages returns metadata for all registered stages, sorted by ID.
func Stages() []StageInfo {
	stagesMu.RLock()
	defer stagesMu.RUnlock()

	out := make([]StageInfo, 0, len(stages))
	for id, f := range stages {
		reg := f()
		out = append(out, StageInfo{Stage: id, Title: reg.Title, BoardSize: reg.BoardSize})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })
	return out
}

// Stage returns a fresh regulation for the given stage ID.
func Stage(id string) (Regulation, error) {
	stagesMu.RLock()
	defer stagesMu.RUnlock()

	f, ok := stages[id]
	if !ok {
		return Regulation{}, fmt.Errorf("rules: unknown stage %q", id)
	}
	return f(), nil
}

// StageExists checks whether a stage preset is registered.
func StageExists(id string) bool {
	stagesMu.RLock()
	defer stagesMu.RUnlock()

	_, ok := stages[id]
	return ok
}
