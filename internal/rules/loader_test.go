package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltinStage(t *testing.T) {
	reg, err := Load("crossing", "")
	if err != nil {
		t.Fatalf("Load(crossing): %v", err)
	}
	if reg.Stage != "crossing" || reg.BoardSize != 7 {
		t.Errorf("loaded stage = %q size %d, want crossing/7", reg.Stage, reg.BoardSize)
	}
}

func TestLoadEmptyStageFallsBackToDefault(t *testing.T) {
	reg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if reg.Stage != DefaultStageID {
		t.Errorf("default load = %q, want %q", reg.Stage, DefaultStageID)
	}
}

func TestLoadUnknownStageFails(t *testing.T) {
	if _, err := Load("no-such-stage", ""); err == nil {
		t.Error("Load of unknown stage should fail")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	yaml := `
stage: tiny
title: Tiny
board_size: 3
spawn:
  rule: fixed
  x: 1
  y: 1
hand_size: 2
preview_len: 1
cards:
  - id: up1
  - id: down1
default_weight: 1
penalties:
  deadlock: 1
seed: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := Load("ignored", path)
	if err != nil {
		t.Fatalf("Load custom: %v", err)
	}
	if reg.Stage != "tiny" || reg.BoardSize != 3 || reg.HandSize != 2 {
		t.Errorf("custom stage parsed wrong: %+v", reg)
	}
	if reg.Penalties.Deadlock != 1 || reg.Penalties.Revisit != 0 {
		t.Errorf("penalties parsed wrong: %+v", reg.Penalties)
	}
}

func TestLoadCustomPathInvalidRegulation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("stage: broken\nboard_size: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("", path); err == nil {
		t.Error("loading an invalid regulation should fail")
	}
}
