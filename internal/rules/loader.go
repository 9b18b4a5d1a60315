package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load resolves a stage regulation.
// Search order: customPath -> ~/.cardpath/stages/<id>.yaml ->
// ./stages/<id>.yaml -> built-in preset -> embedded default.
// The result is validated before being returned.
func Load(stageID, customPath string) (Regulation, error) {
	if customPath != "" {
		reg, err := loadFile(customPath)
		if err != nil {
			return Regulation{}, err
		}
		return validated(reg)
	}

	if userPath := userStagePath(stageID + ".yaml"); userPath != "" {
		if reg, err := loadFile(userPath); err == nil {
			return validated(reg)
		}
	}

	if reg, err := loadFile(filepath.Join("stages", stageID+".yaml")); err == nil {
		return validated(reg)
	}

	if StageExists(stageID) {
		reg, err := Stage(stageID)
		if err != nil {
			return Regulation{}, err
		}
		return validated(reg)
	}

	if stageID == "" || stageID == DefaultStageID {
		return validated(DefaultRegulation())
	}

	return Regulation{}, fmt.Errorf("rules: unknown stage %q", stageID)
}

func loadFile(path string) (Regulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Regulation{}, fmt.Errorf("rules: cannot read stage file %s: %w", path, err)
	}
	var reg Regulation
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return Regulation{}, fmt.Errorf("rules: cannot parse stage file %s: %w", path, err)
	}
	return reg, nil
}

func validated(reg Regulation) (Regulation, error) {
	if err := reg.Validate(); err != nil {
		return Regulation{}, err
	}
	return reg, nil
}

// userStagePath returns the path to a user stage file, or empty if home is
// unavailable.
func userStagePath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cardpath", "stages", filename)
}
