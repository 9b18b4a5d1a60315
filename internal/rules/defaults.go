package rules

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

// DefaultStageID is the stage played when none is specified.
const DefaultStageID = "classic"

//go:embed defaults/classic.yaml
var defaultStageYAML []byte

// DefaultRegulation returns the embedded default stage, falling back to the
// built-in preset if the embedded file cannot be parsed.
func DefaultRegulation() Regulation {
	var reg Regulation
	if err := yaml.Unmarshal(defaultStageYAML, &reg); err != nil {
		return Classic()
	}
	return reg
}
