package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
)

// CustomData is the editor "customData" JSON format: extra properties,
// at-directives and pseudo selectors declared by a project.
type CustomData struct {
	Version        float64 `json:"version"`
	Properties     []Entry `json:"properties"`
	AtDirectives   []Entry `json:"atDirectives"`
	PseudoClasses  []Entry `json:"pseudoClasses"`
	PseudoElements []Entry `json:"pseudoElements"`
}

var _ Provider = (*CustomData)(nil)

// LoadCustomData reads one customData file.
func LoadCustomData(path string) (*CustomData, error) {
	// #nosec G304 -- path comes from project configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read custom data: %w", err)
	}
	var cd CustomData
	if err := json.Unmarshal(raw, &cd); err != nil {
		return nil, fmt.Errorf("parse custom data %s: %w", path, err)
	}
	return &cd, nil
}

func (cd *CustomData) ProvideProperties() []Entry { return cd.Properties }
func (cd *CustomData) ProvideAtDirectives() []Entry { return cd.AtDirectives }
func (cd *CustomData) ProvidePseudoClasses() []Entry { return cd.PseudoClasses }
func (cd *CustomData) ProvidePseudoElements() []Entry { return cd.PseudoElements }
