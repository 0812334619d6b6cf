package advisor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioFile represents the top-level YAML structure.
type ScenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is a named board to ask the engine about.
type Scenario struct {
	Name  string      `yaml:"name" json:"name"`
	Mode  string      `yaml:"mode,omitempty" json:"mode,omitempty"`
	Hand  []CardEntry `yaml:"hand" json:"hand"`
	Field []CardEntry `yaml:"field,omitempty" json:"field,omitempty"`
	Enemy []CardEntry `yaml:"enemy,omitempty" json:"enemy,omitempty"`
}

// CardEntry represents a card and its count. A missing count means one.
type CardEntry struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count,omitempty" json:"count,omitempty"`
}

// Request expands the scenario into a request.
func (s Scenario) Request() Request {
	return Request{
		InitialHand: expand(s.Hand),
		UserField:   expand(s.Field),
		EnemyCards:  expand(s.Enemy),
		Mode:        s.Mode,
	}
}

func expand(entries []CardEntry) []string {
	var names []string
	for _, entry := range entries {
		count := entry.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			names = append(names, entry.Name)
		}
	}
	return names
}

// ParseScenarios decodes scenario YAML.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	return sf.Scenarios, nil
}

// ParseScenarioFile reads every scenario in a YAML file.
func ParseScenarioFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenarios(data)
}

// ScenarioByNumber returns the Nth scenario (1-indexed) from the file.
func ScenarioByNumber(path string, n int) (Scenario, error) {
	scenarios, err := ParseScenarioFile(path)
	if err != nil {
		return Scenario{}, err
	}
	if n < 1 || n > len(scenarios) {
		return Scenario{}, fmt.Errorf("scenario %d not found (have %d scenarios)", n, len(scenarios))
	}
	return scenarios[n-1], nil
}
