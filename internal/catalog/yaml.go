package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CardFile represents the top-level YAML catalog structure.
type CardFile struct {
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is a single card in a YAML catalog.
type CardEntry struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Archetype string `yaml:"archetype"`
	Desc      string `yaml:"desc"`
	ATK       int    `yaml:"atk"`
	DEF       int    `yaml:"def"`
	Level     int    `yaml:"level"`
	Image     string `yaml:"image"`
}

// LoadYAMLFile reads a YAML catalog from path.
func LoadYAMLFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

// ParseYAML builds a catalog from YAML bytes. Effect points always come from
// the desc text.
func ParseYAML(data []byte) (*Catalog, error) {
	var cf CardFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cards := make([]*Card, 0, len(cf.Cards))
	for i, e := range cf.Cards {
		category, err := ParseCategory(e.Type)
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i+1, e.Name, err)
		}
		cards = append(cards, &Card{
			ID:           e.ID,
			Name:         e.Name,
			Category:     category,
			Archetype:    cleanArchetype(e.Archetype),
			Description:  e.Desc,
			ATK:          e.ATK,
			DEF:          e.DEF,
			Level:        e.Level,
			ImageURL:     e.Image,
			EffectPoints: EffectPoints(e.Desc),
		})
	}
	return New(cards)
}
