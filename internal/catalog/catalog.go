package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	ErrDuplicateName = errors.New("duplicate card name")
	ErrInvalidRecord = errors.New("invalid card record")
)

// Catalog is the read-only set of known cards. It is safe for concurrent use
// once built because nothing mutates it after New returns.
type Catalog struct {
	cards  []*Card
	byName map[string]*Card
}

// New builds a catalog from card definitions, computing each card's default
// NA. Names must be non-empty and unique ignoring case.
func New(cards []*Card) (*Catalog, error) {
	c := &Catalog{
		cards:  make([]*Card, 0, len(cards)),
		byName: make(map[string]*Card, len(cards)),
	}
	for i, card := range cards {
		if card == nil || strings.TrimSpace(card.Name) == "" {
			return nil, fmt.Errorf("%w: card %d has no name", ErrInvalidRecord, i+1)
		}
		key := nameKey(card.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, card.Name)
		}
		card.NA = ComputeNA(card)
		c.byName[key] = card
		c.cards = append(c.cards, card)
	}
	return c, nil
}

// Load reads a catalog from a CSV or YAML file, chosen by extension.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSVFile(path)
	case ".yaml", ".yml":
		return LoadYAMLFile(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a card by name, ignoring case.
func (c *Catalog) Lookup(name string) (*Card, bool) {
	card, ok := c.byName[nameKey(name)]
	return card, ok
}

// All returns every card in load order.
func (c *Catalog) All() []*Card {
	return slices.Clone(c.cards)
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Search returns the names containing query, ignoring case. An empty query
// returns every name.
func (c *Catalog) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	names := []string{}
	for _, card := range c.cards {
		if q == "" || strings.Contains(strings.ToLower(card.Name), q) {
			names = append(names, card.Name)
		}
	}
	return names
}

// Resolve maps names to cards, silently dropping names the catalog does not
// know. Order and duplicates are preserved.
func (c *Catalog) Resolve(names []string) []*Card {
	var cards []*Card
	for _, name := range names {
		if card, ok := c.Lookup(name); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// Archetypes returns the sorted set of usable archetype tags.
func (c *Catalog) Archetypes() []string {
	var tags []string
	for _, card := range c.cards {
		if card.HasArchetype() {
			tags = append(tags, strings.TrimSpace(card.Archetype))
		}
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}
