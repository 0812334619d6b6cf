package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// --- Category ---

// Category is the closed set of card kinds. Tribute and position rules are
// keyed on it; there are no per-kind card types.
type Category int

const (
	CategoryMonster Category = iota
	CategorySpell
	CategoryTrap
	CategorySkill
	CategoryToken
)

func (c Category) String() string {
	switch c {
	case CategoryMonster:
		return "Monster"
	case CategorySpell:
		return "Spell"
	case CategoryTrap:
		return "Trap"
	case CategorySkill:
		return "Skill"
	case CategoryToken:
		return "Token"
	default:
		return "Unknown"
	}
}

// ErrUnknownCategory is returned when a raw card type cannot be normalized.
var ErrUnknownCategory = errors.New("unknown card type")

// ParseCategory normalizes a raw dataset card type ("Effect Monster",
// "Spell Card", "Token", ...) into a Category.
func ParseCategory(raw string) (Category, error) {
	t := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(t, "monster") {
		return CategoryMonster, nil
	}
	switch t {
	case "spell card", "spell":
		return CategorySpell, nil
	case "trap card", "trap":
		return CategoryTrap, nil
	case "skill card", "skill":
		return CategorySkill, nil
	case "token":
		return CategoryToken, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// --- Card definition (immutable once loaded) ---

type Card struct {
	ID           int64
	Name         string
	Category     Category
	Archetype    string
	Description  string
	ATK          int
	DEF          int
	Level        int
	EffectPoints int
	ImageURL     string

	// NA is the default intrinsic value, computed once when the catalog is
	// built. Gameplay never writes to it.
	NA float64
}

func (c *Card) String() string {
	return c.Name
}

// IsMonster reports whether the card is a Monster.
func (c *Card) IsMonster() bool {
	return c.Category == CategoryMonster
}

// HasArchetype reports whether the card can take part in archetype synergy.
func (c *Card) HasArchetype() bool {
	a := strings.ToLower(strings.TrimSpace(c.Archetype))
	return a != "" && a != "none" && a != "empty" && a != "nan"
}

// SameArchetype reports whether both cards carry the same usable archetype.
func (c *Card) SameArchetype(other *Card) bool {
	if !c.HasArchetype() || !other.HasArchetype() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.Archetype), strings.TrimSpace(other.Archetype))
}

// TributesRequired returns the number of field cards a Monster consumes when
// played. Non-Monsters never need tributes.
func (c *Card) TributesRequired() int {
	if !c.IsMonster() {
		return 0
	}
	switch {
	case c.Level >= 7:
		return 2
	case c.Level >= 5:
		return 1
	default:
		return 0
	}
}

// Targeting reports whether a Spell or Trap removes an enemy card when it
// resolves (its text mentions destroy or banish).
func (c *Card) Targeting() bool {
	if c.Category != CategorySpell && c.Category != CategoryTrap {
		return false
	}
	return hasKeyword(c.Description, "destroy") || hasKeyword(c.Description, "banish")
}

// ComputeNA returns the intrinsic value of a card: attack/100 + 12/level + EP
// for Monsters (a level below 1 counts as 1), EP for everything else.
func ComputeNA(c *Card) float64 {
	if !c.IsMonster() {
		return float64(c.EffectPoints)
	}
	level := c.Level
	if level < 1 {
		level = 1
	}
	return float64(c.ATK)/100 + 12/float64(level) + float64(c.EffectPoints)
}
