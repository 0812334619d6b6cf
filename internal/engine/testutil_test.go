package engine

import (
	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
)

var nextCardID int64 = 1000

func newCard(c *catalog.Card) *catalog.Card {
	nextCardID++
	c.ID = nextCardID
	c.NA = catalog.ComputeNA(c)
	return c
}

// monster builds a Monster card with NA computed the way the catalog does.
func monster(name string, atk, def, level int, archetype string) *catalog.Card {
	return newCard(&catalog.Card{
		Name:      name,
		Category:  catalog.CategoryMonster,
		ATK:       atk,
		DEF:       def,
		Level:     level,
		Archetype: archetype,
	})
}

// spell builds a Spell card whose NA is its effect points.
func spell(name string, ep int, archetype string) *catalog.Card {
	return newCard(&catalog.Card{
		Name:         name,
		Category:     catalog.CategorySpell,
		EffectPoints: ep,
		Archetype:    archetype,
	})
}

// trap builds a Trap card with effect text.
func trap(name string, ep int, desc string) *catalog.Card {
	return newCard(&catalog.Card{
		Name:         name,
		Category:     catalog.CategoryTrap,
		EffectPoints: ep,
		Description:  desc,
	})
}

func cards(cs ...*catalog.Card) []*catalog.Card {
	return cs
}

// playedNames returns the card names of the non-terminal steps in order.
func playedNames(steps []Step) []string {
	var out []string
	for _, s := range steps {
		if !s.IsTerminal() {
			out = append(out, s.PlayedCard)
		}
	}
	return out
}

// startedRun returns a run that has gone through Init.
func startedRun(e *Engine, in Input) *run {
	r := e.newRun(in)
	r.init(in)
	return r
}
