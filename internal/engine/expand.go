package engine

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// expand adds one child per distinct, legal card in the node's hand. Cards
// that already have a child are skipped, so calling it twice is harmless.
func (r *run) expand(n *node) {
	for _, ci := range n.hand {
		if n.expanded[ci.Card] {
			continue
		}
		if ci.Card.IsMonster() {
			if r.playedMonster {
				r.skip(ci, "a monster was already played this turn")
				continue
			}
			need := ci.Card.TributesRequired()
			tributes, err := r.chooseTributes(n.field, need)
			if err != nil {
				r.skip(ci, fmt.Sprintf("needs %d tribute(s), field has %d", need, len(n.field)))
				continue
			}
			r.applySynergy(ci, n.field, n.hand, PhaseExpanded)
			n.addChild(ci, tributes)
			r.metrics.AddExpanded()
			r.log(log.NewExpandEvent(r.id, r.round, ci.Card.Name, names(tributes)))
			continue
		}
		r.applySynergy(ci, n.field, n.hand, PhaseExpanded)
		n.addChild(ci, nil)
		r.metrics.AddExpanded()
		r.log(log.NewExpandEvent(r.id, r.round, ci.Card.Name, nil))
	}
}

func (r *run) skip(ci CardInstance, reason string) {
	r.metrics.AddSkipped()
	r.log(log.NewSkipEvent(r.id, r.round, ci.Card.Name, reason))
}

// applySynergy grants the archetype bonus at most once per round. With an
// empty field or no usable archetype it does nothing at all. Otherwise the
// NA goes back to its default and gains the bonus when the archetype is
// present in both field and hand.
func (r *run) applySynergy(ci CardInstance, field, hand []CardInstance, phase Phase) {
	if len(field) == 0 || !ci.Card.HasArchetype() {
		return
	}
	s := r.state.get(ci)
	if s.boosted {
		return
	}
	s.na = ci.Card.NA
	if !sharesArchetype(ci, field) || !sharesArchetype(ci, hand) {
		return
	}
	s.na += r.e.synergyBonus
	s.boosted = true
	r.metrics.AddBoost()
	r.log(log.NewBoostEvent(r.id, r.round, phase.String(), ci.Card.Name, ci.Card.Archetype, r.e.synergyBonus, s.na))
}

func sharesArchetype(ci CardInstance, cards []CardInstance) bool {
	return slices.ContainsFunc(cards, func(other CardInstance) bool {
		return ci.Card.SameArchetype(other.Card)
	})
}

// chooseTributes picks need cards from field by the engine's policy. The
// count is checked before anything is chosen.
func (r *run) chooseTributes(field []CardInstance, need int) ([]CardInstance, error) {
	if len(field) < need {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientTributes, need, len(field))
	}
	if need == 0 {
		return nil, nil
	}
	switch r.e.tributePolicy {
	case TributeFirst:
		return slices.Clone(field[:need]), nil
	default:
		sorted := slices.Clone(field)
		slices.SortStableFunc(sorted, func(a, b CardInstance) int {
			return cmp.Compare(r.state.na(a), r.state.na(b))
		})
		return sorted[:need], nil
	}
}
