package engine

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// commit plays the best child of the root and makes its hand and field the
// new root. It reports false when the root has no children.
func (r *run) commit() (bool, error) {
	best, value := r.root.bestChild(r.e.exploration, r.state.na)
	if best == nil {
		r.logger.Debug().Int("round", r.round).Err(ErrNoValidMoves).Msg("round stalled")
		return false, nil
	}

	played := *best.cardPlayed
	card := played.Card
	na := r.state.na(played)
	r.log(log.NewSelectEvent(r.id, r.round, card.Name, value, na))

	step := Step{
		PlayedCard: card.Name,
		CardID:     card.ID,
		Type:       card.Category.String(),
		NAValue:    na,
	}

	if card.IsMonster() {
		if need := card.TributesRequired(); len(r.root.field) < need {
			return false, fmt.Errorf("commit %s: %w: need %d, have %d", card.Name, ErrInsufficientTributes, need, len(r.root.field))
		}
		if r.state.position(played) == PositionUnset {
			if err := r.assignPosition(played, PhaseCommitted); err != nil {
				return false, fmt.Errorf("commit %s: %w", card.Name, err)
			}
		}
		r.playedMonster = true
		step.Position = r.state.position(played).String()
	}

	if card.Targeting() && len(r.enemy) > 0 {
		step.Target = r.removeTarget()
	}

	r.steps = append(r.steps, step)
	r.log(log.NewCommitEvent(r.id, r.round, card.Name, card.Category.String(), step.Position, step.Target))
	r.logger.Debug().
		Int("round", r.round).
		Str("card", card.Name).
		Float64("na", na).
		Strs("tributes", names(best.tributes)).
		Msg("play committed")

	r.root = newNode(nil, best.hand, best.field)
	return true, nil
}

// removeTarget takes the enemy card with the highest NA off the enemy field
// (first wins ties) and returns its name.
func (r *run) removeTarget() string {
	best := 0
	for i, c := range r.enemy {
		if c.NA > r.enemy[best].NA {
			best = i
		}
	}
	name := r.enemy[best].Name
	r.enemy = slices.Delete(r.enemy, best, best+1)
	return name
}
