package engine

import (
	"fmt"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

const (
	enemyModePenalty    = 5.0
	targetingBonus      = 10.0
	effectPointsDivisor = 2.0
)

// scorer turns one hand card into its share of the round score.
type scorer func(r *run, ci CardInstance) float64

var scorers = map[Mode]scorer{
	ModePure:            scorePure,
	ModeEnemy:           scoreEnemy,
	ModeFeatureLearning: scoreFeatureLearning,
}

// scorePure is the card's current NA.
func scorePure(r *run, ci CardInstance) float64 {
	return r.state.na(ci)
}

// scoreEnemy adds the card's NA once for every enemy card with strictly lower
// attack, then subtracts a flat penalty.
func scoreEnemy(r *run, ci CardInstance) float64 {
	score := 0.0
	for _, enemy := range r.enemy {
		if ci.Card.ATK > enemy.ATK {
			score += r.state.na(ci)
		}
	}
	return score - enemyModePenalty
}

// scoreFeatureLearning favors effect text: NA plus half the effect points,
// and a bonus for removal when there is something to remove.
func scoreFeatureLearning(r *run, ci CardInstance) float64 {
	score := r.state.na(ci) + float64(ci.Card.EffectPoints)/effectPointsDivisor
	if len(r.enemy) > 0 && ci.Card.Targeting() {
		score += targetingBonus
	}
	return score
}

// evaluate scores the node's hand. Synergy is rechecked and every Monster
// without a position gets one before its score is counted.
func (r *run) evaluate(n *node) (float64, error) {
	score := scorers[r.mode]
	if score == nil {
		score = scorePure
	}
	total := 0.0
	for _, ci := range n.hand {
		r.applySynergy(ci, n.field, n.hand, PhaseEvaluated)
		if ci.Card.IsMonster() && r.state.position(ci) == PositionUnset {
			if err := r.assignPosition(ci, PhaseEvaluated); err != nil {
				return 0, fmt.Errorf("evaluate %s: %w", ci.Card.Name, err)
			}
		}
		total += score(r, ci)
	}
	r.log(log.NewEvaluateEvent(r.id, r.round, r.mode.String(), total))
	return total, nil
}

func (r *run) assignPosition(ci CardInstance, phase Phase) error {
	p := choosePosition(ci.Card, r.enemy)
	if err := r.state.setPosition(ci, p); err != nil {
		return err
	}
	r.log(log.NewPositionEvent(r.id, r.round, phase.String(), ci.Card.Name, p.String()))
	return nil
}

// choosePosition picks attack when the card beats the average enemy defense,
// defense when it survives the average enemy attack, and otherwise whichever
// of its own stats is larger (attack on a tie). No enemies means attack.
func choosePosition(card *catalog.Card, enemy []*catalog.Card) Position {
	if len(enemy) == 0 {
		return PositionAttack
	}
	var sumATK, sumDEF float64
	for _, c := range enemy {
		sumATK += float64(c.ATK)
		sumDEF += float64(c.DEF)
	}
	avgATK := sumATK / float64(len(enemy))
	avgDEF := sumDEF / float64(len(enemy))

	attackWins := float64(card.ATK) > avgDEF
	defenseWins := float64(card.DEF) > avgATK
	switch {
	case attackWins && !defenseWins:
		return PositionAttack
	case defenseWins && !attackWins:
		return PositionDefense
	case card.ATK >= card.DEF:
		return PositionAttack
	default:
		return PositionDefense
	}
}
