package engine

import "fmt"

// cardState holds the transient per-round values of one card instance.
type cardState struct {
	na       float64
	boosted  bool
	position Position
}

// stateTable is owned by exactly one run. Catalog cards are only read.
type stateTable struct {
	cards map[int]*cardState
}

func newStateTable() *stateTable {
	return &stateTable{cards: make(map[int]*cardState)}
}

func (t *stateTable) get(ci CardInstance) *cardState {
	s, ok := t.cards[ci.ID]
	if !ok {
		s = &cardState{na: ci.Card.NA}
		t.cards[ci.ID] = s
	}
	return s
}

// reset restores every listed instance to its catalog defaults.
func (t *stateTable) reset(cards []CardInstance) {
	for _, ci := range cards {
		s := t.get(ci)
		s.na = ci.Card.NA
		s.boosted = false
		s.position = PositionUnset
	}
}

func (t *stateTable) na(ci CardInstance) float64 {
	return t.get(ci).na
}

func (t *stateTable) boosted(ci CardInstance) bool {
	return t.get(ci).boosted
}

func (t *stateTable) position(ci CardInstance) Position {
	return t.get(ci).position
}

// setPosition validates before writing; a rejected value leaves the
// previous position in place.
func (t *stateTable) setPosition(ci CardInstance, p Position) error {
	if !ci.Card.IsMonster() {
		return fmt.Errorf("%w: %s is not a monster", ErrInvalidPosition, ci.Card.Name)
	}
	if p != PositionAttack && p != PositionDefense {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, int(p))
	}
	t.get(ci).position = p
	return nil
}
