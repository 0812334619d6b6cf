package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
)

func TestSelectionValue(t *testing.T) {
	t.Run("unvisited node prefers intrinsic value", func(t *testing.T) {
		n := &node{parent: &node{visits: 3}}
		require.Equal(t, 21.0+1.41, n.selectionValue(1.41, 21))
	})

	t.Run("visited node uses the UCT formula", func(t *testing.T) {
		parent := &node{visits: 4}
		n := &node{parent: parent, visits: 2, wins: 10}
		want := 10/(2+1e-6) + 1.41*math.Sqrt(math.Log(4+1e-6)/(2+1e-6))
		require.InDelta(t, want, n.selectionValue(1.41, 99), 1e-12)
	})
}

func TestBestChild(t *testing.T) {
	a := CardInstance{ID: 1, Card: spell("A", 5, "")}
	b := CardInstance{ID: 2, Card: spell("B", 5, "")}
	c := CardInstance{ID: 3, Card: spell("C", 7, "")}
	na := func(ci CardInstance) float64 { return ci.Card.NA }

	root := newNode(nil, []CardInstance{a, b}, nil)
	best, _ := root.bestChild(DefaultExploration, na)
	require.Nil(t, best, "no children means no move")

	root.addChild(a, nil)
	root.addChild(b, nil)
	best, value := root.bestChild(DefaultExploration, na)
	require.Equal(t, a.ID, best.cardPlayed.ID, "first-seen child wins exact ties")
	require.Equal(t, 5+DefaultExploration, value)

	root = newNode(nil, []CardInstance{a, b, c}, nil)
	for _, ci := range root.hand {
		root.addChild(ci, nil)
	}
	best, _ = root.bestChild(DefaultExploration, na)
	require.Equal(t, c.ID, best.cardPlayed.ID)
}

func TestAddChild(t *testing.T) {
	elf := CardInstance{ID: 1, Card: monster("Gemini Elf", 1900, 900, 4, "")}
	pot := CardInstance{ID: 2, Card: spell("Pot of Greed", 20, "")}
	f1 := CardInstance{ID: 3, Card: monster("Kuriboh", 300, 200, 1, "")}
	f2 := CardInstance{ID: 4, Card: monster("Sheep Token", 0, 0, 1, "")}

	root := newNode(nil, []CardInstance{elf, pot}, []CardInstance{f1, f2})
	child := root.addChild(elf, []CardInstance{f2})

	require.Equal(t, []CardInstance{pot}, child.hand)
	require.Equal(t, []CardInstance{f1}, child.field)
	require.Len(t, root.hand, 2, "parent hand is untouched")
	require.Len(t, root.field, 2, "parent field is untouched")
	require.True(t, root.expanded[elf.Card])
	require.Same(t, root, child.parent)
}

func TestBackpropagate(t *testing.T) {
	root := newNode(nil, nil, nil)
	child := root.addChild(CardInstance{ID: 1, Card: spell("A", 1, "")}, nil)

	backpropagate(child, 7)
	backpropagate(root, 3)

	require.Equal(t, 1.0, child.visits)
	require.Equal(t, 7.0, child.wins)
	require.Equal(t, 2.0, root.visits)
	require.Equal(t, 10.0, root.wins)
}

func TestChoosePosition(t *testing.T) {
	// avg ATK 1800, avg DEF 1500
	enemy := []*catalog.Card{
		monster("E1", 2000, 1000, 4, ""),
		monster("E2", 1600, 2000, 4, ""),
	}
	tests := []struct {
		name     string
		atk, def int
		enemy    []*catalog.Card
		want     Position
	}{
		{"no enemies", 0, 3000, nil, PositionAttack},
		{"attack beats defense", 2000, 1000, enemy, PositionAttack},
		{"defense survives attack", 1000, 2000, enemy, PositionDefense},
		{"both hold, attack larger", 2500, 1900, enemy, PositionAttack},
		{"both hold, defense larger", 1900, 2500, enemy, PositionDefense},
		{"neither holds, own tie", 1000, 1000, enemy, PositionAttack},
		{"neither holds, defense larger", 1000, 1200, enemy, PositionDefense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := monster("M", tt.atk, tt.def, 4, "")
			require.Equal(t, tt.want, choosePosition(card, tt.enemy))
		})
	}
}

func TestSetPosition(t *testing.T) {
	state := newStateTable()
	elf := CardInstance{ID: 1, Card: monster("Gemini Elf", 1900, 900, 4, "")}
	pot := CardInstance{ID: 2, Card: spell("Pot of Greed", 20, "")}

	require.NoError(t, state.setPosition(elf, PositionDefense))
	require.ErrorIs(t, state.setPosition(elf, PositionUnset), ErrInvalidPosition)
	require.ErrorIs(t, state.setPosition(elf, Position(7)), ErrInvalidPosition)
	require.Equal(t, PositionDefense, state.position(elf), "rejected value leaves state unchanged")

	require.ErrorIs(t, state.setPosition(pot, PositionAttack), ErrInvalidPosition)
	require.Equal(t, PositionUnset, state.position(pot))

	state.reset([]CardInstance{elf})
	require.Equal(t, PositionUnset, state.position(elf))
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePosition(" Attack ")
	require.NoError(t, err)
	require.Equal(t, PositionAttack, p)
	_, err = ParsePosition("sideways")
	require.ErrorIs(t, err, ErrInvalidPosition)

	for _, m := range []Mode{ModePure, ModeEnemy, ModeFeatureLearning} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeDefault, m)
	_, err = ParseMode("learned")
	require.ErrorIs(t, err, ErrUnknownMode)

	policy, err := ParseTributePolicy("first")
	require.NoError(t, err)
	require.Equal(t, TributeFirst, policy)
	_, err = ParseTributePolicy("random")
	require.ErrorIs(t, err, ErrUnknownPolicy)

	require.Equal(t, "Committed", PhaseCommitted.String())
	require.Equal(t, "", PositionUnset.String())
}
