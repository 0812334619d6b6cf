package engine

import (
	"math"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
)

const (
	DefaultExploration = 1.41
	epsilon            = 1e-6
)

// node is one decision in the search tree. Children are only ever built one
// level below the current root, so the selection value works as a ranking
// heuristic over candidate plays rather than a deep search.
type node struct {
	parent   *node
	children []*node
	expanded map[*catalog.Card]bool // catalog cards already represented by a child

	hand  []CardInstance
	field []CardInstance

	cardPlayed *CardInstance // nil for a root
	tributes   []CardInstance

	visits float64
	wins   float64
}

func newNode(parent *node, hand, field []CardInstance) *node {
	return &node{
		parent:   parent,
		expanded: make(map[*catalog.Card]bool),
		hand:     hand,
		field:    field,
	}
}

func (n *node) addChild(played CardInstance, tributes []CardInstance) *node {
	child := newNode(n, without(n.hand, played), without(n.field, tributes...))
	child.cardPlayed = &played
	child.tributes = tributes
	n.children = append(n.children, child)
	n.expanded[played.Card] = true
	return child
}

// selectionValue is na+c for an unvisited node, and wins/visits plus the
// exploration term otherwise. Every division is guarded by epsilon.
func (n *node) selectionValue(c float64, na float64) float64 {
	if n.visits == 0 {
		return na + c
	}
	parentVisits := 0.0
	if n.parent != nil {
		parentVisits = n.parent.visits
	}
	return n.wins/(n.visits+epsilon) +
		c*math.Sqrt(math.Log(parentVisits+epsilon)/(n.visits+epsilon))
}

// backpropagate adds result to every node from n up to the tree root.
func backpropagate(n *node, result float64) {
	for ; n != nil; n = n.parent {
		n.visits++
		n.wins += result
	}
}

// bestChild returns the child with the strictly greatest selection value;
// on exact ties the first-seen child wins. It returns nil without children.
func (n *node) bestChild(c float64, na func(CardInstance) float64) (*node, float64) {
	var best *node
	bestValue := math.Inf(-1)
	for _, child := range n.children {
		v := child.selectionValue(c, na(*child.cardPlayed))
		if v > bestValue {
			best = child
			bestValue = v
		}
	}
	return best, bestValue
}
