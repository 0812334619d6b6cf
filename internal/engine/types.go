package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
)

var (
	ErrInvalidPosition      = errors.New("invalid monster position")
	ErrInsufficientTributes = errors.New("not enough cards on the field to tribute")
	ErrNoValidMoves         = errors.New("no valid moves")
	ErrUnknownMode          = errors.New("unknown scoring mode")
	ErrUnknownPolicy        = errors.New("unknown tribute policy")
)

// --- Position ---

type Position int

const (
	PositionUnset Position = iota
	PositionAttack
	PositionDefense
)

func (p Position) String() string {
	switch p {
	case PositionAttack:
		return "attack"
	case PositionDefense:
		return "defense"
	default:
		return ""
	}
}

// ParsePosition accepts "attack" or "defense" and nothing else.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return PositionAttack, nil
	case "defense":
		return PositionDefense, nil
	}
	return PositionUnset, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

// --- Mode ---

// Mode selects the evaluator's scoring strategy.
type Mode int

const (
	ModeDefault Mode = iota // use the engine's configured mode
	ModePure
	ModeEnemy
	ModeFeatureLearning
)

func (m Mode) String() string {
	switch m {
	case ModePure:
		return "pure"
	case ModeEnemy:
		return "enemy"
	case ModeFeatureLearning:
		return "feature_learning"
	default:
		return "default"
	}
}

// ParseMode maps a mode name to a Mode. An empty name yields ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeDefault, nil
	case "pure":
		return ModePure, nil
	case "enemy":
		return ModeEnemy, nil
	case "feature_learning":
		return ModeFeatureLearning, nil
	}
	return ModeDefault, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// --- Tribute policy ---

// TributePolicy decides which field cards pay a tribute cost.
type TributePolicy int

const (
	TributeLowestNA TributePolicy = iota // lowest current NA first, ties by field order
	TributeFirst                         // front of the field first
)

func (p TributePolicy) String() string {
	switch p {
	case TributeLowestNA:
		return "lowest_na"
	case TributeFirst:
		return "first"
	default:
		return "unknown"
	}
}

func ParseTributePolicy(s string) (TributePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lowest_na":
		return TributeLowestNA, nil
	case "first":
		return TributeFirst, nil
	}
	return TributeLowestNA, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// --- Phase ---

// Phase is a state of the round driver.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseRoundStart
	PhaseExpanded
	PhaseEvaluated
	PhaseCommitted
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseRoundStart:
		return "RoundStart"
	case PhaseExpanded:
		return "Expanded"
	case PhaseEvaluated:
		return "Evaluated"
	case PhaseCommitted:
		return "Committed"
	case PhaseTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// --- CardInstance ---

// CardInstance is one copy of a catalog card inside a single run. Two copies
// of the same card in a hand are distinct instances with separate state.
type CardInstance struct {
	ID   int
	Card *catalog.Card
}

func (ci CardInstance) String() string {
	return ci.Card.Name
}

func names(cards []CardInstance) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Card.Name
	}
	return out
}

// without returns cards minus every instance listed in remove. The input is
// not modified.
func without(cards []CardInstance, remove ...CardInstance) []CardInstance {
	out := make([]CardInstance, 0, len(cards))
	for _, c := range cards {
		drop := false
		for _, r := range remove {
			if c.ID == r.ID {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out
}
