package net

import (
	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// Message types.
const (
	TypeRecommend = "recommend"
	TypeSearch    = "search"
	TypeQuit      = "quit"

	TypeEvent  = "event"
	TypeResult = "result"
	TypeCards  = "cards"
	TypeError  = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages. One JSON
// object per line.
type ServerMessage struct {
	Type string `json:"type"`

	// For "event"
	Event *log.Event `json:"event,omitempty"`

	// For "result"
	Result *engine.Result `json:"result,omitempty"`

	// For "cards"
	Cards []string `json:"cards,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "recommend"
	Hand  []string `json:"hand,omitempty"`
	Field []string `json:"field,omitempty"`
	Enemy []string `json:"enemy,omitempty"`
	Mode  string   `json:"mode,omitempty"`

	// For "search"
	Query string `json:"query,omitempty"`
}

// Request converts a recommend message into an advisor request.
func (m ClientMessage) Request() advisor.Request {
	return advisor.Request{
		InitialHand: m.Hand,
		UserField:   m.Field,
		EnemyCards:  m.Enemy,
		Mode:        m.Mode,
	}
}
