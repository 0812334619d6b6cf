package engine

import "encoding/json"

const (
	MessageHandEmpty    = "No cards left in your hand"
	MessageNoValidMoves = "No valid moves left"
)

// Step is one move-log record: either a committed play or a terminal
// message.
type Step struct {
	PlayedCard string  `json:"played_card,omitempty"`
	CardID     int64   `json:"card_id,omitempty"`
	Type       string  `json:"type,omitempty"`
	NAValue    float64 `json:"na_value,omitempty"`
	Position   string  `json:"position,omitempty"` // "" for non-Monsters
	Target     string  `json:"target,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// IsTerminal reports whether the step is an informational end-of-run record.
func (s Step) IsTerminal() bool {
	return s.Message != ""
}

type moveRecord struct {
	PlayedCard string  `json:"played_card"`
	CardID     int64   `json:"card_id"`
	Type       string  `json:"type"`
	NAValue    float64 `json:"na_value"`
	Position   string  `json:"position"`
	Target     string  `json:"target,omitempty"`
}

type messageRecord struct {
	Message string `json:"message"`
}

// MarshalJSON writes all five play fields for a play, even when empty, and
// only the message for a terminal record.
func (s Step) MarshalJSON() ([]byte, error) {
	if s.IsTerminal() {
		return json.Marshal(messageRecord{Message: s.Message})
	}
	return json.Marshal(moveRecord{
		PlayedCard: s.PlayedCard,
		CardID:     s.CardID,
		Type:       s.Type,
		NAValue:    s.NAValue,
		Position:   s.Position,
		Target:     s.Target,
	})
}
