package log

import "fmt"

// EventType enumerates all observable engine events.
type EventType int

const (
	EventRunStart EventType = iota
	EventRoundStart
	EventExpand
	EventSkip
	EventBoost
	EventPosition
	EventEvaluate
	EventSelect
	EventCommit
	EventTerminal
)

func (e EventType) String() string {
	switch e {
	case EventRunStart:
		return "RunStart"
	case EventRoundStart:
		return "RoundStart"
	case EventExpand:
		return "Expand"
	case EventSkip:
		return "Skip"
	case EventBoost:
		return "Boost"
	case EventPosition:
		return "Position"
	case EventEvaluate:
		return "Evaluate"
	case EventSelect:
		return "Select"
	case EventCommit:
		return "Commit"
	case EventTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the type by name.
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EventType) UnmarshalText(text []byte) error {
	for t := EventRunStart; t <= EventTerminal; t++ {
		if t.String() == string(text) {
			*e = t
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// Event represents a single observable step of a simulation run.
type Event struct {
	Seq     int       `json:"seq"`             // monotonic sequence number
	RunID   string    `json:"run_id"`          // simulation run the event belongs to
	Round   int       `json:"round"`           // which round (1-based, 0 before the first round)
	Phase   string    `json:"phase"`           // round driver phase (e.g. "Expanded")
	Type    EventType `json:"type"`            // event type
	Card    string    `json:"card,omitempty"`  // card name (if applicable)
	Value   float64   `json:"value,omitempty"` // score, NA or selection value (if applicable)
	Details string    `json:"details"`         // human-readable detail string
}
