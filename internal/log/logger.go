package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// EventLogger is the interface for logging engine events.
type EventLogger interface {
	Log(event Event)
	Events() []Event
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []Event
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event Event) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []Event {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() Event {
	if len(l.events) == 0 {
		return Event{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event Event) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- ZerologLogger: emits each event as a structured debug record ---

type ZerologLogger struct {
	MemoryLogger
	logger zerolog.Logger
}

func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

func (l *ZerologLogger) Log(event Event) {
	l.MemoryLogger.Log(event)
	e := l.logger.Debug().
		Str("run_id", event.RunID).
		Int("seq", l.seq).
		Int("round", event.Round).
		Str("phase", event.Phase).
		Str("event", event.Type.String())
	if event.Card != "" {
		e = e.Str("card", event.Card)
	}
	if event.Value != 0 {
		e = e.Float64("value", event.Value)
	}
	e.Msg(event.Details)
}

// --- Discard: drops everything ---

type discard struct{}

// Discard is an EventLogger that records nothing.
var Discard EventLogger = discard{}

func (discard) Log(Event)       {}
func (discard) Events() []Event { return nil }

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e Event) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}

	return fmt.Sprintf("R%-2d %s| %s", e.Round, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewRunStartEvent(runID string, hand, field, enemy int) Event {
	return Event{
		RunID:   runID,
		Phase:   "Init",
		Type:    EventRunStart,
		Details: fmt.Sprintf("run %s: %d card(s) in hand, %d on field, %d enemy card(s)", runID, hand, field, enemy),
	}
}

func NewRoundStartEvent(runID string, round int, mode string, hand []string, field []string) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "RoundStart",
		Type:    EventRoundStart,
		Details: fmt.Sprintf("=== Round %d (%s) === hand: [%s] field: [%s]", round, mode, strings.Join(hand, ", "), strings.Join(field, ", ")),
	}
}

func NewExpandEvent(runID string, round int, cardName string, tributes []string) Event {
	details := fmt.Sprintf("candidate play: %s", cardName)
	if len(tributes) > 0 {
		details += fmt.Sprintf(" (tributing: %s)", strings.Join(tributes, ", "))
	}
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "Expanded",
		Type:    EventExpand,
		Card:    cardName,
		Details: details,
	}
}

func NewSkipEvent(runID string, round int, cardName string, reason string) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "Expanded",
		Type:    EventSkip,
		Card:    cardName,
		Details: fmt.Sprintf("skipping %s: %s", cardName, reason),
	}
}

func NewBoostEvent(runID string, round int, phase string, cardName string, archetype string, bonus float64, na float64) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   phase,
		Type:    EventBoost,
		Card:    cardName,
		Value:   na,
		Details: fmt.Sprintf("%s boosted by %g for archetype %s (NA %.2f)", cardName, bonus, archetype, na),
	}
}

func NewPositionEvent(runID string, round int, phase string, cardName string, position string) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   phase,
		Type:    EventPosition,
		Card:    cardName,
		Details: fmt.Sprintf("%s assigned %s position", cardName, position),
	}
}

func NewEvaluateEvent(runID string, round int, mode string, score float64) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "Evaluated",
		Type:    EventEvaluate,
		Value:   score,
		Details: fmt.Sprintf("%s evaluation: %.2f", mode, score),
	}
}

func NewSelectEvent(runID string, round int, cardName string, value float64, na float64) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "Committed",
		Type:    EventSelect,
		Card:    cardName,
		Value:   value,
		Details: fmt.Sprintf("selected %s (value %.2f, NA %.2f)", cardName, value, na),
	}
}

func NewCommitEvent(runID string, round int, cardName string, category string, position string, target string) Event {
	details := fmt.Sprintf("plays %s %s", category, cardName)
	if position != "" {
		details += fmt.Sprintf(" in %s position", position)
	}
	if target != "" {
		details += fmt.Sprintf(" targeting %s", target)
	}
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "Committed",
		Type:    EventCommit,
		Card:    cardName,
		Details: details,
	}
}

func NewTerminalEvent(runID string, round int, message string) Event {
	return Event{
		RunID:   runID,
		Round:   round,
		Phase:   "Terminal",
		Type:    EventTerminal,
		Details: message,
	}
}
