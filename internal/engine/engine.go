package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
	"github.com/peterkuimelis/tcgadvisor/internal/metrics"
)

const DefaultSynergyBonus = 5.0

type Option func(e *Engine)

func WithExploration(c float64) Option {
	return func(e *Engine) {
		if c >= 0 {
			e.exploration = c
		}
	}
}

func WithSynergyBonus(bonus float64) Option {
	return func(e *Engine) {
		e.synergyBonus = bonus
	}
}

func WithMode(mode Mode) Option {
	return func(e *Engine) {
		if mode != ModeDefault {
			e.mode = mode
		}
	}
}

func WithTributePolicy(policy TributePolicy) Option {
	return func(e *Engine) {
		e.tributePolicy = policy
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics attaches a metrics summary to every Result.
func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = true
	}
}

// Engine recommends a sequence of plays for a hand. An Engine holds only
// configuration, so one value may serve concurrent runs.
type Engine struct {
	exploration   float64
	synergyBonus  float64
	mode          Mode
	tributePolicy TributePolicy
	logger        zerolog.Logger
	metrics       bool
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		exploration:   DefaultExploration,
		synergyBonus:  DefaultSynergyBonus,
		mode:          ModePure,
		tributePolicy: TributeLowestNA,
		logger:        zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Mode returns the scoring mode used when Input.Mode is ModeDefault.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Input is the board a run starts from.
type Input struct {
	Hand          []*catalog.Card
	Field         []*catalog.Card
	Enemy         []*catalog.Card
	PlayedMonster bool // a Monster was already committed this turn

	Mode   Mode            // overrides the engine mode unless ModeDefault
	Events log.EventLogger // per-run trace, may be nil
}

// Result is the outcome of one run.
type Result struct {
	RunID       string             `json:"run_id"`
	Steps       []Step             `json:"step_log"`
	CanContinue bool               `json:"can_continue"`
	Metrics     *metrics.RunMetric `json:"metrics,omitempty"`
}

// run is the mutable state of a single simulation.
type run struct {
	e       *Engine
	id      string
	mode    Mode
	events  log.EventLogger
	metrics metrics.Collector
	logger  zerolog.Logger

	state         *stateTable
	root          *node
	enemy         []*catalog.Card
	playedMonster bool

	phase   Phase
	round   int
	steps   []Step
	stalled bool
}

// Run drives rounds from in until the hand is empty or no play is legal.
// The context is checked between rounds.
func (e *Engine) Run(ctx context.Context, in Input) (Result, error) {
	r := e.newRun(in)
	r.logger.Debug().
		Str("mode", r.mode.String()).
		Int("hand", len(in.Hand)).
		Int("field", len(in.Field)).
		Int("enemy", len(in.Enemy)).
		Msg("run started")

	for r.phase != PhaseTerminal {
		if r.phase == PhaseRoundStart {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("run %s: %w", r.id, err)
			}
		}
		if err := r.step(in); err != nil {
			return Result{}, fmt.Errorf("run %s: %w", r.id, err)
		}
	}

	res := Result{
		RunID:       r.id,
		Steps:       r.steps,
		CanContinue: !(r.stalled && r.round == 1),
	}
	if e.metrics {
		m := r.metrics.Complete()
		res.Metrics = &m
	}
	r.logger.Debug().
		Int("rounds", r.round).
		Int("steps", len(r.steps)).
		Bool("can_continue", res.CanContinue).
		Msg("run finished")
	return res, nil
}

func (e *Engine) newRun(in Input) *run {
	r := &run{
		e:             e,
		id:            uuid.NewString(),
		mode:          e.mode,
		events:        in.Events,
		metrics:       metrics.NewDummyCollector(),
		state:         newStateTable(),
		enemy:         slices.Clone(in.Enemy),
		playedMonster: in.PlayedMonster,
		phase:         PhaseInit,
	}
	if in.Mode != ModeDefault {
		r.mode = in.Mode
	}
	if r.events == nil {
		r.events = log.Discard
	}
	if e.metrics {
		r.metrics = metrics.NewCollector()
	}
	r.logger = e.logger.With().Str("run_id", r.id).Logger()
	return r
}

// step performs the work of the current phase and moves to the next one.
func (r *run) step(in Input) error {
	switch r.phase {
	case PhaseInit:
		r.init(in)
		if len(r.root.hand) == 0 {
			r.finish(MessageHandEmpty)
			return nil
		}
		r.phase = PhaseRoundStart

	case PhaseRoundStart:
		r.startRound()
		r.phase = PhaseExpanded

	case PhaseExpanded:
		r.expand(r.root)
		r.phase = PhaseEvaluated

	case PhaseEvaluated:
		score, err := r.evaluate(r.root)
		if err != nil {
			return err
		}
		backpropagate(r.root, score)
		r.phase = PhaseCommitted

	case PhaseCommitted:
		committed, err := r.commit()
		if err != nil {
			return err
		}
		switch {
		case !committed:
			r.stalled = true
			r.metrics.SetStalled(true)
			r.finish(MessageNoValidMoves)
		case len(r.root.hand) == 0:
			r.finish(MessageHandEmpty)
		default:
			r.phase = PhaseRoundStart
		}

	default:
		return fmt.Errorf("unexpected phase %s", r.phase)
	}
	return nil
}

func (r *run) init(in Input) {
	hand := make([]CardInstance, len(in.Hand))
	for i, c := range in.Hand {
		hand[i] = CardInstance{ID: i + 1, Card: c}
	}
	field := make([]CardInstance, len(in.Field))
	for i, c := range in.Field {
		field[i] = CardInstance{ID: len(hand) + i + 1, Card: c}
	}
	r.state.reset(hand)
	r.state.reset(field)
	r.root = newNode(nil, hand, field)
	r.metrics.Start(r.mode.String())
	r.log(log.NewRunStartEvent(r.id, len(hand), len(field), len(r.enemy)))
}

// modeTag is informational only: it never changes scoring.
func (r *run) modeTag() string {
	if len(r.enemy) == 0 {
		return "pure"
	}
	return "with_enemy"
}

func (r *run) startRound() {
	r.round++
	r.state.reset(r.root.hand)
	r.state.reset(r.root.field)
	r.metrics.AddRound()
	r.log(log.NewRoundStartEvent(r.id, r.round, r.modeTag(), names(r.root.hand), names(r.root.field)))
}

func (r *run) finish(message string) {
	r.steps = append(r.steps, Step{Message: message})
	r.phase = PhaseTerminal
	r.log(log.NewTerminalEvent(r.id, r.round, message))
}

func (r *run) log(event log.Event) {
	event.RunID = r.id
	r.events.Log(event)
}
