package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/config"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// ErrEmptyHand is returned when none of the requested hand cards are known.
var ErrEmptyHand = errors.New("initial hand is empty or invalid")

// Request names the cards of a board. Unknown names are dropped.
type Request struct {
	InitialHand []string `json:"initial_hand"`
	UserField   []string `json:"user_field"`
	EnemyCards  []string `json:"enemy_cards"`
	Mode        string   `json:"mode,omitempty"`
}

// Service resolves requests against a catalog and runs the engine.
type Service struct {
	catalog *catalog.Catalog
	engine  *engine.Engine
	logger  zerolog.Logger
}

func New(cat *catalog.Catalog, eng *engine.Engine) *Service {
	return &Service{catalog: cat, engine: eng, logger: zerolog.Nop()}
}

// FromConfig loads the configured catalog and builds a service around an
// engine with the configured options.
func FromConfig(cfg *config.Config, logger zerolog.Logger) (*Service, error) {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	opts := append(cfg.EngineOptions(), engine.WithLogger(logger))
	logger.Info().Str("catalog", cfg.Catalog).Int("cards", cat.Len()).Msg("catalog loaded")
	return New(cat, engine.New(opts...)).WithLogger(logger), nil
}

// WithLogger returns the service with a diagnostic logger attached.
func (s *Service) WithLogger(logger zerolog.Logger) *Service {
	s.logger = logger
	return s
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Recommend runs one simulation for req.
func (s *Service) Recommend(ctx context.Context, req Request) (engine.Result, error) {
	return s.Stream(ctx, req, nil)
}

// Stream is Recommend with every trace event sent to events as it happens.
func (s *Service) Stream(ctx context.Context, req Request, events log.EventLogger) (engine.Result, error) {
	in, err := s.Resolve(req)
	if err != nil {
		return engine.Result{}, err
	}
	in.Events = events

	res, err := s.engine.Run(ctx, in)
	if err != nil {
		return engine.Result{}, err
	}
	s.logger.Info().
		Str("run_id", res.RunID).
		Int("hand", len(in.Hand)).
		Int("steps", len(res.Steps)).
		Bool("can_continue", res.CanContinue).
		Msg("recommendation ready")
	return res, nil
}

// Resolve turns a request into engine input.
func (s *Service) Resolve(req Request) (engine.Input, error) {
	mode, err := engine.ParseMode(req.Mode)
	if err != nil {
		return engine.Input{}, err
	}
	in := engine.Input{
		Hand:  s.catalog.Resolve(req.InitialHand),
		Field: s.catalog.Resolve(req.UserField),
		Enemy: s.catalog.Resolve(req.EnemyCards),
		Mode:  mode,
	}
	if dropped := len(req.InitialHand) + len(req.UserField) + len(req.EnemyCards) -
		len(in.Hand) - len(in.Field) - len(in.Enemy); dropped > 0 {
		s.logger.Debug().Int("dropped", dropped).Msg("unknown card names ignored")
	}
	if len(in.Hand) == 0 {
		return engine.Input{}, fmt.Errorf("%w: %d name(s) given", ErrEmptyHand, len(req.InitialHand))
	}
	return in, nil
}
