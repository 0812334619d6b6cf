package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
)

// Server answers advisor requests from TCP clients, one goroutine per
// connection.
type Server struct {
	Advisor *advisor.Service
	Port    string
	Logger  zerolog.Logger
}

// Run listens on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("advisor listening")
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then waits for
// open connections to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ServeConn(ctx, conn)
		}()
	}
}

// ServeConn handles requests on conn until the client quits, the
// connection drops or ctx is cancelled. Requests on one connection run
// in order.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logger := s.Logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Debug().Msg("client connected")

	dec := json.NewDecoder(conn)
	w := newConnWriter(conn)

	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				logger.Debug().Err(err).Msg("read message")
				_ = w.send(ServerMessage{Type: TypeError, Error: fmt.Sprintf("invalid message: %v", err)})
			}
			return
		}

		switch msg.Type {
		case TypeRecommend:
			events := &eventStream{w: w}
			res, err := s.Advisor.Stream(ctx, msg.Request(), events)
			if err != nil {
				if ctx.Err() == nil && !isRequestError(err) {
					logger.Error().Err(err).Msg("recommendation failed")
				}
				_ = w.send(ServerMessage{Type: TypeError, Error: errorMessage(err)})
				break
			}
			_ = w.send(ServerMessage{Type: TypeResult, Result: &res})

		case TypeSearch:
			_ = w.send(ServerMessage{Type: TypeCards, Cards: s.Advisor.Catalog().Search(msg.Query)})

		case TypeQuit:
			logger.Debug().Msg("client quit")
			return

		default:
			_ = w.send(ServerMessage{Type: TypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
		}

		if err := w.failed(); err != nil {
			logger.Debug().Err(err).Msg("write message")
			return
		}
	}
}

func isRequestError(err error) bool {
	return errors.Is(err, advisor.ErrEmptyHand) || errors.Is(err, engine.ErrUnknownMode)
}

// errorMessage is the client-facing text for a failed request.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, advisor.ErrEmptyHand):
		return "Initial hand is empty or invalid"
	case errors.Is(err, engine.ErrUnknownMode):
		return err.Error()
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
