package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// CardInfo is the JSON representation of a card for the /api/cards/{name} endpoint.
type CardInfo struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Archetype    string  `json:"archetype,omitempty"`
	Description  string  `json:"description"`
	ATK          int     `json:"atk,omitempty"`
	DEF          int     `json:"def,omitempty"`
	Level        int     `json:"level,omitempty"`
	EffectPoints int     `json:"effectPoints"`
	NA           float64 `json:"na"`
	Targeting    bool    `json:"targeting,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

func newCardInfo(c *catalog.Card) CardInfo {
	return CardInfo{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Category.String(),
		Archetype:    c.Archetype,
		Description:  c.Description,
		ATK:          c.ATK,
		DEF:          c.DEF,
		Level:        c.Level,
		EffectPoints: c.EffectPoints,
		NA:           c.NA,
		Targeting:    c.Targeting(),
		ImageURL:     c.ImageURL,
	}
}

// Message is one websocket frame sent to the browser.
type Message struct {
	Type   string         `json:"type"` // event | result | error
	Event  *log.Event     `json:"event,omitempty"`
	Result *engine.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Server is the advisor HTTP API server.
type Server struct {
	advisor       *advisor.Service
	scenariosFile string
	logger        zerolog.Logger
	mux           *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(svc *advisor.Service, scenariosFile string, logger zerolog.Logger) *Server {
	s := &Server{
		advisor:       svc,
		scenariosFile: scenariosFile,
		logger:        logger,
		mux:           http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/cards/{name}", s.handleCard)
	s.mux.HandleFunc("GET /api/scenarios", s.handleScenarios)
	s.mux.HandleFunc("POST /api/recommend", s.handleRecommend)
	s.mux.HandleFunc("POST /machine-learning", s.handleRecommend)

	// Streaming recommendations
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.advisor.Catalog().Search(r.URL.Query().Get("q")))
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	card, ok := s.advisor.Catalog().Lookup(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("card %q not found", r.PathValue("name")))
		return
	}
	writeJSON(w, http.StatusOK, newCardInfo(card))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	res, err := s.advisor.Recommend(r.Context(), req)
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error().Err(err).Msg("recommendation failed")
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// errorStatus maps advisor errors to an HTTP status and client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, advisor.ErrEmptyHand):
		return http.StatusBadRequest, "Initial hand is empty or invalid"
	case errors.Is(err, engine.ErrUnknownMode):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", err)
	}
}

// wsEvents forwards trace events to a websocket as they are logged. The
// first write error stops further writes.
type wsEvents struct {
	log.MemoryLogger
	ctx  context.Context
	conn *websocket.Conn
	err  error
}

func (w *wsEvents) Log(event log.Event) {
	w.MemoryLogger.Log(event)
	if w.err != nil {
		return
	}
	e := w.LastEvent()
	w.err = wsjson.Write(w.ctx, w.conn, Message{Type: "event", Event: &e})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read the request from the browser
	var req advisor.Request
	if err := wsjson.Read(ctx, wsConn, &req); err != nil {
		wsConn.Close(websocket.StatusPolicyViolation, "expected recommend request")
		return
	}

	events := &wsEvents{ctx: ctx, conn: wsConn}
	res, err := s.advisor.Stream(ctx, req, events)
	if err != nil {
		_, msg := errorStatus(err)
		wsjson.Write(ctx, wsConn, Message{Type: "error", Error: msg})
		wsConn.Close(websocket.StatusNormalClosure, "request failed")
		return
	}
	if events.err != nil {
		s.logger.Warn().Err(events.err).Msg("websocket write")
		return
	}
	if err := wsjson.Write(ctx, wsConn, Message{Type: "result", Result: &res}); err != nil {
		s.logger.Warn().Err(err).Msg("websocket write")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "run complete")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
