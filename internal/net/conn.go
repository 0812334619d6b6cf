package net

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// connWriter serializes server messages onto one connection. After the
// first failed write every later send returns the same error.
type connWriter struct {
	enc *json.Encoder
	mu  sync.Mutex
	err error
}

func newConnWriter(w io.Writer) *connWriter {
	return &connWriter{enc: json.NewEncoder(w)}
}

func (w *connWriter) send(msg ServerMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.err = w.enc.Encode(msg)
	return w.err
}

func (w *connWriter) failed() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// eventStream forwards each trace event of one run to the client.
type eventStream struct {
	log.MemoryLogger
	w *connWriter
}

func (s *eventStream) Log(event log.Event) {
	s.MemoryLogger.Log(event)
	e := s.LastEvent()
	_ = s.w.send(ServerMessage{Type: TypeEvent, Event: &e})
}
