package audit

import (
	"log/slog"
	"sync"
	"time"

	"parley/internal/domain"
)

// Event describes one completed handshake transition, successful or not.
type Event struct {
	Time      time.Time        `json:"time"`
	Party     domain.PartyID   `json:"party"`
	SessionID domain.SessionID `json:"session_id"`
	Op        string           `json:"op"`
	Code      string           `json:"code,omitempty"`
	Err       string           `json:"err,omitempty"`
}

// Sink records handshake transitions. Implementations must not block the
// caller; recording is fire-and-forget and failures are swallowed.
type Sink interface {
	Record(event Event)
}

// Noop discards every event.
type Noop struct{}

// Record implements Sink.
func (Noop) Record(Event) {}

// Slog writes events through a structured logger.
type Slog struct {
	Logger *slog.Logger
}

// NewSlog returns a Sink logging to logger, or the default logger if nil.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{Logger: logger}
}

// Record implements Sink.
func (s *Slog) Record(event Event) {
	attrs := []any{
		"party", event.Party.String(),
		"session_id", event.SessionID.String(),
		"op", event.Op,
	}
	if event.Code != "" {
		attrs = append(attrs, "code", event.Code)
	}
	if event.Err != "" {
		attrs = append(attrs, "err", event.Err)
		s.Logger.Warn("handshake transition failed", attrs...)
		return
	}
	s.Logger.Info("handshake transition", attrs...)
}

// Memory retains events in order; for tests and demos.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Sink.
func (m *Memory) Record(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything recorded so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Compile-time assertions.
var (
	_ Sink = Noop{}
	_ Sink = (*Slog)(nil)
	_ Sink = (*Memory)(nil)
)
