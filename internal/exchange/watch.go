package exchange

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"parley/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The exchange carries only MAC-protected envelopes; origin checks
	// add nothing here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWatch upgrades to a websocket and pushes envelopes addressed to
// the party as they arrive. Envelopes stay in the mailbox until acked, so
// a dropped watcher loses nothing.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	party := domain.PartyID(chi.URLParam(r, "party"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("watch upgrade failed", "party", party.String(), "err", err)
		return
	}
	defer conn.Close()

	ch, cancel := s.boxes.Watch(party)
	defer cancel()

	// Reader loop only to observe the close from the client side.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case env, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(env); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
