package exchange

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"parley/internal/domain"
)

// Server is the HTTP face of the exchange: parties post wire envelopes to
// each other's mailboxes and drain their own. Delivery is best-effort
// store-and-forward; retransmission and timeout scheduling stay with the
// negotiating parties.
type Server struct {
	boxes  *Mailboxes
	logger *slog.Logger
}

// NewServer returns a Server over boxes, logging to logger (the default
// logger if nil).
func NewServer(boxes *Mailboxes, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{boxes: boxes, logger: logger}
}

// Router wires the exchange routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/envelope", s.handlePost)
	r.Get("/mailbox/{party}", s.handleFetch)
	r.Post("/mailbox/{party}/ack", s.handleAck)
	r.Get("/watch/{party}", s.handleWatch)

	return r
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var env domain.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if env.To == "" {
		http.Error(w, "missing recipient", http.StatusBadRequest)
		return
	}
	s.boxes.Deliver(env)
	s.logger.Info("envelope delivered",
		"type", env.Type, "from", env.From.String(), "to", env.To.String())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	party := domain.PartyID(chi.URLParam(r, "party"))
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	envs := s.boxes.Fetch(party, limit)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envs)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	party := domain.PartyID(chi.URLParam(r, "party"))
	defer r.Body.Close()
	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.boxes.Ack(party, body.Count)
	w.WriteHeader(http.StatusNoContent)
}
