// Package webhook receives event deliveries from the Mengram webhook
// system. Register a webhook with mengram.Client.AddWebhook pointing at
// a Receiver, and the service posts events here as memories are
// created, jobs finish, and procedures evolve.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Event is one delivery. Data holds the event-specific payload, left
// raw so handlers decode only the types they care about.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // e.g. "memory.created", "job.completed"
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

// HandlerFunc processes one event. Deliveries are acknowledged before
// the handler's side effects are durable; the service retries only on
// non-2xx responses.
type HandlerFunc func(ctx context.Context, ev Event)

// Receiver is an http.Handler that verifies and dispatches deliveries.
// Register all handlers before serving; the handler map is not locked.
type Receiver struct {
	secret   string
	handlers map[string]HandlerFunc
	router   *chi.Mux
	logger   *slog.Logger
}

// NewReceiver builds a receiver. secret is the shared token configured
// on the webhook registration; deliveries must carry it as a bearer
// credential.
func NewReceiver(secret string, logger *slog.Logger) *Receiver {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	r := &Receiver{
		secret:   secret,
		handlers: make(map[string]HandlerFunc),
		router:   router,
		logger:   logger,
	}
	router.Post("/webhooks/mengram", r.deliver)
	router.Get("/health", r.health)
	return r
}

// On registers a handler for one event type.
func (r *Receiver) On(eventType string, h HandlerFunc) {
	r.handlers[eventType] = h
}

// Handler exposes the receiver for mounting into an existing server.
func (r *Receiver) Handler() http.Handler {
	return r.router
}

// Start serves the receiver on the given port. Blocks.
func (r *Receiver) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	r.logger.Info("webhook receiver starting", "addr", addr)
	return http.ListenAndServe(addr, r.router)
}

func (r *Receiver) deliver(w http.ResponseWriter, req *http.Request) {
	if req.Header.Get("Authorization") != "Bearer "+r.secret {
		r.logger.Warn("webhook delivery with bad credential", "remote", req.RemoteAddr)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var ev Event
	if err := json.NewDecoder(req.Body).Decode(&ev); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if h, ok := r.handlers[ev.Type]; ok {
		h(req.Context(), ev)
	} else {
		r.logger.Debug("unhandled webhook event", "type", ev.Type, "id", ev.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Receiver) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
