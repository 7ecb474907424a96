// Package api serves the inventory workflow over JSON. Each request is bound
// to the workflow of the session named by the X-Session-ID header.
package api

import (
	"context"
	"net/http"

	"culinary-be/internal/logger"
	"culinary-be/internal/middleware"
	"culinary-be/internal/session"

	"go.uber.org/zap"
)

// Config wires the router. Nil handlers leave their route unregistered.
type Config struct {
	Sessions      *session.Manager
	Notifications http.Handler
	Metrics       http.Handler
	Health        func(ctx context.Context) error
}

type handler struct {
	sessions *session.Manager
}

// sessionFunc is a handler that runs against one session's workflow.
type sessionFunc func(w http.ResponseWriter, r *http.Request, s *session.Session)

// withSession resolves the session, creating it and loading its collections
// when the header is missing or unknown. The id is echoed back.
func (h *handler) withSession(fn sessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.SessionHeader)
		if id == "" {
			id = session.NewID()
		}
		w.Header().Set(middleware.SessionHeader, id)

		r = r.WithContext(logger.WithSessionID(r.Context(), id))
		s, created := h.sessions.Get(id)
		if created {
			logger.FromCtx(r.Context()).Info("session started", zap.String("layer", "api"))
			s.Workflow.Refresh(r.Context())
		}

		fn(w, r, s)
	}
}

// NewRouter registers every endpoint on a ServeMux.
func NewRouter(cfg Config) *http.ServeMux {
	mux := http.NewServeMux()
	h := &handler{sessions: cfg.Sessions}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(r.Context()); err != nil {
				logger.FromCtx(r.Context()).Warn("health check failed", zap.Error(err))
				jsonError(w, r, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		jsonResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	if cfg.Notifications != nil {
		mux.Handle("GET /ws", cfg.Notifications)
	}

	mux.HandleFunc("POST /api/inventory/refresh", h.withSession(h.refresh))
	mux.HandleFunc("GET /api/stats", h.withSession(h.stats))
	mux.HandleFunc("GET /api/notifications", h.withSession(h.notifications))

	// Items.
	mux.HandleFunc("GET /api/items", h.withSession(h.listItems))
	mux.HandleFunc("POST /api/items", h.withSession(h.createItem))
	mux.HandleFunc("PUT /api/items/{id}", h.withSession(h.updateItem))
	mux.HandleFunc("POST /api/items/sort", h.withSession(h.sortItems))
	mux.HandleFunc("POST /api/items/{id}/delete", h.withSession(h.markItem))

	// Suppliers.
	mux.HandleFunc("GET /api/suppliers", h.withSession(h.listSuppliers))
	mux.HandleFunc("GET /api/suppliers/active", h.withSession(h.activeSuppliers))
	mux.HandleFunc("POST /api/suppliers", h.withSession(h.createSupplier))
	mux.HandleFunc("PUT /api/suppliers/{id}", h.withSession(h.updateSupplier))
	mux.HandleFunc("POST /api/suppliers/{id}/delete", h.withSession(h.markSupplier))

	// Two-step deletion shared by items and suppliers.
	mux.HandleFunc("POST /api/delete/confirm", h.withSession(h.confirmDelete))
	mux.HandleFunc("POST /api/delete/cancel", h.withSession(h.cancelDelete))

	// Orders.
	mux.HandleFunc("GET /api/orders", h.withSession(h.listOrders))
	mux.HandleFunc("POST /api/orders", h.withSession(h.createOrder))
	mux.HandleFunc("GET /api/orders/{id}", h.withSession(h.orderDetail))
	mux.HandleFunc("PUT /api/orders/{id}/status", h.withSession(h.updateOrderStatus))
	mux.HandleFunc("DELETE /api/orders/{id}", h.withSession(h.deleteOrder))

	return mux
}
