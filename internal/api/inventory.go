package api

import (
	"net/http"

	"culinary-be/internal/item"
	"culinary-be/internal/order"
	"culinary-be/internal/session"
	"culinary-be/internal/stats"
	"culinary-be/internal/supplier"
)

type inventoryResponse struct {
	Items     []*item.Item         `json:"items"`
	Suppliers []*supplier.Supplier `json:"suppliers"`
	Orders    []*order.Order       `json:"orders"`
	Stats     stats.Stats          `json:"stats"`
}

// refresh handles POST /api/inventory/refresh.
func (h *handler) refresh(w http.ResponseWriter, r *http.Request, s *session.Session) {
	wf := s.Workflow
	wf.Refresh(r.Context())

	jsonResponse(w, r, http.StatusOK, inventoryResponse{
		Items:     wf.Items(),
		Suppliers: wf.Suppliers(),
		Orders:    wf.Orders(),
		Stats:     wf.Stats(),
	})
}

// stats handles GET /api/stats. source=local aggregates the held collections
// instead of returning the last store result.
func (h *handler) stats(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if r.URL.Query().Get("source") == "local" {
		jsonResponse(w, r, http.StatusOK, s.Workflow.LocalStats())
		return
	}
	jsonResponse(w, r, http.StatusOK, s.Workflow.Stats())
}

func (h *handler) notifications(w http.ResponseWriter, r *http.Request, s *session.Session) {
	jsonResponse(w, r, http.StatusOK, s.Notifications.Recent())
}
