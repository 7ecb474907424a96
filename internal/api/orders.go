package api

import (
	"errors"
	"net/http"
	"time"

	"culinary-be/internal/order"
	"culinary-be/internal/session"
	"culinary-be/internal/workflow"
)

type orderLineRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

// createOrderRequest carries no prices; each line is priced from the
// session's current item list.
type createOrderRequest struct {
	SupplierID       string             `json:"supplier_id"`
	ExpectedDelivery *time.Time         `json:"expected_delivery"`
	Items            []orderLineRequest `json:"items"`
}

type statusRequest struct {
	Status order.Status `json:"status"`
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request, s *session.Session) {
	q := r.URL.Query()
	if q.Has("search") {
		jsonResponse(w, r, http.StatusOK, s.Workflow.SearchOrders(q.Get("search")))
		return
	}
	jsonResponse(w, r, http.StatusOK, s.Workflow.Orders())
}

// buildLines prices the requested lines through an order draft. An item the
// session does not hold keeps a zero price and fails validation later.
func buildLines(draft *workflow.OrderDraft, req []orderLineRequest) ([]order.LineDraft, error) {
	if len(req) == 0 {
		return nil, nil
	}
	for i, l := range req {
		if i > 0 {
			draft.AddLine()
		}
		if err := draft.SelectItem(i, l.ItemID); err != nil && !errors.Is(err, workflow.ErrUnknownItem) {
			return nil, err
		}
		if err := draft.SetQuantity(i, l.Quantity); err != nil {
			return nil, err
		}
	}
	return draft.Lines(), nil
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	lines, err := buildLines(s.Workflow.NewOrderDraft(), req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.Workflow.CreateOrder(r.Context(), req.SupplierID, req.ExpectedDelivery, lines)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusCreated, created)
}

// orderDetail handles GET /api/orders/{id} and opens it as the session detail.
func (h *handler) orderDetail(w http.ResponseWriter, r *http.Request, s *session.Session) {
	o, err := s.Workflow.GetOrderDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusOK, o)
}

func (h *handler) updateOrderStatus(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.Workflow.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusOK, updated)
}

func (h *handler) deleteOrder(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := s.Workflow.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
