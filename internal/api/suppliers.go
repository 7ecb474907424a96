package api

import (
	"net/http"

	"culinary-be/internal/session"
	"culinary-be/internal/supplier"
)

func (h *handler) listSuppliers(w http.ResponseWriter, r *http.Request, s *session.Session) {
	q := r.URL.Query()
	if q.Has("search") {
		jsonResponse(w, r, http.StatusOK, s.Workflow.SearchSuppliers(q.Get("search")))
		return
	}
	jsonResponse(w, r, http.StatusOK, s.Workflow.Suppliers())
}

// activeSuppliers handles GET /api/suppliers/active, the order form choices.
func (h *handler) activeSuppliers(w http.ResponseWriter, r *http.Request, s *session.Session) {
	jsonResponse(w, r, http.StatusOK, s.Workflow.ActiveSuppliers())
}

func (h *handler) createSupplier(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var d supplier.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.Workflow.CreateSupplier(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusCreated, created)
}

func (h *handler) updateSupplier(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var d supplier.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.Workflow.UpdateSupplier(r.Context(), r.PathValue("id"), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusOK, updated)
}

func (h *handler) markSupplier(w http.ResponseWriter, r *http.Request, s *session.Session) {
	jsonResponse(w, r, http.StatusOK, s.Workflow.MarkSupplierForDelete(r.PathValue("id")))
}
