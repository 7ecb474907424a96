package api

import (
	"net/http"

	"culinary-be/internal/item"
	"culinary-be/internal/session"
	"culinary-be/internal/workflow"
)

type sortResponse struct {
	Sort  workflow.SortState `json:"sort"`
	Items []*item.Item       `json:"items"`
}

// listItems handles GET /api/items. A search parameter, even empty, replaces
// the active search term.
func (h *handler) listItems(w http.ResponseWriter, r *http.Request, s *session.Session) {
	q := r.URL.Query()
	if q.Has("search") {
		jsonResponse(w, r, http.StatusOK, s.Workflow.SearchItems(q.Get("search")))
		return
	}
	jsonResponse(w, r, http.StatusOK, s.Workflow.Items())
}

func (h *handler) createItem(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var d item.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.Workflow.CreateItem(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusCreated, created)
}

func (h *handler) updateItem(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var d item.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.Workflow.UpdateItem(r.Context(), r.PathValue("id"), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusOK, updated)
}

// sortItems handles POST /api/items/sort?field=.
func (h *handler) sortItems(w http.ResponseWriter, r *http.Request, s *session.Session) {
	state, err := s.Workflow.SortItems(workflow.SortField(r.URL.Query().Get("field")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusOK, sortResponse{Sort: state, Items: s.Workflow.Items()})
}

func (h *handler) markItem(w http.ResponseWriter, r *http.Request, s *session.Session) {
	jsonResponse(w, r, http.StatusOK, s.Workflow.MarkItemForDelete(r.PathValue("id")))
}
