package api

import (
	"net/http"

	"culinary-be/internal/session"
)

// confirmDelete handles POST /api/delete/confirm and returns what was removed.
func (h *handler) confirmDelete(w http.ResponseWriter, r *http.Request, s *session.Session) {
	deleted, err := s.Workflow.ConfirmDelete(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, r, http.StatusOK, deleted)
}

func (h *handler) cancelDelete(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := s.Workflow.CancelDelete(); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
