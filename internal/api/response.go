package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/order"
	"culinary-be/internal/supplier"
	"culinary-be/internal/workflow"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.FromCtx(r.Context()).Error("encoding response failed", zap.Error(err))
		}
	}
}

func jsonError(w http.ResponseWriter, r *http.Request, status int, message string) {
	jsonResponse(w, r, status, errorResponse{Error: message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// writeError maps workflow and store errors to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *workflow.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, r, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, supplier.ErrSupplierNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		jsonError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrNothingToDelete):
		jsonError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrUnknownSortField),
		errors.Is(err, workflow.ErrLineIndex),
		errors.Is(err, workflow.ErrLastLine):
		jsonError(w, r, http.StatusBadRequest, err.Error())
	default:
		logger.FromCtx(r.Context()).Error("store request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		jsonError(w, r, http.StatusBadGateway, err.Error())
	}
}
