// internal/api/respond.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	custom_errors "portfolio/internal/errors"
)

// respondWithJSON writes payload as a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes {"error": message}.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// decodeJSON reads a request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// respondWithEventError maps the errors of state updates to status codes.
func (h *Handler) respondWithEventError(w http.ResponseWriter, err error) {
	var unknown *custom_errors.ErrUnknownCommit
	var undated *custom_errors.ErrUndatedCommit
	var hidden *custom_errors.ErrCommitNotInView
	switch {
	case errors.As(err, &unknown):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &undated), errors.As(err, &hidden):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Failed to apply view event", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
