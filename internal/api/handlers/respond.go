package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elbenfreund/armyimp/internal/api/dto"
	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/roster"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP responses: missing entities to
// 404, builder violation sets to 422 with the complete violation list,
// anything else to 500 with a generic message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: notFound.Error()})
		return
	}

	var verrs *roster.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]string, len(verrs.Violations))
		for i, v := range verrs.Violations {
			violations[i] = v.Error()
		}
		writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:      "Validation failed",
			Violations: violations,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
}
