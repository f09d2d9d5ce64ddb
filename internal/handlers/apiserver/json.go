package apiserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"filmorate-go/internal/services"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSONResponse is a helper for sending JSON responses.
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already out, nothing more we can do here.
			log.Printf("Failed to encode JSON response: %v", err)
		}
	}
}

// writeJSONError is a helper for sending error responses.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

// writeServiceError maps service-layer errors onto HTTP statuses:
// validation and self-friendship → 400, not-found → 404, everything
// else → 500 with the detail kept out of the response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrSelfFriendship):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrFilmNotFound),
		errors.Is(err, services.ErrGenreNotFound),
		errors.Is(err, services.ErrMpaNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("Unhandled service error: %v", err)
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (uint, error) {
	vars := mux.Vars(r)
	raw, ok := vars[name]
	if !ok {
		return 0, errors.New("missing path parameter " + name)
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}
