package apiserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"filmorate-go/internal/models"
	"filmorate-go/internal/services"
)

// defaultPopularCount is the top-N size when the caller omits ?count=.
const defaultPopularCount = 10

// FilmHandler exposes film CRUD, likes and the popularity ranking over HTTP.
type FilmHandler struct {
	filmService services.FilmService
}

// NewFilmHandler creates a new FilmHandler instance.
func NewFilmHandler(filmService services.FilmService) *FilmHandler {
	return &FilmHandler{filmService: filmService}
}

// CreateFilmHandler handles POST /films
func (h *FilmHandler) CreateFilmHandler(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.filmService.Create(r.Context(), &film)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, created)
}

// UpdateFilmHandler handles PUT /films
func (h *FilmHandler) UpdateFilmHandler(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.filmService.Update(r.Context(), &film)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, updated)
}

// ListFilmsHandler handles GET /films
func (h *FilmHandler) ListFilmsHandler(w http.ResponseWriter, r *http.Request) {
	films, err := h.filmService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, films)
}

// GetFilmHandler handles GET /films/{id}
func (h *FilmHandler) GetFilmHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid film id", http.StatusBadRequest)
		return
	}
	film, err := h.filmService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, film)
}

// DeleteFilmHandler handles DELETE /films/{id}
func (h *FilmHandler) DeleteFilmHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid film id", http.StatusBadRequest)
		return
	}
	if err := h.filmService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "film deleted"})
}

// AddLikeHandler handles PUT /films/{id}/like/{userId}
func (h *FilmHandler) AddLikeHandler(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid film id", http.StatusBadRequest)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.filmService.AddLike(r.Context(), filmID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "like added"})
}

// RemoveLikeHandler handles DELETE /films/{id}/like/{userId}
func (h *FilmHandler) RemoveLikeHandler(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid film id", http.StatusBadRequest)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.filmService.RemoveLike(r.Context(), filmID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "like removed"})
}

// PopularFilmsHandler handles GET /films/popular?count=N
// count defaults to 10; the default is enforced here at the boundary,
// not inside the ranking itself.
func (h *FilmHandler) PopularFilmsHandler(w http.ResponseWriter, r *http.Request) {
	count := defaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, "invalid count parameter", http.StatusBadRequest)
			return
		}
		count = parsed
	}

	films, err := h.filmService.GetTopFilms(r.Context(), count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, films)
}
