package apiserver

import (
	"net/http"

	"filmorate-go/internal/services"
)

// CatalogHandler exposes the read-only genre and MPA rating catalogs.
type CatalogHandler struct {
	genreService services.GenreService
	mpaService   services.MpaService
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(genreService services.GenreService, mpaService services.MpaService) *CatalogHandler {
	return &CatalogHandler{genreService: genreService, mpaService: mpaService}
}

// ListGenresHandler handles GET /genres
func (h *CatalogHandler) ListGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, genres)
}

// GetGenreHandler handles GET /genres/{id}
func (h *CatalogHandler) GetGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid genre id", http.StatusBadRequest)
		return
	}
	genre, err := h.genreService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, genre)
}

// ListMpaHandler handles GET /mpa
func (h *CatalogHandler) ListMpaHandler(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.mpaService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, ratings)
}

// GetMpaHandler handles GET /mpa/{id}
func (h *CatalogHandler) GetMpaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid mpa id", http.StatusBadRequest)
		return
	}
	rating, err := h.mpaService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, rating)
}
