package apiserver

import (
	"encoding/json"
	"net/http"

	"filmorate-go/internal/models"
	"filmorate-go/internal/services"
)

// UserHandler exposes user CRUD, friendship management and the activity
// feed over HTTP.
type UserHandler struct {
	userService services.UserService
	feedService services.FeedService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService services.UserService, feedService services.FeedService) *UserHandler {
	return &UserHandler{userService: userService, feedService: feedService}
}

// CreateUserHandler handles POST /users
func (h *UserHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.userService.Create(r.Context(), &user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, created)
}

// UpdateUserHandler handles PUT /users
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.userService.Update(r.Context(), &user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, updated)
}

// ListUsersHandler handles GET /users
func (h *UserHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, users)
}

// GetUserHandler handles GET /users/{id}
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

// DeleteUserHandler handles DELETE /users/{id}
func (h *UserHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.userService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// AddFriendHandler handles PUT /users/{id}/friends/{friendId}
func (h *UserHandler) AddFriendHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		writeJSONError(w, "invalid friend id", http.StatusBadRequest)
		return
	}
	if err := h.userService.AddFriend(r.Context(), id, friendID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "friend added"})
}

// RemoveFriendHandler handles DELETE /users/{id}/friends/{friendId}
func (h *UserHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		writeJSONError(w, "invalid friend id", http.StatusBadRequest)
		return
	}
	if err := h.userService.RemoveFriend(r.Context(), id, friendID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "friend removed"})
}

// ListFriendsHandler handles GET /users/{id}/friends
func (h *UserHandler) ListFriendsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	friends, err := h.userService.GetFriends(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, friends)
}

// CommonFriendsHandler handles GET /users/{id}/friends/common/{otherId}
func (h *UserHandler) CommonFriendsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	common, err := h.userService.GetCommonFriends(r.Context(), id, otherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, common)
}

// GetFeedHandler handles GET /users/{id}/feed
func (h *UserHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	events, err := h.feedService.GetFeed(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, events)
}
