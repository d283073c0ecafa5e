// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// UsersHandler handles per-user operations.
type UsersHandler struct {
	deps Dependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps Dependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleUser handles DELETE /users/{id}/responses requests. The delete is
// hard: the user's entries vanish from every event.
func (h *UsersHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_user"
	rest := strings.TrimPrefix(r.URL.Path, "/users/")
	userID, tail, _ := strings.Cut(rest, "/")
	if userID == "" || tail != "responses" || r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.ResetUserResponses(r.Context(), userID); err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
