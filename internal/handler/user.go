package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/model"
)

// UserService is what UserHandler needs from the service layer.
type UserService interface {
	Records[model.User]
	Create(ctx context.Context, username, email string) (model.User, error)
}

// UserHandler serves /users.
type UserHandler struct {
	*resource[model.User]
	users UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		resource: &resource[model.User]{name: "user", records: users, logger: logger},
		users:    users,
	}
}

type createUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// HandleCreate registers a user.
//
// HTTP: POST /users
// REQUEST BODY: {"username": "alice", "email": "a@x.com"}
// RESPONSE: 201 with the stored user, 409 if the username or email is taken.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err := required([]string{"username", "email"}, map[string]bool{
		"username": req.Username != nil,
		"email":    req.Email != nil,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Create(r.Context(), *req.Username, *req.Email)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
