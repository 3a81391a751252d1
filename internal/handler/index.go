package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/model"
)

// IndexResponse describes the API at GET /.
type IndexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var index = IndexResponse{
	Message: "Welcome to the Blog API",
	Endpoints: map[string]string{
		"create_user":    "POST /users",
		"list_users":     "GET /users",
		"get_user":       "GET /users/{id}",
		"delete_user":    "DELETE /users/{id}",
		"create_post":    "POST /posts",
		"list_posts":     "GET /posts",
		"get_post":       "GET /posts/{id}",
		"delete_post":    "DELETE /posts/{id}",
		"create_comment": "POST /comments",
		"list_comments":  "GET /comments",
		"get_comment":    "GET /comments/{id}",
		"delete_comment": "DELETE /comments/{id}",
		"health":         "GET /healthz",
		"api_spec":       "GET /apispec_1.json",
	},
}

// HandleIndex lists the available endpoints.
//
// HTTP: GET /
func HandleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, index)
}

// HandleFavicon answers browsers that ask for an icon. There is none.
func HandleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// HandleNotFound is the router's fallback for unknown paths.
func HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: "the requested URL was not found on the server",
		Kind:  KindNotFound,
	})
}

// HandleMethodNotAllowed is the router's fallback for a known path hit
// with the wrong method.
func HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error: "method " + r.Method + " is not allowed on " + r.URL.Path,
		Kind:  KindMethodNotAllowed,
	})
}

// UserLister is the storage read the health check performs.
type UserLister interface {
	GetAll(ctx context.Context) ([]model.User, error)
}

// HealthHandler reports whether the server can reach its store.
type HealthHandler struct {
	users  UserLister
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(users UserLister, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{users: users, logger: logger}
}

// HandleHealth runs one cheap read against storage.
//
// HTTP: GET /healthz
// RESPONSE: 200 {"status":"ok"}, or a 500 error body when storage fails.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := h.users.GetAll(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
