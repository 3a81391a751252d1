package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/model"
)

// PostService is what PostHandler needs from the service layer.
type PostService interface {
	Records[model.Post]
	Create(ctx context.Context, title, content string, authorID int64) (model.Post, error)
}

// PostHandler serves /posts.
type PostHandler struct {
	*resource[model.Post]
	posts PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		resource: &resource[model.Post]{name: "post", records: posts, logger: logger},
		posts:    posts,
	}
}

type createPostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	AuthorID *int64  `json:"author_id"`
}

// HandleCreate publishes a post.
//
// HTTP: POST /posts
// REQUEST BODY: {"title": "T", "content": "C", "author_id": 1}
// RESPONSE: 201 with the stored post, 400 reference_not_found when the
// author does not exist.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err := required([]string{"title", "content", "author_id"}, map[string]bool{
		"title":     req.Title != nil,
		"content":   req.Content != nil,
		"author_id": req.AuthorID != nil,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	post, err := h.posts.Create(r.Context(), *req.Title, *req.Content, *req.AuthorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}
