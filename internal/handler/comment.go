package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/model"
)

// CommentService is what CommentHandler needs from the service layer.
type CommentService interface {
	Records[model.Comment]
	Create(ctx context.Context, content string, postID, authorID int64) (model.Comment, error)
}

// CommentHandler serves /comments.
type CommentHandler struct {
	*resource[model.Comment]
	comments CommentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		resource: &resource[model.Comment]{name: "comment", records: comments, logger: logger},
		comments: comments,
	}
}

type createCommentRequest struct {
	Content  *string `json:"content"`
	PostID   *int64  `json:"post_id"`
	AuthorID *int64  `json:"author_id"`
}

// HandleCreate adds a comment to a post.
//
// HTTP: POST /comments
// REQUEST BODY: {"content": "nice", "post_id": 1, "author_id": 1}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err := required([]string{"content", "post_id", "author_id"}, map[string]bool{
		"content":   req.Content != nil,
		"post_id":   req.PostID != nil,
		"author_id": req.AuthorID != nil,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), *req.Content, *req.PostID, *req.AuthorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
