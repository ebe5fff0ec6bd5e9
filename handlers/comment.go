package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp/middleware"
	"blogapp/models"
	"blogapp/store"
)

type CommentHandler struct {
	comments store.CommentStore
}

func NewCommentHandler(comments store.CommentStore) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	userID := middleware.CurrentUserID(c)

	var req models.CommentForm
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", postID))
		return
	}

	// The insert itself is unconditional; a comment on a vanished post is
	// rejected by the foreign key and lands on the fault boundary.
	if err := h.comments.Add(c.Request.Context(), postID, userID, req.Title, req.Text); err != nil {
		log.Printf("Error creating comment: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", postID))
}

// DeleteComment is open to any caller; the store decides whether the actor
// is the comment's author or the post's owner. The response is the same
// redirect regardless of outcome.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	commentID, ok := paramInt(c, "commentId")
	if !ok {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", postID))
		return
	}
	userID := middleware.CurrentUserID(c)

	err := h.comments.Delete(c.Request.Context(), postID, commentID, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrForbidden) {
		log.Printf("Error deleting comment: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", postID))
}
