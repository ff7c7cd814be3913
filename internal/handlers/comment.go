package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"parasitehub/internal/middleware"
	"parasitehub/internal/models"
	"parasitehub/internal/store"
	"parasitehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store *store.Store
}

func NewCommentHandler(st *store.Store) *CommentHandler {
	return &CommentHandler{store: st}
}

// Create adds a comment to a clinical or research post. Whitespace-only text
// sends the caller straight back to the post page; nothing is written.
func (h *CommentHandler) Create(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	kind := c.Param("kind")
	if kind != models.KindClinical && kind != models.KindResearch {
		RenderError(c, http.StatusBadRequest, "Unknown post kind")
		return
	}
	postID := utils.StringToUint(c.Param("post_id"))
	parasiteID := c.Param("id")
	text := c.PostForm("comment_text")

	postPath := fmt.Sprintf("/parasites/%s/%s/%d", parasiteID, kind, postID)

	_, err := h.store.Comments.AddComment(c.Request.Context(), kind, postID, profile.ID, text)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyText):
			// Re-render by redirecting back; the form stays as it was.
			c.Redirect(http.StatusFound, postPath)
		case errors.Is(err, store.ErrNotFound):
			RenderError(c, http.StatusNotFound, "Post not found")
		default:
			RenderError(c, http.StatusInternalServerError, "Could not save comment")
		}
		return
	}

	c.Redirect(http.StatusFound, postPath)
}

// Reply nests one level under a comment and answers JSON for the inline form.
func (h *CommentHandler) Reply(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "login required"})
		return
	}
	commentID := utils.StringToUint(c.Param("comment_id"))
	text := c.PostForm("reply_text")

	reply, err := h.store.Comments.AddReply(c.Request.Context(), commentID, profile.ID, text)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"message": "empty string"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply_text": reply.Text,
		"comment_id": commentID,
		"username":   profile.User.Username,
	})
}
