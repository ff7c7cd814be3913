package handlers

import (
	"context"
	"errors"
	"net/http"

	"parasitehub/internal/middleware"
	"parasitehub/internal/models"
	"parasitehub/internal/store"
	"parasitehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	store *store.Store
}

func NewReactionHandler(st *store.Store) *ReactionHandler {
	return &ReactionHandler{store: st}
}

// Like toggles the caller's like on a post and returns fresh counts as JSON.
func (h *ReactionHandler) Like(c *gin.Context) {
	h.toggle(c, h.store.Reactions.ToggleLike, "Successfully liked post.")
}

// Dislike is symmetric to Like.
func (h *ReactionHandler) Dislike(c *gin.Context) {
	h.toggle(c, h.store.Reactions.ToggleDislike, "Successfully disliked post.")
}

func (h *ReactionHandler) toggle(
	c *gin.Context,
	fn func(ctx context.Context, kind string, postID, userID uint) (store.Counts, error),
	message string,
) {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "login required"})
		return
	}
	currentUser := user.(*models.User)

	kind := c.Param("kind")
	if kind != models.KindClinical && kind != models.KindResearch {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown post kind"})
		return
	}
	postID := utils.StringToUint(c.Param("id"))

	counts, err := fn(c.Request.Context(), kind, postID, currentUser.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not save reaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"likes":    counts.Likes,
		"dislikes": counts.Dislikes,
	})
}
