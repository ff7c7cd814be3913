package handlers

import (
	"errors"
	"net/http"

	"parasitehub/internal/middleware"
	"parasitehub/internal/services"
	"parasitehub/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	store   *store.Store
	uploads *services.UploadService
}

func NewUserHandler(st *store.Store, uploads *services.UploadService) *UserHandler {
	return &UserHandler{store: st, uploads: uploads}
}

// Profile shows a user's profile page.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.store.Users.ProfileByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load profile")
		return
	}

	current := middleware.CurrentProfile(c)
	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":   profile.User.Username,
		"Profile": profile,
		"IsSelf":  current != nil && current.ID == profile.ID,
	})
}

// UpdateProfile lets a user change their own picture. Role changes go through
// the admin manage page only.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	username := c.Param("username")
	current := middleware.CurrentProfile(c)

	profile, err := h.store.Users.ProfileByUsername(c.Request.Context(), username)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if current == nil || current.ID != profile.ID {
		c.String(http.StatusForbidden, "You are not authorised to view this page.")
		return
	}

	if header, err := c.FormFile("profile_picture"); err == nil {
		path, err := h.uploads.Save(header)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not store picture")
			return
		}
		if err := h.store.Users.UpdatePicture(c.Request.Context(), profile.ID, path); err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not update profile")
			return
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Posts lists every post a user has authored, both kinds merged.
func (h *UserHandler) Posts(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.store.Users.ProfileByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load user")
		return
	}

	clinical, research, err := h.store.Posts.ListByAuthor(c.Request.Context(), profile.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts")
		return
	}

	current := middleware.CurrentProfile(c)
	Render(c, http.StatusOK, "user/posts.html", gin.H{
		"Title":         username + "'s posts",
		"Profile":       profile,
		"ClinicalPosts": clinical,
		"ResearchPosts": research,
		"IsSelf":        current != nil && current.ID == profile.ID,
	})
}
