package handlers

import (
	"errors"
	"net/http"

	"parasitehub/internal/middleware"
	"parasitehub/internal/models"
	"parasitehub/internal/store"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{store: st}
}

// SearchPage renders the user search form.
func (h *AdminHandler) SearchPage(c *gin.Context) {
	Render(c, http.StatusOK, "admin/search.html", gin.H{"Title": "Search Users"})
}

// SearchResults lists profiles matching the username query. Any logged-in
// user may search; the IsAdmin flag only controls whether manage links show.
func (h *AdminHandler) SearchResults(c *gin.Context) {
	query := c.Query("q")

	profiles, err := h.store.Users.SearchByUsername(c.Request.Context(), query)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Search failed")
		return
	}

	current := middleware.CurrentProfile(c)
	isAdmin := current != nil && current.Role == models.RoleAdmin

	Render(c, http.StatusOK, "admin/search_results.html", gin.H{
		"Title":   "Search Results",
		"Query":   query,
		"Results": profiles,
		"IsAdmin": isAdmin,
	})
}

// Manage shows the role form for one user.
func (h *AdminHandler) Manage(c *gin.Context) {
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

	Render(c, http.StatusOK, "admin/manage.html", gin.H{
		"Title":    "Manage " + username,
		"Profile":  profile,
		"Username": username,
		"Changed":  false,
	})
}

// SetRole applies a role change. The AdminOnly gate has already run, but the
// store re-checks the actor's role so the rule holds even off the HTTP path.
func (h *AdminHandler) SetRole(c *gin.Context) {
	username := c.Param("username")
	newRole := c.PostForm("role")
	current := middleware.CurrentProfile(c)

	actorRole := ""
	if current != nil {
		actorRole = current.Role
	}

	changed, err := h.store.Users.SetRole(c.Request.Context(), actorRole, username, newRole)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrForbidden):
			c.String(http.StatusForbidden, "You are not authorised to view this page.")
		case errors.Is(err, store.ErrNotFound):
			RenderError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrInvalidRole):
			profile, perr := h.store.Users.ProfileByUsername(c.Request.Context(), username)
			if perr != nil {
				RenderError(c, http.StatusNotFound, "User not found")
				return
			}
			Render(c, http.StatusBadRequest, "admin/manage.html", gin.H{
				"Title":    "Manage " + username,
				"Profile":  profile,
				"Username": username,
				"Changed":  false,
				"Error":    "Invalid account type",
			})
		default:
			RenderError(c, http.StatusInternalServerError, "Could not update role")
		}
		return
	}

	profile, err := h.store.Users.ProfileByUsername(c.Request.Context(), username)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load user")
		return
	}

	Render(c, http.StatusOK, "admin/manage.html", gin.H{
		"Title":    "Manage " + username,
		"Profile":  profile,
		"Username": username,
		"Changed":  changed,
	})
}
