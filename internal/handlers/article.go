package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"parasitehub/internal/middleware"
	"parasitehub/internal/services"
	"parasitehub/internal/store"
	"parasitehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	store   *store.Store
	uploads *services.UploadService
}

func NewArticleHandler(st *store.Store, uploads *services.UploadService) *ArticleHandler {
	return &ArticleHandler{store: st, uploads: uploads}
}

func (h *ArticleHandler) ShowCreate(c *gin.Context) {
	parasite, err := h.store.Parasites.GetByID(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Parasite not found")
		return
	}

	Render(c, http.StatusOK, "article/create.html", gin.H{
		"Title":    "Add Article",
		"Parasite": parasite,
	})
}

func (h *ArticleHandler) Create(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	parasiteID := utils.StringToUint(c.Param("id"))

	title := c.PostForm("title")
	content := c.PostForm("content")
	url := c.PostForm("url")

	picture := ""
	if header, err := c.FormFile("picture"); err == nil {
		path, err := h.uploads.Save(header)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not store picture")
			return
		}
		picture = path
	}

	_, err := h.store.Articles.Create(c.Request.Context(), parasiteID, profile.ID, title, content, url, picture)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			RenderError(c, http.StatusNotFound, "Parasite not found")
		case errors.Is(err, store.ErrValidation):
			parasite, perr := h.store.Parasites.GetByID(c.Request.Context(), parasiteID)
			if perr != nil {
				RenderError(c, http.StatusNotFound, "Parasite not found")
				return
			}
			Render(c, http.StatusBadRequest, "article/create.html", gin.H{
				"Error":    "Title and content are required",
				"Parasite": parasite,
				"URL":      url,
			})
		default:
			RenderError(c, http.StatusInternalServerError, "Could not save article")
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/parasites/%d", parasiteID))
}

// Detail renders one article and bumps its view counter.
func (h *ArticleHandler) Detail(c *gin.Context) {
	article, err := h.store.Articles.View(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Article not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load article")
		return
	}

	Render(c, http.StatusOK, "article/detail.html", gin.H{
		"Title":   article.Title,
		"Article": article,
		"Content": utils.RenderMarkdown(article.Content),
	})
}
