package handlers

import (
	"errors"
	"net/http"
	"time"

	"parasitehub/internal/services"
	"parasitehub/internal/store"
	"parasitehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type ParasiteHandler struct {
	store        *store.Store
	uploads      *services.UploadService
	popularLimit int
}

func NewParasiteHandler(st *store.Store, uploads *services.UploadService, popularLimit int) *ParasiteHandler {
	return &ParasiteHandler{store: st, uploads: uploads, popularLimit: popularLimit}
}

// Index lists the catalog alphabetically.
func (h *ParasiteHandler) Index(c *gin.Context) {
	parasites, err := h.store.Parasites.ListByName(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load parasites")
		return
	}

	Render(c, http.StatusOK, "parasite/index.html", gin.H{
		"Title":     "Parasites",
		"Parasites": parasites,
		"Active":    "index",
	})
}

func (h *ParasiteHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

// PublicContent shows the catalog, the most viewed parasites and the article
// list. Cached briefly; this page is the most visited and changes slowly.
func (h *ParasiteHandler) PublicContent(c *gin.Context) {
	cacheKey := "parasite:public_content"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			// Render mutates its map with per-request keys, so the cached
			// copy must never be handed over directly.
			Render(c, http.StatusOK, "parasite/public_content.html", cloneH(data))
			return
		}
	}

	ctx := c.Request.Context()
	parasites, err := h.store.Parasites.ListByName(ctx)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load parasites")
		return
	}
	topViewed, err := h.store.Parasites.ListByPopularity(ctx, h.popularLimit)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load parasites")
		return
	}
	articles, err := h.store.Articles.ListByViews(ctx)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load articles")
		return
	}

	data := gin.H{
		"Title":     "Public Content",
		"Parasites": parasites,
		"TopViewed": topViewed,
		"Articles":  articles,
		"Active":    "public",
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)

	Render(c, http.StatusOK, "parasite/public_content.html", cloneH(data))
}

func (h *ParasiteHandler) ShowAdd(c *gin.Context) {
	Render(c, http.StatusOK, "parasite/add.html", gin.H{"Title": "Add Parasite"})
}

func (h *ParasiteHandler) Add(c *gin.Context) {
	name := c.PostForm("name")
	intro := c.PostForm("intro")

	picture := ""
	if header, err := c.FormFile("picture"); err == nil {
		path, err := h.uploads.Save(header)
		if err != nil {
			Render(c, http.StatusInternalServerError, "parasite/add.html", gin.H{"Error": "Could not store picture"})
			return
		}
		picture = path
	}

	_, err := h.store.Parasites.Create(c.Request.Context(), name, picture, intro)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateName):
			Render(c, http.StatusConflict, "parasite/add.html", gin.H{"Error": "A parasite with that name already exists", "Name": name, "Intro": intro})
		case errors.Is(err, store.ErrValidation):
			Render(c, http.StatusBadRequest, "parasite/add.html", gin.H{"Error": "Please enter a valid parasite name", "Intro": intro})
		default:
			Render(c, http.StatusInternalServerError, "parasite/add.html", gin.H{"Error": "Could not save parasite"})
		}
		return
	}

	utils.GetCache().Delete("parasite:public_content")
	c.Redirect(http.StatusFound, "/public_content")
}

// Detail is the public parasite page. Every visit counts: the view counter
// increments by exactly one per request, intentionally not idempotent.
func (h *ParasiteHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	parasite, err := h.store.Parasites.View(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Parasite not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load parasite")
		return
	}

	articles, err := h.store.Articles.ListByParasite(c.Request.Context(), parasite.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load articles")
		return
	}

	Render(c, http.StatusOK, "parasite/detail.html", gin.H{
		"Title":    parasite.Name,
		"Parasite": parasite,
		"Intro":    utils.RenderMarkdown(parasite.Intro),
		"Articles": articles,
	})
}
