package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"parasitehub/internal/middleware"
	"parasitehub/internal/models"
	"parasitehub/internal/services"
	"parasitehub/internal/store"
	"parasitehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	store        *store.Store
	uploads      *services.UploadService
	popularLimit int
}

func NewPostHandler(st *store.Store, uploads *services.UploadService, popularLimit int) *PostHandler {
	return &PostHandler{store: st, uploads: uploads, popularLimit: popularLimit}
}

// ClinicalPortal lists the catalog for clinicians.
func (h *PostHandler) ClinicalPortal(c *gin.Context) {
	parasites, err := h.store.Parasites.ListByName(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load parasites")
		return
	}
	Render(c, http.StatusOK, "post/clinical_portal.html", gin.H{
		"Title":     "Clinical Portal",
		"Parasites": parasites,
		"Active":    "clinical",
	})
}

// ResearchPortal lists the catalog for clinicians and researchers.
func (h *PostHandler) ResearchPortal(c *gin.Context) {
	parasites, err := h.store.Parasites.ListByName(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load parasites")
		return
	}
	Render(c, http.StatusOK, "post/research_portal.html", gin.H{
		"Title":     "Research Portal",
		"Parasites": parasites,
		"Active":    "research",
	})
}

// ClinicalParasitePage shows a parasite's clinical posts plus the most liked
// posts sidebar.
func (h *PostHandler) ClinicalParasitePage(c *gin.Context) {
	parasiteID := utils.StringToUint(c.Param("id"))

	parasite, err := h.store.Parasites.GetByID(c.Request.Context(), parasiteID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Parasite not found")
		return
	}

	posts, err := h.store.Posts.ListClinicalByParasite(c.Request.Context(), parasiteID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts")
		return
	}

	Render(c, http.StatusOK, "post/clinical_parasite.html", gin.H{
		"Title":    parasite.Name + " - Clinical",
		"Parasite": parasite,
		"Posts":    posts,
		"PopPosts": h.popularClinical(c),
	})
}

func (h *PostHandler) ResearchParasitePage(c *gin.Context) {
	parasiteID := utils.StringToUint(c.Param("id"))

	parasite, err := h.store.Parasites.GetByID(c.Request.Context(), parasiteID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Parasite not found")
		return
	}

	posts, err := h.store.Posts.ListResearchByParasite(c.Request.Context(), parasiteID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts")
		return
	}

	Render(c, http.StatusOK, "post/research_parasite.html", gin.H{
		"Title":    parasite.Name + " - Research",
		"Parasite": parasite,
		"Posts":    posts,
		"PopPosts": h.popularResearch(c),
	})
}

// Popularity sidebars are cached for a minute; like counts don't need to be
// read-your-writes fresh here.
func (h *PostHandler) popularClinical(c *gin.Context) []models.Post {
	cacheKey := "post:popular:clinical"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if posts, ok := cached.([]models.Post); ok {
			return posts
		}
	}
	posts, err := h.store.Posts.PopularClinical(c.Request.Context(), h.popularLimit)
	if err != nil {
		return nil
	}
	utils.GetCache().Set(cacheKey, posts, 1*time.Minute)
	return posts
}

func (h *PostHandler) popularResearch(c *gin.Context) []models.ResearchPost {
	cacheKey := "post:popular:research"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if posts, ok := cached.([]models.ResearchPost); ok {
			return posts
		}
	}
	posts, err := h.store.Posts.PopularResearch(c.Request.Context(), h.popularLimit)
	if err != nil {
		return nil
	}
	utils.GetCache().Set(cacheKey, posts, 1*time.Minute)
	return posts
}

func (h *PostHandler) ShowCreateClinical(c *gin.Context) {
	parasite, err := h.store.Parasites.GetByID(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Parasite not found")
		return
	}
	Render(c, http.StatusOK, "post/create_clinical.html", gin.H{"Title": "Add Post", "Parasite": parasite})
}

// CreateClinical persists a clinical post with its image attachments. The
// clinician gate has already run; a denied caller never reaches this.
func (h *PostHandler) CreateClinical(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	parasiteID := utils.StringToUint(c.Param("id"))

	title := c.PostForm("title")
	content := c.PostForm("content")

	images, err := h.collectUploads(c, "images")
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not store images")
		return
	}

	_, err = h.store.Posts.CreateClinical(c.Request.Context(), parasiteID, profile.ID, title, content, images)
	if err != nil {
		h.renderCreateError(c, err, "post/create_clinical.html", parasiteID)
		return
	}

	utils.GetCache().Delete("post:popular:clinical")
	c.Redirect(http.StatusFound, fmt.Sprintf("/parasites/%d/clinical", parasiteID))
}

func (h *PostHandler) ShowCreateResearch(c *gin.Context) {
	parasite, err := h.store.Parasites.GetByID(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Parasite not found")
		return
	}
	Render(c, http.StatusOK, "post/create_research.html", gin.H{"Title": "Add Research Post", "Parasite": parasite})
}

// CreateResearch additionally accepts file attachments, which only research
// posts carry.
func (h *PostHandler) CreateResearch(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	parasiteID := utils.StringToUint(c.Param("id"))

	title := c.PostForm("title")
	content := c.PostForm("content")

	images, err := h.collectUploads(c, "images")
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not store images")
		return
	}
	files, err := h.collectUploads(c, "files")
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not store files")
		return
	}

	_, err = h.store.Posts.CreateResearch(c.Request.Context(), parasiteID, profile.ID, title, content, images, files)
	if err != nil {
		h.renderCreateError(c, err, "post/create_research.html", parasiteID)
		return
	}

	utils.GetCache().Delete("post:popular:research")
	c.Redirect(http.StatusFound, fmt.Sprintf("/parasites/%d/research", parasiteID))
}

func (h *PostHandler) collectUploads(c *gin.Context, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all; zero attachments is valid.
		return nil, nil
	}
	return h.uploads.SaveAll(form.File[field])
}

func (h *PostHandler) renderCreateError(c *gin.Context, err error, view string, parasiteID uint) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		RenderError(c, http.StatusNotFound, "Parasite not found")
	case errors.Is(err, store.ErrValidation):
		parasite, perr := h.store.Parasites.GetByID(c.Request.Context(), parasiteID)
		if perr != nil {
			RenderError(c, http.StatusNotFound, "Parasite not found")
			return
		}
		Render(c, http.StatusBadRequest, view, gin.H{"Error": "Title is required", "Parasite": parasite})
	default:
		RenderError(c, http.StatusInternalServerError, "Could not save post")
	}
}

// ClinicalDetail renders one clinical post with its attachments and comment
// tree.
func (h *PostHandler) ClinicalDetail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("post_id"))

	post, err := h.store.Posts.GetClinical(c.Request.Context(), postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	images, err := h.store.Posts.ClinicalImages(c.Request.Context(), post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load attachments")
		return
	}
	comments, err := h.store.Comments.ListForPost(c.Request.Context(), models.KindClinical, post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load comments")
		return
	}

	Render(c, http.StatusOK, "post/clinical_detail.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Kind":     models.KindClinical,
		"Content":  utils.RenderMarkdown(post.Content),
		"Images":   images,
		"Comments": comments,
	})
}

// ResearchDetail is the research twin of ClinicalDetail.
func (h *PostHandler) ResearchDetail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("post_id"))

	post, err := h.store.Posts.GetResearch(c.Request.Context(), postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	images, files, err := h.store.Posts.ResearchAttachments(c.Request.Context(), post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load attachments")
		return
	}
	comments, err := h.store.Comments.ListForPost(c.Request.Context(), models.KindResearch, post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load comments")
		return
	}

	Render(c, http.StatusOK, "post/research_detail.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Kind":     models.KindResearch,
		"Content":  utils.RenderMarkdown(post.Content),
		"Images":   images,
		"Files":    files,
		"Comments": comments,
	})
}

// Delete removes one of the caller's own posts and everything hanging off it.
func (h *PostHandler) Delete(c *gin.Context) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	postID := utils.StringToUint(c.Param("id"))

	if err := h.store.Posts.Delete(c.Request.Context(), profile.ID, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Post not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not delete post")
		return
	}

	utils.GetCache().Delete("post:popular:clinical")
	utils.GetCache().Delete("post:popular:research")
	c.Redirect(http.StatusFound, "/users/"+profile.User.Username+"/posts")
}
