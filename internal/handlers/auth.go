package handlers

import (
	"errors"
	"net/http"

	"parasitehub/internal/models"
	"parasitehub/internal/services"
	"parasitehub/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store   *store.Store
	uploads *services.UploadService
}

func NewAuthHandler(st *store.Store, uploads *services.UploadService) *AuthHandler {
	return &AuthHandler{store: st, uploads: uploads}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	role := c.DefaultPostForm("role", models.RolePublic)

	picture := ""
	if header, err := c.FormFile("profile_picture"); err == nil {
		path, err := h.uploads.Save(header)
		if err != nil {
			Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Error": "Could not store profile picture"})
			return
		}
		picture = path
	}

	_, err := h.store.Users.Register(c.Request.Context(), username, email, password, role, picture)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			Render(c, http.StatusConflict, "auth/register.html", gin.H{"Error": "Username already taken"})
		case errors.Is(err, store.ErrInvalidRole):
			Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Invalid account type"})
		case errors.Is(err, store.ErrValidation):
			Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Username and password are required"})
		default:
			Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Error": "Registration failed"})
		}
		return
	}

	Render(c, http.StatusOK, "auth/register.html", gin.H{"Registered": true})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.store.Users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, store.ErrAccountDisabled) {
			Render(c, http.StatusForbidden, "auth/login.html", gin.H{"Error": "Your account is disabled"})
			return
		}
		// Generic message; don't reveal whether the account exists.
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Invalid login details supplied"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
