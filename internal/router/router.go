package router

import (
	"parasitehub/internal/config"
	"parasitehub/internal/handlers"
	"parasitehub/internal/middleware"
	"parasitehub/internal/services"
	"parasitehub/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every operation behind its gates. Role gates always
// run after AuthRequired, so anonymous callers are turned away before any
// role is resolved.
func RegisterRoutes(r *gin.Engine, st *store.Store, cfg config.Config) {
	uploads := services.NewUploadService(cfg.UploadDir)

	authHandler := handlers.NewAuthHandler(st, uploads)
	parasiteHandler := handlers.NewParasiteHandler(st, uploads, cfg.PopularLimit)
	articleHandler := handlers.NewArticleHandler(st, uploads)
	postHandler := handlers.NewPostHandler(st, uploads, cfg.PopularLimit)
	reactionHandler := handlers.NewReactionHandler(st)
	commentHandler := handlers.NewCommentHandler(st)
	userHandler := handlers.NewUserHandler(st, uploads)
	adminHandler := handlers.NewAdminHandler(st)

	// Public routes
	r.GET("/", parasiteHandler.Index)
	r.GET("/about", parasiteHandler.About)
	r.GET("/public_content", parasiteHandler.PublicContent)
	r.GET("/parasites/:id", parasiteHandler.Detail)
	r.GET("/articles/:id", articleHandler.Detail)
	r.GET("/users/:username/posts", userHandler.Posts)

	// Anonymous only
	anonymous := r.Group("/")
	anonymous.Use(middleware.AnonymousOnly())
	{
		anonymous.GET("/register", authHandler.ShowRegister)
		anonymous.POST("/register", authHandler.Register)
		anonymous.GET("/login", authHandler.ShowLogin)
		anonymous.POST("/login", authHandler.Login)
	}

	// Authenticated routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/logout", authHandler.Logout)

		authorized.GET("/parasites/add", parasiteHandler.ShowAdd)
		authorized.POST("/parasites/add", parasiteHandler.Add)
		authorized.GET("/parasites/:id/articles/add", articleHandler.ShowCreate)
		authorized.POST("/parasites/:id/articles/add", articleHandler.Create)

		authorized.POST("/like/:kind/:id", reactionHandler.Like)
		authorized.POST("/dislike/:kind/:id", reactionHandler.Dislike)
		authorized.POST("/parasites/:id/:kind/:post_id/comment", commentHandler.Create)
		authorized.POST("/comments/:comment_id/reply", commentHandler.Reply)

		authorized.POST("/posts/:id/delete", postHandler.Delete)

		authorized.GET("/profile/:username", userHandler.Profile)
		authorized.POST("/profile/:username", userHandler.UpdateProfile)

		authorized.GET("/search", adminHandler.SearchPage)
		authorized.GET("/search_results", adminHandler.SearchResults)
	}

	// Clinician gate
	clinical := r.Group("/")
	clinical.Use(middleware.AuthRequired(), middleware.CliniciansOnly())
	{
		clinical.GET("/clinical_portal", postHandler.ClinicalPortal)
		clinical.GET("/parasites/:id/clinical", postHandler.ClinicalParasitePage)
		clinical.GET("/parasites/:id/clinical/add", postHandler.ShowCreateClinical)
		clinical.POST("/parasites/:id/clinical/add", postHandler.CreateClinical)
		clinical.GET("/parasites/:id/clinical/:post_id", postHandler.ClinicalDetail)
	}

	// Clinician-or-researcher gate
	research := r.Group("/")
	research.Use(middleware.AuthRequired(), middleware.CliniciansOrResearchersOnly())
	{
		research.GET("/research_portal", postHandler.ResearchPortal)
		research.GET("/parasites/:id/research", postHandler.ResearchParasitePage)
		research.GET("/parasites/:id/research/add", postHandler.ShowCreateResearch)
		research.POST("/parasites/:id/research/add", postHandler.CreateResearch)
		research.GET("/parasites/:id/research/:post_id", postHandler.ResearchDetail)
	}

	// Admin gate
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminOnly())
	{
		admin.GET("/manage/:username", adminHandler.Manage)
		admin.POST("/manage/:username", adminHandler.SetRole)
	}
}
