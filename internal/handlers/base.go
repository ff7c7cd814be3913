package handlers

import (
	"parasitehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render injects common variables like the current user before handing off to
// the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	if profile := middleware.CurrentProfile(c); profile != nil {
		obj["CurrentProfile"] = profile
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// cloneH shallow-copies template data. Cached data maps are shared between
// requests and must stay free of per-request keys.
func cloneH(data gin.H) gin.H {
	out := make(gin.H, len(data)+3)
	for k, v := range data {
		out[k] = v
	}
	return out
}

// RenderError maps an error onto the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}
