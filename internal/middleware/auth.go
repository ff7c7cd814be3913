package middleware

import (
	"net/http"

	"parasitehub/internal/models"
	"parasitehub/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const CheckProfileKey = "profile"

// LoadUser resolves the session to a user and profile and sets both on the
// context. It never denies; the gates below do that.
func LoadUser(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			if id, ok := userID.(uint); ok {
				profile, err := st.Users.ProfileByUserID(c.Request.Context(), id)
				if err == nil {
					c.Set(CheckUserKey, &profile.User)
					c.Set(CheckProfileKey, profile)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in. Runs on the session alone, before
// any role resolution, so anonymous callers are turned away without a role
// lookup.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly keeps logged-in users off the register/login pages.
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentProfile returns the profile LoadUser resolved, or nil.
func CurrentProfile(c *gin.Context) *models.UserProfile {
	if p, exists := c.Get(CheckProfileKey); exists {
		return p.(*models.UserProfile)
	}
	return nil
}

// roleGate denies unless the caller's role passes allowed. Deny
// short-circuits; the protected handler never runs.
func roleGate(allowed func(role string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentProfile(c)
		if profile == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !allowed(profile.Role) {
			c.String(http.StatusForbidden, "You are not authorised to view this page.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CliniciansOnly gates the clinical portal and clinical post mutations.
func CliniciansOnly() gin.HandlerFunc {
	return roleGate(func(role string) bool {
		return role == models.RoleClinician
	})
}

// CliniciansOrResearchersOnly gates the research portal.
func CliniciansOrResearchersOnly() gin.HandlerFunc {
	return roleGate(func(role string) bool {
		return role == models.RoleClinician || role == models.RoleResearcher
	})
}

// AdminOnly gates user management.
func AdminOnly() gin.HandlerFunc {
	return roleGate(func(role string) bool {
		return role == models.RoleAdmin
	})
}
