package main

import (
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"parasitehub/internal/config"
	"parasitehub/internal/db"
	"parasitehub/internal/middleware"
	"parasitehub/internal/router"
	"parasitehub/internal/store"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	gdb := db.Init(cfg.DatabaseURL)
	st := store.New(gdb)

	r := gin.Default()

	// Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("parasitehub_session", sessionStore))

	// Templates
	r.HTMLRender = loadTemplates("./web/templates")

	// Static assets (uploaded pictures live under /static/uploads)
	r.Static("/static", "./web/static")

	// Resolve the session user before anything else looks at it
	r.Use(middleware.LoadUser(st))

	router.RegisterRoutes(r, st, cfg)

	log.Printf("ParasiteHub server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	views := []string{
		"about.html",
		"error.html",
		"auth/login.html",
		"auth/register.html",
		"parasite/index.html",
		"parasite/public_content.html",
		"parasite/add.html",
		"parasite/detail.html",
		"article/create.html",
		"article/detail.html",
		"post/clinical_portal.html",
		"post/research_portal.html",
		"post/clinical_parasite.html",
		"post/research_parasite.html",
		"post/create_clinical.html",
		"post/create_research.html",
		"post/clinical_detail.html",
		"post/research_detail.html",
		"user/profile.html",
		"user/posts.html",
		"admin/search.html",
		"admin/search_results.html",
		"admin/manage.html",
	}
	for _, view := range views {
		r.AddFromFilesFuncs(view, funcMap, assemble(templatesDir+"/views/"+view)...)
	}

	return r
}
