package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"parasitehub/internal/config"
	"parasitehub/internal/db"
	"parasitehub/internal/middleware"
	"parasitehub/internal/models"
	"parasitehub/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	st := store.New(gdb)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(middleware.LoadUser(st))
	RegisterRoutes(r, st, config.Config{UploadDir: t.TempDir(), PopularLimit: 5})
	return r, st
}

// login posts real credentials and returns the session cookies.
func login(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	return w.Result().Cookies()
}

func postForm(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestClinicalCreateDeniedForPublicRole(t *testing.T) {
	r, st := newTestApp(t)
	ctx := context.Background()

	_, err := st.Users.Register(ctx, "visitor", "v@example.org", "secret123", models.RolePublic, "")
	require.NoError(t, err)
	parasite, err := st.Parasites.Create(ctx, "Toxocara canis", "", "intro")
	require.NoError(t, err)

	cookies := login(t, r, "visitor", "secret123")

	form := url.Values{"title": {"Sneaky post"}, "content": {"should not land"}}
	w := postForm(r, "/parasites/1/clinical/add", form, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	posts, err := st.Posts.ListClinicalByParasite(ctx, parasite.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClinicalCreateRedirectsAnonymous(t *testing.T) {
	r, _ := newTestApp(t)

	w := postForm(r, "/parasites/1/clinical/add", url.Values{"title": {"x"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestClinicalCreateAllowedForClinician(t *testing.T) {
	r, st := newTestApp(t)
	ctx := context.Background()

	_, err := st.Users.Register(ctx, "doc", "doc@example.org", "secret123", models.RoleClinician, "")
	require.NoError(t, err)
	parasite, err := st.Parasites.Create(ctx, "Ancylostoma duodenale", "", "intro")
	require.NoError(t, err)

	cookies := login(t, r, "doc", "secret123")

	form := url.Values{"title": {"Hookworm case"}, "content": {"iron deficiency anaemia"}}
	w := postForm(r, "/parasites/1/clinical/add", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	posts, err := st.Posts.ListClinicalByParasite(ctx, parasite.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hookworm case", posts[0].Title)
}

func TestLikeEndpointReturnsCounts(t *testing.T) {
	r, st := newTestApp(t)
	ctx := context.Background()

	author, err := st.Users.Register(ctx, "doc", "doc@example.org", "secret123", models.RoleClinician, "")
	require.NoError(t, err)
	parasite, err := st.Parasites.Create(ctx, "Enterobius vermicularis", "", "intro")
	require.NoError(t, err)
	post, err := st.Posts.CreateClinical(ctx, parasite.ID, author.ID, "Pinworm note", "", nil)
	require.NoError(t, err)

	_, err = st.Users.Register(ctx, "reader", "r@example.org", "secret123", models.RolePublic, "")
	require.NoError(t, err)
	cookies := login(t, r, "reader", "secret123")

	w := postForm(r, "/like/clinical/1", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Likes    int64 `json:"likes"`
		Dislikes int64 `json:"dislikes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Likes)
	assert.Equal(t, int64(0), body.Dislikes)
	_ = post
}

func TestEmptyCommentRedirectsWithoutWriting(t *testing.T) {
	r, st := newTestApp(t)
	ctx := context.Background()

	author, err := st.Users.Register(ctx, "doc", "doc@example.org", "secret123", models.RoleClinician, "")
	require.NoError(t, err)
	parasite, err := st.Parasites.Create(ctx, "Trypanosoma cruzi", "", "intro")
	require.NoError(t, err)
	post, err := st.Posts.CreateClinical(ctx, parasite.ID, author.ID, "Chagas note", "", nil)
	require.NoError(t, err)

	cookies := login(t, r, "doc", "secret123")

	form := url.Values{"comment_text": {"   "}}
	w := postForm(r, "/parasites/1/clinical/1/comment", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	count, err := st.Comments.CountForPost(ctx, models.KindClinical, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
