package store

import (
	"context"
	"testing"

	"parasitehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleCreateNormalizesURL(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RolePublic)
	p := seedParasite(t, st, "Giardia lamblia")

	article, err := st.Articles.Create(ctx, p.ID, author.ID, "Field guide", "body", "example.org/guide", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/guide", article.URL)

	article, err = st.Articles.Create(ctx, p.ID, author.ID, "Archive link", "body", "http://old.example.org", "")
	require.NoError(t, err)
	assert.Equal(t, "http://old.example.org", article.URL)

	_, err = st.Articles.Create(ctx, p.ID, author.ID, "", "body", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = st.Articles.Create(ctx, 9999, author.ID, "orphan", "body", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleViewAndListing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RolePublic)
	p := seedParasite(t, st, "Echinococcus granulosus")

	a1, err := st.Articles.Create(ctx, p.ID, author.ID, "First", "body", "", "")
	require.NoError(t, err)
	a2, err := st.Articles.Create(ctx, p.ID, author.ID, "Second", "body", "", "")
	require.NoError(t, err)

	viewed, err := st.Articles.View(ctx, a2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.Views)
	assert.Equal(t, "author", viewed.Profile.User.Username)

	listed, err := st.Articles.ListByParasite(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// Least-viewed first, so the fresh article leads.
	byViews, err := st.Articles.ListByViews(ctx)
	require.NoError(t, err)
	require.Len(t, byViews, 2)
	assert.Equal(t, a1.ID, byViews[0].ID)
	assert.Equal(t, a2.ID, byViews[1].ID)
}
