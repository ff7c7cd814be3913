package store

import (
	"context"
	"sync"
	"testing"

	"parasitehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RoleClinician)
	reader := seedUser(t, st, "reader", models.RolePublic)
	p := seedParasite(t, st, "Toxoplasma gondii")
	post := seedClinical(t, st, p.ID, author.ID, "Case report")

	counts, err := st.Reactions.ToggleLike(ctx, models.KindClinical, post.ID, reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)
	assert.Equal(t, int64(0), counts.Dislikes)

	// Second toggle removes the like and restores the baseline.
	counts, err = st.Reactions.ToggleLike(ctx, models.KindClinical, post.ID, reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Likes)
	assert.Equal(t, int64(0), counts.Dislikes)
}

func TestLikeDislikeMutualExclusion(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RoleResearcher)
	reader := seedUser(t, st, "reader", models.RolePublic)
	p := seedParasite(t, st, "Schistosoma mansoni")
	post := seedResearch(t, st, p.ID, author.ID, "Prevalence study")

	counts, err := st.Reactions.ToggleLike(ctx, models.KindResearch, post.ID, reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)

	// Disliking a liked post flips the reaction rather than stacking it.
	counts, err = st.Reactions.ToggleDislike(ctx, models.KindResearch, post.ID, reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Likes)
	assert.Equal(t, int64(1), counts.Dislikes)

	counts, err = st.Reactions.ToggleDislike(ctx, models.KindResearch, post.ID, reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Likes)
	assert.Equal(t, int64(0), counts.Dislikes)
}

func TestToggleUnknownPost(t *testing.T) {
	st := newTestStore(t)
	reader := seedUser(t, st, "reader", models.RolePublic)

	_, err := st.Reactions.ToggleLike(context.Background(), models.KindClinical, 9999, reader.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentLikesFromDistinctUsers(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RoleClinician)
	p := seedParasite(t, st, "Entamoeba histolytica")
	post := seedClinical(t, st, p.ID, author.ID, "Dysentery cluster")

	users := []*models.UserProfile{
		seedUser(t, st, "u1", models.RolePublic),
		seedUser(t, st, "u2", models.RolePublic),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, errs[i] = st.Reactions.ToggleLike(ctx, models.KindClinical, post.ID, userID)
		}(i, u.UserID)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	counts, err := st.Reactions.CountsFor(ctx, models.KindClinical, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Likes)
}
