package store

import (
	"context"
	"testing"

	"parasitehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentRejectsEmptyText(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RoleClinician)
	p := seedParasite(t, st, "Taenia solium")
	post := seedClinical(t, st, p.ID, author.ID, "Neurocysticercosis case")

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := st.Comments.AddComment(ctx, models.KindClinical, post.ID, author.ID, text)
		assert.ErrorIs(t, err, ErrEmptyText)
	}

	count, err := st.Comments.CountForPost(ctx, models.KindClinical, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCommentsAndReplies(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, st, "author", models.RoleClinician)
	reader := seedUser(t, st, "reader", models.RolePublic)
	p := seedParasite(t, st, "Trichinella spiralis")
	post := seedClinical(t, st, p.ID, author.ID, "Outbreak notes")

	first, err := st.Comments.AddComment(ctx, models.KindClinical, post.ID, reader.ID, "Any travel history?")
	require.NoError(t, err)

	_, err = st.Comments.AddComment(ctx, models.KindClinical, post.ID, author.ID, "  Updated with labs.  ")
	require.NoError(t, err)

	reply, err := st.Comments.AddReply(ctx, first.ID, author.ID, "Yes, see the update.")
	require.NoError(t, err)
	assert.Equal(t, first.ID, reply.CommentID)

	_, err = st.Comments.AddReply(ctx, 9999, author.ID, "orphan")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Comments.AddReply(ctx, first.ID, author.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	comments, err := st.Comments.ListForPost(ctx, models.KindClinical, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Oldest first, replies attached to their parent.
	assert.Equal(t, first.ID, comments[0].ID)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "Yes, see the update.", comments[0].Replies[0].Text)
	assert.Equal(t, "reader", comments[0].Profile.User.Username)
}

func TestAddCommentUnknownPost(t *testing.T) {
	st := newTestStore(t)
	reader := seedUser(t, st, "reader", models.RolePublic)

	_, err := st.Comments.AddComment(context.Background(), models.KindResearch, 42, reader.ID, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}
