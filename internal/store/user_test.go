package store

import (
	"context"
	"testing"

	"parasitehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, err := st.Users.Register(ctx, "alice", "alice@example.org", "secret123", models.RoleClinician, "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClinician, profile.Role)
	assert.Equal(t, "alice", profile.User.Username)

	user, err := st.Users.Authenticate(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, user.ID)

	_, err = st.Users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = st.Users.Authenticate(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "bob", models.RolePublic)

	_, err := st.Users.Register(ctx, "bob", "other@example.org", "secret123", models.RolePublic, "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterInvalidRole(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Users.Register(context.Background(), "eve", "eve@example.org", "secret123", "superuser", "")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSetRoleRequiresAdmin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "target", models.RolePublic)
	seedUser(t, st, "mallory", models.RoleClinician)

	changed, err := st.Users.SetRole(ctx, models.RoleClinician, "target", models.RoleResearcher)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, changed)

	// Role must not have moved.
	profile, err := st.Users.ProfileByUsername(ctx, "target")
	require.NoError(t, err)
	assert.Equal(t, models.RolePublic, profile.Role)
}

func TestSetRoleAsAdmin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "target", models.RolePublic)

	changed, err := st.Users.SetRole(ctx, models.RoleAdmin, "target", models.RoleResearcher)
	require.NoError(t, err)
	assert.True(t, changed)

	profile, err := st.Users.ProfileByUsername(ctx, "target")
	require.NoError(t, err)
	assert.Equal(t, models.RoleResearcher, profile.Role)

	// Setting the same role again reports no change.
	changed, err = st.Users.SetRole(ctx, models.RoleAdmin, "target", models.RoleResearcher)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = st.Users.SetRole(ctx, models.RoleAdmin, "target", "bogus")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = st.Users.SetRole(ctx, models.RoleAdmin, "ghost", models.RolePublic)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchByUsernameCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "Charlie", models.RolePublic)
	seedUser(t, st, "charlotte", models.RoleResearcher)
	seedUser(t, st, "dave", models.RolePublic)

	results, err := st.Users.SearchByUsername(ctx, "CHARL")
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = st.Users.SearchByUsername(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}
