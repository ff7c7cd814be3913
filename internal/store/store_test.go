package store

import (
	"context"
	"testing"

	"parasitehub/internal/db"
	"parasitehub/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an in-memory database and migrates the full schema.
// A single connection keeps sqlite happy under concurrent access.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return New(gdb)
}

func seedUser(t *testing.T, st *Store, username, role string) *models.UserProfile {
	t.Helper()
	profile, err := st.Users.Register(context.Background(), username, username+"@example.org", "secret123", role, "")
	require.NoError(t, err)
	return profile
}

func seedParasite(t *testing.T, st *Store, name string) *models.Parasite {
	t.Helper()
	p, err := st.Parasites.Create(context.Background(), name, "", "intro for "+name)
	require.NoError(t, err)
	return p
}

func seedClinical(t *testing.T, st *Store, parasiteID, profileID uint, title string) *models.Post {
	t.Helper()
	post, err := st.Posts.CreateClinical(context.Background(), parasiteID, profileID, title, "observed in the field", nil)
	require.NoError(t, err)
	return post
}

func seedResearch(t *testing.T, st *Store, parasiteID, profileID uint, title string) *models.ResearchPost {
	t.Helper()
	post, err := st.Posts.CreateResearch(context.Background(), parasiteID, profileID, title, "study notes", nil, nil)
	require.NoError(t, err)
	return post
}
