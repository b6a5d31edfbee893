package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/skawahara/kotoba-sns-be/internal/database"
	"github.com/skawahara/kotoba-sns-be/internal/models"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *sql.DB, name, email string) models.User {
	t.Helper()

	user, err := NewUserService(db).CreateUser(name, email, "password")
	require.NoError(t, err)
	return user
}
