package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, 1, v)
}

func TestOverrideRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	saved, err := PutOverride(ctx, db.Pool, "jobs.example.com", "01234567", "Acme Ltd")
	require.NoError(t, err)
	assert.Equal(t, "jobs.example.com", saved.Site)
	assert.NotEmpty(t, saved.UpdatedAt)

	got, ok, err := GetOverride(ctx, db.Pool, "  Jobs.Example.COM ")
	require.NoError(t, err)
	require.True(t, ok, "site keys are case-insensitive")
	assert.Equal(t, "01234567", got.CompanyNumber)
	assert.Equal(t, "Acme Ltd", got.CompanyName)
}

func TestPutOverrideReplaces(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := PutOverride(ctx, db.Pool, "jobs.example.com", "01234567", "Acme Ltd")
	require.NoError(t, err)
	_, err = PutOverride(ctx, db.Pool, "jobs.example.com", "07654321", "Acme Group Ltd")
	require.NoError(t, err)

	got, ok, err := GetOverride(ctx, db.Pool, "jobs.example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "07654321", got.CompanyNumber)

	all, err := ListOverrides(ctx, db.Pool)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPutOverrideRequiresKeyFields(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := PutOverride(ctx, db.Pool, "", "01234567", "")
	assert.Error(t, err)
	_, err = PutOverride(ctx, db.Pool, "jobs.example.com", "  ", "")
	assert.Error(t, err)
}

func TestDeleteOverride(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := PutOverride(ctx, db.Pool, "jobs.example.com", "01234567", "")
	require.NoError(t, err)

	removed, err := DeleteOverride(ctx, db.Pool, "jobs.example.com")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = DeleteOverride(ctx, db.Pool, "jobs.example.com")
	require.NoError(t, err)
	assert.False(t, removed)

	_, ok, err := GetOverride(ctx, db.Pool, "jobs.example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetOverrideMissing(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := GetOverride(context.Background(), db.Pool, "never-seen")
	require.NoError(t, err)
	assert.False(t, ok)
}
