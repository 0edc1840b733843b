package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDatasetCacheRoundTrip(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	src := "https://example.com/india.geojson"

	_, err := d.GetDataset(ctx, src)
	assert.ErrorIs(t, err, ErrNotFound)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, d.PutDataset(ctx, src, []byte(`{"v":1}`), at))
	require.NoError(t, d.PutDataset(ctx, src, []byte(`{"v":2}`), at.Add(time.Hour)))

	got, err := d.GetDataset(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got.Body))
	assert.True(t, got.FetchedAt.Equal(at.Add(time.Hour)))

	require.NoError(t, d.DeleteDataset(ctx, src))
	assert.ErrorIs(t, d.DeleteDataset(ctx, src), ErrNotFound)
}

func TestMigrationsAreRerunnable(t *testing.T) {
	d := openTestDB(t)
	assert.NoError(t, d.RunMigrations())
}
