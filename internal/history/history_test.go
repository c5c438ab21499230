package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "history")

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestRecordAndList(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	first, err := store.Record(ctx, Run{
		Source:    "capture.har",
		RawCount:  120,
		KeptCount: 7,
		Include:   ".pdf",
		Exclude:   ".jpg|.png",
		Custom:    "/docs/",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := store.Record(ctx, Run{
		Source:    "other.har",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		RawCount:  30,
		KeptCount: 2,
		Include:   ".xlsx",
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "other.har", runs[0].Source)
	assert.Equal(t, "capture.har", runs[1].Source)
	assert.Equal(t, 7, runs[1].KeptCount)
	assert.Equal(t, ".jpg|.png", runs[1].Exclude)
	assert.True(t, runs[0].CreatedAt.Equal(second.CreatedAt))
}

func TestListLimit(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, Run{Source: "capture.har", Include: ".pdf"})
		require.NoError(t, err)
	}

	runs, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListEmpty(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
