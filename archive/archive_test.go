package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	first := &Fill{
		Structure:  "___\n#_#\n#_#",
		Lexicon:    "small",
		LexiconFP:  "00000000deadbeef",
		Seed:       42,
		Solution:   "ACT\n█A█\n█T█",
		Nodes:      17,
		Backtracks: 3,
		Duration:   1500 * time.Millisecond,
	}
	require.NoError(t, store.Save(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	second := &Fill{
		Structure: "____",
		Lexicon:   "big",
		LexiconFP: "0123456789abcdef",
		Solution:  "WORD",
	}
	require.NoError(t, store.Save(ctx, second))

	fills, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, fills, 2)

	// Newest first.
	assert.Equal(t, second.ID, fills[0].ID)
	assert.Equal(t, "big", fills[0].Lexicon)
	assert.WithinDuration(t, time.Now(), fills[0].CreatedAt, time.Minute)

	got := fills[1]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.Structure, got.Structure)
	assert.Equal(t, first.LexiconFP, got.LexiconFP)
	assert.Equal(t, uint64(42), got.Seed)
	assert.Equal(t, first.Solution, got.Solution)
	assert.Equal(t, uint64(17), got.Nodes)
	assert.Equal(t, uint64(3), got.Backtracks)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fills.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), &Fill{Solution: "X"}))
	require.NoError(t, store.Close())

	// Reopening finds the same data.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
