package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

func TestStakeRepository(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	stakes := NewStakeRepository(store)

	stake, err := stakes.Get("alice")
	require.NoError(t, err)
	require.Zero(t, stake, "unknown account reads as zero")

	require.NoError(t, stakes.Set("alice", 150.5))

	stake, err = stakes.Get("alice")
	require.NoError(t, err)
	require.Equal(t, 150.5, stake)

	stake, err = stakes.Get("bob")
	require.NoError(t, err)
	require.Zero(t, stake)
}

func TestNodeStatsRepositoryExpiry(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	stats := NewNodeStatsRepository(store, time.Hour)

	now := time.Now()
	stats.now = func() time.Time { return now }

	got, err := stats.Get("https://api.example.com")
	require.NoError(t, err)
	require.Zero(t, got.TotalRequests, "unknown endpoint reads as empty")

	require.NoError(t, stats.Put("https://api.example.com", model.NodeStats{
		TotalRequests: 10,
		Errors:        2,
		Weight:        0.8,
	}))

	got, err = stats.Get("https://api.example.com")
	require.NoError(t, err)
	require.Equal(t, int64(10), got.TotalRequests)
	require.Equal(t, 0.8, got.Weight)

	// Past the TTL the entry reads back empty again.
	now = now.Add(2 * time.Hour)
	got, err = stats.Get("https://api.example.com")
	require.NoError(t, err)
	require.Zero(t, got.TotalRequests)
	require.Zero(t, got.Weight)
}
