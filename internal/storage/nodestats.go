package storage

import (
	"errors"
	"time"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// NodeStatsRepository stores per-endpoint request statistics under
// "nodestats:<url>". Entries older than the TTL read back as empty, so a
// quiet endpoint recovers its full default weight over time.
type NodeStatsRepository struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time
}

func NewNodeStatsRepository(store *Store, ttl time.Duration) *NodeStatsRepository {
	return &NodeStatsRepository{store: store, ttl: ttl, now: time.Now}
}

func nodeStatsKey(url string) string {
	return "nodestats:" + url
}

// Get returns the endpoint's stats; missing or expired entries come back
// zero-valued.
func (r *NodeStatsRepository) Get(url string) (model.NodeStats, error) {
	var stats model.NodeStats
	err := r.store.getJSON(nodeStatsKey(url), &stats)
	if errors.Is(err, ErrNotFound) {
		return model.NodeStats{}, nil
	}
	if err != nil {
		return model.NodeStats{}, err
	}
	if r.ttl > 0 && r.now().Sub(stats.UpdatedAt) > r.ttl {
		return model.NodeStats{}, nil
	}
	return stats, nil
}

func (r *NodeStatsRepository) Put(url string, stats model.NodeStats) error {
	stats.UpdatedAt = r.now().UTC()
	return r.store.putJSON(nodeStatsKey(url), stats)
}
