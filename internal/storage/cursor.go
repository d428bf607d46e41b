package storage

import (
	"errors"
	"fmt"
	"strconv"
)

// BlockCursor persists the next block height to process as a decimal string
// under the configured key.
type BlockCursor struct {
	store *Store
	key   string
	start uint64
}

func NewBlockCursor(store *Store, key string, start uint64) *BlockCursor {
	return &BlockCursor{store: store, key: "cursor:" + key, start: start}
}

// Next returns the height to process. A missing cursor falls back to the
// configured start height.
func (c *BlockCursor) Next() (uint64, error) {
	var raw string
	err := c.store.getJSON(c.key, &raw)
	if errors.Is(err, ErrNotFound) {
		return c.start, nil
	}
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cursor %q: %w", raw, err)
	}
	return height, nil
}

// Advance stores height as the next block to process.
func (c *BlockCursor) Advance(height uint64) error {
	return c.store.putJSON(c.key, strconv.FormatUint(height, 10))
}
