package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// PendingRepository stores fragments of multi-part field bodies under
// "pending:<permlink>:<groupId>:<NN>" until the group completes or expires.
type PendingRepository struct {
	store *Store
}

func NewPendingRepository(store *Store) *PendingRepository {
	return &PendingRepository{store: store}
}

func pendingKey(permlink, groupID string, part int) string {
	return fmt.Sprintf("%s%02d", pendingGroupPrefix(permlink, groupID), part)
}

func pendingGroupPrefix(permlink, groupID string) string {
	return fmt.Sprintf("pending:%s:%s:", permlink, groupID)
}

// Put stores one fragment. A second fragment with the same part number for
// the same group is rejected.
func (r *PendingRepository) Put(part model.PendingPart) error {
	key := pendingKey(part.AuthorPermlink, part.GroupID, part.PartNumber)
	exists, err := r.store.has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("pending part %d of %s: %w", part.PartNumber, part.GroupID, ErrAlreadyExists)
	}
	return r.store.putJSON(key, part)
}

func (r *PendingRepository) Has(permlink, groupID string, part int) (bool, error) {
	return r.store.has(pendingKey(permlink, groupID, part))
}

func (r *PendingRepository) Count(permlink, groupID string) (int, error) {
	n := 0
	err := r.store.iterPrefix(pendingGroupPrefix(permlink, groupID), func(string, []byte) error {
		n++
		return nil
	})
	return n, err
}

// List returns the stored fragments of a group ordered by part number.
func (r *PendingRepository) List(permlink, groupID string) ([]model.PendingPart, error) {
	var parts []model.PendingPart
	err := r.store.iterPrefix(pendingGroupPrefix(permlink, groupID), func(_ string, value []byte) error {
		var p model.PendingPart
		if err := decodeValue(value, &p); err != nil {
			return err
		}
		parts = append(parts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })
	return parts, nil
}

func (r *PendingRepository) DeleteGroup(permlink, groupID string) error {
	var keys []string
	err := r.store.iterPrefix(pendingGroupPrefix(permlink, groupID), func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := r.store.delete(key); err != nil {
			return err
		}
	}
	return nil
}

// PurgeExpired deletes every fragment stored before the given time and
// returns how many were removed.
func (r *PendingRepository) PurgeExpired(before time.Time) (int, error) {
	var stale []string
	err := r.store.iterPrefix("pending:", func(key string, value []byte) error {
		var p model.PendingPart
		if err := decodeValue(value, &p); err != nil {
			return err
		}
		if p.CreatedAt.Before(before) {
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, key := range stale {
		if err := r.store.delete(key); err != nil {
			return len(stale), err
		}
	}
	return len(stale), nil
}
