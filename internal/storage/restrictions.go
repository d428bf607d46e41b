package storage

import (
	"errors"
	"time"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// RestrictionRepository stores spam flags ("spam:<account>"), mute lists
// ("muted:<account>") and shop deselect markers
// ("deselect:<permlink>:<account>").
type RestrictionRepository struct {
	store *Store
	now   func() time.Time
}

func NewRestrictionRepository(store *Store) *RestrictionRepository {
	return &RestrictionRepository{store: store, now: time.Now}
}

func (r *RestrictionRepository) AddSpam(account string) error {
	return r.store.putJSON("spam:"+account, true)
}

func (r *RestrictionRepository) IsSpam(account string) (bool, error) {
	return r.store.has("spam:" + account)
}

// Mute records that account was muted by the given account.
func (r *RestrictionRepository) Mute(account, by string) error {
	key := "muted:" + account
	var muted model.MutedUser
	err := r.store.getJSON(key, &muted)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	muted.Account = account
	for _, b := range muted.MutedBy {
		if b == by {
			return nil
		}
	}
	muted.MutedBy = append(muted.MutedBy, by)
	return r.store.putJSON(key, &muted)
}

func (r *RestrictionRepository) Unmute(account, by string) error {
	key := "muted:" + account
	var muted model.MutedUser
	err := r.store.getJSON(key, &muted)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	out := muted.MutedBy[:0]
	for _, b := range muted.MutedBy {
		if b != by {
			out = append(out, b)
		}
	}
	muted.MutedBy = out
	if len(muted.MutedBy) == 0 {
		return r.store.delete(key)
	}
	return r.store.putJSON(key, &muted)
}

// IsMutedByAny reports whether account is muted by at least one of the given
// accounts.
func (r *RestrictionRepository) IsMutedByAny(account string, by []string) (bool, error) {
	var muted model.MutedUser
	err := r.store.getJSON("muted:"+account, &muted)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, m := range muted.MutedBy {
		for _, b := range by {
			if m == b {
				return true, nil
			}
		}
	}
	return false, nil
}

func deselectKey(permlink, account string) string {
	return "deselect:" + permlink + ":" + account
}

// MarkDeselect flags an object as dropped from the account's shop after an
// authority removal.
func (r *RestrictionRepository) MarkDeselect(permlink, account string) error {
	return r.store.putJSON(deselectKey(permlink, account), r.now().UTC())
}

func (r *RestrictionRepository) ClearDeselect(permlink, account string) error {
	return r.store.delete(deselectKey(permlink, account))
}

func (r *RestrictionRepository) IsDeselected(permlink, account string) (bool, error) {
	return r.store.has(deselectKey(permlink, account))
}
