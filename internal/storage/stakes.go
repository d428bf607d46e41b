package storage

import (
	"errors"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// StakeRepository stores per-account staked balances under "stake:<account>".
type StakeRepository struct {
	store *Store
}

func NewStakeRepository(store *Store) *StakeRepository {
	return &StakeRepository{store: store}
}

func stakeKey(account string) string {
	return "stake:" + account
}

// Get returns the account's staked balance, zero when unknown.
func (r *StakeRepository) Get(account string) (float64, error) {
	var entry model.StakeEntry
	err := r.store.getJSON(stakeKey(account), &entry)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Stake, nil
}

func (r *StakeRepository) Set(account string, stake float64) error {
	return r.store.putJSON(stakeKey(account), model.StakeEntry{Account: account, Stake: stake})
}
