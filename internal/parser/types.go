package parser

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/waiviolabs/hive-objects-backend/internal/engine"
	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

type (
	// BlockSource fetches ledger blocks by height. A block the chain has not
	// produced yet comes back as (nil, nil).
	BlockSource interface {
		GetBlock(ctx context.Context, height uint64) (*model.SignedBlock, error)
	}

	// Cursor persists the next block height to process.
	Cursor interface {
		Next() (uint64, error)
		Advance(height uint64) error
	}

	// BlockParser dispatches the operations of one block.
	BlockParser interface {
		ParseBlock(ctx context.Context, block *model.SignedBlock) error
	}

	// ActionHandler applies one decoded platform action.
	ActionHandler interface {
		Handle(ctx context.Context, op *engine.Operation, octx engine.Context) error
	}

	// StakeStore reads and writes staked token balances.
	StakeStore interface {
		Get(account string) (float64, error)
		Set(account string, stake float64) error
	}

	// WeightRecalculator re-derives stored vote weights after a stake change.
	WeightRecalculator interface {
		RecalculateForVoter(ctx context.Context, voter string) error
	}

	// PendingJanitor removes multi-part fragments stored before a deadline.
	PendingJanitor interface {
		PurgeExpired(before time.Time) (int, error)
	}

	// Metrics records ingestion-loop observations.
	Metrics interface {
		ObserveBlock(err error, height uint64, started time.Time)
		ObserveOperation(kind string, err error)
	}
)
